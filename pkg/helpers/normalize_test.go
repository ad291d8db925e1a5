package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A@X.com", "a@x.com"},
		{"  a@x.com  ", "a@x.com"},
		{" MiXeD@Example.COM\t", "mixed@example.com"},
		{"already@fine.io", "already@fine.io"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeEmail(tc.in))
	}
}

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, "fluffy", NormalizeAnswer("  Fluffy "))
	assert.Equal(t, "new york", NormalizeAnswer("New York"))
}

func TestPasswordHashCompare(t *testing.T) {
	hash, err := HashPassword("hunter22")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CompareHashAndPassword(hash, "hunter22"))
	assert.False(t, CompareHashAndPassword(hash, "hunter23"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "hunter22"))
}
