package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLikedByAndToggleLike(t *testing.T) {
	p := &Post{}
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	assert.False(t, p.LikedBy(a))

	p.ToggleLike(a)
	assert.True(t, p.LikedBy(a))
	assert.False(t, p.LikedBy(b))

	p.ToggleLike(b)
	assert.True(t, p.LikedBy(a))
	assert.True(t, p.LikedBy(b))

	// Removing one member leaves the other in place.
	p.ToggleLike(a)
	assert.False(t, p.LikedBy(a))
	assert.True(t, p.LikedBy(b))
	assert.Len(t, p.Likes, 1)
}
