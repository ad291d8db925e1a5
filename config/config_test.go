package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "connectify", cfg.MongoDatabase)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Minute, cfg.TrendingCacheTTL)
	assert.False(t, cfg.MailSendEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "not-a-duration")
	t.Setenv("REDIS_DB", "abc")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.MailSendEnabled)
}

func TestCommaListHelpers(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: " https://a.example , https://b.example ,",
		ElasticsearchAddrs: "http://localhost:9200",
	}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, []string{"http://localhost:9200"}, cfg.ESAddrs())

	empty := &Config{}
	assert.Empty(t, empty.CORSOrigins())
	assert.Empty(t, empty.ESAddrs())
}
