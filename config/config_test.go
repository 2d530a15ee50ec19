package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 30, cfg.Extractor.RequestTimeout)
	assert.Empty(t, cfg.Extractor.CookiesJSON)
	assert.NotEmpty(t, cfg.Extractor.UserAgent)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REQUEST_TIMEOUT", "10")
	t.Setenv("YOUTUBE_COOKIES", `[{"name":"SID","value":"x"}]`)
	t.Setenv("RATELIMIT_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Extractor.RequestTimeout)
	assert.Contains(t, cfg.Extractor.CookiesJSON, "SID")
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	assert.Equal(t, 5, getEnvInt("X_INT", 5))

	t.Setenv("X_BOOL", "yes")
	assert.True(t, getEnvBool("X_BOOL", false))
	t.Setenv("X_BOOL", "0")
	assert.False(t, getEnvBool("X_BOOL", true))
	t.Setenv("X_BOOL", "whatever")
	assert.True(t, getEnvBool("X_BOOL", true))
}
