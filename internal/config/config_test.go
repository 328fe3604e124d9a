package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "es-ES", cfg.TMDBLanguage)
	assert.Equal(t, "en-US", cfg.TMDBAltLanguage)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.False(t, cfg.DemoMode)
	assert.False(t, cfg.Development())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "development")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("DEMO_MODE", "true")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Development())
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.DemoMode)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")
	t.Setenv("DEMO_MODE", "maybe")

	cfg := Load()
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.DemoMode)
}
