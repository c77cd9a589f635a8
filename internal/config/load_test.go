package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests mutate the process environment, so none of them run in
// parallel.

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Empty(t, cfg.Server.AllowedIPs)
	assert.Equal(t, 3600, cfg.Session.CacheTTLSeconds)
	assert.Equal(t, 5, cfg.Session.MaxHistory)
	assert.InDelta(t, 0.10, cfg.Session.Tolerance, 0.0001)
	assert.False(t, cfg.Session.UseRedis)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, 8192, cfg.LLM.MaxTokens)
	assert.Equal(t, 30, cfg.LLM.TimeoutSeconds)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("SESSION_CACHE_TTL", "600")
	t.Setenv("SESSION_MAX_HISTORY", "3")
	t.Setenv("WORD_COUNT_TOLERANCE", "0.2")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "15")
	t.Setenv("USE_REDIS", "true")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 600, cfg.Session.CacheTTLSeconds)
	assert.Equal(t, 3, cfg.Session.MaxHistory)
	assert.InDelta(t, 0.2, cfg.Session.Tolerance, 0.0001)
	assert.Equal(t, 15, cfg.LLM.TimeoutSeconds)
	assert.True(t, cfg.Session.UseRedis)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Session.RedisURL)
}

func TestLoadAllowedIPsCommaList(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ALLOWED_IPS", "203.0.113.7, 198.51.100.9 ,10.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"203.0.113.7", "198.51.100.9", "10.0.0.1"}, cfg.Server.AllowedIPs)
}

func TestLoadMissingProviderKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "llama-at-home")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
}
