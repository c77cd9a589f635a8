package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/slidegen-api/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8000, LogLevel: "info"},
		Session: config.SessionConfig{
			CacheTTLSeconds: 3600,
			MaxHistory:      5,
			Tolerance:       0.10,
		},
		LLM: config.LLMConfig{
			Provider:       "openai",
			Temperature:    0.7,
			MaxTokens:      8192,
			TimeoutSeconds: 30,
			OpenAIAPIKey:   "sk-test",
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewApplicationWiring(t *testing.T) {
	t.Parallel()

	app, err := newApplication(context.Background(), testConfig(), testLogger())
	require.NoError(t, err)
	defer app.cleanup()

	assert.Equal(t, "openai", app.providerName)
	assert.Equal(t, "gpt-4o-mini", app.modelName)
	assert.NotNil(t, app.contentService)
	assert.NotNil(t, app.sessionManager)
}

func TestNewApplicationUnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.LLM.Provider = "mystery"

	_, err := newApplication(context.Background(), cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestNewApplicationRedisFallback(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Session.UseRedis = true
	cfg.Session.RedisURL = ""

	// Redis requested without a URL falls back to the memory store instead
	// of failing startup.
	app, err := newApplication(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	defer app.cleanup()
	assert.NotNil(t, app.sessionStore)
}

func TestRouterServiceEndpoints(t *testing.T) {
	t.Parallel()

	app, err := newApplication(context.Background(), testConfig(), testLogger())
	require.NoError(t, err)
	defer app.cleanup()

	router := app.setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "openai", health["llm_provider"])
	assert.Equal(t, "gpt-4o-mini", health["llm_model"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterIPAllowlistApplied(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Server.AllowedIPs = []string{"203.0.113.7"}

	app, err := newApplication(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	defer app.cleanup()

	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/session/p1", nil)
	req.RemoteAddr = "198.51.100.9:4444"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Health stays reachable from anywhere.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "198.51.100.9:4444"
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
