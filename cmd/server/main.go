// Package main implements the entry point for the slide content generation
// server, which turns structured slide descriptions into presentation-ready
// HTML via an LLM provider while keeping per-presentation context.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/phrazzld/slidegen-api/internal/config"
	"github.com/phrazzld/slidegen-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires dependencies and starts the HTTP server.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger := logger.Setup(cfg.Server)

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"session_ttl_seconds", cfg.Session.CacheTTLSeconds,
		"use_redis", cfg.Session.UseRedis)

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
