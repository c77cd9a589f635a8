package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/slidegen-api/internal/config"
	"github.com/phrazzld/slidegen-api/internal/generation"
	"github.com/phrazzld/slidegen-api/internal/platform/anthropic"
	"github.com/phrazzld/slidegen-api/internal/platform/gemini"
	"github.com/phrazzld/slidegen-api/internal/platform/openai"
	"github.com/phrazzld/slidegen-api/internal/prompt"
	"github.com/phrazzld/slidegen-api/internal/service"
	"github.com/phrazzld/slidegen-api/internal/session"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	sessionStore   session.Store
	sessionManager *session.Manager
	contentService *service.ContentService

	providerName string
	modelName    string
}

// newApplication wires the full dependency graph from configuration: the
// session store and manager, the prompt assembler, the configured LLM
// provider, and the content service on top of them.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	store, err := buildSessionStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	manager := session.NewManager(
		store,
		time.Duration(cfg.Session.CacheTTLSeconds)*time.Second,
		cfg.Session.MaxHistory,
		logger,
	)

	assembler, err := prompt.NewAssembler(cfg.Session.Tolerance)
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt assembler: %w", err)
	}

	client, modelName, err := buildGenerationClient(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.LLM.Provider, err)
	}

	contentService, err := service.NewContentService(
		manager,
		assembler,
		client,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         logger,
		sessionStore:   store,
		sessionManager: manager,
		contentService: contentService,
		providerName:   cfg.LLM.Provider,
		modelName:      modelName,
	}, nil
}

// buildSessionStore selects the Redis driver when configured and falls back
// to the in-memory driver when Redis is requested without a URL.
func buildSessionStore(cfg *config.Config, logger *slog.Logger) (session.Store, error) {
	if cfg.Session.UseRedis {
		if cfg.Session.RedisURL == "" {
			logger.Warn("USE_REDIS is set but REDIS_URL is empty, falling back to in-memory session store")
			return session.NewStore(session.StoreTypeMemory)
		}

		opt, err := redis.ParseURL(cfg.Session.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}

		logger.Info("using Redis session store", "addr", opt.Addr)
		return session.NewStore(session.StoreTypeRedis, session.WithRedisClient(redis.NewClient(opt)))
	}

	logger.Info("using in-memory session store")
	return session.NewStore(session.StoreTypeMemory)
}

// buildGenerationClient constructs the provider selected by LLM_PROVIDER.
// The provider is chosen once at startup; there is no per-request switching.
func buildGenerationClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Client, string, error) {
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second

	switch cfg.LLM.Provider {
	case gemini.ProviderName:
		client, err := gemini.NewClient(ctx, logger, gemini.Config{
			APIKey:      cfg.LLM.GeminiAPIKey,
			Model:       cfg.LLM.Model,
			Temperature: float32(cfg.LLM.Temperature),
			MaxTokens:   int32(cfg.LLM.MaxTokens),
		})
		if err != nil {
			return nil, "", err
		}
		return client, modelOrDefault(cfg.LLM.Model, gemini.DefaultModel), nil

	case openai.ProviderName:
		client, err := openai.NewClient(logger, openai.Config{
			APIKey:      cfg.LLM.OpenAIAPIKey,
			Model:       cfg.LLM.Model,
			Temperature: float32(cfg.LLM.Temperature),
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     timeout,
		})
		if err != nil {
			return nil, "", err
		}
		return client, modelOrDefault(cfg.LLM.Model, openai.DefaultModel), nil

	case anthropic.ProviderName:
		client, err := anthropic.NewClient(logger, anthropic.Config{
			APIKey:      cfg.LLM.AnthropicAPIKey,
			Model:       cfg.LLM.Model,
			Temperature: float32(cfg.LLM.Temperature),
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     timeout,
		})
		if err != nil {
			return nil, "", err
		}
		return client, modelOrDefault(cfg.LLM.Model, anthropic.DefaultModel), nil

	default:
		return nil, "", fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}

func modelOrDefault(model, fallback string) string {
	if model == "" {
		return fallback
	}
	return model
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if err := app.sessionStore.Close(); err != nil {
		app.logger.Error("failed to close session store", "error", err)
	}
}
