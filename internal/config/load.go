package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables. The service is configured
// entirely through its environment (no config files): every recognized
// variable has a sensible default except the provider API keys, whose
// presence is checked against the selected provider.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("session.cache_ttl", 3600)
	v.SetDefault("session.max_history", 5)
	v.SetDefault("session.word_count_tolerance", 0.10)
	v.SetDefault("session.use_redis", false)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 8192)
	v.SetDefault("llm.generation_timeout", 30)

	v.AutomaticEnv()

	// Bind the flat environment variable names the service documents.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "PORT"},
		{"server.log_level", "LOG_LEVEL"},
		{"server.allowed_ips", "ALLOWED_IPS"},
		{"session.cache_ttl", "SESSION_CACHE_TTL"},
		{"session.max_history", "SESSION_MAX_HISTORY"},
		{"session.word_count_tolerance", "WORD_COUNT_TOLERANCE"},
		{"session.use_redis", "USE_REDIS"},
		{"session.redis_url", "REDIS_URL"},
		{"llm.provider", "LLM_PROVIDER"},
		{"llm.model", "LLM_MODEL"},
		{"llm.temperature", "LLM_TEMPERATURE"},
		{"llm.max_tokens", "LLM_MAX_TOKENS"},
		{"llm.generation_timeout", "GENERATION_TIMEOUT_SECONDS"},
		{"llm.gemini_api_key", "GEMINI_API_KEY"},
		{"llm.openai_api_key", "OPENAI_API_KEY"},
		{"llm.anthropic_api_key", "ANTHROPIC_API_KEY"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// ALLOWED_IPS arrives as one comma-separated string; viper splits it but
	// leaves surrounding whitespace on each entry.
	cfg.Server.AllowedIPs = normalizeList(cfg.Server.AllowedIPs)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := validateProviderKey(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateProviderKey checks that the selected provider has an API key.
// Other providers' keys may be absent.
func validateProviderKey(cfg *Config) error {
	switch cfg.LLM.Provider {
	case "gemini":
		if cfg.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER is gemini")
		}
	case "openai":
		if cfg.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER is openai")
		}
	case "anthropic":
		if cfg.LLM.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER is anthropic")
		}
	}
	return nil
}

func normalizeList(entries []string) []string {
	var out []string
	for _, entry := range entries {
		for _, part := range strings.Split(entry, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
