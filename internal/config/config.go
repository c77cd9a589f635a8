package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// AllowedIPs restricts API access when non-empty. Health stays open.
	AllowedIPs []string `mapstructure:"allowed_ips"`
}

// SessionConfig controls the per-presentation context store.
type SessionConfig struct {
	CacheTTLSeconds int     `mapstructure:"cache_ttl" validate:"required,gt=0"`
	MaxHistory      int     `mapstructure:"max_history" validate:"required,gt=0"`
	Tolerance       float64 `mapstructure:"word_count_tolerance" validate:"required,gt=0,lt=1"`

	UseRedis bool   `mapstructure:"use_redis"`
	RedisURL string `mapstructure:"redis_url" validate:"omitempty,uri"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" validate:"required,oneof=gemini openai anthropic"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"required,gt=0"`

	TimeoutSeconds int `mapstructure:"generation_timeout" validate:"required,gt=0"`

	GeminiAPIKey    string `mapstructure:"gemini_api_key"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
}
