// Package gemini implements the generation.Client interface using Google's
// Gemini API via the google.golang.org/genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/phrazzld/slidegen-api/internal/generation"
)

// ProviderName identifies this client in result metadata.
const ProviderName = "gemini"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash-exp"

// Config holds the settings needed to construct a Client.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int32
}

// Client calls the Gemini API to generate slide content.
type Client struct {
	logger *slog.Logger
	client *genai.Client
	model  string
	config Config
}

// NewClient creates a Gemini-backed generation client.
func NewClient(ctx context.Context, logger *slog.Logger, cfg Config) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	logger.Info("initialized Gemini client", "model", cfg.Model)

	return &Client{
		logger: logger,
		client: client,
		model:  cfg.Model,
		config: cfg,
	}, nil
}

// Generate implements generation.Client.
func (c *Client) Generate(ctx context.Context, prompt string) (*generation.Response, error) {
	if prompt == "" {
		return nil, generation.ErrEmptyPrompt
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.config.Temperature),
		MaxOutputTokens: c.config.MaxTokens,
	}

	c.logger.DebugContext(ctx, "making Gemini API call",
		"model", c.model,
		"prompt_length", len(prompt))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}
	if text == "" {
		return nil, fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}

	result := &generation.Response{
		Content:  text,
		Model:    c.model,
		Provider: ProviderName,
	}
	if usage := resp.UsageMetadata; usage != nil {
		result.PromptTokens = int(usage.PromptTokenCount)
		result.CompletionTokens = int(usage.CandidatesTokenCount)
		result.TotalTokens = result.PromptTokens + result.CompletionTokens
	}

	return result, nil
}
