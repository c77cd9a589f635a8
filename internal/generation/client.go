package generation

import "context"

// Response is the provider-neutral result of one LLM call.
type Response struct {
	// Content is the raw generated text, before any cleanup.
	Content string

	// Token accounting as reported by the provider. Zero when the provider
	// does not report usage.
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int

	// Model and Provider identify what produced the content.
	Model    string
	Provider string
}

// Client defines the single-capability interface every LLM provider
// implements. This interface is the boundary between the application core
// and external AI services; the concrete provider is selected once at
// startup from configuration.
type Client interface {
	// Generate produces content for the given prompt. The context carries
	// the caller's deadline; implementations must honor cancellation.
	// Failures are reported with one of the package error sentinels wrapped
	// around the upstream cause.
	Generate(ctx context.Context, prompt string) (*Response, error)
}
