package generation

import "errors"

// Common errors returned by LLM client implementations.
var (
	// ErrGenerationFailed is returned when a provider call fails or times out.
	// It always wraps the upstream cause.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrInvalidResponse is returned when the LLM response is empty or malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when a client configuration is invalid.
	ErrInvalidConfig = errors.New("invalid LLM client configuration")

	// ErrEmptyPrompt is returned when Generate is called with an empty prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
