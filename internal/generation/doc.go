// Package generation provides the interface and shared types for interacting
// with external LLM services. It abstracts the details of provider API
// integration (Gemini, OpenAI, Anthropic), allowing the application to
// generate slide content without coupling to a specific external service.
package generation
