package api

import (
	"net/http"

	"github.com/phrazzld/slidegen-api/internal/api/shared"
)

// ServiceVersion is reported by the health and info endpoints.
const ServiceVersion = "1.0.0"

// InfoHandler serves the health check and service info endpoints.
type InfoHandler struct {
	llmProvider string
	llmModel    string
}

// NewInfoHandler creates an InfoHandler reporting the configured provider.
func NewInfoHandler(llmProvider, llmModel string) *InfoHandler {
	return &InfoHandler{
		llmProvider: llmProvider,
		llmModel:    llmModel,
	}
}

// Health handles GET /health requests.
func (h *InfoHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Version:     ServiceVersion,
		Service:     "slidegen-api",
		LLMProvider: h.llmProvider,
		LLMModel:    h.llmModel,
	})
}

// Root handles GET / requests with a service description.
func (h *InfoHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ServiceInfoResponse{
		Service:     "Slide Content Generation Service",
		Version:     ServiceVersion,
		Description: "LLM-powered content generation for presentations",
		Endpoints: map[string]string{
			"health":      "/health",
			"text":        "/generate/text",
			"table":       "/generate/table",
			"batch_text":  "/generate/batch/text",
			"batch_table": "/generate/batch/table",
			"session":     "/session/{presentation_id}",
		},
	})
}
