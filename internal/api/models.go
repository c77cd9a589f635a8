package api

import (
	"time"

	"github.com/phrazzld/slidegen-api/internal/analysis"
	"github.com/phrazzld/slidegen-api/internal/service"
)

// RequestContext carries presentation framing shared by both request kinds.
type RequestContext struct {
	Theme      string `json:"theme"`
	Audience   string `json:"audience"`
	SlideTitle string `json:"slide_title"`
}

// TextConstraints bounds the length of generated text. WordCount wins over
// MaxCharacters when both are set; Tolerance overrides the service default.
type TextConstraints struct {
	MaxCharacters int     `json:"max_characters" validate:"omitempty,min=1"`
	WordCount     int     `json:"word_count" validate:"omitempty,min=1"`
	Tolerance     float64 `json:"tolerance" validate:"omitempty,gt=0,lt=1"`
}

// TableConstraints bounds the shape of a generated table.
type TableConstraints struct {
	MaxRows    int `json:"max_rows" validate:"omitempty,min=1"`
	MaxColumns int `json:"max_columns" validate:"omitempty,min=1"`
}

// TextGenerationRequest is the body of POST /generate/text.
type TextGenerationRequest struct {
	PresentationID string           `json:"presentation_id" validate:"required"`
	SlideID        string           `json:"slide_id"        validate:"required"`
	SlideNumber    int              `json:"slide_number"    validate:"required,min=1"`
	Topics         []string         `json:"topics"          validate:"required,min=1,dive,required"`
	Narrative      string           `json:"narrative"`
	Context        RequestContext   `json:"context"`
	Constraints    TextConstraints  `json:"constraints"`
}

// TableGenerationRequest is the body of POST /generate/table.
type TableGenerationRequest struct {
	PresentationID string           `json:"presentation_id" validate:"required"`
	SlideID        string           `json:"slide_id"        validate:"required"`
	SlideNumber    int              `json:"slide_number"    validate:"required,min=1"`
	Description    string           `json:"description"     validate:"required"`
	Data           map[string]any   `json:"data"`
	Context        RequestContext   `json:"context"`
	Constraints    TableConstraints `json:"constraints"`
}

// BatchTextGenerationRequest is the body of POST /generate/batch/text.
type BatchTextGenerationRequest struct {
	Requests []TextGenerationRequest `json:"requests" validate:"required,min=1,dive"`
	Parallel bool                    `json:"parallel"`
}

// BatchTableGenerationRequest is the body of POST /generate/batch/table.
type BatchTableGenerationRequest struct {
	Requests []TableGenerationRequest `json:"requests" validate:"required,min=1,dive"`
	Parallel bool                     `json:"parallel"`
}

// TextMetadata flattens content analysis and generation stats into the
// metadata object of a text generation response.
type TextMetadata struct {
	analysis.TextMetadata
	service.GenerationStats
}

// TableMetadata flattens table analysis and generation stats into the
// metadata object of a table generation response.
type TableMetadata struct {
	analysis.TableMetadata
	GenerationTimeMS int64  `json:"generation_time_ms"`
	ModelUsed        string `json:"model_used"`
	Provider         string `json:"provider"`
}

// GeneratedTextResponse is the body of a successful text generation.
type GeneratedTextResponse struct {
	Content  string       `json:"content"`
	Metadata TextMetadata `json:"metadata"`
}

// GeneratedTableResponse is the body of a successful table generation.
type GeneratedTableResponse struct {
	HTML     string        `json:"html"`
	Metadata TableMetadata `json:"metadata"`
}

// BatchTextItem reports one batch entry's outcome, matched to the request
// by index. Exactly one of Result and Error is set.
type BatchTextItem struct {
	Index   int                    `json:"index"`
	SlideID string                 `json:"slide_id"`
	Success bool                   `json:"success"`
	Result  *GeneratedTextResponse `json:"result,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// BatchTableItem is the table counterpart of BatchTextItem.
type BatchTableItem struct {
	Index   int                     `json:"index"`
	SlideID string                  `json:"slide_id"`
	Success bool                    `json:"success"`
	Result  *GeneratedTableResponse `json:"result,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// BatchMetadata summarizes a batch run.
type BatchMetadata struct {
	TotalRequested int `json:"total_requested"`
	Successful     int `json:"successful"`
	Failed         int `json:"failed"`
}

// BatchTextResponse is the body of POST /generate/batch/text. Batches always
// return 200; failures are embedded per item.
type BatchTextResponse struct {
	Results  []BatchTextItem `json:"results"`
	Metadata BatchMetadata   `json:"metadata"`
}

// BatchTableResponse is the body of POST /generate/batch/table.
type BatchTableResponse struct {
	Results  []BatchTableItem `json:"results"`
	Metadata BatchMetadata    `json:"metadata"`
}

// SessionInfoResponse is the body of GET /session/{presentation_id}.
type SessionInfoResponse struct {
	PresentationID      string    `json:"presentation_id"`
	SlidesInContext     int       `json:"slides_in_context"`
	ContextSizeBytes    int       `json:"context_size_bytes"`
	LastUpdated         time.Time `json:"last_updated"`
	TTLRemainingSeconds int       `json:"ttl_remaining_seconds"`
}

// SessionDeleteResponse is the body of DELETE /session/{presentation_id}.
type SessionDeleteResponse struct {
	PresentationID string `json:"presentation_id"`
	Deleted        bool   `json:"deleted"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Service     string `json:"service"`
	LLMProvider string `json:"llm_provider"`
	LLMModel    string `json:"llm_model"`
}

// ServiceInfoResponse is the body of GET /.
type ServiceInfoResponse struct {
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}
