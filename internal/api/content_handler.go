// Package api provides HTTP handlers for the content generation service.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/slidegen-api/internal/api/shared"
	"github.com/phrazzld/slidegen-api/internal/service"
)

// ContentGenerator is the service surface the content handlers depend on.
type ContentGenerator interface {
	GenerateText(ctx context.Context, req service.TextRequest) (*service.TextResult, error)
	GenerateTable(ctx context.Context, req service.TableRequest) (*service.TableResult, error)
	GenerateTextBatch(ctx context.Context, reqs []service.TextRequest, parallel bool) []service.TextBatchItem
	GenerateTableBatch(ctx context.Context, reqs []service.TableRequest, parallel bool) []service.TableBatchItem
}

// ContentHandler handles content generation HTTP requests.
type ContentHandler struct {
	generator ContentGenerator
	logger    *slog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(generator ContentGenerator, logger *slog.Logger) *ContentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ContentHandler")
	}
	return &ContentHandler{
		generator: generator,
		logger:    logger.With(slog.String("component", "content_handler")),
	}
}

// GenerateText handles POST /generate/text requests.
func (h *ContentHandler) GenerateText(w http.ResponseWriter, r *http.Request) {
	var req TextGenerationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	result, err := h.generator.GenerateText(r.Context(), toTextServiceRequest(req))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTextResponse(result))
}

// GenerateTable handles POST /generate/table requests.
func (h *ContentHandler) GenerateTable(w http.ResponseWriter, r *http.Request) {
	var req TableGenerationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	result, err := h.generator.GenerateTable(r.Context(), toTableServiceRequest(req))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTableResponse(result))
}

// GenerateBatchText handles POST /generate/batch/text requests. Batches
// always return 200: partial failures are embedded per item so results are
// never discarded.
func (h *ContentHandler) GenerateBatchText(w http.ResponseWriter, r *http.Request) {
	var req BatchTextGenerationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	h.logger.Info("batch text generation",
		"count", len(req.Requests),
		"parallel", req.Parallel)

	serviceReqs := make([]service.TextRequest, len(req.Requests))
	for i, item := range req.Requests {
		serviceReqs[i] = toTextServiceRequest(item)
	}

	items := h.generator.GenerateTextBatch(r.Context(), serviceReqs, req.Parallel)

	response := BatchTextResponse{
		Results:  make([]BatchTextItem, len(items)),
		Metadata: BatchMetadata{TotalRequested: len(items)},
	}
	for i, item := range items {
		entry := BatchTextItem{
			Index:   item.Index,
			SlideID: req.Requests[item.Index].SlideID,
		}
		if item.Err != nil {
			entry.Error = GetSafeErrorMessage(item.Err)
			response.Metadata.Failed++
		} else {
			entry.Success = true
			result := toTextResponse(item.Result)
			entry.Result = &result
			response.Metadata.Successful++
		}
		response.Results[i] = entry
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GenerateBatchTable handles POST /generate/batch/table requests.
func (h *ContentHandler) GenerateBatchTable(w http.ResponseWriter, r *http.Request) {
	var req BatchTableGenerationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	h.logger.Info("batch table generation",
		"count", len(req.Requests),
		"parallel", req.Parallel)

	serviceReqs := make([]service.TableRequest, len(req.Requests))
	for i, item := range req.Requests {
		serviceReqs[i] = toTableServiceRequest(item)
	}

	items := h.generator.GenerateTableBatch(r.Context(), serviceReqs, req.Parallel)

	response := BatchTableResponse{
		Results:  make([]BatchTableItem, len(items)),
		Metadata: BatchMetadata{TotalRequested: len(items)},
	}
	for i, item := range items {
		entry := BatchTableItem{
			Index:   item.Index,
			SlideID: req.Requests[item.Index].SlideID,
		}
		if item.Err != nil {
			entry.Error = GetSafeErrorMessage(item.Err)
			response.Metadata.Failed++
		} else {
			entry.Success = true
			result := toTableResponse(item.Result)
			entry.Result = &result
			response.Metadata.Successful++
		}
		response.Results[i] = entry
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

func toTextServiceRequest(req TextGenerationRequest) service.TextRequest {
	return service.TextRequest{
		PresentationID: req.PresentationID,
		SlideID:        req.SlideID,
		SlideNumber:    req.SlideNumber,
		Topics:         req.Topics,
		Narrative:      req.Narrative,
		Theme:          req.Context.Theme,
		Audience:       req.Context.Audience,
		SlideTitle:     req.Context.SlideTitle,
		MaxCharacters:  req.Constraints.MaxCharacters,
		WordCount:      req.Constraints.WordCount,
		Tolerance:      req.Constraints.Tolerance,
	}
}

func toTableServiceRequest(req TableGenerationRequest) service.TableRequest {
	var data any
	if req.Data != nil {
		data = req.Data
	}
	return service.TableRequest{
		PresentationID: req.PresentationID,
		SlideID:        req.SlideID,
		SlideNumber:    req.SlideNumber,
		Description:    req.Description,
		Data:           data,
		Theme:          req.Context.Theme,
		Audience:       req.Context.Audience,
		SlideTitle:     req.Context.SlideTitle,
		MaxRows:        req.Constraints.MaxRows,
		MaxColumns:     req.Constraints.MaxColumns,
	}
}

func toTextResponse(result *service.TextResult) GeneratedTextResponse {
	return GeneratedTextResponse{
		Content: result.Content,
		Metadata: TextMetadata{
			TextMetadata:    result.Analysis,
			GenerationStats: result.Stats,
		},
	}
}

func toTableResponse(result *service.TableResult) GeneratedTableResponse {
	return GeneratedTableResponse{
		HTML: result.HTML,
		Metadata: TableMetadata{
			TableMetadata:    result.Analysis,
			GenerationTimeMS: result.Stats.GenerationTimeMS,
			ModelUsed:        result.Stats.Model,
			Provider:         result.Stats.Provider,
		},
	}
}
