// Package service orchestrates content generation: it threads session
// context through prompt assembly, drives the LLM client under a timeout,
// validates the output, and records a condensed summary back into the
// presentation's rolling history.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/slidegen-api/internal/analysis"
	"github.com/phrazzld/slidegen-api/internal/domain"
	"github.com/phrazzld/slidegen-api/internal/generation"
	"github.com/phrazzld/slidegen-api/internal/prompt"
	"github.com/phrazzld/slidegen-api/internal/session"
)

// TextRequest carries the parameters for one text slide generation.
type TextRequest struct {
	PresentationID string
	SlideID        string
	SlideNumber    int
	Topics         []string
	Narrative      string

	Theme      string
	Audience   string
	SlideTitle string

	// Constraints. A positive WordCount wins over MaxCharacters; a positive
	// Tolerance overrides the service default.
	MaxCharacters int
	WordCount     int
	Tolerance     float64
}

// TableRequest carries the parameters for one table slide generation.
type TableRequest struct {
	PresentationID string
	SlideID        string
	SlideNumber    int
	Description    string
	Data           any

	Theme      string
	Audience   string
	SlideTitle string

	MaxRows    int
	MaxColumns int
}

// GenerationStats records how a piece of content was produced.
type GenerationStats struct {
	GenerationTimeMS int64  `json:"generation_time_ms"`
	Model            string `json:"model_used"`
	Provider         string `json:"provider"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
}

// TextResult is the outcome of a successful text generation.
type TextResult struct {
	Content  string
	Analysis analysis.TextMetadata
	Stats    GenerationStats
}

// TableResult is the outcome of a successful table generation.
type TableResult struct {
	HTML     string
	Analysis analysis.TableMetadata
	Stats    GenerationStats
}

// ContentService coordinates the session manager, prompt assembler and LLM
// client for single and batch generations.
type ContentService struct {
	sessions  *session.Manager
	assembler *prompt.Assembler
	client    generation.Client
	timeout   time.Duration
	logger    *slog.Logger
}

// NewContentService creates the orchestrator. The timeout bounds each LLM
// call (default 30s when non-positive).
func NewContentService(
	sessions *session.Manager,
	assembler *prompt.Assembler,
	client generation.Client,
	timeout time.Duration,
	logger *slog.Logger,
) (*ContentService, error) {
	if sessions == nil {
		return nil, errors.New("session manager cannot be nil")
	}
	if assembler == nil {
		return nil, errors.New("prompt assembler cannot be nil")
	}
	if client == nil {
		return nil, errors.New("generation client cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ContentService{
		sessions:  sessions,
		assembler: assembler,
		client:    client,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// GenerateText produces an HTML text fragment for one slide. The session's
// history is only updated after a successful generation; a provider failure
// leaves the presentation context untouched.
func (s *ContentService) GenerateText(ctx context.Context, req TextRequest) (*TextResult, error) {
	sess, err := s.sessions.GetOrCreate(ctx, req.PresentationID, req.Theme, req.Audience, req.Narrative)
	if err != nil {
		return nil, err
	}
	contextText := sess.ContextSummary(s.sessions.MaxHistory())

	window := s.assembler.Window(req.WordCount, req.MaxCharacters, req.Tolerance)
	promptText, err := s.assembler.BuildTextPrompt(prompt.TextPromptInput{
		Window:      window,
		ContextText: contextText,
		Theme:       req.Theme,
		Audience:    req.Audience,
		SlideTitle:  req.SlideTitle,
		Narrative:   req.Narrative,
		Topics:      req.Topics,
	})
	if err != nil {
		return nil, err
	}

	resp, elapsed, err := s.generate(ctx, promptText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	content := analysis.CleanOutput(resp.Content)
	meta := analysis.AnalyzeText(content, window.Target, s.assembler.Tolerance(req.Tolerance))

	s.recordSlide(ctx, req.PresentationID, domain.SlideSummary{
		SlideID:     req.SlideID,
		SlideNumber: req.SlideNumber,
		SlideTitle:  req.SlideTitle,
		SummaryText: textSummary(req.Topics, meta.WordCount),
		Kind:        domain.ContentKindText,
		GeneratedAt: time.Now().UTC(),
	})

	s.logger.InfoContext(ctx, "generated text content",
		"presentation_id", req.PresentationID,
		"slide_id", req.SlideID,
		"word_count", meta.WordCount,
		"target_word_count", meta.TargetWordCount,
		"within_tolerance", meta.WithinTolerance,
		"generation_time_ms", elapsed.Milliseconds())

	return &TextResult{
		Content:  content,
		Analysis: meta,
		Stats:    stats(resp, elapsed),
	}, nil
}

// GenerateTable produces an HTML table for one slide.
func (s *ContentService) GenerateTable(ctx context.Context, req TableRequest) (*TableResult, error) {
	sess, err := s.sessions.GetOrCreate(ctx, req.PresentationID, req.Theme, req.Audience, "")
	if err != nil {
		return nil, err
	}
	contextText := sess.ContextSummary(s.sessions.MaxHistory())

	promptText, err := s.assembler.BuildTablePrompt(prompt.TablePromptInput{
		Description: req.Description,
		Data:        req.Data,
		MaxRows:     req.MaxRows,
		MaxColumns:  req.MaxColumns,
		ContextText: contextText,
		Theme:       req.Theme,
		Audience:    req.Audience,
		SlideTitle:  req.SlideTitle,
	})
	if err != nil {
		return nil, err
	}

	resp, elapsed, err := s.generate(ctx, promptText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	html := analysis.CleanOutput(resp.Content)
	meta := analysis.AnalyzeTable(html)

	s.recordSlide(ctx, req.PresentationID, domain.SlideSummary{
		SlideID:     req.SlideID,
		SlideNumber: req.SlideNumber,
		SlideTitle:  req.SlideTitle,
		SummaryText: fmt.Sprintf("Table: %s (%dx%d)", req.Description, meta.Rows, meta.Columns),
		Kind:        domain.ContentKindTable,
		GeneratedAt: time.Now().UTC(),
	})

	s.logger.InfoContext(ctx, "generated table content",
		"presentation_id", req.PresentationID,
		"slide_id", req.SlideID,
		"rows", meta.Rows,
		"columns", meta.Columns,
		"generation_time_ms", elapsed.Milliseconds())

	return &TableResult{
		HTML:     html,
		Analysis: meta,
		Stats:    stats(resp, elapsed),
	}, nil
}

// generate runs one timed LLM call under the configured timeout.
func (s *ContentService) generate(ctx context.Context, promptText string) (*generation.Response, time.Duration, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.Generate(callCtx, promptText)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, err
	}
	return resp, elapsed, nil
}

// recordSlide appends the summary to the session history. A store failure
// after a successful generation is logged but does not fail the request:
// the caller still gets their content, at the cost of a context gap.
func (s *ContentService) recordSlide(ctx context.Context, presentationID string, summary domain.SlideSummary) {
	if err := s.sessions.Append(ctx, presentationID, summary); err != nil {
		s.logger.WarnContext(ctx, "failed to record slide in session history",
			"presentation_id", presentationID,
			"slide_id", summary.SlideID,
			"error", err)
	}
}

func textSummary(topics []string, wordCount int) string {
	mainTheme := "content"
	if len(topics) > 0 {
		mainTheme = topics[0]
	}
	return fmt.Sprintf("%s - %d words covering %d topics", mainTheme, wordCount, len(topics))
}

func stats(resp *generation.Response, elapsed time.Duration) GenerationStats {
	return GenerationStats{
		GenerationTimeMS: elapsed.Milliseconds(),
		Model:            resp.Model,
		Provider:         resp.Provider,
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		TotalTokens:      resp.TotalTokens,
	}
}
