package domain

import (
	"fmt"
	"strings"
	"time"
)

// ContentKind identifies what sort of content a slide summary describes.
type ContentKind string

// Possible content kinds for a slide summary.
const (
	ContentKindText  ContentKind = "text"
	ContentKindTable ContentKind = "table"
)

// NoContextMarker is the context text reported for a presentation with no
// prior slide history.
const NoContextMarker = "This is the first slide in the presentation."

// SlideSummary is an immutable snapshot of one prior generation. It is
// created exactly once when a generation succeeds and is removed only by
// FIFO eviction or session expiry.
type SlideSummary struct {
	SlideID     string      `json:"slide_id"`
	SlideNumber int         `json:"slide_number"`
	SlideTitle  string      `json:"slide_title,omitempty"`
	SummaryText string      `json:"summary_text"`
	Kind        ContentKind `json:"kind"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// Validate checks that the summary has the fields the session store relies on.
func (s SlideSummary) Validate() error {
	if s.SlideID == "" {
		return ErrEmptySlideID
	}
	if s.Kind != ContentKindText && s.Kind != ContentKindTable {
		return fmt.Errorf("%w: %q", ErrInvalidContentKind, s.Kind)
	}
	return nil
}

// Session holds the rolling context for one presentation. The slide history
// is bounded: AddSlide evicts the oldest entry once the configured maximum
// is exceeded. A session with an empty history is valid and simply reports
// zero slides in context.
type Session struct {
	PresentationID string `json:"presentation_id"`

	// Presentation metadata captured at creation time.
	Theme     string `json:"theme,omitempty"`
	Audience  string `json:"audience,omitempty"`
	Narrative string `json:"narrative,omitempty"`

	SlideHistory []SlideSummary `json:"slide_history"`

	CreatedAt            time.Time `json:"created_at"`
	LastUpdated          time.Time `json:"last_updated"`
	TotalSlidesGenerated int       `json:"total_slides_generated"`
}

// NewSession creates an empty session for the given presentation.
// Returns an error if the presentation ID is empty.
func NewSession(presentationID string) (*Session, error) {
	if presentationID == "" {
		return nil, ErrEmptyPresentationID
	}
	now := time.Now().UTC()
	return &Session{
		PresentationID: presentationID,
		CreatedAt:      now,
		LastUpdated:    now,
	}, nil
}

// AddSlide appends a summary to the history, evicting the oldest entries so
// that at most maxHistory remain, and refreshes LastUpdated.
func (s *Session) AddSlide(summary SlideSummary, maxHistory int) {
	s.SlideHistory = append(s.SlideHistory, summary)
	s.TotalSlidesGenerated++
	s.LastUpdated = time.Now().UTC()

	if maxHistory > 0 && len(s.SlideHistory) > maxHistory {
		s.SlideHistory = s.SlideHistory[len(s.SlideHistory)-maxHistory:]
	}
}

// ContextSummary renders the session's recent history into a compact text
// block suitable for injection into an LLM prompt. At most maxSlides of the
// most recent entries are included. An empty history yields NoContextMarker.
func (s *Session) ContextSummary(maxSlides int) string {
	if len(s.SlideHistory) == 0 {
		return NoContextMarker
	}

	var b strings.Builder
	if s.Theme != "" {
		fmt.Fprintf(&b, "Presentation theme: %s\n", s.Theme)
	}
	if s.Audience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", s.Audience)
	}
	b.WriteString("Previous slides covered:\n")

	recent := s.SlideHistory
	if maxSlides > 0 && len(recent) > maxSlides {
		recent = recent[len(recent)-maxSlides:]
	}
	for _, slide := range recent {
		if slide.SlideTitle != "" {
			fmt.Fprintf(&b, "  - Slide %d (%s): %s\n", slide.SlideNumber, slide.SlideTitle, slide.SummaryText)
		} else {
			fmt.Fprintf(&b, "  - Slide %d (%s): %s\n", slide.SlideNumber, slide.Kind, slide.SummaryText)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
