package prompt

import (
	"embed"
	"fmt"
	"math"
	"strings"

	"github.com/cbroglie/mustache"
)

//go:embed templates/*.md
var templatesFS embed.FS

const (
	// charsPerWord is the heuristic ratio used to derive a word target from
	// a character limit (average English word plus trailing space).
	charsPerWord = 5.5

	// defaultMaxCharacters applies when a request carries no constraint at all.
	defaultMaxCharacters = 300

	// DefaultTolerance is the allowed fractional deviation from the target
	// word count.
	DefaultTolerance = 0.10
)

// WordWindow is the word-count contract communicated to the LLM.
type WordWindow struct {
	Target int
	Min    int
	Max    int
}

// TextPromptInput carries everything the text template needs.
type TextPromptInput struct {
	Window      WordWindow
	ContextText string
	Theme       string
	Audience    string
	SlideTitle  string
	Narrative   string
	Topics      []string
}

// TablePromptInput carries everything the table template needs.
type TablePromptInput struct {
	Description string
	Data        any
	MaxRows     int
	MaxColumns  int
	ContextText string
	Theme       string
	Audience    string
	SlideTitle  string
}

// Assembler renders generation prompts. It is a pure function of its
// inputs: no retries, no side effects. Templates are a fixed internal
// asset, so a parse failure is a construction-time error.
type Assembler struct {
	textTemplate  *mustache.Template
	tableTemplate *mustache.Template
	tolerance     float64
}

// NewAssembler parses the embedded templates and returns an assembler with
// the given default tolerance (DefaultTolerance when non-positive).
func NewAssembler(tolerance float64) (*Assembler, error) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	textTmpl, err := parseTemplate("templates/text_generation.md")
	if err != nil {
		return nil, err
	}
	tableTmpl, err := parseTemplate("templates/table_generation.md")
	if err != nil {
		return nil, err
	}

	return &Assembler{
		textTemplate:  textTmpl,
		tableTemplate: tableTmpl,
		tolerance:     tolerance,
	}, nil
}

func parseTemplate(name string) (*mustache.Template, error) {
	raw, err := templatesFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read prompt template %s: %w", name, err)
	}
	tmpl, err := mustache.ParseString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", name, err)
	}
	return tmpl, nil
}

// Tolerance resolves the effective tolerance for a request: a positive
// per-request override wins, otherwise the assembler default applies.
func (a *Assembler) Tolerance(override float64) float64 {
	if override > 0 {
		return override
	}
	return a.tolerance
}

// Window computes the target/min/max word counts for a request. An explicit
// word-count target wins; otherwise the target is derived from the character
// limit at the fixed chars-per-word heuristic.
func (a *Assembler) Window(targetWords, maxCharacters int, toleranceOverride float64) WordWindow {
	target := targetWords
	if target <= 0 {
		chars := maxCharacters
		if chars <= 0 {
			chars = defaultMaxCharacters
		}
		target = int(float64(chars) / charsPerWord)
	}
	if target < 1 {
		target = 1
	}

	tol := a.Tolerance(toleranceOverride)
	return WordWindow{
		Target: target,
		Min:    int(math.Floor(float64(target) * (1 - tol))),
		Max:    int(math.Ceil(float64(target) * (1 + tol))),
	}
}

// BuildTextPrompt renders the text generation template.
func (a *Assembler) BuildTextPrompt(in TextPromptInput) (string, error) {
	out, err := a.textTemplate.Render(map[string]any{
		"target_words":     in.Window.Target,
		"min_words":        in.Window.Min,
		"max_words":        in.Window.Max,
		"previous_context": in.ContextText,
		"theme":            orDefault(in.Theme, "professional"),
		"audience":         orDefault(in.Audience, "general"),
		"slide_title":      in.SlideTitle,
		"narrative":        in.Narrative,
		"topics":           FormatTopics(in.Topics),
	})
	if err != nil {
		return "", fmt.Errorf("render text prompt: %w", err)
	}
	return out, nil
}

// BuildTablePrompt renders the table generation template. The raw data
// mapping is serialized with a stable, deterministic key order.
func (a *Assembler) BuildTablePrompt(in TablePromptInput) (string, error) {
	maxRows := in.MaxRows
	if maxRows <= 0 {
		maxRows = 10
	}
	maxColumns := in.MaxColumns
	if maxColumns <= 0 {
		maxColumns = 5
	}

	out, err := a.tableTemplate.Render(map[string]any{
		"description":      in.Description,
		"data":             RenderData(in.Data),
		"max_rows":         maxRows,
		"max_columns":      maxColumns,
		"previous_context": in.ContextText,
		"theme":            orDefault(in.Theme, "professional"),
		"audience":         orDefault(in.Audience, "general"),
		"slide_title":      in.SlideTitle,
	})
	if err != nil {
		return "", fmt.Errorf("render table prompt: %w", err)
	}
	return out, nil
}

// FormatTopics renders topics as a readable bullet list, preserving order.
func FormatTopics(topics []string) string {
	lines := make([]string, 0, len(topics))
	for _, topic := range topics {
		lines = append(lines, "- "+topic)
	}
	return strings.Join(lines, "\n")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
