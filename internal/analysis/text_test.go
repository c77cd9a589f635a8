package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "plain text",
			html: "one two three",
			want: 3,
		},
		{
			name: "tags are not words",
			html: "<p>one <strong>two</strong> three</p>",
			want: 3,
		},
		{
			name: "adjacent tags separate words",
			html: "<li>alpha</li><li>beta</li>",
			want: 2,
		},
		{
			name: "empty",
			html: "",
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, CountWords(tc.html))
		})
	}
}

func TestExtractTags(t *testing.T) {
	t.Parallel()

	html := `<P>intro</P><ul><li>one</li><li>two</li></ul><span class="metric">x</span>`
	assert.Equal(t, []string{"li", "p", "span", "ul"}, ExtractTags(html))
}

func TestAnalyzeTextVarianceScenario(t *testing.T) {
	t.Parallel()

	// 200 characters at ~5.5 chars/word gives a target of 36; a 40-word
	// generation lands at +11.1% variance, outside the 10% tolerance.
	words := make([]string, 40)
	for i := range words {
		words[i] = "word"
	}
	html := "<p>" + strings.Join(words, " ") + "</p>"

	meta := AnalyzeText(html, 36, 0.10)
	assert.Equal(t, 40, meta.WordCount)
	assert.Equal(t, 36, meta.TargetWordCount)
	assert.InDelta(t, 11.1, meta.VariancePercent, 0.001)
	assert.False(t, meta.WithinTolerance)
	assert.Equal(t, []string{"p"}, meta.HTMLTagsUsed)
}

func TestAnalyzeTextToleranceBoundaryInclusive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		wordCount int
		target    int
		tolerance float64
		within    bool
	}{
		{name: "exact target", wordCount: 40, target: 40, tolerance: 0.10, within: true},
		{name: "upper boundary", wordCount: 44, target: 40, tolerance: 0.10, within: true},
		{name: "lower boundary", wordCount: 36, target: 40, tolerance: 0.10, within: true},
		{name: "just above", wordCount: 45, target: 40, tolerance: 0.10, within: false},
		{name: "just below", wordCount: 35, target: 40, tolerance: 0.10, within: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			words := strings.Repeat("w ", tc.wordCount)
			meta := AnalyzeText(words, tc.target, tc.tolerance)
			assert.Equal(t, tc.wordCount, meta.WordCount)
			assert.Equal(t, tc.within, meta.WithinTolerance)
		})
	}
}

func TestAnalyzeTextZeroTarget(t *testing.T) {
	t.Parallel()

	meta := AnalyzeText("<p>some words here</p>", 0, 0.10)
	assert.Equal(t, 3, meta.WordCount)
	assert.Zero(t, meta.VariancePercent)
	assert.False(t, meta.WithinTolerance)
}

func TestCleanOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "html code fence",
			in:   "```html\n<p>content</p>\n```",
			want: "<p>content</p>",
		},
		{
			name: "bare code fence",
			in:   "```\n<table></table>\n```",
			want: "<table></table>",
		},
		{
			name: "no fences",
			in:   "  <p>content</p>  ",
			want: "<p>content</p>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, CleanOutput(tc.in))
		})
	}
}
