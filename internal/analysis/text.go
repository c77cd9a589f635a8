package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	// stripTagPattern removes <...> sequences; deliberately not a full HTML
	// parser, per the word-count contract.
	stripTagPattern = regexp.MustCompile(`<[^>]+>`)

	// tagNamePattern captures tag names from both opening and closing tags.
	tagNamePattern = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)`)

	codeFencePattern = regexp.MustCompile("^```[a-zA-Z]*\n?")
)

// TextMetadata describes generated text content relative to its word-count
// target. Out-of-tolerance output is reported here, never rejected.
type TextMetadata struct {
	WordCount       int      `json:"word_count"`
	TargetWordCount int      `json:"target_word_count"`
	VariancePercent float64  `json:"variance_percent"`
	WithinTolerance bool     `json:"within_tolerance"`
	HTMLTagsUsed    []string `json:"html_tags_used"`
}

// AnalyzeText measures the given HTML fragment against the target word
// count. Tolerance is the allowed fractional deviation; the boundary is
// inclusive on both ends.
func AnalyzeText(html string, targetWords int, tolerance float64) TextMetadata {
	wordCount := CountWords(html)

	meta := TextMetadata{
		WordCount:       wordCount,
		TargetWordCount: targetWords,
		HTMLTagsUsed:    ExtractTags(html),
	}

	if targetWords > 0 {
		variance := float64(wordCount-targetWords) / float64(targetWords) * 100
		meta.VariancePercent = math.Round(variance*10) / 10
		meta.WithinTolerance = math.Abs(float64(wordCount-targetWords)) <= float64(targetWords)*tolerance
	}

	return meta
}

// CountWords counts whitespace-separated words after stripping HTML tags.
func CountWords(html string) int {
	text := stripTagPattern.ReplaceAllString(html, " ")
	return len(strings.Fields(text))
}

// ExtractTags returns the distinct tag names used in the fragment, sorted
// and lowercased. Opening and closing forms count once per name.
func ExtractTags(html string) []string {
	seen := make(map[string]bool)
	for _, match := range tagNamePattern.FindAllStringSubmatch(html, -1) {
		seen[strings.ToLower(match[1])] = true
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// CleanOutput strips markdown code fences that LLMs wrap around HTML output.
func CleanOutput(content string) string {
	content = strings.TrimSpace(content)
	content = codeFencePattern.ReplaceAllString(content, "")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
