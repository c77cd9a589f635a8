// Package prompt assembles LLM prompts for slide content generation. It
// owns the word-count window arithmetic, renders the embedded mustache
// templates with request fields and accumulated session context, and
// serializes arbitrary nested table data deterministically.
package prompt
