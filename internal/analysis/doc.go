// Package analysis inspects raw LLM output and extracts structural and
// length metadata without altering the content. Parsing is regex-based and
// best-effort: malformed HTML never produces an error, only zero-value
// fields for whatever could not be determined.
package analysis
