package models

import "unicode/utf8"

// Result is the extracted content of one fetched page. Status mirrors
// the upstream HTTP status; 599 marks a synthetic network failure.
type Result struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Byline   string `json:"byline"`
	Text     string `json:"text"`
	Status   int    `json:"status"`
	RenderMS int    `json:"render_ms"`
}

const truncationMarker = "\n\n[Content truncated...]"

// ClampText caps extracted text at max bytes, backing up to a rune
// boundary so the cut never leaves a partial UTF-8 sequence, and marks
// the cut. max <= 0 disables the clamp.
func ClampText(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + truncationMarker
}
