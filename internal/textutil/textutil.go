// Package textutil normalizes scraped text into clean, printable form.
package textutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonPrintable   = regexp.MustCompile(`[^\x20-\x7E]`)
)

// Clean normalizes arbitrary scraped text: decodes HTML entities, collapses
// whitespace runs to a single space, strips non-printable and non-ASCII
// bytes, and trims. Empty input returns the empty string. Clean is
// idempotent: Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = html.UnescapeString(text)
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = nonPrintable.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
