package security

import (
	"html"
	"strings"
	"unicode"
)

// SanitizeString strips control characters and trims surrounding
// whitespace. Newlines and tabs inside the text are preserved.
func SanitizeString(s string) string {
	return strings.TrimSpace(removeControlCharacters(s))
}

// SanitizeHTML escapes HTML special characters so the value is safe to
// render in markup
func SanitizeHTML(s string) string {
	return html.EscapeString(s)
}

// NormalizeWhitespace collapses runs of whitespace into single spaces and
// trims the ends
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateString cuts a string to at most maxLength runes
func TruncateString(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength])
}

// removeControlCharacters drops control characters except newline and tab
func removeControlCharacters(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
