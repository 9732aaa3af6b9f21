package utils

import (
	"strings"
	"unicode"
)

// SanitizeString strips control characters and trims whitespace from
// user-supplied display text (session names, stream titles).
func SanitizeString(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// TruncateString truncates a string to max length with an ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// NormalizeChannel lowercases and trims a channel name so cache keys and
// lookups agree regardless of how the URL was typed.
func NormalizeChannel(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MaskSensitive masks secrets in log output beyond the first visibleChars.
func MaskSensitive(s string, visibleChars int) string {
	if len(s) <= visibleChars {
		return strings.Repeat("*", len(s))
	}
	return s[:visibleChars] + strings.Repeat("*", len(s)-visibleChars)
}

// IsEmpty checks if string is empty or only whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
