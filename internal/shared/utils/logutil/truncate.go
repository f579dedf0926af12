package logutil

import "unicode/utf8"

// TruncateForLog shortens s to at most maxLen runes for logging and appends
// "..." when anything was cut. Submitted content is logged only as a preview.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
