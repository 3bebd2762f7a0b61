// Package util provides shared helpers for terminal display.
package util

// TruncateString shortens s to at most maxLen runes, appending "..." when
// anything was cut. Counting runes keeps multibyte text (spot names are
// usually Japanese) from being split mid-character.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
