package utils

// Truncate caps s at maxLen runes, appending an ellipsis marker when it cut
// anything. Rune-based so multi-byte content never gets split mid-character.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
