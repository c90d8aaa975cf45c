package notify

import "unicode/utf8"

const truncationMarker = "..."

// Truncate caps text at max bytes for transports with hard message limits.
// The cut lands on a rune boundary so a multi-byte character is never split,
// and the marker signals that the tail was dropped.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= len(truncationMarker) {
		return truncationMarker[:max]
	}
	cut := max - len(truncationMarker)
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + truncationMarker
}
