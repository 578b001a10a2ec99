package assistant

import "strings"

// DetectUrgency flags a response that carries a warning glyph or an
// urgency keyword. Plain substring scan, no model involved.
func DetectUrgency(text string) bool {
	if strings.Contains(text, "⚠") {
		return true
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "urgent") || strings.Contains(lower, "alerte")
}
