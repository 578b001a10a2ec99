package anonymize

import (
	"regexp"
	"strings"
)

// Patterns for personally identifying strings in clinical free text. The
// name pattern only catches capitalized pairs preceded by a civility title,
// which keeps clinical vocabulary (e.g. "Maladie De Crohn") intact.
var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[ .\-]?)?\(?\d{2,3}\)?([ .\-]?\d{2,4}){2,4}`)
	identityPattern = regexp.MustCompile(`\b[12]\s?\d{2}\s?\d{2}\s?\d{2}\s?\d{3}\s?\d{3}(\s?\d{2})?\b`)
	titledName      = regexp.MustCompile(`\b(M\.|Mme|Mlle|Dr|Pr|Monsieur|Madame)\s+[A-ZÀ-Ý][a-zà-ÿ\-]+(\s+[A-ZÀ-Ý][a-zà-ÿ\-]+)?`)
)

// Text masks emails, phone numbers, national identity numbers and titled
// names. The output is safe to attach to a model request.
func Text(s string) string {
	if s == "" {
		return s
	}
	out := emailPattern.ReplaceAllString(s, "[EMAIL]")
	out = identityPattern.ReplaceAllString(out, "[NUMERO-IDENTITE]")
	out = titledName.ReplaceAllStringFunc(out, func(m string) string {
		title := strings.SplitN(m, " ", 2)[0]
		return title + " [NOM]"
	})
	out = phonePattern.ReplaceAllStringFunc(out, func(m string) string {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits < 8 {
			return m
		}
		return "[TELEPHONE]"
	})
	return out
}
