package assistant

import (
	"fmt"
	"strings"

	"github.com/mediassist/clinical-service/internal/document"
	"github.com/mediassist/clinical-service/internal/genai"
	"github.com/mediassist/clinical-service/internal/study"
)

// PartForDocument is the single classification point for attachment
// payloads: image MIME types become inline binary parts, everything else
// becomes a labeled text part.
func PartForDocument(doc document.HealthDocument) genai.Part {
	if doc.IsImage() {
		return genai.BinaryPart(stripDataURLPrefix(doc.Content), doc.MIMEType)
	}
	return genai.TextPart(fmt.Sprintf("Document « %s » :\n%s", doc.Name, doc.Content))
}

// stripDataURLPrefix drops a "data:<mime>;base64," prefix if present so
// only the raw base64 payload is sent.
func stripDataURLPrefix(content string) string {
	if strings.HasPrefix(content, "data:") {
		if idx := strings.Index(content, "base64,"); idx >= 0 {
			return content[idx+len("base64,"):]
		}
	}
	return content
}

// BuildParts assembles the model input: documents in input order, then a
// single part listing the reference sources if any, then the labeled
// query. Repeated calls with identical inputs produce identical parts.
func BuildParts(query string, docs []document.HealthDocument, sources []study.MedicalStudy) []genai.Part {
	parts := make([]genai.Part, 0, len(docs)+2)
	for _, doc := range docs {
		parts = append(parts, PartForDocument(doc))
	}

	if len(sources) > 0 {
		var b strings.Builder
		b.WriteString("Sources de référence :\n")
		for _, src := range sources {
			fmt.Fprintf(&b, "[%s] %s\n%s\n", src.ID, src.Title, src.Body)
		}
		parts = append(parts, genai.TextPart(b.String()))
	}

	parts = append(parts, genai.TextPart("Demande du praticien : "+query))
	return parts
}

// BuildSystemInstruction combines the mode framing with the allergy
// directive. Every allergen appears verbatim in the produced instruction.
func BuildSystemInstruction(allergies []string, summaryMode bool) string {
	base := targetedInstructionBase
	if summaryMode {
		base = summaryInstructionBase
	}
	if len(allergies) > 0 {
		return allergyDirective(allergies) + " " + base
	}
	return noAllergyStatement + " " + base
}
