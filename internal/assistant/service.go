package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/mediassist/clinical-service/internal/document"
	"github.com/mediassist/clinical-service/internal/genai"
	"github.com/mediassist/clinical-service/internal/patient"
	"github.com/mediassist/clinical-service/internal/study"
)

// Temperatures are fixed per operation. Analysis runs maximally
// deterministic; drafting operations get slightly more freedom.
const (
	tempQuery      = 0.1
	tempAnalysis   = 0.0
	tempDrafting   = 0.2
	tempTranscript = 0.1
)

// RunnerInterface is the runner slice the façade depends on.
type RunnerInterface interface {
	Generate(ctx context.Context, parts []genai.Part, systemInstruction string, temperature float64) (string, error)
}

// DefaultSummaryQuery is the synthesis prompt substituted when a summary
// request carries no query of its own. Consultation logs record it as the
// effective query.
const DefaultSummaryQuery = "Fais la synthèse structurée du dossier ci-dessus."

// Service binds the prompt assembler and the fallback runner to the
// intent-named clinical operations.
type Service struct {
	runner RunnerInterface
}

func NewService(runner RunnerInterface) *Service {
	return &Service{runner: runner}
}

// TargetedQuery answers a free-text clinical question against the
// supplied documents and reference sources.
func (s *Service) TargetedQuery(ctx context.Context, query string, docs []document.HealthDocument, allergies []string, sources []study.MedicalStudy) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrMissingQuery
	}
	parts := BuildParts(query, docs, sources)
	instruction := BuildSystemInstruction(allergies, false)
	return s.runner.Generate(ctx, parts, instruction, tempQuery)
}

// Summary produces a cross-document structured synthesis.
func (s *Service) Summary(ctx context.Context, query string, docs []document.HealthDocument, allergies []string, sources []study.MedicalStudy) (string, error) {
	if strings.TrimSpace(query) == "" {
		query = DefaultSummaryQuery
	}
	parts := BuildParts(query, docs, sources)
	instruction := BuildSystemInstruction(allergies, true)
	return s.runner.Generate(ctx, parts, instruction, tempQuery)
}

// GuidelineSearch asks for current official recommendations on a topic.
// No grounding is wired; the returned source list is always empty.
func (s *Service) GuidelineSearch(ctx context.Context, topic string) (string, []string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", nil, ErrMissingQuery
	}
	parts := []genai.Part{genai.TextPart(fmt.Sprintf(
		"Quelles sont les recommandations officielles en vigueur concernant : %s ? "+
			"Cite les organismes émetteurs et l'année lorsque tu les connais.", topic))}
	text, err := s.runner.Generate(ctx, parts, "", tempQuery)
	if err != nil {
		return "", nil, err
	}
	return text, []string{}, nil
}

// AnalyzeDocument extracts the most critical findings of one document.
func (s *Service) AnalyzeDocument(ctx context.Context, doc document.HealthDocument) (string, error) {
	parts := []genai.Part{PartForDocument(doc)}
	return s.runner.Generate(ctx, parts, analyzeInstruction, tempAnalysis)
}

// CleanTranscript removes disfluencies while preserving every clinical
// fact.
func (s *Service) CleanTranscript(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrMissingTranscript
	}
	parts := []genai.Part{genai.TextPart(transcript)}
	return s.runner.Generate(ctx, parts, transcriptInstruction, tempTranscript)
}

// GenerateSOAPNote drafts a four-section consultation note from a
// transcript.
func (s *Service) GenerateSOAPNote(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrMissingTranscript
	}
	parts := []genai.Part{genai.TextPart(transcript)}
	return s.runner.Generate(ctx, parts, soapInstruction, tempDrafting)
}

// ReviewReport critically re-reads a stored consultation log.
func (s *Service) ReviewReport(ctx context.Context, entry patient.AdviceLog) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Avis rendu le %s\n", entry.Timestamp.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Question posée : %s\n", entry.Query)
	fmt.Fprintf(&b, "Réponse donnée : %s\n", entry.Response)
	if len(entry.Sources) > 0 {
		fmt.Fprintf(&b, "Sources citées : %s\n", strings.Join(entry.Sources, ", "))
	}
	parts := []genai.Part{genai.TextPart(b.String())}
	return s.runner.Generate(ctx, parts, reviewInstruction, tempDrafting)
}
