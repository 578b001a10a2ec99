package assistant

import (
	"context"

	"github.com/mediassist/clinical-service/internal/document"
	"github.com/mediassist/clinical-service/internal/patient"
	"github.com/mediassist/clinical-service/internal/study"
)

// ServiceInterface defines the contract for the clinical AI operations
type ServiceInterface interface {
	TargetedQuery(ctx context.Context, query string, docs []document.HealthDocument, allergies []string, sources []study.MedicalStudy) (string, error)
	Summary(ctx context.Context, query string, docs []document.HealthDocument, allergies []string, sources []study.MedicalStudy) (string, error)
	GuidelineSearch(ctx context.Context, topic string) (string, []string, error)
	AnalyzeDocument(ctx context.Context, doc document.HealthDocument) (string, error)
	CleanTranscript(ctx context.Context, transcript string) (string, error)
	GenerateSOAPNote(ctx context.Context, transcript string) (string, error)
	ReviewReport(ctx context.Context, entry patient.AdviceLog) (string, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
