package document

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mediassist/clinical-service/internal/anonymize"
)

var (
	ErrMissingName       = errors.New("document name is required")
	ErrMissingContent    = errors.New("document content is required")
	ErrSummaryAlreadySet = errors.New("document summary has already been set")
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Upload validates and stores a reference document. Text content is passed
// through the anonymizer before it is persisted; binary payloads are stored
// as-is.
func (s *Service) Upload(req UploadRequest) (*HealthDocument, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.Content == "" {
		return nil, ErrMissingContent
	}
	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = "text/plain"
	}

	doc := HealthDocument{
		ID:         uuid.New().String(),
		Name:       req.Name,
		MIMEType:   mimeType,
		Content:    req.Content,
		UploadedAt: time.Now().UTC(),
		PageCount:  req.PageCount,
	}
	if !doc.IsImage() {
		doc.Content = anonymize.Text(req.Content)
		doc.Anonymized = true
	}

	if err := s.repo.Append(doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	return &doc, nil
}

// List returns the reference library.
func (s *Service) List() []HealthDocument {
	return s.repo.List()
}

// Get returns one document.
func (s *Service) Get(id string) (*HealthDocument, error) {
	return s.repo.Get(id)
}

// SetSummary records the AI-derived summary on a document. It can be set
// exactly once; a second successful analysis does not overwrite the first.
func (s *Service) SetSummary(id, summary string) (*HealthDocument, error) {
	doc, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if doc.Summary != "" {
		return nil, ErrSummaryAlreadySet
	}
	doc.Summary = summary
	if err := s.repo.Update(*doc); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return doc, nil
}
