package audit

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingAction   = errors.New("audit action is required")
	ErrInvalidSeverity = errors.New("invalid audit severity")
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Record appends a new entry at the head of the trail. Severity defaults
// to low.
func (s *Service) Record(actor string, req RecordRequest) (*Entry, error) {
	if req.Action == "" {
		return nil, ErrMissingAction
	}
	severity := req.Severity
	if severity == "" {
		severity = SeverityLow
	}
	if !severity.Valid() {
		return nil, ErrInvalidSeverity
	}

	entry := Entry{
		ID:         uuid.New().String(),
		Timestamp:  time.Now(),
		Action:     req.Action,
		Actor:      actor,
		ResourceID: req.ResourceID,
		Severity:   severity,
		Details:    req.Details,
	}
	if err := s.repo.Prepend(entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Trail returns the full trail, newest first.
func (s *Service) Trail() []Entry {
	return s.repo.List()
}

// ExportJSON serializes the full trail for download or archiving.
func (s *Service) ExportJSON() ([]byte, error) {
	entries := s.repo.List()
	if entries == nil {
		entries = []Entry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// Trim keeps only the newest keep entries and returns the dropped tail.
func (s *Service) Trim(keep int) ([]Entry, error) {
	if keep < 0 {
		keep = 0
	}
	entries := s.repo.List()
	if len(entries) <= keep {
		return nil, nil
	}
	dropped := entries[keep:]
	if err := s.repo.Replace(entries[:keep]); err != nil {
		return nil, err
	}
	return dropped, nil
}
