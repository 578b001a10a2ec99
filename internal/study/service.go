package study

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMissingTitle         = errors.New("study title is required")
	ErrMissingBody          = errors.New("study body is required")
	ErrInvalidEvidenceLevel = errors.New("evidence level must be A, B or C")
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Import validates and stores a practitioner-supplied study in the custom
// pool.
func (s *Service) Import(req ImportRequest) (*MedicalStudy, error) {
	if req.Title == "" {
		return nil, ErrMissingTitle
	}
	if req.Body == "" {
		return nil, ErrMissingBody
	}
	level := req.EvidenceLevel
	if level == "" {
		level = EvidenceC
	}
	if !level.Valid() {
		return nil, ErrInvalidEvidenceLevel
	}

	study := MedicalStudy{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Specialty:     strings.ToLower(req.Specialty),
		PublishedAt:   req.PublishedAt,
		EvidenceLevel: level,
		Body:          req.Body,
		Custom:        true,
	}
	if err := s.repo.Append(study); err != nil {
		return nil, err
	}
	return &study, nil
}

// Search merges the shipped and custom pools and filters them by free text
// (title and body, case-insensitive) and specialty.
func (s *Service) Search(filter SearchFilter) []MedicalStudy {
	merged := append(ShippedStudies(), s.repo.ListCustom()...)

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	specialty := strings.ToLower(strings.TrimSpace(filter.Specialty))

	var out []MedicalStudy
	for _, st := range merged {
		if specialty != "" && strings.ToLower(st.Specialty) != specialty {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(st.Title), query) &&
			!strings.Contains(strings.ToLower(st.Body), query) {
			continue
		}
		out = append(out, st)
	}
	return out
}

// GetByIDs resolves study ids against the merged pool, preserving input
// order and skipping unknown ids.
func (s *Service) GetByIDs(ids []string) []MedicalStudy {
	merged := append(ShippedStudies(), s.repo.ListCustom()...)
	byID := make(map[string]MedicalStudy, len(merged))
	for _, st := range merged {
		byID[st.ID] = st
	}

	var out []MedicalStudy
	for _, id := range ids {
		if st, ok := byID[id]; ok {
			out = append(out, st)
		}
	}
	return out
}
