package study

import (
	"fmt"

	"github.com/mediassist/clinical-service/internal/store"
)

// Repository persists the practitioner-imported study pool. Like the
// reference library, custom studies are shared across practitioners.
type Repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// ListCustom returns the imported pool. Missing or corrupt data reads as an
// empty pool.
func (r *Repository) ListCustom() []MedicalStudy {
	var studies []MedicalStudy
	r.store.GetJSON(store.KeyCustomStudies, &studies)
	return studies
}

// Append adds one study to the imported pool.
func (r *Repository) Append(s MedicalStudy) error {
	studies := r.ListCustom()
	studies = append(studies, s)
	if err := r.store.PutJSON(store.KeyCustomStudies, studies); err != nil {
		return fmt.Errorf("failed to store custom study: %w", err)
	}
	return nil
}
