package patient

import (
	"errors"

	"github.com/mediassist/clinical-service/internal/store"
)

// ErrMissingPractitioner is returned on writes without an owner id. Reads
// never fail: without an owner they return an empty collection.
var ErrMissingPractitioner = errors.New("practitioner id is required")

// Repository persists patient records in a single shared table. Every write
// tags the supplied records with the caller's practitioner id and only
// replaces that practitioner's slice of the table; every read filters the
// table down to one practitioner. The id always comes from the
// authenticated request, never from the stored session pointer, so a token
// issued before another login keeps seeing only its own records. Ownership
// is enforced here, not in the domain model.
type Repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// loadTable reads the full unscoped table. Missing or corrupt data reads as
// an empty table.
func (r *Repository) loadTable() []Patient {
	var table []Patient
	r.store.GetJSON(store.KeyPatients, &table)
	return table
}

// ListOwned returns the records owned by the given practitioner, in table
// order. An empty id yields an empty collection.
func (r *Repository) ListOwned(practitionerID string) []Patient {
	if practitionerID == "" {
		return nil
	}
	var owned []Patient
	for _, p := range r.loadTable() {
		if p.PractitionerID == practitionerID {
			owned = append(owned, p)
		}
	}
	return owned
}

// SaveOwned replaces the given practitioner's slice of the shared table
// with the supplied collection. The whole table is read, the practitioner's
// old records dropped, the new ones tagged and appended, and the merged
// table written back. Concurrent writers race at whole-table granularity;
// last write wins.
func (r *Repository) SaveOwned(practitionerID string, patients []Patient) error {
	if practitionerID == "" {
		return ErrMissingPractitioner
	}

	var merged []Patient
	for _, p := range r.loadTable() {
		if p.PractitionerID != practitionerID {
			merged = append(merged, p)
		}
	}
	for _, p := range patients {
		p.PractitionerID = practitionerID
		merged = append(merged, p)
	}
	return r.store.PutJSON(store.KeyPatients, merged)
}

// UnscopedTable returns every record regardless of owner. Used by export
// tooling and tests; request handlers never call it.
func (r *Repository) UnscopedTable() []Patient {
	return r.loadTable()
}
