package audit

import (
	"github.com/mediassist/clinical-service/internal/store"
)

// MaxEntries caps the persisted trail. Prepending past the cap drops the
// oldest entries without error.
const MaxEntries = 100

type Repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// List returns the trail, newest first. A missing or corrupt trail reads
// as empty.
func (r *Repository) List() []Entry {
	var entries []Entry
	r.store.GetJSON(store.KeyAuditLog, &entries)
	return entries
}

// Prepend inserts the entry at the head of the trail and truncates to
// MaxEntries.
func (r *Repository) Prepend(entry Entry) error {
	entries := r.List()
	entries = append([]Entry{entry}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return r.store.PutJSON(store.KeyAuditLog, entries)
}

// Replace overwrites the whole trail. Used by the archiving job after a
// trim.
func (r *Repository) Replace(entries []Entry) error {
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return r.store.PutJSON(store.KeyAuditLog, entries)
}
