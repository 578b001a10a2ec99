package document

import (
	"errors"

	"github.com/mediassist/clinical-service/internal/store"
)

// ErrDocumentNotFound is returned when a document id matches nothing in
// the library.
var ErrDocumentNotFound = errors.New("document not found")

// Repository persists the global reference library. The collection is shared
// across practitioners: reference material carries no owner tag, unlike
// patient records.
type Repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// List returns every stored reference document. A missing or corrupt table
// reads as an empty library.
func (r *Repository) List() []HealthDocument {
	var docs []HealthDocument
	r.store.GetJSON(store.KeyGlobalDocuments, &docs)
	return docs
}

// Get returns a single document by id.
func (r *Repository) Get(id string) (*HealthDocument, error) {
	for _, d := range r.List() {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, ErrDocumentNotFound
}

// Save writes the full collection back.
func (r *Repository) Save(docs []HealthDocument) error {
	return r.store.PutJSON(store.KeyGlobalDocuments, docs)
}

// Append adds one document to the library.
func (r *Repository) Append(doc HealthDocument) error {
	docs := r.List()
	docs = append(docs, doc)
	return r.Save(docs)
}

// Update replaces the stored document with the same id.
func (r *Repository) Update(doc HealthDocument) error {
	docs := r.List()
	for i, d := range docs {
		if d.ID == doc.ID {
			docs[i] = doc
			return r.Save(docs)
		}
	}
	return ErrDocumentNotFound
}
