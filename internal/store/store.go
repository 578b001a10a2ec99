package store

import (
	"encoding/json"
	"log"
)

// Namespaced keys shared by all practitioners of one deployment. The patient
// table is a single shared blob; scoping happens on read and write, not in
// the key.
const (
	KeyPractitioners     = "mediassist_doctors"
	KeyCurrentSession    = "mediassist_current_doctor"
	KeyPatients          = "mediassist_patients"
	KeyGlobalDocuments   = "mediassist_global_documents"
	KeyAuditLog          = "mediassist_audit_log"
	KeyCustomStudies     = "mediassist_custom_studies"
)

// Store wraps a Backend with JSON serialization and the session pointer.
// Any read failure, missing key, or corrupt value is treated as no data.
type Store struct {
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// GetJSON unmarshals the value at key into v. It returns false when the key
// is missing or the stored value does not parse; v is left untouched in that
// case and the caller proceeds with its zero value.
func (s *Store) GetJSON(key string, v interface{}) bool {
	raw, err := s.backend.Get(key)
	if err != nil {
		log.Printf("[STORE] read failed for %s, treating as empty: %v", key, err)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("[STORE] corrupt value for %s, treating as empty: %v", key, err)
		return false
	}
	return true
}

// PutJSON marshals v and writes it at key.
func (s *Store) PutJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.backend.Put(key, raw)
}

// Delete removes the value at key.
func (s *Store) Delete(key string) error {
	return s.backend.Delete(key)
}

// CurrentPractitionerID returns the logged-in practitioner id, or "" when no
// session is active.
func (s *Store) CurrentPractitionerID() string {
	var id string
	if !s.GetJSON(KeyCurrentSession, &id) {
		return ""
	}
	return id
}

// SetCurrentPractitionerID records the active session. There is at most one
// active session per store.
func (s *Store) SetCurrentPractitionerID(id string) error {
	return s.PutJSON(KeyCurrentSession, id)
}

// ClearSession removes the active session pointer.
func (s *Store) ClearSession() error {
	return s.backend.Delete(KeyCurrentSession)
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
