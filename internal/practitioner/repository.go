package practitioner

import (
	"strings"

	"github.com/mediassist/clinical-service/internal/store"
)

// Repository persists practitioner accounts in the shared account table
// and drives the current-session pointer.
type Repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// List returns every registered account. A missing or corrupt table reads
// as empty.
func (r *Repository) List() []Practitioner {
	var accounts []Practitioner
	r.store.GetJSON(store.KeyPractitioners, &accounts)
	return accounts
}

// GetByID returns the account with the given id, or nil.
func (r *Repository) GetByID(id string) *Practitioner {
	for _, p := range r.List() {
		if p.ID == id {
			account := p
			return &account
		}
	}
	return nil
}

// GetByEmail matches case-insensitively, or returns nil.
func (r *Repository) GetByEmail(email string) *Practitioner {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, p := range r.List() {
		if strings.ToLower(p.Email) == email {
			account := p
			return &account
		}
	}
	return nil
}

// Append adds a new account to the table.
func (r *Repository) Append(p Practitioner) error {
	accounts := r.List()
	accounts = append(accounts, p)
	return r.store.PutJSON(store.KeyPractitioners, accounts)
}

// Update replaces the account with a matching id.
func (r *Repository) Update(p Practitioner) error {
	accounts := r.List()
	for i := range accounts {
		if accounts[i].ID == p.ID {
			accounts[i] = p
			return r.store.PutJSON(store.KeyPractitioners, accounts)
		}
	}
	return ErrPractitionerNotFound
}

// OpenSession points the shared session key at the account.
func (r *Repository) OpenSession(practitionerID string) error {
	return r.store.SetCurrentPractitionerID(practitionerID)
}

// CloseSession clears the shared session pointer.
func (r *Repository) CloseSession() error {
	return r.store.ClearSession()
}

// CurrentSessionID returns the active practitioner id, or empty.
func (r *Repository) CurrentSessionID() string {
	return r.store.CurrentPractitionerID()
}
