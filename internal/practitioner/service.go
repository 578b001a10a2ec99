package practitioner

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mediassist/clinical-service/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo     RepositoryInterface
	verifier *auth.Verifier
}

func NewService(repo RepositoryInterface, verifier *auth.Verifier) *Service {
	return &Service{
		repo:     repo,
		verifier: verifier,
	}
}

// Signup registers a new account. Accounts with a credential document
// attached are marked verified immediately; the rest stay pending until
// Reverify is called with one.
func (s *Service) Signup(req SignupRequest) (*Practitioner, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing := s.repo.GetByEmail(req.Email); existing != nil {
		log.Printf("[PRACTITIONER] Signup rejected, email already registered")
		return nil, ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := Practitioner{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Specialty:     strings.ToLower(strings.TrimSpace(req.Specialty)),
		LicenseNumber: req.LicenseNumber,
		Verified:      req.CredentialDoc != "",
		CredentialDoc: req.CredentialDoc,
		PasswordHash:  string(hash),
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Append(account); err != nil {
		return nil, err
	}

	log.Printf("✓ Practitioner registered: %s", account.ID)
	return account.Sanitized(), nil
}

// Login checks credentials, opens the shared session and issues a token.
func (s *Service) Login(req LoginRequest) (string, *Practitioner, error) {
	if req.Email == "" || req.Password == "" {
		return "", nil, ErrInvalidCredentials
	}

	account := s.repo.GetByEmail(req.Email)
	if account == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("[PRACTITIONER] Login failed for account %s", account.ID)
		return "", nil, ErrInvalidCredentials
	}
	if !account.Verified {
		return "", nil, ErrNotVerified
	}

	if err := s.repo.OpenSession(account.ID); err != nil {
		return "", nil, err
	}

	token, err := s.verifier.IssueToken(account.ID, account.Name, []string{"PRACTITIONER"})
	if err != nil {
		return "", nil, err
	}

	log.Printf("✓ Session opened for practitioner: %s", account.ID)
	return token, account.Sanitized(), nil
}

// Logout clears the shared session pointer.
func (s *Service) Logout() error {
	return s.repo.CloseSession()
}

// Get returns a single account profile.
func (s *Service) Get(id string) (*Practitioner, error) {
	account := s.repo.GetByID(id)
	if account == nil {
		return nil, ErrPractitionerNotFound
	}
	return account.Sanitized(), nil
}

// List returns every account profile.
func (s *Service) List() []Practitioner {
	accounts := s.repo.List()
	out := make([]Practitioner, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, *a.Sanitized())
	}
	return out
}

// Reverify attaches a new credential document and marks the account
// verified.
func (s *Service) Reverify(id, credentialDoc string) (*Practitioner, error) {
	if credentialDoc == "" {
		return nil, ErrMissingCredentialDoc
	}
	account := s.repo.GetByID(id)
	if account == nil {
		return nil, ErrPractitionerNotFound
	}

	account.CredentialDoc = credentialDoc
	account.Verified = true
	if err := s.repo.Update(*account); err != nil {
		return nil, err
	}

	log.Printf("✓ Practitioner re-verified: %s", account.ID)
	return account.Sanitized(), nil
}
