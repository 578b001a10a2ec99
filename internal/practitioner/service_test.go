package practitioner

import (
	"strings"
	"testing"

	"github.com/mediassist/clinical-service/internal/auth"
	"github.com/mediassist/clinical-service/internal/store"
)

func newTestService(t *testing.T) (*Service, *Repository) {
	t.Helper()
	repo := NewRepository(store.New(store.NewMemoryBackend()))
	verifier := auth.NewVerifier(auth.Config{
		Issuer:   "test-issuer",
		Secret:   "test-secret",
		TokenTTL: auth.DefaultTokenTTL,
	})
	return NewService(repo, verifier), repo
}

func validSignup() SignupRequest {
	return SignupRequest{
		Name:          "Dr Martin",
		Email:         "martin@example.com",
		Password:      "s3cret",
		Specialty:     "Cardiologie",
		LicenseNumber: "10101",
		CredentialDoc: "data:image/png;base64,abc",
	}
}

// TestSignup_Success tests account registration
func TestSignup_Success(t *testing.T) {
	service, _ := newTestService(t)

	account, err := service.Signup(validSignup())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if account.ID == "" {
		t.Error("Expected generated id")
	}
	if !account.Verified {
		t.Error("Expected account with credential doc to be verified")
	}
	if account.Specialty != "cardiologie" {
		t.Errorf("Expected lowercased specialty, got %s", account.Specialty)
	}
	if account.PasswordHash != "" {
		t.Error("Expected password hash stripped from API response")
	}
}

// TestSignup_DuplicateEmail tests that emails are unique case-insensitively
func TestSignup_DuplicateEmail(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.Signup(validSignup()); err != nil {
		t.Fatalf("First signup failed: %v", err)
	}

	dup := validSignup()
	dup.Email = "MARTIN@example.com"
	if _, err := service.Signup(dup); err != ErrEmailAlreadyUsed {
		t.Errorf("Expected ErrEmailAlreadyUsed, got: %v", err)
	}
}

// TestSignup_Validation tests required field checks
func TestSignup_Validation(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantErr error
	}{
		{"missing name", func(r *SignupRequest) { r.Name = "" }, ErrMissingName},
		{"missing email", func(r *SignupRequest) { r.Email = "" }, ErrMissingEmail},
		{"missing password", func(r *SignupRequest) { r.Password = "" }, ErrMissingPassword},
		{"missing specialty", func(r *SignupRequest) { r.Specialty = "" }, ErrMissingSpecialty},
		{"missing license", func(r *SignupRequest) { r.LicenseNumber = "" }, ErrMissingLicenseNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)
			if _, err := service.Signup(req); err != tt.wantErr {
				t.Errorf("Expected %v, got: %v", tt.wantErr, err)
			}
		})
	}
}

// TestLogin_OpensSessionAndIssuesToken tests the login flow
func TestLogin_OpensSessionAndIssuesToken(t *testing.T) {
	service, repo := newTestService(t)
	account, _ := service.Signup(validSignup())

	token, logged, err := service.Login(LoginRequest{Email: "martin@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if token == "" || strings.Count(token, ".") != 2 {
		t.Errorf("Expected a JWT, got %q", token)
	}
	if logged.ID != account.ID {
		t.Errorf("Expected account %s, got %s", account.ID, logged.ID)
	}
	if repo.CurrentSessionID() != account.ID {
		t.Errorf("Expected session pointer %s, got %s", account.ID, repo.CurrentSessionID())
	}
}

// TestLogin_WrongPassword tests credential rejection
func TestLogin_WrongPassword(t *testing.T) {
	service, repo := newTestService(t)
	service.Signup(validSignup())

	if _, _, err := service.Login(LoginRequest{Email: "martin@example.com", Password: "wrong"}); err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got: %v", err)
	}
	if repo.CurrentSessionID() != "" {
		t.Error("Expected no session after failed login")
	}
}

// TestLogin_UnverifiedAccount tests that unverified accounts cannot log in
func TestLogin_UnverifiedAccount(t *testing.T) {
	service, _ := newTestService(t)

	req := validSignup()
	req.CredentialDoc = ""
	service.Signup(req)

	if _, _, err := service.Login(LoginRequest{Email: "martin@example.com", Password: "s3cret"}); err != ErrNotVerified {
		t.Errorf("Expected ErrNotVerified, got: %v", err)
	}
}

// TestLogout tests clearing the session pointer
func TestLogout(t *testing.T) {
	service, repo := newTestService(t)
	service.Signup(validSignup())
	service.Login(LoginRequest{Email: "martin@example.com", Password: "s3cret"})

	if err := service.Logout(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if repo.CurrentSessionID() != "" {
		t.Error("Expected empty session after logout")
	}
}

// TestReverify tests attaching a credential doc to a pending account
func TestReverify(t *testing.T) {
	service, _ := newTestService(t)

	req := validSignup()
	req.CredentialDoc = ""
	account, _ := service.Signup(req)
	if account.Verified {
		t.Fatal("Expected pending account")
	}

	updated, err := service.Reverify(account.ID, "data:image/png;base64,def")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !updated.Verified {
		t.Error("Expected account verified after reverify")
	}

	if _, err := service.Reverify(account.ID, ""); err != ErrMissingCredentialDoc {
		t.Errorf("Expected ErrMissingCredentialDoc, got: %v", err)
	}
	if _, err := service.Reverify("unknown", "doc"); err != ErrPractitionerNotFound {
		t.Errorf("Expected ErrPractitionerNotFound, got: %v", err)
	}
}
