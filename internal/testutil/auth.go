package testutil

import (
	"testing"
	"time"

	"github.com/mediassist/clinical-service/internal/auth"
)

const testSecret = "testutil-signing-secret"

// CreateTestVerifier creates a verifier configured for E2E testing.
func CreateTestVerifier(t *testing.T) *auth.Verifier {
	t.Helper()

	cfg := auth.Config{
		Issuer:   "mediassist-test",
		Secret:   testSecret,
		TokenTTL: time.Hour,
	}
	return auth.NewVerifier(cfg)
}

// GeneratePractitionerToken creates a valid session token for E2E testing.
func GeneratePractitionerToken(t *testing.T, ver *auth.Verifier, practitionerID, name string) string {
	t.Helper()

	token, err := ver.IssueToken(practitionerID, name, []string{"PRACTITIONER"})
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}
