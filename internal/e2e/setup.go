package e2e

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mediassist/clinical-service/internal/assistant"
	"github.com/mediassist/clinical-service/internal/auth"
	httpserver "github.com/mediassist/clinical-service/internal/http"
	"github.com/mediassist/clinical-service/internal/store"
	"github.com/mediassist/clinical-service/internal/testutil"
)

// TestServer represents a complete end-to-end test environment: a real
// HTTP server with all routes over an in-memory store, a mock generation
// provider and a mock event publisher.
type TestServer struct {
	Server        *httptest.Server
	Store         *store.Store
	ModelServer   *testutil.MockModelServer
	MockPublisher *testutil.MockPublisher
	Verifier      *auth.Verifier
}

// SetupE2ETest creates a complete test environment
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	st := store.New(store.NewMemoryBackend())
	modelServer := testutil.NewMockModelServer(t)
	mockPublisher := testutil.NewMockPublisher()
	verifier := testutil.CreateTestVerifier(t)

	perms, err := auth.LoadPermissions("../../permissions.yml")
	if err != nil {
		t.Fatalf("Failed to load permissions: %v", err)
	}

	router := httpserver.SetupRouter(httpserver.Dependencies{
		Store:     st,
		Verifier:  verifier,
		Perms:     perms,
		Runner:    assistant.NewRunner(modelServer.Client()),
		Publisher: mockPublisher,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:        server,
		Store:         st,
		ModelServer:   modelServer,
		MockPublisher: mockPublisher,
		Verifier:      verifier,
	}
}

// SignupAndLogin registers a practitioner through the API and opens a
// session, returning the issued token and the practitioner id.
func (ts *TestServer) SignupAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()

	anon := testutil.NewHTTPTestClient(ts.Server.URL, "")

	signupBody := map[string]interface{}{
		"name":           "Dr. Test",
		"email":          email,
		"password":       "S3curePass!",
		"specialty":      "médecine générale",
		"license_number": "10101234567",
		"credential_doc": "data:application/pdf;base64,dGVzdA==",
	}
	signupResp := anon.POST(t, "/auth/signup", signupBody)
	testutil.AssertStatusCode(t, signupResp, http.StatusCreated)

	var signupResult struct {
		Practitioner struct {
			ID string `json:"id"`
		} `json:"practitioner"`
	}
	testutil.DecodeJSON(t, signupResp, &signupResult)

	loginResp := anon.POST(t, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": "S3curePass!",
	})
	testutil.AssertStatusCode(t, loginResp, http.StatusOK)

	var loginResult struct {
		Token string `json:"token"`
	}
	testutil.DecodeJSON(t, loginResp, &loginResult)
	if loginResult.Token == "" {
		t.Fatal("Expected login to return a token")
	}

	return loginResult.Token, signupResult.Practitioner.ID
}

// NewClient creates a new HTTP test client for this server with the given token
func (ts *TestServer) NewClient(token string) *testutil.HTTPTestClient {
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}
