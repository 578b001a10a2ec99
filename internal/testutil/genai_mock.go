package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mediassist/clinical-service/internal/genai"
)

// MockModelServer emulates a generateContent-style provider endpoint.
// It stores responses per model name and records every attempted model
// in order.
type MockModelServer struct {
	mu        sync.Mutex
	server    *httptest.Server
	responses map[string]string
	failures  map[string]int
	attempts  []string
}

// NewMockModelServer starts an in-process provider. Close is registered
// with the test cleanup.
func NewMockModelServer(t *testing.T) *MockModelServer {
	t.Helper()

	m := &MockModelServer{
		responses: make(map[string]string),
		failures:  make(map[string]int),
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.server.Close)
	return m
}

// Respond registers a successful response for a model name.
func (m *MockModelServer) Respond(model, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[model] = text
}

// Fail registers an HTTP failure status for a model name.
func (m *MockModelServer) Fail(model string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[model] = status
}

// Attempts returns the model names attempted, in order.
func (m *MockModelServer) Attempts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.attempts))
	copy(out, m.attempts)
	return out
}

// Client returns a provider client pointed at the mock server.
func (m *MockModelServer) Client() *genai.Client {
	return genai.NewClient("test-api-key").WithBaseURL(m.server.URL)
}

func (m *MockModelServer) handle(w http.ResponseWriter, r *http.Request) {
	// Path shape: /models/{model}:generateContent
	path := strings.TrimPrefix(r.URL.Path, "/models/")
	model := strings.TrimSuffix(path, ":generateContent")

	m.mu.Lock()
	m.attempts = append(m.attempts, model)
	status, failing := m.failures[model]
	text := m.responses[model]
	m.mu.Unlock()

	if failing {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    status,
				"status":  http.StatusText(status),
				"message": "simulated provider failure",
			},
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]interface{}{{"text": text}},
			}},
		},
	})
}
