package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mediassist/clinical-service/internal/genai"
)

// mockGenerator implements Generator for testing
type mockGenerator struct {
	configured bool
	calls      []genai.GenerateRequest
	responses  map[string]string
	failures   map[string]error
}

func (m *mockGenerator) GenerateContent(ctx context.Context, req genai.GenerateRequest) (string, error) {
	m.calls = append(m.calls, req)
	if err, ok := m.failures[req.Model]; ok {
		return "", err
	}
	return m.responses[req.Model], nil
}

func (m *mockGenerator) Configured() bool {
	return m.configured
}

func TestRunner_NotConfigured(t *testing.T) {
	gen := &mockGenerator{configured: false}
	runner := NewRunner(gen)

	_, err := runner.Generate(context.Background(), []genai.Part{genai.TextPart("q")}, "", 0.1)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got: %v", err)
	}
	if len(gen.calls) != 0 {
		t.Errorf("Expected no network attempt, got %d calls", len(gen.calls))
	}
}

// TestRunner_StopsAtFirstNonEmpty tests the fixed-order fallback: after
// two failures the third candidate answers and no further call is made.
func TestRunner_StopsAtFirstNonEmpty(t *testing.T) {
	gen := &mockGenerator{
		configured: true,
		failures: map[string]error{
			"model-a": errors.New("404"),
			"model-b": errors.New("429"),
		},
		responses: map[string]string{
			"model-c": "OK",
			"model-d": "should never be reached",
		},
	}
	runner := NewRunner(gen).WithModels([]string{"model-a", "model-b", "model-c", "model-d"})

	text, err := runner.Generate(context.Background(), []genai.Part{genai.TextPart("q")}, "", 0.1)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if text != "OK" {
		t.Errorf("Expected OK, got %q", text)
	}
	if len(gen.calls) != 3 {
		t.Fatalf("Expected exactly 3 attempts, got %d", len(gen.calls))
	}
	for i, want := range []string{"model-a", "model-b", "model-c"} {
		if gen.calls[i].Model != want {
			t.Errorf("Attempt %d: expected %s, got %s", i, want, gen.calls[i].Model)
		}
	}
}

// TestRunner_Exhaustion tests that the error wraps the last failure
func TestRunner_Exhaustion(t *testing.T) {
	gen := &mockGenerator{
		configured: true,
		failures: map[string]error{
			"model-a": errors.New("timeout"),
			"model-b": errors.New("quota exceeded"),
		},
	}
	runner := NewRunner(gen).WithModels([]string{"model-a", "model-b"})

	_, err := runner.Generate(context.Background(), []genai.Part{genai.TextPart("q")}, "", 0.1)
	if !errors.Is(err, ErrModelsExhausted) {
		t.Fatalf("Expected ErrModelsExhausted, got: %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Expected last failure message in error, got: %v", err)
	}
}

// TestRunner_AllEmpty tests that empty successes count as exhaustion
func TestRunner_AllEmpty(t *testing.T) {
	gen := &mockGenerator{configured: true, responses: map[string]string{}}
	runner := NewRunner(gen).WithModels([]string{"model-a", "model-b"})

	_, err := runner.Generate(context.Background(), []genai.Part{genai.TextPart("q")}, "", 0.1)
	if !errors.Is(err, ErrModelsExhausted) {
		t.Fatalf("Expected ErrModelsExhausted, got: %v", err)
	}
	if !strings.Contains(err.Error(), "unknown error") {
		t.Errorf("Expected unknown error placeholder, got: %v", err)
	}
	if len(gen.calls) != 2 {
		t.Errorf("Expected both candidates attempted, got %d", len(gen.calls))
	}
}

// TestRunner_EmptyThenSuccess tests that an empty success advances the list
func TestRunner_EmptyThenSuccess(t *testing.T) {
	gen := &mockGenerator{
		configured: true,
		responses: map[string]string{
			"model-a": "",
			"model-b": "réponse",
		},
	}
	runner := NewRunner(gen).WithModels([]string{"model-a", "model-b"})

	text, err := runner.Generate(context.Background(), []genai.Part{genai.TextPart("q")}, "", 0.1)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if text != "réponse" {
		t.Errorf("Expected réponse, got %q", text)
	}
}

// TestRunner_DefaultOrder tests the shipped candidate sequence
func TestRunner_DefaultOrder(t *testing.T) {
	gen := &mockGenerator{configured: true, failures: map[string]error{
		"gemini-2.5-flash":      errors.New("down"),
		"gemini-2.5-flash-lite": errors.New("down"),
		"gemini-2.5-pro":        errors.New("down"),
		"gemini-1.5-flash":      errors.New("down"),
	}}
	runner := NewRunner(gen)

	runner.Generate(context.Background(), []genai.Part{genai.TextPart("q")}, "", 0.1)

	want := []string{"gemini-2.5-flash", "gemini-2.5-flash-lite", "gemini-2.5-pro", "gemini-1.5-flash"}
	if len(gen.calls) != len(want) {
		t.Fatalf("Expected %d attempts, got %d", len(want), len(gen.calls))
	}
	for i, model := range want {
		if gen.calls[i].Model != model {
			t.Errorf("Attempt %d: expected %s, got %s", i, model, gen.calls[i].Model)
		}
	}
}

// TestRunner_ForwardsRequestFields tests instruction and temperature passthrough
func TestRunner_ForwardsRequestFields(t *testing.T) {
	gen := &mockGenerator{configured: true, responses: map[string]string{"model-a": "ok"}}
	runner := NewRunner(gen).WithModels([]string{"model-a"})

	parts := []genai.Part{genai.TextPart("q")}
	runner.Generate(context.Background(), parts, "instruction", 0.2)

	call := gen.calls[0]
	if call.SystemInstruction != "instruction" {
		t.Errorf("Expected instruction forwarded, got %q", call.SystemInstruction)
	}
	if call.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", call.Temperature)
	}
	if len(call.Parts) != 1 || call.Parts[0].Text != "q" {
		t.Errorf("Expected parts forwarded, got %+v", call.Parts)
	}
}
