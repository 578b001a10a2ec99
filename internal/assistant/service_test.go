package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mediassist/clinical-service/internal/document"
	"github.com/mediassist/clinical-service/internal/genai"
	"github.com/mediassist/clinical-service/internal/patient"
)

// mockRunner implements RunnerInterface for testing
type mockRunner struct {
	generateFunc func(ctx context.Context, parts []genai.Part, systemInstruction string, temperature float64) (string, error)

	lastParts       []genai.Part
	lastInstruction string
	lastTemperature float64
}

func (m *mockRunner) Generate(ctx context.Context, parts []genai.Part, systemInstruction string, temperature float64) (string, error) {
	m.lastParts = parts
	m.lastInstruction = systemInstruction
	m.lastTemperature = temperature
	if m.generateFunc != nil {
		return m.generateFunc(ctx, parts, systemInstruction, temperature)
	}
	return "réponse", nil
}

func TestTargetedQuery_Binding(t *testing.T) {
	runner := &mockRunner{}
	service := NewService(runner)

	docs := []document.HealthDocument{{Name: "bilan.txt", MIMEType: "text/plain", Content: "c"}}
	text, err := service.TargetedQuery(context.Background(), "Question ?", docs, []string{"latex"}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if text != "réponse" {
		t.Errorf("Expected runner text, got %q", text)
	}
	if runner.lastTemperature != 0.1 {
		t.Errorf("Expected temperature 0.1, got %v", runner.lastTemperature)
	}
	if !strings.Contains(runner.lastInstruction, "latex") {
		t.Error("Expected allergy directive in instruction")
	}
	if strings.Contains(runner.lastInstruction, "synthèse structurée de l'ensemble") {
		t.Error("Expected targeted framing, not summary framing")
	}
}

func TestTargetedQuery_MissingQuery(t *testing.T) {
	service := NewService(&mockRunner{})
	if _, err := service.TargetedQuery(context.Background(), "  ", nil, nil, nil); err != ErrMissingQuery {
		t.Errorf("Expected ErrMissingQuery, got: %v", err)
	}
}

func TestSummary_Binding(t *testing.T) {
	runner := &mockRunner{}
	service := NewService(runner)

	_, err := service.Summary(context.Background(), "", nil, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if runner.lastTemperature != 0.1 {
		t.Errorf("Expected temperature 0.1, got %v", runner.lastTemperature)
	}
	if !strings.Contains(runner.lastInstruction, "synthèse") {
		t.Error("Expected summary framing")
	}
	// Empty query gets a default synthesis request.
	last := runner.lastParts[len(runner.lastParts)-1]
	if !strings.Contains(last.Text, "synthèse structurée") {
		t.Errorf("Expected default synthesis query, got %q", last.Text)
	}
}

func TestGuidelineSearch_EmptySources(t *testing.T) {
	runner := &mockRunner{}
	service := NewService(runner)

	text, sources, err := service.GuidelineSearch(context.Background(), "hypertension artérielle")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if text != "réponse" {
		t.Errorf("Unexpected text: %q", text)
	}
	if sources == nil || len(sources) != 0 {
		t.Errorf("Expected always-empty non-nil source list, got %v", sources)
	}
	if runner.lastInstruction != "" {
		t.Errorf("Expected no instruction override, got %q", runner.lastInstruction)
	}
	if !strings.Contains(runner.lastParts[0].Text, "hypertension artérielle") {
		t.Errorf("Expected topic in request, got %q", runner.lastParts[0].Text)
	}
}

func TestAnalyzeDocument_Binding(t *testing.T) {
	runner := &mockRunner{}
	service := NewService(runner)

	doc := document.HealthDocument{Name: "radio.png", MIMEType: "image/png", Content: "aGVsbG8="}
	_, err := service.AnalyzeDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if runner.lastTemperature != 0.0 {
		t.Errorf("Expected temperature 0, got %v", runner.lastTemperature)
	}
	if len(runner.lastParts) != 1 || !runner.lastParts[0].IsBinary() {
		t.Errorf("Expected single binary part, got %+v", runner.lastParts)
	}
	if !strings.Contains(runner.lastInstruction, "3 éléments") {
		t.Error("Expected three-findings instruction")
	}
}

func TestCleanTranscript_Binding(t *testing.T) {
	runner := &mockRunner{}
	service := NewService(runner)

	_, err := service.CleanTranscript(context.Background(), "euh donc voilà le patient...")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if runner.lastTemperature != 0.1 {
		t.Errorf("Expected temperature 0.1, got %v", runner.lastTemperature)
	}
	if !strings.Contains(runner.lastInstruction, "transcription") {
		t.Error("Expected transcript cleanup instruction")
	}

	if _, err := service.CleanTranscript(context.Background(), " "); err != ErrMissingTranscript {
		t.Errorf("Expected ErrMissingTranscript, got: %v", err)
	}
}

func TestGenerateSOAPNote_Binding(t *testing.T) {
	runner := &mockRunner{}
	service := NewService(runner)

	_, err := service.GenerateSOAPNote(context.Background(), "transcription de consultation")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if runner.lastTemperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", runner.lastTemperature)
	}
	for _, section := range []string{"Subjectif", "Objectif", "Plan"} {
		if !strings.Contains(runner.lastInstruction, section) {
			t.Errorf("Expected %s section in instruction", section)
		}
	}
}

func TestReviewReport_EmbedsLog(t *testing.T) {
	runner := &mockRunner{}
	service := NewService(runner)

	entry := patient.AdviceLog{
		ID:        "log-1",
		Timestamp: time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
		Query:     "Question d'origine",
		Response:  "Réponse d'origine",
		Sources:   []string{"Étude HTA", "Reco HAS"},
	}
	_, err := service.ReviewReport(context.Background(), entry)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if runner.lastTemperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", runner.lastTemperature)
	}

	body := runner.lastParts[0].Text
	for _, want := range []string{"14/02/2026", "Question d'origine", "Réponse d'origine", "Étude HTA", "Reco HAS"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q embedded in review request", want)
		}
	}
	if !strings.Contains(runner.lastInstruction, "relecture critique") {
		t.Error("Expected critical-review persona instruction")
	}
}
