package patient

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/mediassist/clinical-service/internal/document"
	"github.com/mediassist/clinical-service/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st := store.New(store.NewMemoryBackend())
	return NewService(NewRepository(st))
}

// TestCreateGetDelete tests the basic record lifecycle
func TestCreateGetDelete(t *testing.T) {
	service := newTestService(t)

	p, err := service.Create("doc-test", CreatePatientRequest{
		Name:      "Patient X",
		Age:       54,
		Sex:       "F",
		Allergies: []string{"pénicilline"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if p.ID == "" || p.PatientID == "" {
		t.Error("Expected generated ids")
	}

	got, err := service.Get("doc-test", p.ID)
	if err != nil {
		t.Fatalf("Failed to get patient: %v", err)
	}
	if got.Name != "Patient X" || len(got.Allergies) != 1 {
		t.Errorf("Unexpected record: %+v", got)
	}

	if err := service.Delete("doc-test", p.ID); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := service.Get("doc-test", p.ID); err != ErrPatientNotFound {
		t.Errorf("Expected ErrPatientNotFound after delete, got: %v", err)
	}
}

// TestScopedPerPractitioner tests that one service instance keeps two
// practitioners' collections apart
func TestScopedPerPractitioner(t *testing.T) {
	service := newTestService(t)

	pa, err := service.Create("doc-a", CreatePatientRequest{Name: "Patient de A"})
	if err != nil {
		t.Fatalf("Failed to create for doc-a: %v", err)
	}
	if _, err := service.Create("doc-b", CreatePatientRequest{Name: "Patient de B"}); err != nil {
		t.Fatalf("Failed to create for doc-b: %v", err)
	}

	if got := service.List("doc-a"); len(got) != 1 || got[0].Name != "Patient de A" {
		t.Errorf("Expected doc-a to see only its own record, got %+v", got)
	}
	if _, err := service.Get("doc-b", pa.ID); err != ErrPatientNotFound {
		t.Errorf("Expected doc-a's record invisible to doc-b, got: %v", err)
	}
	if err := service.Delete("doc-b", pa.ID); err != ErrPatientNotFound {
		t.Errorf("Expected cross-practitioner delete rejected, got: %v", err)
	}
}

// TestCreate_Validation tests required field checks
func TestCreate_Validation(t *testing.T) {
	service := newTestService(t)
	if _, err := service.Create("doc-test", CreatePatientRequest{}); err != ErrMissingName {
		t.Errorf("Expected ErrMissingName, got: %v", err)
	}
}

// TestAppendAdviceLog_PrependsNewest tests the append-only consultation list
func TestAppendAdviceLog_PrependsNewest(t *testing.T) {
	service := newTestService(t)
	p, _ := service.Create("doc-test", CreatePatientRequest{Name: "Patient X"})

	first := AdviceLog{ID: "log-1", Timestamp: time.Now(), Query: "q1", Response: "r1"}
	second := AdviceLog{ID: "log-2", Timestamp: time.Now(), Query: "q2", Response: "r2"}

	if _, err := service.AppendAdviceLog("doc-test", p.ID, first); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	updated, err := service.AppendAdviceLog("doc-test", p.ID, second)
	if err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	if len(updated.Consultations) != 2 {
		t.Fatalf("Expected 2 consultations, got %d", len(updated.Consultations))
	}
	if updated.Consultations[0].ID != "log-2" || updated.Consultations[1].ID != "log-1" {
		t.Errorf("Expected newest entry first, got %s then %s",
			updated.Consultations[0].ID, updated.Consultations[1].ID)
	}

	entry, err := service.GetAdviceLog("doc-test", p.ID, "log-1")
	if err != nil {
		t.Fatalf("Failed to fetch entry: %v", err)
	}
	if entry.Query != "q1" {
		t.Errorf("Unexpected entry: %+v", entry)
	}
}

// TestRecordVitals_MovesCurrentToHistory tests vitals rotation
func TestRecordVitals_MovesCurrentToHistory(t *testing.T) {
	service := newTestService(t)
	p, _ := service.Create("doc-test", CreatePatientRequest{Name: "Patient X"})

	v1 := VitalEntry{RecordedAt: time.Now().Add(-time.Hour), HeartRate: 60}
	v2 := VitalEntry{RecordedAt: time.Now(), HeartRate: 80}

	service.RecordVitals("doc-test", p.ID, v1)
	updated, err := service.RecordVitals("doc-test", p.ID, v2)
	if err != nil {
		t.Fatalf("Failed to record vitals: %v", err)
	}

	if updated.Vitals == nil || updated.Vitals.HeartRate != 80 {
		t.Errorf("Expected current vitals to be the newest entry, got %+v", updated.Vitals)
	}
	if len(updated.VitalHistory) != 1 || updated.VitalHistory[0].HeartRate != 60 {
		t.Errorf("Expected previous entry in history, got %+v", updated.VitalHistory)
	}
}

// TestSetDocumentSummary_Once tests that a patient document summary is write-once
func TestSetDocumentSummary_Once(t *testing.T) {
	service := newTestService(t)
	p, _ := service.Create("doc-test", CreatePatientRequest{Name: "Patient X"})

	doc := document.HealthDocument{ID: "doc-1", Name: "bilan.txt", MIMEType: "text/plain", Content: "bilan"}
	if _, err := service.AttachDocument("doc-test", p.ID, doc); err != nil {
		t.Fatalf("Failed to attach document: %v", err)
	}

	if _, err := service.SetDocumentSummary("doc-test", p.ID, "doc-1", "Résumé."); err != nil {
		t.Fatalf("Expected first summary write to succeed, got: %v", err)
	}
	if _, err := service.SetDocumentSummary("doc-test", p.ID, "doc-1", "Autre."); err != document.ErrSummaryAlreadySet {
		t.Errorf("Expected ErrSummaryAlreadySet, got: %v", err)
	}
}

// TestExportJSON_RoundTrip tests that an exported record re-parses deep-equal
func TestExportJSON_RoundTrip(t *testing.T) {
	service := newTestService(t)
	p, _ := service.Create("doc-test", CreatePatientRequest{
		Name:      "Patient X",
		Age:       61,
		Sex:       "M",
		History:   "HTA connue",
		Allergies: []string{"aspirine", "latex"},
	})
	service.AppendAdviceLog("doc-test", p.ID, AdviceLog{
		ID:        "log-1",
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Query:     "q",
		Response:  "r",
		Sources:   []string{"study-001"},
	})

	original, err := service.Get("doc-test", p.ID)
	if err != nil {
		t.Fatalf("Failed to get patient: %v", err)
	}

	raw, err := service.ExportJSON("doc-test", p.ID)
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}

	var parsed Patient
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("Failed to re-parse export: %v", err)
	}
	if !reflect.DeepEqual(*original, parsed) {
		t.Errorf("Round trip mismatch:\noriginal: %+v\nparsed:   %+v", *original, parsed)
	}
}
