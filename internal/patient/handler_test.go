package patient

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/mediassist/clinical-service/internal/auth"
	"github.com/mediassist/clinical-service/internal/document"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	createFunc             func(practitionerID string, req CreatePatientRequest) (*Patient, error)
	listFunc               func(practitionerID string) []Patient
	getFunc                func(practitionerID, id string) (*Patient, error)
	updateFunc             func(practitionerID, id string, req UpdatePatientRequest) (*Patient, error)
	deleteFunc             func(practitionerID, id string) error
	appendAdviceLogFunc    func(practitionerID, patientID string, entry AdviceLog) (*Patient, error)
	getAdviceLogFunc       func(practitionerID, patientID, logID string) (*AdviceLog, error)
	attachDocumentFunc     func(practitionerID, patientID string, doc document.HealthDocument) (*Patient, error)
	setDocumentSummaryFunc func(practitionerID, patientID, documentID, summary string) (*Patient, error)
	recordVitalsFunc       func(practitionerID, patientID string, entry VitalEntry) (*Patient, error)
	addAppointmentFunc     func(practitionerID, patientID string, appt Appointment) (*Patient, error)
	exportJSONFunc         func(practitionerID, patientID string) ([]byte, error)
}

func (m *mockService) Create(practitionerID string, req CreatePatientRequest) (*Patient, error) {
	if m.createFunc != nil {
		return m.createFunc(practitionerID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) List(practitionerID string) []Patient {
	if m.listFunc != nil {
		return m.listFunc(practitionerID)
	}
	return nil
}

func (m *mockService) Get(practitionerID, id string) (*Patient, error) {
	if m.getFunc != nil {
		return m.getFunc(practitionerID, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) Update(practitionerID, id string, req UpdatePatientRequest) (*Patient, error) {
	if m.updateFunc != nil {
		return m.updateFunc(practitionerID, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) Delete(practitionerID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(practitionerID, id)
	}
	return errors.New("not implemented")
}

func (m *mockService) AppendAdviceLog(practitionerID, patientID string, entry AdviceLog) (*Patient, error) {
	if m.appendAdviceLogFunc != nil {
		return m.appendAdviceLogFunc(practitionerID, patientID, entry)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetAdviceLog(practitionerID, patientID, logID string) (*AdviceLog, error) {
	if m.getAdviceLogFunc != nil {
		return m.getAdviceLogFunc(practitionerID, patientID, logID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) AttachDocument(practitionerID, patientID string, doc document.HealthDocument) (*Patient, error) {
	if m.attachDocumentFunc != nil {
		return m.attachDocumentFunc(practitionerID, patientID, doc)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) SetDocumentSummary(practitionerID, patientID, documentID, summary string) (*Patient, error) {
	if m.setDocumentSummaryFunc != nil {
		return m.setDocumentSummaryFunc(practitionerID, patientID, documentID, summary)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) RecordVitals(practitionerID, patientID string, entry VitalEntry) (*Patient, error) {
	if m.recordVitalsFunc != nil {
		return m.recordVitalsFunc(practitionerID, patientID, entry)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) AddAppointment(practitionerID, patientID string, appt Appointment) (*Patient, error) {
	if m.addAppointmentFunc != nil {
		return m.addAppointmentFunc(practitionerID, patientID, appt)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ExportJSON(practitionerID, patientID string) ([]byte, error) {
	if m.exportJSONFunc != nil {
		return m.exportJSONFunc(practitionerID, patientID)
	}
	return nil, errors.New("not implemented")
}

func authenticated(req *http.Request) *http.Request {
	principal := &auth.Principal{
		PractitionerID: "doc-123",
		Name:           "Dr Martin",
		Roles:          []string{"PRACTITIONER"},
	}
	return req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))
}

// Test CreatePatient Handler

func TestHandlerCreatePatient_Success(t *testing.T) {
	mockSvc := &mockService{
		createFunc: func(practitionerID string, req CreatePatientRequest) (*Patient, error) {
			return &Patient{
				ID:        "patient-123",
				PatientID: "PAT-1",
				Name:      req.Name,
				Age:       req.Age,
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(CreatePatientRequest{Name: "Patient X", Age: 40})
	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = authenticated(req)

	rr := httptest.NewRecorder()
	handler.CreatePatient(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}

	var response PatientSuccessResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !response.Success {
		t.Error("Expected success to be true")
	}
	if response.Patient.Name != "Patient X" {
		t.Errorf("Expected name Patient X, got %s", response.Patient.Name)
	}
}

func TestHandlerCreatePatient_Unauthenticated(t *testing.T) {
	handler := NewHandler(&mockService{})

	body, _ := json.Marshal(CreatePatientRequest{Name: "Patient X"})
	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.CreatePatient(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestHandlerCreatePatient_MissingName(t *testing.T) {
	handler := NewHandler(&mockService{})

	body, _ := json.Marshal(CreatePatientRequest{Age: 40})
	req := authenticated(httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader(body)))
	rr := httptest.NewRecorder()

	handler.CreatePatient(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestHandlerCreatePatient_InvalidJSON(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := authenticated(httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader([]byte("invalid json"))))
	rr := httptest.NewRecorder()

	handler.CreatePatient(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

// Test ListPatients Handler

func TestHandlerListPatients_Success(t *testing.T) {
	mockSvc := &mockService{
		listFunc: func(practitionerID string) []Patient {
			if practitionerID != "doc-123" {
				t.Errorf("Expected list scoped to doc-123, got %q", practitionerID)
			}
			return []Patient{
				{ID: "p1", Name: "Patient A"},
				{ID: "p2", Name: "Patient B"},
			}
		},
	}
	handler := NewHandler(mockSvc)

	req := authenticated(httptest.NewRequest(http.MethodGet, "/patients", nil))
	rr := httptest.NewRecorder()

	handler.ListPatients(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var response PatientListResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Total != 2 {
		t.Errorf("Expected total 2, got %d", response.Total)
	}
}

// Test GetPatient Handler

func TestHandlerGetPatient_NotFound(t *testing.T) {
	mockSvc := &mockService{
		getFunc: func(practitionerID, id string) (*Patient, error) {
			return nil, ErrPatientNotFound
		},
	}
	handler := NewHandler(mockSvc)

	req := authenticated(httptest.NewRequest(http.MethodGet, "/patients/unknown", nil))
	req = mux.SetURLVars(req, map[string]string{"id": "unknown"})
	rr := httptest.NewRecorder()

	handler.GetPatient(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

// Test DeletePatient Handler

func TestHandlerDeletePatient_Success(t *testing.T) {
	deleted := ""
	mockSvc := &mockService{
		deleteFunc: func(practitionerID, id string) error {
			deleted = practitionerID + "/" + id
			return nil
		},
	}
	handler := NewHandler(mockSvc)

	req := authenticated(httptest.NewRequest(http.MethodDelete, "/patients/patient-123", nil))
	req = mux.SetURLVars(req, map[string]string{"id": "patient-123"})
	rr := httptest.NewRecorder()

	handler.DeletePatient(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if deleted != "doc-123/patient-123" {
		t.Errorf("Expected delete of patient-123 scoped to doc-123, got %q", deleted)
	}
}

// Test ExportPatient Handler

func TestHandlerExportPatient_Success(t *testing.T) {
	mockSvc := &mockService{
		exportJSONFunc: func(practitionerID, patientID string) ([]byte, error) {
			return []byte(`{"id":"patient-123"}`), nil
		},
	}
	handler := NewHandler(mockSvc)

	req := authenticated(httptest.NewRequest(http.MethodGet, "/patients/patient-123/export", nil))
	req = mux.SetURLVars(req, map[string]string{"id": "patient-123"})
	rr := httptest.NewRecorder()

	handler.ExportPatient(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	disposition := rr.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "dossier-patient-patient-123") {
		t.Errorf("Unexpected Content-Disposition: %q", disposition)
	}
	if !strings.Contains(rr.Body.String(), "patient-123") {
		t.Errorf("Unexpected body: %q", rr.Body.String())
	}
}

// Test RecordVitals Handler

func TestHandlerRecordVitals_DefaultsTimestamp(t *testing.T) {
	var recorded VitalEntry
	mockSvc := &mockService{
		recordVitalsFunc: func(practitionerID, patientID string, entry VitalEntry) (*Patient, error) {
			recorded = entry
			return &Patient{ID: patientID, Vitals: &entry}, nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(VitalEntry{HeartRate: 72})
	req := authenticated(httptest.NewRequest(http.MethodPost, "/patients/p1/vitals", bytes.NewReader(body)))
	req = mux.SetURLVars(req, map[string]string{"id": "p1"})
	rr := httptest.NewRecorder()

	handler.RecordVitals(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if recorded.RecordedAt.IsZero() {
		t.Error("Expected RecordedAt to be defaulted")
	}
}
