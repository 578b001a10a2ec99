package patient

import (
	"time"

	"github.com/mediassist/clinical-service/internal/document"
)

// VitalEntry is one measurement set. The latest entry is kept on the record
// itself, older ones in the history list.
type VitalEntry struct {
	RecordedAt  time.Time `json:"recorded_at"`
	HeartRate   int       `json:"heart_rate,omitempty"`
	SystolicBP  int       `json:"systolic_bp,omitempty"`
	DiastolicBP int       `json:"diastolic_bp,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	SpO2        int       `json:"spo2,omitempty"`
}

// Appointment is a scheduled encounter for a patient.
type Appointment struct {
	ID          string    `json:"id"`
	Reason      string    `json:"reason"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Location    string    `json:"location,omitempty"`
}

// AdviceLog is one logged AI interaction. Entries are append-only: they are
// prepended to a patient's consultation list and never edited or removed.
type AdviceLog struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Sources   []string  `json:"sources"`
	Urgent    bool      `json:"urgent,omitempty"`
}

// Patient is a clinical record owned by exactly one practitioner. The
// PractitionerID tag is attached by the storage layer on every write; UI
// callers never carry it.
type Patient struct {
	ID             string                    `json:"id"`
	PatientID      string                    `json:"patient_id"`
	Name           string                    `json:"name"` // anonymized display name
	Age            int                       `json:"age"`
	Sex            string                    `json:"sex"`
	History        string                    `json:"history"`
	Allergies      []string                  `json:"allergies"`
	Documents      []document.HealthDocument `json:"documents"`
	Consultations  []AdviceLog               `json:"consultations"`
	Vitals         *VitalEntry               `json:"vitals,omitempty"`
	VitalHistory   []VitalEntry              `json:"vital_history,omitempty"`
	Appointments   []Appointment             `json:"appointments,omitempty"`
	PractitionerID string                    `json:"practitioner_id"`
}

// CreatePatientRequest represents the request to create a new patient record
type CreatePatientRequest struct {
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Sex       string   `json:"sex"`
	History   string   `json:"history"`
	Allergies []string `json:"allergies"`
}

// UpdatePatientRequest represents the request to update a patient record
type UpdatePatientRequest struct {
	Name      *string   `json:"name,omitempty"`
	Age       *int      `json:"age,omitempty"`
	Sex       *string   `json:"sex,omitempty"`
	History   *string   `json:"history,omitempty"`
	Allergies *[]string `json:"allergies,omitempty"`
}

// PatientSuccessResponse wraps a single patient response.
type PatientSuccessResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Patient *Patient `json:"patient,omitempty"`
}

// PatientListResponse wraps a patient listing.
type PatientListResponse struct {
	Success  bool      `json:"success"`
	Patients []Patient `json:"patients"`
	Total    int       `json:"total"`
}
