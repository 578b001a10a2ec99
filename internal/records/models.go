package records

import (
	"time"

	"github.com/mediassist/clinical-service/internal/pagination"
)

// MedicalRecord is one row of AI analysis history, keyed by practitioner
// and optionally a patient.
type MedicalRecord struct {
	ID             string    `json:"id"`
	PractitionerID string    `json:"practitioner_id"`
	PatientID      string    `json:"patient_id,omitempty"`
	Kind           string    `json:"kind"`
	Query          string    `json:"query"`
	Response       string    `json:"response"`
	CreatedAt      time.Time `json:"created_at"`
}

// Prescription is a stored prescription document reference.
type Prescription struct {
	ID             string    `json:"id"`
	PractitionerID string    `json:"practitioner_id"`
	PatientID      string    `json:"patient_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// PractitionerProfile mirrors the public profile of a practitioner in
// the relational store.
type PractitionerProfile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Specialty     string    `json:"specialty"`
	LicenseNumber string    `json:"license_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateMedicalRecordRequest represents the request to store an analysis record
type CreateMedicalRecordRequest struct {
	PatientID string `json:"patient_id,omitempty"`
	Kind      string `json:"kind"`
	Query     string `json:"query"`
	Response  string `json:"response"`
}

// CreatePrescriptionRequest represents the request to store a prescription
type CreatePrescriptionRequest struct {
	PatientID string `json:"patient_id"`
	Body      string `json:"body"`
}

// RecordListResponse wraps a medical record listing.
type RecordListResponse struct {
	Success    bool            `json:"success"`
	Records    []MedicalRecord `json:"records"`
	Total      int             `json:"total"`
	Pagination pagination.Meta `json:"pagination"`
}
