package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Consultation events
	EventConsultationLogged = "consultation.logged"

	// Patient events
	EventPatientCreated = "patient.created"
	EventPatientDeleted = "patient.deleted"

	// Document events
	EventDocumentAnalyzed = "document.analyzed"

	// Practitioner events
	EventPractitionerRegistered = "practitioner.registered"

	// Audit events
	EventAuditRecorded = "audit.recorded"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// ConsultationLoggedEvent represents a logged AI consultation
type ConsultationLoggedEvent struct {
	BaseEvent
	Data ConsultationLoggedData `json:"data"`
}

type ConsultationLoggedData struct {
	PatientID      string   `json:"patient_id"`
	LogID          string   `json:"log_id"`
	PractitionerID string   `json:"practitioner_id"`
	Urgent         bool     `json:"urgent"`
	Sources        []string `json:"sources,omitempty"`
}

// PatientCreatedEvent represents a patient record creation
type PatientCreatedEvent struct {
	BaseEvent
	Data PatientCreatedData `json:"data"`
}

type PatientCreatedData struct {
	PatientID      string    `json:"patient_id"`
	BusinessID     string    `json:"business_id"`
	PractitionerID string    `json:"practitioner_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// PatientDeletedEvent represents a patient record removal
type PatientDeletedEvent struct {
	BaseEvent
	Data PatientDeletedData `json:"data"`
}

type PatientDeletedData struct {
	PatientID      string `json:"patient_id"`
	PractitionerID string `json:"practitioner_id"`
}

// DocumentAnalyzedEvent represents a completed document analysis
type DocumentAnalyzedEvent struct {
	BaseEvent
	Data DocumentAnalyzedData `json:"data"`
}

type DocumentAnalyzedData struct {
	DocumentID     string `json:"document_id"`
	PatientID      string `json:"patient_id,omitempty"`
	PractitionerID string `json:"practitioner_id"`
}

// PractitionerRegisteredEvent represents a new practitioner signup
type PractitionerRegisteredEvent struct {
	BaseEvent
	Data PractitionerRegisteredData `json:"data"`
}

type PractitionerRegisteredData struct {
	PractitionerID string `json:"practitioner_id"`
	Specialty      string `json:"specialty"`
	Verified       bool   `json:"verified"`
}

// AuditRecordedEvent represents a recorded audit entry
type AuditRecordedEvent struct {
	BaseEvent
	Data AuditRecordedData `json:"data"`
}

type AuditRecordedData struct {
	EntryID  string `json:"entry_id"`
	Action   string `json:"action"`
	Actor    string `json:"actor"`
	Severity string `json:"severity"`
}

// NewBaseEvent creates a BaseEvent with common fields populated
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(),
		ServiceName: "clinical-service",
	}
}
