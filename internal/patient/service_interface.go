package patient

import "github.com/mediassist/clinical-service/internal/document"

// ServiceInterface defines the contract for patient record operations. The
// practitionerID argument scopes every call to the authenticated caller's
// collection.
type ServiceInterface interface {
	Create(practitionerID string, req CreatePatientRequest) (*Patient, error)
	List(practitionerID string) []Patient
	Get(practitionerID, id string) (*Patient, error)
	Update(practitionerID, id string, req UpdatePatientRequest) (*Patient, error)
	Delete(practitionerID, id string) error
	AppendAdviceLog(practitionerID, patientID string, entry AdviceLog) (*Patient, error)
	GetAdviceLog(practitionerID, patientID, logID string) (*AdviceLog, error)
	AttachDocument(practitionerID, patientID string, doc document.HealthDocument) (*Patient, error)
	SetDocumentSummary(practitionerID, patientID, documentID, summary string) (*Patient, error)
	RecordVitals(practitionerID, patientID string, entry VitalEntry) (*Patient, error)
	AddAppointment(practitionerID, patientID string, appt Appointment) (*Patient, error)
	ExportJSON(practitionerID, patientID string) ([]byte, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
