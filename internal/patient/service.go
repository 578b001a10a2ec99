package patient

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mediassist/clinical-service/internal/document"
)

var (
	ErrMissingName     = errors.New("patient name is required")
	ErrPatientNotFound = errors.New("patient not found")
	ErrLogNotFound     = errors.New("consultation log not found")
)

// Service operates on one practitioner's patient collection. Every method
// takes the practitioner id of the authenticated caller; records owned by
// other practitioners are invisible to it.
type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Create adds a patient record to the practitioner's collection.
func (s *Service) Create(practitionerID string, req CreatePatientRequest) (*Patient, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}

	p := Patient{
		ID:        uuid.New().String(),
		PatientID: fmt.Sprintf("PAT-%d", time.Now().UnixMilli()),
		Name:      req.Name,
		Age:       req.Age,
		Sex:       req.Sex,
		History:   req.History,
		Allergies: req.Allergies,
	}

	patients := s.repo.ListOwned(practitionerID)
	patients = append(patients, p)
	if err := s.repo.SaveOwned(practitionerID, patients); err != nil {
		return nil, fmt.Errorf("failed to save patient: %w", err)
	}
	return &p, nil
}

// List returns the practitioner's patients.
func (s *Service) List(practitionerID string) []Patient {
	return s.repo.ListOwned(practitionerID)
}

// Get returns one of the practitioner's patients by internal id.
func (s *Service) Get(practitionerID, id string) (*Patient, error) {
	for _, p := range s.repo.ListOwned(practitionerID) {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrPatientNotFound
}

// Update applies partial changes to a patient record.
func (s *Service) Update(practitionerID, id string, req UpdatePatientRequest) (*Patient, error) {
	return s.mutate(practitionerID, id, func(p *Patient) error {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Age != nil {
			p.Age = *req.Age
		}
		if req.Sex != nil {
			p.Sex = *req.Sex
		}
		if req.History != nil {
			p.History = *req.History
		}
		if req.Allergies != nil {
			p.Allergies = *req.Allergies
		}
		return nil
	})
}

// Delete removes a patient from the stored collection. There is no
// tombstoning; the record is gone.
func (s *Service) Delete(practitionerID, id string) error {
	patients := s.repo.ListOwned(practitionerID)
	for i, p := range patients {
		if p.ID == id {
			patients = append(patients[:i], patients[i+1:]...)
			if err := s.repo.SaveOwned(practitionerID, patients); err != nil {
				return fmt.Errorf("failed to save patients: %w", err)
			}
			return nil
		}
	}
	return ErrPatientNotFound
}

// AppendAdviceLog prepends a consultation entry to the patient's history.
// Existing entries are never touched.
func (s *Service) AppendAdviceLog(practitionerID, patientID string, entry AdviceLog) (*Patient, error) {
	return s.mutate(practitionerID, patientID, func(p *Patient) error {
		p.Consultations = append([]AdviceLog{entry}, p.Consultations...)
		return nil
	})
}

// GetAdviceLog returns one consultation entry of a patient.
func (s *Service) GetAdviceLog(practitionerID, patientID, logID string) (*AdviceLog, error) {
	p, err := s.Get(practitionerID, patientID)
	if err != nil {
		return nil, err
	}
	for _, entry := range p.Consultations {
		if entry.ID == logID {
			cp := entry
			return &cp, nil
		}
	}
	return nil, ErrLogNotFound
}

// AttachDocument adds a document to the patient's record.
func (s *Service) AttachDocument(practitionerID, patientID string, doc document.HealthDocument) (*Patient, error) {
	return s.mutate(practitionerID, patientID, func(p *Patient) error {
		p.Documents = append(p.Documents, doc)
		return nil
	})
}

// SetDocumentSummary writes the AI summary on a patient document, once.
func (s *Service) SetDocumentSummary(practitionerID, patientID, documentID, summary string) (*Patient, error) {
	return s.mutate(practitionerID, patientID, func(p *Patient) error {
		for i := range p.Documents {
			if p.Documents[i].ID == documentID {
				if p.Documents[i].Summary != "" {
					return document.ErrSummaryAlreadySet
				}
				p.Documents[i].Summary = summary
				return nil
			}
		}
		return fmt.Errorf("document not found on patient")
	})
}

// RecordVitals stores a new measurement set, moving the previous current
// entry into the history.
func (s *Service) RecordVitals(practitionerID, patientID string, entry VitalEntry) (*Patient, error) {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	return s.mutate(practitionerID, patientID, func(p *Patient) error {
		if p.Vitals != nil {
			p.VitalHistory = append([]VitalEntry{*p.Vitals}, p.VitalHistory...)
		}
		p.Vitals = &entry
		return nil
	})
}

// AddAppointment schedules an encounter for the patient.
func (s *Service) AddAppointment(practitionerID, patientID string, appt Appointment) (*Patient, error) {
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	return s.mutate(practitionerID, patientID, func(p *Patient) error {
		p.Appointments = append(p.Appointments, appt)
		return nil
	})
}

// ExportJSON serializes the full patient record. Nothing is stripped: the
// export re-parses into a record deep-equal to the original.
func (s *Service) ExportJSON(practitionerID, patientID string) ([]byte, error) {
	p, err := s.Get(practitionerID, patientID)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export patient: %w", err)
	}
	return out, nil
}

// mutate looks up a patient in the owned collection, applies fn and saves
// the collection back.
func (s *Service) mutate(practitionerID, id string, fn func(*Patient) error) (*Patient, error) {
	patients := s.repo.ListOwned(practitionerID)
	for i := range patients {
		if patients[i].ID == id {
			if err := fn(&patients[i]); err != nil {
				return nil, err
			}
			if err := s.repo.SaveOwned(practitionerID, patients); err != nil {
				return nil, fmt.Errorf("failed to save patients: %w", err)
			}
			cp := patients[i]
			return &cp, nil
		}
	}
	return nil, ErrPatientNotFound
}
