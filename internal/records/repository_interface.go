package records

import (
	"context"

	"github.com/mediassist/clinical-service/internal/pagination"
)

// RepositoryInterface defines the contract for the auxiliary relational store
type RepositoryInterface interface {
	EnsureSchema(ctx context.Context) error
	InsertMedicalRecord(ctx context.Context, practitionerID string, req CreateMedicalRecordRequest) (*MedicalRecord, error)
	ListMedicalRecords(ctx context.Context, practitionerID, patientID string, params pagination.Params) ([]MedicalRecord, int, error)
	InsertPrescription(ctx context.Context, practitionerID string, req CreatePrescriptionRequest) (*Prescription, error)
	ListPrescriptions(ctx context.Context, practitionerID, patientID string, params pagination.Params) ([]Prescription, int, error)
	UpsertProfile(ctx context.Context, profile PractitionerProfile) error
	GetProfile(ctx context.Context, id string) (*PractitionerProfile, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
