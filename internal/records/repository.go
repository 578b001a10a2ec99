package records

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mediassist/clinical-service/internal/pagination"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the auxiliary tables if they do not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS medical_records (
			id UUID PRIMARY KEY,
			practitioner_id TEXT NOT NULL,
			patient_id TEXT,
			kind TEXT NOT NULL,
			query TEXT NOT NULL,
			response TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_medical_records_practitioner
			ON medical_records (practitioner_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS prescriptions (
			id UUID PRIMARY KEY,
			practitioner_id TEXT NOT NULL,
			patient_id TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS practitioner_profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			specialty TEXT NOT NULL,
			license_number TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

func (r *Repository) InsertMedicalRecord(ctx context.Context, practitionerID string, req CreateMedicalRecordRequest) (*MedicalRecord, error) {
	record := MedicalRecord{
		ID:             uuid.New().String(),
		PractitionerID: practitionerID,
		PatientID:      req.PatientID,
		Kind:           req.Kind,
		Query:          req.Query,
		Response:       req.Response,
		CreatedAt:      time.Now(),
	}

	query := `
		INSERT INTO medical_records (id, practitioner_id, patient_id, kind, query, response, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PractitionerID,
		record.PatientID,
		record.Kind,
		record.Query,
		record.Response,
		record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert medical record: %w", err)
	}
	return &record, nil
}

func (r *Repository) ListMedicalRecords(ctx context.Context, practitionerID, patientID string, params pagination.Params) ([]MedicalRecord, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM medical_records
		WHERE practitioner_id = $1
		  AND ($2 = '' OR patient_id = $2)
	`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, practitionerID, patientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count medical records: %w", err)
	}

	query := `
		SELECT id, practitioner_id, COALESCE(patient_id, ''), kind, query, response, created_at
		FROM medical_records
		WHERE practitioner_id = $1
		  AND ($2 = '' OR patient_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, query, practitionerID, patientID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query medical records: %w", err)
	}
	defer rows.Close()

	var out []MedicalRecord
	for rows.Next() {
		var rec MedicalRecord
		if err := rows.Scan(&rec.ID, &rec.PractitionerID, &rec.PatientID, &rec.Kind,
			&rec.Query, &rec.Response, &rec.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan medical record: %w", err)
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}

func (r *Repository) InsertPrescription(ctx context.Context, practitionerID string, req CreatePrescriptionRequest) (*Prescription, error) {
	p := Prescription{
		ID:             uuid.New().String(),
		PractitionerID: practitionerID,
		PatientID:      req.PatientID,
		Body:           req.Body,
		CreatedAt:      time.Now(),
	}

	query := `
		INSERT INTO prescriptions (id, practitioner_id, patient_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.PractitionerID, p.PatientID, p.Body, p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert prescription: %w", err)
	}
	return &p, nil
}

func (r *Repository) ListPrescriptions(ctx context.Context, practitionerID, patientID string, params pagination.Params) ([]Prescription, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM prescriptions
		WHERE practitioner_id = $1
		  AND ($2 = '' OR patient_id = $2)
	`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, practitionerID, patientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}

	query := `
		SELECT id, practitioner_id, patient_id, body, created_at
		FROM prescriptions
		WHERE practitioner_id = $1
		  AND ($2 = '' OR patient_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, query, practitionerID, patientID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query prescriptions: %w", err)
	}
	defer rows.Close()

	var out []Prescription
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.PractitionerID, &p.PatientID, &p.Body, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan prescription: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// UpsertProfile mirrors a practitioner's public profile.
func (r *Repository) UpsertProfile(ctx context.Context, profile PractitionerProfile) error {
	query := `
		INSERT INTO practitioner_profiles (id, name, specialty, license_number, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			specialty = EXCLUDED.specialty,
			license_number = EXCLUDED.license_number
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.Name, profile.Specialty, profile.LicenseNumber, profile.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("failed to upsert profile (%s): %w", pqErr.Code, err)
		}
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *Repository) GetProfile(ctx context.Context, id string) (*PractitionerProfile, error) {
	query := `
		SELECT id, name, specialty, license_number, created_at
		FROM practitioner_profiles
		WHERE id = $1
	`
	var profile PractitionerProfile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.Name, &profile.Specialty, &profile.LicenseNumber, &profile.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return &profile, nil
}
