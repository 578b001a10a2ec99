package pdfrender

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mediassist/clinical-service/internal/auth"
	"github.com/mediassist/clinical-service/internal/patient"
	"github.com/mediassist/clinical-service/internal/practitioner"
	"github.com/mediassist/clinical-service/internal/records"
)

// PrescriptionRequest is the request to print a prescription.
type PrescriptionRequest struct {
	PatientID string `json:"patient_id"`
	Body      string `json:"body"`
}

type Handler struct {
	renderer      *Renderer
	patients      patient.ServiceInterface
	practitioners practitioner.ServiceInterface
	records       records.RepositoryInterface
}

// NewHandler wires the PDF endpoints. The records repository is optional;
// without it prescriptions are rendered but not archived.
func NewHandler(renderer *Renderer, patients patient.ServiceInterface, practitioners practitioner.ServiceInterface, recordsRepo records.RepositoryInterface) *Handler {
	return &Handler{
		renderer:      renderer,
		patients:      patients,
		practitioners: practitioners,
		records:       recordsRepo,
	}
}

// PrintPrescription renders a prescription PDF for a patient.
func (h *Handler) PrintPrescription(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req PrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.PatientID == "" || req.Body == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID and body are required")
		return
	}

	p, err := h.patients.Get(principal.PractitionerID, req.PatientID)
	if err != nil {
		if errors.Is(err, patient.ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Patient not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	data := PrescriptionData{
		PractitionerName: principal.Name,
		PatientName:      p.Name,
		PatientAge:       p.Age,
		Body:             req.Body,
		IssuedAt:         time.Now(),
	}
	if account, err := h.practitioners.Get(principal.PractitionerID); err == nil {
		data.Specialty = account.Specialty
		data.LicenseNumber = account.LicenseNumber
	}

	html, err := RenderPrescriptionHTML(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	pdf, err := h.renderer.Render(r.Context(), html)
	if err != nil {
		log.Printf("[PDF] Prescription render failed: %v", err)
		respondError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	if h.records != nil {
		_, err := h.records.InsertPrescription(r.Context(), principal.PractitionerID, records.CreatePrescriptionRequest{
			PatientID: req.PatientID,
			Body:      req.Body,
		})
		if err != nil {
			log.Printf("[PDF] Failed to archive prescription: %v", err)
		}
	}

	filename := fmt.Sprintf("ordonnance-%s-%s.pdf", req.PatientID, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(pdf)
}

// PrintPatientReport renders the consolidated report for one patient.
func (h *Handler) PrintPatientReport(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	p, err := h.patients.Get(principal.PractitionerID, id)
	if err != nil {
		if errors.Is(err, patient.ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Patient not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	data := PatientReportData{
		PractitionerName: principal.Name,
		PatientName:      p.Name,
		PatientID:        p.PatientID,
		Age:              p.Age,
		Sex:              p.Sex,
		History:          p.History,
		Allergies:        p.Allergies,
		GeneratedAt:      time.Now(),
	}
	for _, c := range p.Consultations {
		data.Consultations = append(data.Consultations, ConsultationLine{
			Timestamp: c.Timestamp,
			Query:     c.Query,
			Response:  c.Response,
			Sources:   c.Sources,
			Urgent:    c.Urgent,
		})
	}

	html, err := RenderPatientReportHTML(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	pdf, err := h.renderer.Render(r.Context(), html)
	if err != nil {
		log.Printf("[PDF] Report render failed: %v", err)
		respondError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	filename := fmt.Sprintf("dossier-patient-%s-%s.pdf", id, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(pdf)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
