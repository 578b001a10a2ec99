package patient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mediassist/clinical-service/internal/auth"
	"github.com/mediassist/clinical-service/internal/document"
	"github.com/mediassist/clinical-service/internal/messaging"
)

type Handler struct {
	service   ServiceInterface
	publisher messaging.PublisherInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// WithPublisher attaches an event publisher. Without one, record changes
// are simply not announced.
func (h *Handler) WithPublisher(p messaging.PublisherInterface) *Handler {
	h.publisher = p
	return h
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient name is required")
		return
	}

	p, err := h.service.Create(principal.PractitionerID, req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}

	if h.publisher != nil {
		h.publisher.Publish(r.Context(), messaging.EventPatientCreated, messaging.PatientCreatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventPatientCreated),
			Data: messaging.PatientCreatedData{
				PatientID:      p.ID,
				BusinessID:     p.PatientID,
				PractitionerID: principal.PractitionerID,
				CreatedAt:      time.Now().UTC(),
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(PatientSuccessResponse{
		Success: true,
		Message: "Patient created successfully",
		Patient: p,
	})
}

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	patients := h.service.List(principal.PractitionerID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PatientListResponse{
		Success:  true,
		Patients: patients,
		Total:    len(patients),
	})
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	p, err := h.service.Get(principal.PractitionerID, id)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PatientSuccessResponse{
		Success: true,
		Message: "Patient retrieved successfully",
		Patient: p,
	})
}

func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	var req UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.Update(principal.PractitionerID, id, req)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PatientSuccessResponse{
		Success: true,
		Message: "Patient updated successfully",
		Patient: p,
	})
}

func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	if err := h.service.Delete(principal.PractitionerID, id); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "deletion_failed", err.Error())
		return
	}

	if h.publisher != nil {
		h.publisher.Publish(r.Context(), messaging.EventPatientDeleted, messaging.PatientDeletedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventPatientDeleted),
			Data: messaging.PatientDeletedData{
				PatientID:      id,
				PractitionerID: principal.PractitionerID,
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Patient deleted successfully",
	})
}

func (h *Handler) RecordVitals(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var entry VitalEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}

	p, err := h.service.RecordVitals(principal.PractitionerID, id, entry)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PatientSuccessResponse{
		Success: true,
		Message: "Vitals recorded successfully",
		Patient: p,
	})
}

func (h *Handler) AddAppointment(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var appt Appointment
	if err := json.NewDecoder(r.Body).Decode(&appt); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if appt.Reason == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment reason is required")
		return
	}

	p, err := h.service.AddAppointment(principal.PractitionerID, id, appt)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PatientSuccessResponse{
		Success: true,
		Message: "Appointment added successfully",
		Patient: p,
	})
}

func (h *Handler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var doc document.HealthDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if doc.Name == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Document name is required")
		return
	}

	p, err := h.service.AttachDocument(principal.PractitionerID, id, doc)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(PatientSuccessResponse{
		Success: true,
		Message: "Document attached successfully",
		Patient: p,
	})
}

// ExportPatient streams the full patient record as a downloadable JSON file.
func (h *Handler) ExportPatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	data, err := h.service.ExportJSON(principal.PractitionerID, id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}

	filename := fmt.Sprintf("dossier-patient-%s-%s.json", id, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
