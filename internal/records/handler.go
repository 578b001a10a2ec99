package records

import (
	"encoding/json"
	"net/http"

	"github.com/mediassist/clinical-service/internal/auth"
	"github.com/mediassist/clinical-service/internal/pagination"
)

type Handler struct {
	repo RepositoryInterface
}

func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.Kind == "" || req.Response == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Kind and response are required")
		return
	}

	record, err := h.repo.InsertMedicalRecord(r.Context(), principal.PractitionerID, req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"record":  record,
	})
}

func (h *Handler) ListMedicalRecords(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	patientID := r.URL.Query().Get("patient_id")
	params := pagination.ParseParams(r)
	list, total, err := h.repo.ListMedicalRecords(r.Context(), principal.PractitionerID, patientID, params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	if list == nil {
		list = []MedicalRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RecordListResponse{
		Success:    true,
		Records:    list,
		Total:      total,
		Pagination: params.CalculateMeta(total),
	})
}

func (h *Handler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.PatientID == "" || req.Body == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID and body are required")
		return
	}

	p, err := h.repo.InsertPrescription(r.Context(), principal.PractitionerID, req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":      true,
		"prescription": p,
	})
}

func (h *Handler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	patientID := r.URL.Query().Get("patient_id")
	params := pagination.ParseParams(r)
	list, total, err := h.repo.ListPrescriptions(r.Context(), principal.PractitionerID, patientID, params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	if list == nil {
		list = []Prescription{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":       true,
		"prescriptions": list,
		"total":         total,
		"pagination":    params.CalculateMeta(total),
	})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
