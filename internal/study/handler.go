package study

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ImportStudy adds a study to the custom pool.
func (h *Handler) ImportStudy(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	created, err := h.service.Import(req)
	if err != nil {
		if errors.Is(err, ErrMissingTitle) || errors.Is(err, ErrMissingBody) || errors.Is(err, ErrInvalidEvidenceLevel) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "import_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(StudySuccessResponse{
		Success: true,
		Message: "Study imported successfully",
		Study:   created,
	})
}

// SearchStudies returns the merged pool filtered by free text and specialty.
func (h *Handler) SearchStudies(w http.ResponseWriter, r *http.Request) {
	filter := SearchFilter{
		Query:     r.URL.Query().Get("q"),
		Specialty: r.URL.Query().Get("specialty"),
	}

	studies := h.service.Search(filter)
	if studies == nil {
		studies = []MedicalStudy{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StudyListResponse{
		Success: true,
		Studies: studies,
		Total:   len(studies),
	})
}

// GetStudy returns one study by id.
func (h *Handler) GetStudy(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	studies := h.service.GetByIDs([]string{id})
	if len(studies) == 0 {
		respondError(w, http.StatusNotFound, "not_found", "Study not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StudySuccessResponse{
		Success: true,
		Message: "Study retrieved successfully",
		Study:   &studies[0],
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
