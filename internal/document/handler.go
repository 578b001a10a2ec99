package document

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

// UploadDocument adds a document to the shared reference library.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	doc, err := h.service.Upload(req)
	if err != nil {
		if errors.Is(err, ErrMissingName) || errors.Is(err, ErrMissingContent) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "upload_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(DocumentSuccessResponse{
		Success:  true,
		Message:  "Document uploaded successfully",
		Document: doc,
	})
}

// ListDocuments returns the reference library.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := h.service.List()
	if docs == nil {
		docs = []HealthDocument{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DocumentListResponse{
		Success:   true,
		Documents: docs,
		Total:     len(docs),
	})
}

// GetDocument returns one document by id.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	doc, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Document not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DocumentSuccessResponse{
		Success:  true,
		Message:  "Document retrieved successfully",
		Document: doc,
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
