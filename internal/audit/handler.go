package audit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mediassist/clinical-service/internal/auth"
	"github.com/mediassist/clinical-service/internal/messaging"
)

type Handler struct {
	service   ServiceInterface
	publisher messaging.PublisherInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// WithPublisher attaches an event publisher for recorded entries.
func (h *Handler) WithPublisher(p messaging.PublisherInterface) *Handler {
	h.publisher = p
	return h
}

func (h *Handler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	entry, err := h.service.Record(principal.PractitionerID, req)
	if err != nil {
		switch err {
		case ErrMissingAction, ErrInvalidSeverity:
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "record_failed", err.Error())
		}
		return
	}

	if h.publisher != nil {
		h.publisher.Publish(r.Context(), messaging.EventAuditRecorded, messaging.AuditRecordedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventAuditRecorded),
			Data: messaging.AuditRecordedData{
				EntryID:  entry.ID,
				Action:   entry.Action,
				Actor:    entry.Actor,
				Severity: string(entry.Severity),
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Audit entry recorded successfully",
		"entry":   entry,
	})
}

func (h *Handler) GetTrail(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	entries := h.service.Trail()
	if entries == nil {
		entries = []Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TrailResponse{
		Success: true,
		Entries: entries,
		Total:   len(entries),
	})
}

// ExportTrail streams the trail as a downloadable JSON file.
func (h *Handler) ExportTrail(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	data, err := h.service.ExportJSON()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}

	filename := fmt.Sprintf("journal-audit-%s.json", time.Now().Format("2006-01-02"))
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
