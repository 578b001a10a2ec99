package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mediassist/clinical-service/internal/audit"
	"github.com/mediassist/clinical-service/internal/auth"
	"github.com/mediassist/clinical-service/internal/document"
	"github.com/mediassist/clinical-service/internal/messaging"
	"github.com/mediassist/clinical-service/internal/patient"
	"github.com/mediassist/clinical-service/internal/study"
)

type Handler struct {
	service   ServiceInterface
	patients  patient.ServiceInterface
	studies   study.ServiceInterface
	documents document.ServiceInterface
	auditor   audit.ServiceInterface
	publisher messaging.PublisherInterface
}

func NewHandler(
	service ServiceInterface,
	patients patient.ServiceInterface,
	studies study.ServiceInterface,
	documents document.ServiceInterface,
	auditor audit.ServiceInterface,
	publisher messaging.PublisherInterface,
) *Handler {
	return &Handler{
		service:   service,
		patients:  patients,
		studies:   studies,
		documents: documents,
		auditor:   auditor,
		publisher: publisher,
	}
}

// Consult runs a targeted clinical query against a patient's record.
func (h *Handler) Consult(w http.ResponseWriter, r *http.Request) {
	h.consult(w, r, false)
}

// Summarize runs a cross-document synthesis of a patient's record.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	h.consult(w, r, true)
}

func (h *Handler) consult(w http.ResponseWriter, r *http.Request, summaryMode bool) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req ConsultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if !summaryMode && req.Query == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Query text is required")
		return
	}
	if req.PatientID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	p, err := h.patients.Get(principal.PractitionerID, req.PatientID)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	docs := append([]document.HealthDocument{}, p.Documents...)
	docs = append(docs, req.AdHocDocuments...)
	sources := h.studies.GetByIDs(req.SourceIDs)

	var text string
	if summaryMode {
		text, err = h.service.Summary(r.Context(), req.Query, docs, p.Allergies, sources)
	} else {
		text, err = h.service.TargetedQuery(r.Context(), req.Query, docs, p.Allergies, sources)
	}
	if err != nil {
		// Model failures land in the normal response slot as one
		// readable sentence; only validation interrupts the action.
		if errors.Is(err, ErrMissingQuery) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		h.respondFlattened(w, err)
		return
	}

	sourceLabels := make([]string, 0, len(sources))
	for _, src := range sources {
		sourceLabels = append(sourceLabels, src.Title)
	}

	loggedQuery := req.Query
	if summaryMode && strings.TrimSpace(loggedQuery) == "" {
		loggedQuery = DefaultSummaryQuery
	}

	entry := patient.AdviceLog{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Query:     loggedQuery,
		Response:  text,
		Sources:   sourceLabels,
		Urgent:    DetectUrgency(text),
	}
	if _, err := h.patients.AppendAdviceLog(principal.PractitionerID, p.ID, entry); err != nil {
		log.Printf("[ASSISTANT] Failed to log consultation for patient %s: %v", p.ID, err)
	}

	h.recordAudit(r, principal, "consultation.logged", p.ID, severityFor(entry.Urgent))
	h.publish(r, messaging.EventConsultationLogged, messaging.ConsultationLoggedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventConsultationLogged),
		Data: messaging.ConsultationLoggedData{
			PatientID:      p.ID,
			LogID:          entry.ID,
			PractitionerID: principal.PractitionerID,
			Urgent:         entry.Urgent,
			Sources:        sourceLabels,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ConsultResponse{
		Success:  true,
		Response: text,
		Urgent:   entry.Urgent,
		Sources:  sourceLabels,
		LogID:    entry.ID,
	})
}

// SearchGuidelines asks for current official recommendations on a topic.
func (h *Handler) SearchGuidelines(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req GuidelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.Topic == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Topic is required")
		return
	}

	text, sources, err := h.service.GuidelineSearch(r.Context(), req.Topic)
	if err != nil {
		h.respondFlattened(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GuidelineResponse{
		Success:  true,
		Response: text,
		Sources:  sources,
	})
}

// AnalyzeDocument extracts critical findings from one stored or inline
// document and writes the summary back exactly once.
func (h *Handler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	doc, err := h.resolveDocument(principal.PractitionerID, req)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	summary, err := h.service.AnalyzeDocument(r.Context(), *doc)
	if err != nil {
		h.respondFlattened(w, err)
		return
	}

	if req.DocumentID != "" {
		if req.PatientID != "" {
			_, err = h.patients.SetDocumentSummary(principal.PractitionerID, req.PatientID, req.DocumentID, summary)
		} else {
			_, err = h.documents.SetSummary(req.DocumentID, summary)
		}
		if err != nil && !errors.Is(err, document.ErrSummaryAlreadySet) {
			log.Printf("[ASSISTANT] Failed to persist summary for document %s: %v", req.DocumentID, err)
		}
	}

	h.recordAudit(r, principal, "document.analyzed", req.DocumentID, audit.SeverityLow)
	h.publish(r, messaging.EventDocumentAnalyzed, messaging.DocumentAnalyzedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventDocumentAnalyzed),
		Data: messaging.DocumentAnalyzedData{
			DocumentID:     req.DocumentID,
			PatientID:      req.PatientID,
			PractitionerID: principal.PractitionerID,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AnalyzeResponse{
		Success:  true,
		Summary:  summary,
		Document: req.DocumentID,
	})
}

func (h *Handler) resolveDocument(practitionerID string, req AnalyzeRequest) (*document.HealthDocument, error) {
	if req.Document != nil {
		return req.Document, nil
	}
	if req.DocumentID == "" {
		return nil, errors.New("document or document_id is required")
	}
	if req.PatientID != "" {
		p, err := h.patients.Get(practitionerID, req.PatientID)
		if err != nil {
			return nil, err
		}
		for i := range p.Documents {
			if p.Documents[i].ID == req.DocumentID {
				return &p.Documents[i], nil
			}
		}
		return nil, errors.New("document not found on patient record")
	}
	return h.documents.Get(req.DocumentID)
}

// CleanTranscript removes disfluencies from a raw consultation
// transcript.
func (h *Handler) CleanTranscript(w http.ResponseWriter, r *http.Request) {
	h.transcriptOp(w, r, h.service.CleanTranscript)
}

// GenerateSOAPNote drafts a structured S/O/A/P note from a transcript.
func (h *Handler) GenerateSOAPNote(w http.ResponseWriter, r *http.Request) {
	h.transcriptOp(w, r, h.service.GenerateSOAPNote)
}

func (h *Handler) transcriptOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, transcript string) (string, error)) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req TranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.Transcript == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Transcript text is required")
		return
	}

	text, err := op(r.Context(), req.Transcript)
	if err != nil {
		if errors.Is(err, ErrMissingTranscript) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		h.respondFlattened(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TextResponse{
		Success:  true,
		Response: text,
	})
}

// ReviewReport critically re-reads a stored consultation log.
func (h *Handler) ReviewReport(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.PatientID == "" || req.LogID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID and log ID are required")
		return
	}

	entry, err := h.patients.GetAdviceLog(principal.PractitionerID, req.PatientID, req.LogID)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	text, err := h.service.ReviewReport(r.Context(), *entry)
	if err != nil {
		h.respondFlattened(w, err)
		return
	}

	h.recordAudit(r, principal, "report.reviewed", req.LogID, audit.SeverityLow)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TextResponse{
		Success:  true,
		Response: text,
	})
}

// respondFlattened converts a runner failure into the single French
// sentence the practitioner sees in the normal response slot. The HTTP
// status stays 200; there is no separate error state for AI failures.
func (h *Handler) respondFlattened(w http.ResponseWriter, err error) {
	log.Printf("[ASSISTANT] Generation failed: %v", err)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ConsultResponse{
		Success:  false,
		Response: UserFacingMessage(err),
		Sources:  []string{},
	})
}

func (h *Handler) recordAudit(r *http.Request, principal *auth.Principal, action, resourceID string, severity audit.Severity) {
	if h.auditor == nil {
		return
	}
	if _, err := h.auditor.Record(principal.PractitionerID, audit.RecordRequest{
		Action:     action,
		ResourceID: resourceID,
		Severity:   severity,
	}); err != nil {
		log.Printf("[ASSISTANT] Failed to record audit entry %s: %v", action, err)
	}
}

func (h *Handler) publish(r *http.Request, routingKey string, event interface{}) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(r.Context(), routingKey, event); err != nil {
		log.Printf("[ASSISTANT] Failed to publish event %s: %v", routingKey, err)
	}
}

func severityFor(urgent bool) audit.Severity {
	if urgent {
		return audit.SeverityHigh
	}
	return audit.SeverityLow
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
