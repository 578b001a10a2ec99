package assistant

import "github.com/mediassist/clinical-service/internal/document"

// ConsultRequest represents a targeted query or summary request against
// a patient's record. Documents attached to the patient are resolved
// server-side; AdHocDocuments lets the caller include unsaved uploads.
type ConsultRequest struct {
	PatientID      string                    `json:"patient_id"`
	Query          string                    `json:"query"`
	SourceIDs      []string                  `json:"source_ids,omitempty"`
	AdHocDocuments []document.HealthDocument `json:"ad_hoc_documents,omitempty"`
}

// ConsultResponse carries the model answer. When the request fails the
// response text holds one readable French sentence in the same slot.
type ConsultResponse struct {
	Success  bool     `json:"success"`
	Response string   `json:"response"`
	Urgent   bool     `json:"urgent"`
	Sources  []string `json:"sources"`
	LogID    string   `json:"log_id,omitempty"`
}

// GuidelineRequest represents a guideline search
type GuidelineRequest struct {
	Topic string `json:"topic"`
}

// GuidelineResponse carries a guideline search answer. Sources is always
// empty; no external grounding is wired.
type GuidelineResponse struct {
	Success  bool     `json:"success"`
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

// AnalyzeRequest targets either a stored document or an inline one.
type AnalyzeRequest struct {
	PatientID  string                   `json:"patient_id,omitempty"`
	DocumentID string                   `json:"document_id,omitempty"`
	Document   *document.HealthDocument `json:"document,omitempty"`
}

// AnalyzeResponse carries a single document analysis.
type AnalyzeResponse struct {
	Success  bool   `json:"success"`
	Summary  string `json:"summary"`
	Document string `json:"document_id,omitempty"`
}

// TranscriptRequest represents a transcript cleanup or SOAP note request
type TranscriptRequest struct {
	Transcript string `json:"transcript"`
}

// TextResponse carries a plain generated text.
type TextResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// ReviewRequest targets one stored consultation log of a patient.
type ReviewRequest struct {
	PatientID string `json:"patient_id"`
	LogID     string `json:"log_id"`
}
