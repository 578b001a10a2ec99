package document

import (
	"strings"
	"time"
)

// HealthDocument is an uploaded clinical artifact. Content holds either
// anonymized text or a base64 payload without a data URI prefix, depending
// on the MIME type. Once analyzed, only the Summary field may change, and it
// is set exactly once.
type HealthDocument struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MIMEType   string    `json:"mime_type"`
	Content    string    `json:"content"`
	UploadedAt time.Time `json:"uploaded_at"`
	Anonymized bool      `json:"anonymized"`
	Summary    string    `json:"summary,omitempty"`
	PageCount  int       `json:"page_count,omitempty"`
}

// IsImage classifies the document by MIME-type prefix. This is the single
// classification point; callers branch on the resulting part kind, not on
// the MIME string.
func (d HealthDocument) IsImage() bool {
	return strings.HasPrefix(d.MIMEType, "image/")
}

// UploadRequest is the request to add a document to the reference library.
type UploadRequest struct {
	Name      string `json:"name"`
	MIMEType  string `json:"mime_type"`
	Content   string `json:"content"`
	PageCount int    `json:"page_count,omitempty"`
}

// DocumentSuccessResponse wraps a single document response.
type DocumentSuccessResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Document *HealthDocument `json:"document,omitempty"`
}

// DocumentListResponse wraps the reference library listing.
type DocumentListResponse struct {
	Success   bool             `json:"success"`
	Documents []HealthDocument `json:"documents"`
	Total     int              `json:"total"`
}
