package study

// EvidenceLevel grades the strength of a study's findings. Exactly three
// ordinal symbols; storage implies no numeric ordering.
type EvidenceLevel string

const (
	EvidenceA EvidenceLevel = "A"
	EvidenceB EvidenceLevel = "B"
	EvidenceC EvidenceLevel = "C"
)

// Valid reports whether the level is one of the three known symbols.
func (l EvidenceLevel) Valid() bool {
	return l == EvidenceA || l == EvidenceB || l == EvidenceC
}

// MedicalStudy is a scientific reference entry, either shipped with the
// service or imported by a practitioner.
type MedicalStudy struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Specialty     string        `json:"specialty"`
	PublishedAt   string        `json:"published_at"` // Format: YYYY-MM-DD
	EvidenceLevel EvidenceLevel `json:"evidence_level"`
	Body          string        `json:"body"`
	Custom        bool          `json:"custom,omitempty"`
}

// ImportRequest is the request to add a study to the custom pool.
type ImportRequest struct {
	Title         string        `json:"title"`
	Specialty     string        `json:"specialty"`
	PublishedAt   string        `json:"published_at"`
	EvidenceLevel EvidenceLevel `json:"evidence_level"`
	Body          string        `json:"body"`
}

// SearchFilter narrows the merged pool by free text and specialty. Empty
// fields match everything.
type SearchFilter struct {
	Query     string
	Specialty string
}

// StudyListResponse wraps a study listing.
type StudyListResponse struct {
	Success bool           `json:"success"`
	Studies []MedicalStudy `json:"studies"`
	Total   int            `json:"total"`
}

// StudySuccessResponse wraps a single study response.
type StudySuccessResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Study   *MedicalStudy `json:"study,omitempty"`
}
