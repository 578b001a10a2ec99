package audit

import "time"

// Severity classifies an audit entry.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid checks whether the severity is one of the known levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Entry is a single audit record. Entries are kept newest first and the
// trail is capped; older entries fall off silently.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor"`
	ResourceID string    `json:"resource_id,omitempty"`
	Severity   Severity  `json:"severity"`
	Details    string    `json:"details,omitempty"`
}

// RecordRequest represents the request to record an audit entry
type RecordRequest struct {
	Action     string   `json:"action"`
	ResourceID string   `json:"resource_id,omitempty"`
	Severity   Severity `json:"severity,omitempty"`
	Details    string   `json:"details,omitempty"`
}

// TrailResponse wraps the audit trail listing.
type TrailResponse struct {
	Success bool    `json:"success"`
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}
