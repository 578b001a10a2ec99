package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params represents pagination query parameters. Page numbering is 1-based.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Meta contains pagination metadata for list responses
type Meta struct {
	CurrentPage  int  `json:"current_page"`
	PerPage      int  `json:"per_page"`
	TotalPages   int  `json:"total_pages"`
	TotalRecords int  `json:"total_records"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
}

// ParseParams extracts page and limit from the request query. Invalid or
// missing values fall back to the defaults; limit is capped at MaxLimit.
func ParseParams(r *http.Request) Params {
	params := Params{Page: DefaultPage, Limit: DefaultLimit}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			params.Page = p
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 {
			params.Limit = l
		}
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	return params
}

// CalculateOffset returns the SQL OFFSET value for the current page
func (p *Params) CalculateOffset() int {
	return (p.Page - 1) * p.Limit
}

// CalculateMeta derives the response metadata from the total record count
func (p *Params) CalculateMeta(totalRecords int) Meta {
	totalPages := (totalRecords + p.Limit - 1) / p.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	return Meta{
		CurrentPage:  p.Page,
		PerPage:      p.Limit,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
		HasNext:      p.Page < totalPages,
		HasPrevious:  p.Page > 1,
	}
}
