package analyst

import "time"

// RecordID identifier type
type RecordID string

// Record is one stored analyst brief, kept for later review.
type Record struct {
	ID         RecordID  `json:"id"`
	Summary    string    `json:"summary"`
	Highlights []string  `json:"highlights"`
	Model      string    `json:"model,omitempty"`
	Findings   int       `json:"findings"`
	CreatedAt  time.Time `json:"created_at"`
}

// Page represents a paginated response with data and metadata
type Page struct {
	Data       []*Record `json:"data"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	Total      int64     `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps page to >= 1 and size to [1, MaxPageSize].
func NormalizePage(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}
