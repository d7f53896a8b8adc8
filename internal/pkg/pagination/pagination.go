package pagination

import (
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination is a page request normalised to valid bounds.
type Pagination struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// New clamps page to at least 1 and limit to 1..MaxLimit, defaulting a missing limit.
func New(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// FromRequest creates pagination from HTTP request parameters
func FromRequest(pageStr, limitStr string) Pagination {
	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)
	return New(page, limit)
}

// Offset returns the number of items to skip
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
