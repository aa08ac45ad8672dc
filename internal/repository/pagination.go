package repository

import (
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListParams is the shared shape for every paginated list query.
// Filters holds exact-match column filters (status, client_id, ...)
// and is AND-combined with the substring search.
type ListParams struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
	Filters   map[string]any
}

// ResolvePageSize maps a raw pageSize query value onto the documented
// bounds: absent or non-numeric keeps the default, an explicit value
// is clamped to [1, 100]. An explicit zero therefore yields 1, not the
// default.
func ResolvePageSize(raw string) int {
	if raw == "" {
		return DefaultPageSize
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultPageSize
	}
	if v < 1 {
		return 1
	}
	if v > MaxPageSize {
		return MaxPageSize
	}
	return v
}

// Normalize applies the documented bounds: page >= 1, page size
// clamped to [1, 100], sort order asc/desc defaulting to desc. A zero
// page size means "unset" at this layer and takes the default;
// handlers resolve explicit query values through ResolvePageSize
// before the params get here.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	switch strings.ToLower(p.SortOrder) {
	case "asc":
		p.SortOrder = "asc"
	default:
		p.SortOrder = "desc"
	}
	return p
}

// Offset is the row offset derived from page and page size. Pages past
// the end of the result set yield an empty page, never an error.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is one page of results plus the total count of all matching
// rows, so callers can compute the page count.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
