package repository

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListOptions carries the standard query surface shared by every listing:
// exact-match filters on indexed columns, pagination and the two visibility
// toggles. Archived and deleted rows are excluded unless explicitly requested.
type ListOptions struct {
	Filters         map[string]any
	Page            int
	Limit           int
	IncludeArchived bool
	IncludeDeleted  bool
	Preloads        []string
}

func (o *ListOptions) normalize() {
	if o.Page < 1 {
		o.Page = defaultPage
	}
	if o.Limit < 1 {
		o.Limit = defaultLimit
	}
	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}
}

// Page is one page of records plus the pagination metadata returned to clients.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
