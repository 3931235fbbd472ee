package ledger

import "context"

// Store persists audit records. Implementations must be safe for concurrent
// use; the orchestrator writes from independent request goroutines.
type Store interface {
	// Create appends a pending record and assigns its ID and CreatedAt.
	Create(ctx context.Context, rec *Record) error

	// Resolve transitions a pending record to resolved. Returns
	// sentinel.ErrNotFound when no pending record with that id exists,
	// including the case where the record was already resolved. A resolved
	// record is never re-resolved.
	Resolve(ctx context.Context, id int64, res Resolution) error

	// List returns a page of records, most recent first by default.
	List(ctx context.Context, q ListQuery) (*Page, error)
}

// ListQuery selects and orders a page of the ledger.
type ListQuery struct {
	// Search matches employee id, employee name, or application name.
	Search    string
	SortField string
	// SortDescending applies to SortField; the default id sort is always
	// descending (newest first).
	SortDescending bool
	Page           int
	PageSize       int
}

// Page is one page of ledger records with total counts for the client's
// pager.
type Page struct {
	Records    []Record `json:"records"`
	TotalCount int64    `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}
