package directory

import "context"

// Store is the read-only port over the BPO directory database.
// Implementations return sentinel.ErrNotFound for missing employees.
type Store interface {
	FindEmployee(ctx context.Context, ntlogin string) (*Employee, error)
	ListLocations(ctx context.Context) ([]Location, error)
}
