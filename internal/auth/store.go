package auth

import "context"

// Store persists portal user accounts. Implementations return
// sentinel.ErrNotFound for missing users and sentinel.ErrConflict for email
// collisions.
type Store interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}
