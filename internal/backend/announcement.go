package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"accessdesk/internal/directory"
	"accessdesk/pkg/sentinel"
)

// AnnouncementAdapter speaks to the announcement board's subscriber store.
type AnnouncementAdapter struct {
	db *sql.DB
}

func NewAnnouncement(db *sql.DB) *AnnouncementAdapter {
	return &AnnouncementAdapter{db: db}
}

// AnnouncementSubscriber is the board's native row shape. Location scoping
// lives in the permission payload the portal sends at create time.
type AnnouncementSubscriber struct {
	NTLogin    string          `json:"ntlogin"`
	Active     bool            `json:"active"`
	Permission json.RawMessage `json:"permission,omitempty"`
}

func (a *AnnouncementAdapter) ReadStatus(ctx context.Context, userID string) (bool, error) {
	var active bool
	err := a.db.QueryRowContext(ctx,
		`SELECT active FROM subscribers WHERE ntlogin = $1`, userID,
	).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, sentinel.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("announcement: read status: %w", err)
	}
	return active, nil
}

func (a *AnnouncementAdapter) WriteStatus(ctx context.Context, enabled bool, userID string) (any, error) {
	_, err := a.db.ExecContext(ctx,
		`UPDATE subscribers SET active = $1 WHERE ntlogin = $2`, enabled, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("announcement: write status: %w", err)
	}
	return &AnnouncementSubscriber{NTLogin: userID, Active: enabled}, nil
}

func (a *AnnouncementAdapter) CreateAccess(ctx context.Context, user directory.Employee, permission json.RawMessage) (any, error) {
	res, err := a.db.ExecContext(ctx, `
		INSERT INTO subscribers (ntlogin, employee_id, email, name, permission, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (ntlogin) DO NOTHING`,
		user.NTLogin, user.EmployeeID, user.Email, user.Name, []byte(permission),
	)
	if err != nil {
		return nil, fmt.Errorf("announcement: create access: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, nil
	}
	return &AnnouncementSubscriber{NTLogin: user.NTLogin, Active: true, Permission: permission}, nil
}
