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

// ActivateAdapter speaks to the Activate dialer platform's user store.
type ActivateAdapter struct {
	db *sql.DB
}

func NewActivate(db *sql.DB) *ActivateAdapter {
	return &ActivateAdapter{db: db}
}

// ActivateWriteResult is the platform's native update response.
type ActivateWriteResult struct {
	NTLogin      string `json:"ntlogin"`
	Active       bool   `json:"active"`
	RowsAffected int64  `json:"rows_affected"`
}

func (a *ActivateAdapter) ReadStatus(ctx context.Context, userID string) (bool, error) {
	var active bool
	err := a.db.QueryRowContext(ctx,
		`SELECT active FROM activate_users WHERE ntlogin = $1`, userID,
	).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, sentinel.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("activate: read status: %w", err)
	}
	return active, nil
}

func (a *ActivateAdapter) WriteStatus(ctx context.Context, enabled bool, userID string) (any, error) {
	res, err := a.db.ExecContext(ctx,
		`UPDATE activate_users SET active = $1 WHERE ntlogin = $2`, enabled, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("activate: write status: %w", err)
	}
	affected, _ := res.RowsAffected()
	return &ActivateWriteResult{NTLogin: userID, Active: enabled, RowsAffected: affected}, nil
}

func (a *ActivateAdapter) CreateAccess(ctx context.Context, user directory.Employee, permission json.RawMessage) (any, error) {
	res, err := a.db.ExecContext(ctx, `
		INSERT INTO activate_users (ntlogin, employee_id, email, name, permission, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (ntlogin) DO NOTHING`,
		user.NTLogin, user.EmployeeID, user.Email, user.Name, []byte(permission),
	)
	if err != nil {
		return nil, fmt.Errorf("activate: create access: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		// Row already exists; recoverable, the caller decides how to report it.
		return nil, nil
	}
	return &ActivateWriteResult{NTLogin: user.NTLogin, Active: true, RowsAffected: affected}, nil
}
