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

// AvayaLogoutAdapter speaks to the Avaya auto-logout tool's user store.
type AvayaLogoutAdapter struct {
	db *sql.DB
}

func NewAvayaLogout(db *sql.DB) *AvayaLogoutAdapter {
	return &AvayaLogoutAdapter{db: db}
}

// AvayaLogoutResult is the tool's native response shape.
type AvayaLogoutResult struct {
	NTLogin string `json:"ntlogin"`
	Active  bool   `json:"active"`
}

func (a *AvayaLogoutAdapter) ReadStatus(ctx context.Context, userID string) (bool, error) {
	var active bool
	err := a.db.QueryRowContext(ctx,
		`SELECT active FROM avaya_users WHERE ntlogin = $1`, userID,
	).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, sentinel.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("avayalogout: read status: %w", err)
	}
	return active, nil
}

func (a *AvayaLogoutAdapter) WriteStatus(ctx context.Context, enabled bool, userID string) (any, error) {
	_, err := a.db.ExecContext(ctx,
		`UPDATE avaya_users SET active = $1 WHERE ntlogin = $2`, enabled, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("avayalogout: write status: %w", err)
	}
	return &AvayaLogoutResult{NTLogin: userID, Active: enabled}, nil
}

func (a *AvayaLogoutAdapter) CreateAccess(ctx context.Context, user directory.Employee, permission json.RawMessage) (any, error) {
	res, err := a.db.ExecContext(ctx, `
		INSERT INTO avaya_users (ntlogin, employee_id, email, name, permission, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (ntlogin) DO NOTHING`,
		user.NTLogin, user.EmployeeID, user.Email, user.Name, []byte(permission),
	)
	if err != nil {
		return nil, fmt.Errorf("avayalogout: create access: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, nil
	}
	return &AvayaLogoutResult{NTLogin: user.NTLogin, Active: true}, nil
}
