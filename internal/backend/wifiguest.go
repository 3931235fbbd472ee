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

// WifiGuestAdapter speaks to the guest WiFi portal's sponsor store.
type WifiGuestAdapter struct {
	db *sql.DB
}

func NewWifiGuest(db *sql.DB) *WifiGuestAdapter {
	return &WifiGuestAdapter{db: db}
}

// WifiGuestSponsor is the portal's native row shape.
type WifiGuestSponsor struct {
	NTLogin string `json:"ntlogin"`
	Active  bool   `json:"active"`
}

func (a *WifiGuestAdapter) ReadStatus(ctx context.Context, userID string) (bool, error) {
	var active bool
	err := a.db.QueryRowContext(ctx,
		`SELECT active FROM guest_sponsors WHERE ntlogin = $1`, userID,
	).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, sentinel.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("wifiguest: read status: %w", err)
	}
	return active, nil
}

func (a *WifiGuestAdapter) WriteStatus(ctx context.Context, enabled bool, userID string) (any, error) {
	_, err := a.db.ExecContext(ctx,
		`UPDATE guest_sponsors SET active = $1 WHERE ntlogin = $2`, enabled, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("wifiguest: write status: %w", err)
	}
	return &WifiGuestSponsor{NTLogin: userID, Active: enabled}, nil
}

func (a *WifiGuestAdapter) CreateAccess(ctx context.Context, user directory.Employee, permission json.RawMessage) (any, error) {
	res, err := a.db.ExecContext(ctx, `
		INSERT INTO guest_sponsors (ntlogin, employee_id, email, name, permission, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (ntlogin) DO NOTHING`,
		user.NTLogin, user.EmployeeID, user.Email, user.Name, []byte(permission),
	)
	if err != nil {
		return nil, fmt.Errorf("wifiguest: create access: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, nil
	}
	return &WifiGuestSponsor{NTLogin: user.NTLogin, Active: true}, nil
}
