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

// SdotpAdapter speaks to the service-desk OTP generator's user store.
type SdotpAdapter struct {
	db *sql.DB
}

func NewSdotp(db *sql.DB) *SdotpAdapter {
	return &SdotpAdapter{db: db}
}

// SdotpResult is the generator's native response shape.
type SdotpResult struct {
	NTLogin string `json:"ntlogin"`
	Active  bool   `json:"active"`
}

func (a *SdotpAdapter) ReadStatus(ctx context.Context, userID string) (bool, error) {
	var active bool
	err := a.db.QueryRowContext(ctx,
		`SELECT active FROM otp_users WHERE ntlogin = $1`, userID,
	).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, sentinel.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("sdotp: read status: %w", err)
	}
	return active, nil
}

func (a *SdotpAdapter) WriteStatus(ctx context.Context, enabled bool, userID string) (any, error) {
	_, err := a.db.ExecContext(ctx,
		`UPDATE otp_users SET active = $1 WHERE ntlogin = $2`, enabled, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sdotp: write status: %w", err)
	}
	return &SdotpResult{NTLogin: userID, Active: enabled}, nil
}

func (a *SdotpAdapter) CreateAccess(ctx context.Context, user directory.Employee, permission json.RawMessage) (any, error) {
	res, err := a.db.ExecContext(ctx, `
		INSERT INTO otp_users (ntlogin, employee_id, email, name, permission, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (ntlogin) DO NOTHING`,
		user.NTLogin, user.EmployeeID, user.Email, user.Name, []byte(permission),
	)
	if err != nil {
		return nil, fmt.Errorf("sdotp: create access: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, nil
	}
	return &SdotpResult{NTLogin: user.NTLogin, Active: true}, nil
}
