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

// HelpDeskAdapter speaks to the help desk ticketing system's agent store.
//
// The ticketing system predates the other integrations and names its flag
// column "status" where every other backend uses "active". The translation
// stays inside this adapter; do not "fix" the field name, downstream reports
// read it.
type HelpDeskAdapter struct {
	db *sql.DB
}

func NewHelpDesk(db *sql.DB) *HelpDeskAdapter {
	return &HelpDeskAdapter{db: db}
}

// HelpDeskAgent is the ticketing system's native row shape.
type HelpDeskAgent struct {
	NTLogin string `json:"ntlogin"`
	Status  bool   `json:"Status"`
}

func (a *HelpDeskAdapter) ReadStatus(ctx context.Context, userID string) (bool, error) {
	var agent HelpDeskAgent
	err := a.db.QueryRowContext(ctx,
		`SELECT ntlogin, status FROM helpdesk_agents WHERE ntlogin = $1`, userID,
	).Scan(&agent.NTLogin, &agent.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, sentinel.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("helpdesk: read status: %w", err)
	}
	return agent.Status, nil
}

func (a *HelpDeskAdapter) WriteStatus(ctx context.Context, enabled bool, userID string) (any, error) {
	_, err := a.db.ExecContext(ctx,
		`UPDATE helpdesk_agents SET status = $1 WHERE ntlogin = $2`, enabled, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: write status: %w", err)
	}
	return &HelpDeskAgent{NTLogin: userID, Status: enabled}, nil
}

func (a *HelpDeskAdapter) CreateAccess(ctx context.Context, user directory.Employee, permission json.RawMessage) (any, error) {
	res, err := a.db.ExecContext(ctx, `
		INSERT INTO helpdesk_agents (ntlogin, employee_id, email, name, permission, status)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (ntlogin) DO NOTHING`,
		user.NTLogin, user.EmployeeID, user.Email, user.Name, []byte(permission),
	)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: create access: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, nil
	}
	return &HelpDeskAgent{NTLogin: user.NTLogin, Status: true}, nil
}
