package backend

import (
	"context"
	"encoding/json"
	"sync"

	"accessdesk/internal/directory"
	"accessdesk/pkg/sentinel"
)

// InMemoryAdapter implements Adapter over a map. It backs unit tests and
// local runs where a backend database is not configured.
type InMemoryAdapter struct {
	mu   sync.RWMutex
	rows map[string]*memoryRow
}

type memoryRow struct {
	Employee   directory.Employee `json:"employee"`
	Active     bool               `json:"active"`
	Permission json.RawMessage    `json:"permission,omitempty"`
}

func NewInMemory() *InMemoryAdapter {
	return &InMemoryAdapter{rows: make(map[string]*memoryRow)}
}

// Seed inserts a row directly, bypassing the create semantics.
func (a *InMemoryAdapter) Seed(ntlogin string, active bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rows[ntlogin] = &memoryRow{Employee: directory.Employee{NTLogin: ntlogin}, Active: active}
}

func (a *InMemoryAdapter) ReadStatus(_ context.Context, userID string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	row, ok := a.rows[userID]
	if !ok {
		return false, sentinel.ErrNotFound
	}
	return row.Active, nil
}

func (a *InMemoryAdapter) WriteStatus(_ context.Context, enabled bool, userID string) (any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var affected int64
	if row, ok := a.rows[userID]; ok {
		row.Active = enabled
		affected = 1
	}
	return map[string]any{"ntlogin": userID, "active": enabled, "rows_affected": affected}, nil
}

func (a *InMemoryAdapter) CreateAccess(_ context.Context, user directory.Employee, permission json.RawMessage) (any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.rows[user.NTLogin]; exists {
		return nil, nil
	}
	row := &memoryRow{Employee: user, Active: true, Permission: permission}
	a.rows[user.NTLogin] = row
	return row, nil
}
