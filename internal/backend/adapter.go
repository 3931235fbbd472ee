// Package backend contains one adapter per managed application, each speaking
// to that application's own status store. The stores were built by different
// teams and do not share a schema; every adapter keeps its own row shape and
// narrow translation to the boolean status contract instead of pretending a
// unified schema exists.
package backend

import (
	"context"
	"encoding/json"

	"accessdesk/internal/directory"
)

// Adapter is the three-operation contract the orchestrator is written
// against. Which concrete adapter runs is resolved by application name
// through a dispatch table, never by type switches in the orchestrator.
//
// ReadStatus returns sentinel.ErrNotFound when the backend has no row for
// the user.
//
// WriteStatus sets the backend's status field and returns the backend's
// native response. The orchestrator treats the outcome as opaque except for
// nil/non-nil; it is serialized into the audit ledger as-is.
//
// CreateAccess inserts a new status row seeded active. A row already
// existing is a recoverable condition, not a fault: the adapter returns
// (nil, nil) and the orchestrator translates that into already_exists.
type Adapter interface {
	ReadStatus(ctx context.Context, userID string) (bool, error)
	WriteStatus(ctx context.Context, enabled bool, userID string) (any, error)
	CreateAccess(ctx context.Context, user directory.Employee, permission json.RawMessage) (any, error)
}
