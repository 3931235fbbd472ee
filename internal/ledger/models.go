package ledger

import (
	"encoding/json"
	"time"
)

// Record is one audited access action. It is created in pending shape before
// the backend adapter runs (DataResponse, RequestStatus and ResolvedAt unset)
// and resolved exactly once afterwards. Resolved records are never updated or
// deleted; the ledger is the compliance trail for every grant and revoke.
type Record struct {
	ID            int64  `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeEmail string `json:"employee_email"`
	EmployeeName  string `json:"employee_name"`
	IPAddress     string `json:"ip_address"`
	UserAgent     string `json:"user_agent,omitempty"`
	AppName       string `json:"app_name"`
	// AppRole carries the serialized permission for creates and the plain
	// role for toggles.
	AppRole string `json:"app_role"`
	// Action is the intent direction: true for grant/create, false for revoke.
	Action  bool  `json:"action"`
	ActorID int64 `json:"actor_id"`

	// DataRequest snapshots the intent; DataResponse snapshots the backend's
	// native outcome and stays null until the record is resolved.
	DataRequest  json.RawMessage `json:"data_request,omitempty"`
	DataResponse json.RawMessage `json:"data_response,omitempty"`

	// RequestStatus reports whether the backend action succeeded. Null while
	// pending.
	RequestStatus  *bool  `json:"request_status,omitempty"`
	RequestMessage string `json:"request_message,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// Resolved reports whether the record has left the pending state.
func (r *Record) Resolved() bool {
	return r.ResolvedAt != nil
}

// Resolution carries the outcome half of the two-phase audit protocol.
type Resolution struct {
	DataRequest  json.RawMessage
	DataResponse json.RawMessage
	Status       bool
	Message      string
}
