package access

import (
	"encoding/json"

	"accessdesk/internal/directory"
	"accessdesk/pkg/domerrors"
)

// GetStatusRequest asks for a user's current status at one application.
type GetStatusRequest struct {
	Application string
	NTLogin     string
	// Role is accepted but not yet part of status dispatch; reserved for
	// role-scoped backends.
	Role string
}

func (r GetStatusRequest) Validate() error {
	if r.Application == "" || r.NTLogin == "" {
		return domerrors.New(domerrors.CodeBadRequest, "please fill all the required fields")
	}
	return nil
}

// CreateAccessRequest provisions a user at an application, seeded enabled.
type CreateAccessRequest struct {
	Application string
	// Permission is opaque to the orchestrator; it is handed to the adapter
	// and serialized into the audit record. It must be present; JSON false
	// is a valid permission, a missing key is not.
	Permission json.RawMessage
	TargetUser *directory.Employee
}

func (r CreateAccessRequest) Validate() error {
	if r.Application == "" || len(r.Permission) == 0 || r.TargetUser == nil {
		return domerrors.New(domerrors.CodeBadRequest, "please fill all the required fields")
	}
	return nil
}

// SetStatusRequest enables or disables a user's existing access.
type SetStatusRequest struct {
	Application string
	// Enabled is a pointer so a missing field is distinguishable from an
	// explicit false (disable is a legitimate request).
	Enabled    *bool
	Role       string
	TargetUser *directory.Employee
}

func (r SetStatusRequest) Validate() error {
	if r.Application == "" || r.Enabled == nil || r.TargetUser == nil {
		return domerrors.New(domerrors.CodeBadRequest, "please fill all the required fields")
	}
	return nil
}
