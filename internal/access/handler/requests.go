package handler

import (
	"encoding/json"

	"accessdesk/internal/directory"
)

// Envelope matches the portal's wire format: every mutating request wraps
// its fields in a payload object.
type Envelope[T any] struct {
	Payload T `json:"payload"`
}

// StatusPayload asks for a user's status at an application.
type StatusPayload struct {
	Application string              `json:"application"`
	Role        string              `json:"role,omitempty"`
	Employee    *directory.Employee `json:"employee"`
}

// CreatePayload provisions a user at an application.
type CreatePayload struct {
	Application string              `json:"application"`
	Permission  json.RawMessage     `json:"permission,omitempty"`
	Employee    *directory.Employee `json:"employee"`
}

// UpdatePayload enables or disables a user's access.
type UpdatePayload struct {
	Application string              `json:"application"`
	Enabled     *bool               `json:"applicationStatus,omitempty"`
	Role        string              `json:"role,omitempty"`
	Employee    *directory.Employee `json:"employee"`
}
