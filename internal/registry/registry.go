// Package registry holds the static catalog of downstream applications the
// access service manages. The catalog is built once at startup, validated,
// and never mutated afterwards; concurrent readers need no locking.
package registry

import (
	"context"
	"fmt"
	"sort"

	"accessdesk/pkg/sentinel"
)

// Capability is one of the operations an application's backend supports.
type Capability string

const (
	CapabilityReadStatus   Capability = "READ_STATUS"
	CapabilityWriteStatus  Capability = "WRITE_STATUS"
	CapabilityCreateAccess Capability = "CREATE_ACCESS"
)

// Role is a grantable role within an application.
type Role struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// RoleResolver supplies an application's role list at request time. Most
// applications carry a fixed list; announcement derives its roles from the
// directory's location table.
type RoleResolver func(ctx context.Context) ([]Role, error)

// Application describes one managed downstream application.
type Application struct {
	Name         string       `json:"name"`
	Label        string       `json:"label"`
	Roles        []Role       `json:"roles,omitempty"`
	Capabilities []Capability `json:"capabilities"`

	// roleResolver, when set, overrides Roles for ListRoles.
	roleResolver RoleResolver
}

// HasCapability reports whether the application supports op.
func (a Application) HasCapability(op Capability) bool {
	for _, c := range a.Capabilities {
		if c == op {
			return true
		}
	}
	return false
}

// Registry resolves application names to descriptors.
type Registry struct {
	ordered []Application
	byName  map[string]Application
}

// New builds a registry from descriptors. Duplicate or empty names are
// configuration bugs and fail construction.
func New(apps []Application) (*Registry, error) {
	byName := make(map[string]Application, len(apps))
	for _, app := range apps {
		if app.Name == "" {
			return nil, fmt.Errorf("application with empty name")
		}
		if _, exists := byName[app.Name]; exists {
			return nil, fmt.Errorf("duplicate application %q", app.Name)
		}
		byName[app.Name] = app
	}

	ordered := append([]Application{}, apps...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	return &Registry{ordered: ordered, byName: byName}, nil
}

// Resolve returns the descriptor for name or sentinel.ErrNotFound.
func (r *Registry) Resolve(name string) (Application, error) {
	app, ok := r.byName[name]
	if !ok {
		return Application{}, sentinel.ErrNotFound
	}
	return app, nil
}

// ListApplications returns all descriptors in stable name order.
func (r *Registry) ListApplications() []Application {
	return append([]Application{}, r.ordered...)
}

// ListRoles returns the role list for an application. Statically registered
// applications read the descriptor; applications with a resolver delegate to
// it and return its result verbatim (an empty list is valid, not an error).
func (r *Registry) ListRoles(ctx context.Context, name string) ([]Role, error) {
	app, ok := r.byName[name]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if app.roleResolver != nil {
		return app.roleResolver(ctx)
	}
	return append([]Role{}, app.Roles...), nil
}

// Names returns the registered application names in stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ordered))
	for _, app := range r.ordered {
		names = append(names, app.Name)
	}
	return names
}
