package registry

import (
	"context"

	"accessdesk/internal/directory"
)

// LocationLister is the slice of the directory service the announcement role
// resolver needs.
type LocationLister interface {
	ListLocations(ctx context.Context) ([]directory.Location, error)
}

// allCapabilities is shared by every managed application today; the split
// exists so a read-only integration can be added without touching dispatch.
var allCapabilities = []Capability{
	CapabilityReadStatus,
	CapabilityWriteStatus,
	CapabilityCreateAccess,
}

// Default builds the production catalog. The announcement application's roles
// are the directory's locations, resolved at request time; the rest carry
// fixed role lists.
func Default(locations LocationLister) (*Registry, error) {
	return New([]Application{
		{
			Name:  "activate",
			Label: "Activate",
			Roles: []Role{
				{ID: "agent", Label: "Agent"},
				{ID: "supervisor", Label: "Supervisor"},
			},
			Capabilities: allCapabilities,
		},
		{
			Name:         "announcement",
			Label:        "Announcement",
			Capabilities: allCapabilities,
			roleResolver: func(ctx context.Context) ([]Role, error) {
				locs, err := locations.ListLocations(ctx)
				if err != nil {
					return nil, err
				}
				roles := make([]Role, 0, len(locs))
				for _, loc := range locs {
					roles = append(roles, Role{ID: loc.ID, Label: loc.Label})
				}
				return roles, nil
			},
		},
		{
			Name:  "avayalogout",
			Label: "Avaya Logout",
			Roles: []Role{
				{ID: "user", Label: "User"},
			},
			Capabilities: allCapabilities,
		},
		{
			Name:  "helpdesk",
			Label: "Help Desk",
			Roles: []Role{
				{ID: "requester", Label: "Requester"},
				{ID: "technician", Label: "Technician"},
			},
			Capabilities: allCapabilities,
		},
		{
			Name:  "sdotp",
			Label: "SD OTP",
			Roles: []Role{
				{ID: "user", Label: "User"},
			},
			Capabilities: allCapabilities,
		},
		{
			Name:  "wifiguest",
			Label: "WiFi Guest",
			Roles: []Role{
				{ID: "sponsor", Label: "Sponsor"},
			},
			Capabilities: allCapabilities,
		},
	})
}

// WithRoleResolver returns a copy of app using resolver for ListRoles.
// Exposed for tests that need a dynamic application without a directory.
func WithRoleResolver(app Application, resolver RoleResolver) Application {
	app.roleResolver = resolver
	return app
}
