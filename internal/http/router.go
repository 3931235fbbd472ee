// Package http assembles the service router: middleware chain, public auth
// endpoints, and the authenticated portal API under /api/v1.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"accessdesk/internal/auth"
	"accessdesk/pkg/middleware/metadata"
	"accessdesk/pkg/middleware/requestid"
)

// Registrar mounts a group of routes on a router.
type Registrar interface {
	Register(r chi.Router)
}

// Deps carries everything the router needs. All fields are required except
// where noted.
type Deps struct {
	Logger *slog.Logger
	JWT    *auth.JWTService

	AuthHandler interface {
		RegisterPublic(r chi.Router)
		RegisterProtected(r chi.Router)
	}
	AccessHandler    Registrar
	LedgerHandler    Registrar
	DirectoryHandler Registrar
}

// NewRouter builds the full HTTP surface. Request ID and client metadata run
// for every request so the audit ledger always has an origin to record; the
// portal API additionally requires a bearer token.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.RequestID)
	r.Use(metadata.ClientMetadata)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		d.AuthHandler.RegisterPublic(api)

		api.Group(func(protected chi.Router) {
			protected.Use(auth.RequireAuth(d.JWT, d.Logger))

			d.AuthHandler.RegisterProtected(protected)
			d.AccessHandler.Register(protected)
			d.LedgerHandler.Register(protected)
			d.DirectoryHandler.Register(protected)
		})
	})

	return r
}
