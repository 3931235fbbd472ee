package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"accessdesk/internal/access"
	"accessdesk/internal/ledger"
	"accessdesk/internal/registry"
	"accessdesk/pkg/httputil"
	"accessdesk/pkg/requestcontext"
)

// Service defines the orchestrator operations the HTTP layer needs.
type Service interface {
	ListApplications() []registry.Application
	ListRoles(ctx context.Context, application string) ([]registry.Role, error)
	GetStatus(ctx context.Context, req access.GetStatusRequest) (bool, error)
	CreateAccess(ctx context.Context, req access.CreateAccessRequest) (*ledger.Record, error)
	SetStatus(ctx context.Context, req access.SetStatusRequest) (*ledger.Record, error)
}

// Handler wires application access endpoints to the orchestrator.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts access endpoints on the router. The route shapes mirror
// the portal client: listing under /applications, mutations under
// /application.
func (h *Handler) Register(r chi.Router) {
	r.Get("/applications", h.HandleListApplications)
	r.Get("/applications/{application}/roles", h.HandleListRoles)
	r.Post("/application/application-status", h.HandleGetStatus)
	r.Put("/application/user", h.HandleCreateAccess)
	r.Put("/application", h.HandleSetStatus)
}

func (h *Handler) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    h.service.ListApplications(),
	})
}

func (h *Handler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	application := chi.URLParam(r, "application")

	roles, err := h.service.ListRoles(ctx, application)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// An application without roles still answers with an empty list.
	if roles == nil {
		roles = []registry.Role{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    roles,
	})
}

func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[Envelope[StatusPayload]](w, r)
	if !ok {
		return
	}

	var ntlogin string
	if req.Payload.Employee != nil {
		ntlogin = req.Payload.Employee.NTLogin
	}

	status, err := h.service.GetStatus(ctx, access.GetStatusRequest{
		Application: req.Payload.Application,
		NTLogin:     ntlogin,
		Role:        req.Payload.Role,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    status,
	})
}

func (h *Handler) HandleCreateAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[Envelope[CreatePayload]](w, r)
	if !ok {
		return
	}

	rec, err := h.service.CreateAccess(ctx, access.CreateAccessRequest{
		Application: req.Payload.Application,
		Permission:  req.Payload.Permission,
		TargetUser:  req.Payload.Employee,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "create access failed",
			"request_id", requestcontext.RequestID(ctx),
			"app", req.Payload.Application,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "access created",
		"request_id", requestcontext.RequestID(ctx),
		"app", req.Payload.Application,
		"action_log_id", rec.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"msg":     "User created successfully",
	})
}

func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[Envelope[UpdatePayload]](w, r)
	if !ok {
		return
	}

	rec, err := h.service.SetStatus(ctx, access.SetStatusRequest{
		Application: req.Payload.Application,
		Enabled:     req.Payload.Enabled,
		Role:        req.Payload.Role,
		TargetUser:  req.Payload.Employee,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "set status failed",
			"request_id", requestcontext.RequestID(ctx),
			"app", req.Payload.Application,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "access updated",
		"request_id", requestcontext.RequestID(ctx),
		"app", req.Payload.Application,
		"action_log_id", rec.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"msg":     "Application updated successfully",
	})
}
