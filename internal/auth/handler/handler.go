package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"accessdesk/internal/auth"
	"accessdesk/pkg/httputil"
	"accessdesk/pkg/requestcontext"
)

// Handler wires authentication endpoints to the auth service.
type Handler struct {
	service *auth.Service
	logger  *slog.Logger
}

func New(service *auth.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated login endpoint.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// RegisterProtected mounts endpoints that require a bearer token.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/auth/me", h.HandleGetMe)
	r.Get("/auth/logout", h.HandleLogout)
	r.Put("/auth/updatedetails", h.HandleUpdateDetails)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token,omitempty"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[loginRequest](w, r)
	if !ok {
		return
	}

	result, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": userResponse{
			ID:      result.User.ID,
			Name:    result.User.Name,
			Email:   result.User.Email,
			IsAdmin: result.User.IsAdmin,
			Token:   result.Token,
		},
	})
}

func (h *Handler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.service.GetMe(ctx, requestcontext.UserID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": userResponse{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
		},
	})
}

// HandleLogout acknowledges the logout; tokens are short-lived and the
// client discards its copy.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"msg":     "Logout successfully",
	})
}

type updateDetailsRequest struct {
	User struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password,omitempty"`
		CurrentPassword string `json:"currentPassword,omitempty"`
	} `json:"user"`
}

func (h *Handler) HandleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[updateDetailsRequest](w, r)
	if !ok {
		return
	}

	result, err := h.service.UpdateDetails(ctx, requestcontext.UserID(ctx), auth.UpdateDetailsRequest{
		Name:            req.User.Name,
		Email:           req.User.Email,
		Password:        req.User.Password,
		CurrentPassword: req.User.CurrentPassword,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": userResponse{
			ID:      result.User.ID,
			Name:    result.User.Name,
			Email:   result.User.Email,
			IsAdmin: result.User.IsAdmin,
			Token:   result.Token,
		},
	})
}
