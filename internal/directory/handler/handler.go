package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"accessdesk/internal/directory"
	"accessdesk/pkg/httputil"
)

// Handler exposes employee directory lookups.
type Handler struct {
	service *directory.Service
}

func New(service *directory.Service) *Handler {
	return &Handler{service: service}
}

// Register mounts directory endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard/{ntlogin}", h.HandleGetEmployee)
}

func (h *Handler) HandleGetEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	emp, err := h.service.GetEmployee(ctx, chi.URLParam(r, "ntlogin"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    emp,
	})
}
