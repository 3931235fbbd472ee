package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"accessdesk/internal/ledger"
	"accessdesk/pkg/httputil"
)

// Handler exposes the audit log listing. Read-only: the ledger is written
// exclusively by the access orchestrator.
type Handler struct {
	service *ledger.Service
}

func New(service *ledger.Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the logs endpoint.
func (h *Handler) Register(r chi.Router) {
	r.Get("/logs", h.HandleList)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	q := ledger.ListQuery{
		Search:         query.Get("search"),
		SortField:      query.Get("sortField"),
		SortDescending: query.Get("sortOrder") == "descend",
		Page:           intParam(query.Get("current"), 1),
		PageSize:       intParam(query.Get("pageSize"), 10),
	}

	page, err := h.service.List(ctx, q)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    page,
	})
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
