package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/rbac"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

// Handler wires HTTP endpoints for dashboard statistics.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	requireAuth func(http.Handler) http.Handler
	rbac        rbac.Middleware
}

// NewHandler constructs a stats handler.
func NewHandler(logger *slog.Logger, service *Service, requireAuth func(http.Handler) http.Handler, rbacMW rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, requireAuth: requireAuth, rbac: rbacMW}
}

// MountRoutes registers the dashboard endpoints at the router root.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Use(h.rbac.RequireAdmin())
		r.Get("/admin-stats", h.admin)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/user-stats/{email}", h.user)
	})
}

func (h *Handler) admin(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Admin(r.Context())
	if err != nil {
		h.logger.Error("admin stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil || principal.Email != email {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	out, err := h.service.User(r.Context(), email)
	if err != nil {
		h.logger.Error("user stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
