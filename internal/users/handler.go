package users

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/rbac"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

// Handler wires HTTP endpoints for account management.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	requireAuth func(http.Handler) http.Handler
	rbac        rbac.Middleware
	validator   *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, requireAuth func(http.Handler) http.Handler, rbacMW rbac.Middleware) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		requireAuth: requireAuth,
		rbac:        rbacMW,
		validator:   validator.New(),
	}
}

// MountRoutes registers user routes. Registration is public; reads require
// a credential; management requires the admin role.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.register)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/{email}", h.get)
		r.Get("/admin/{email}", h.adminStatus)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Use(h.rbac.RequireAdmin())
		r.Get("/", h.list)
		r.Patch("/admin/{id}", h.promote)
		r.Delete("/{id}", h.remove)
	})
}

type registerRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	inserted, err := h.service.Register(r.Context(), req.Email, req.Name)
	if err != nil {
		h.logger.Error("register user", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if !inserted {
		// Second sign-in with a known email: success, nothing stored.
		httpx.JSON(w, http.StatusOK, map[string]any{"inserted": false})
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"inserted": true})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []User{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	user, err := h.service.Get(r.Context(), email)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) adminStatus(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	isAdmin, err := h.service.IsAdmin(r.Context(), email)
	if err != nil {
		h.logger.Error("admin status", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}

func (h *Handler) promote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	user, err := h.service.Promote(r.Context(), id, actorEmail(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.service.Remove(r.Context(), id, actorEmail(r)); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func actorEmail(r *http.Request) string {
	if p := shared.PrincipalFromContext(r.Context()); p != nil {
		return p.Email
	}
	return ""
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
