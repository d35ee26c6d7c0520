package carts

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/rbac"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

// Store is the persistence surface the handler needs.
type Store interface {
	ListByEmail(ctx context.Context, email string) ([]CartItem, error)
	Add(ctx context.Context, req AddItemRequest) (int64, error)
	Remove(ctx context.Context, id int64, email string) error
}

// Handler wires HTTP endpoints for carts. Every route requires a verified
// credential; rows are only ever visible to their owner or an admin.
type Handler struct {
	logger      *slog.Logger
	store       Store
	authz       *rbac.Service
	requireAuth func(http.Handler) http.Handler
	validator   *validator.Validate
}

// NewHandler constructs a carts handler.
func NewHandler(logger *slog.Logger, store Store, authz *rbac.Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{
		logger:      logger,
		store:       store,
		authz:       authz,
		requireAuth: requireAuth,
		validator:   validator.New(),
	}
}

// MountRoutes registers cart routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/", h.list)
		r.Post("/", h.add)
		r.Delete("/{id}", h.remove)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if !h.ownerOrAdmin(r, email) {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	items, err := h.store.ListByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("list cart", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []CartItem{}
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if !h.ownerOrAdmin(r, req.Email) {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	id, err := h.store.Add(r.Context(), req)
	if err != nil {
		h.logger.Error("add cart item", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	if err := h.store.Remove(r.Context(), id, principal.Email); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ownerOrAdmin(r *http.Request, email string) bool {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		return false
	}
	if principal.Email == email {
		return true
	}
	isAdmin, err := h.authz.IsAdmin(r.Context(), principal.Email)
	if err != nil {
		return false
	}
	return isAdmin
}
