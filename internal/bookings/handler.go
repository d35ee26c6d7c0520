package bookings

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
	List(ctx context.Context) ([]Booking, error)
	ListByEmail(ctx context.Context, email string) ([]Booking, error)
	Create(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	Confirm(ctx context.Context, id int64) (*Booking, error)
}

// Handler wires HTTP endpoints for bookings.
type Handler struct {
	logger      *slog.Logger
	store       Store
	requireAuth func(http.Handler) http.Handler
	rbac        rbac.Middleware
	validator   *validator.Validate
}

// NewHandler constructs a bookings handler.
func NewHandler(logger *slog.Logger, store Store, requireAuth func(http.Handler) http.Handler, rbacMW rbac.Middleware) *Handler {
	return &Handler{
		logger:      logger,
		store:       store,
		requireAuth: requireAuth,
		rbac:        rbacMW,
		validator:   validator.New(),
	}
}

// MountRoutes registers booking routes. Listing all bookings and confirming
// are admin operations; the rest only needs a credential.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/{email}", h.listByEmail)
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Use(h.rbac.RequireAdmin())
		r.Get("/", h.list)
		r.Patch("/{id:[0-9]+}", h.confirm)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("list bookings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Booking{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) listByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil || principal.Email != email {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	list, err := h.store.ListByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("list bookings by email", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Booking{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	booking, err := h.store.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create booking", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, booking)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	booking, err := h.store.Confirm(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, booking)
}
