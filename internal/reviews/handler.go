package reviews

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

// Store is the persistence surface the handler needs.
type Store interface {
	List(ctx context.Context) ([]Review, error)
	Create(ctx context.Context, email, name, details string, rating float64) (int64, error)
}

// Handler wires HTTP endpoints for reviews.
type Handler struct {
	logger      *slog.Logger
	store       Store
	requireAuth func(http.Handler) http.Handler
	validator   *validator.Validate
}

// NewHandler constructs a reviews handler.
func NewHandler(logger *slog.Logger, store Store, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{logger: logger, store: store, requireAuth: requireAuth, validator: validator.New()}
}

// MountRoutes registers review routes. Reading is public, submitting needs
// a credential.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.With(h.requireAuth).Post("/", h.create)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("list reviews", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Review{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

type createRequest struct {
	Name    string  `json:"name" validate:"required"`
	Details string  `json:"details" validate:"required"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	id, err := h.store.Create(r.Context(), principal.Email, req.Name, req.Details, req.Rating)
	if err != nil {
		h.logger.Error("create review", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]int64{"id": id})
}
