package payments

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

// Handler wires HTTP endpoints for settlements and payment intents.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	requireAuth func(http.Handler) http.Handler
	validator   *validator.Validate
}

// NewHandler constructs a payments handler.
func NewHandler(logger *slog.Logger, service *Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		requireAuth: requireAuth,
		validator:   validator.New(),
	}
}

// MountRoutes registers payment routes under /payments.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/", h.settle)
		r.Get("/{email}", h.history)
	})
}

// MountIntentRoute registers the payment-intent endpoint at the root.
func (h *Handler) MountIntentRoute(r chi.Router) {
	r.With(h.requireAuth).Post("/create-payment-intent", h.createIntent)
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	var req SettleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil || principal.Email != req.Email {
		// A settlement can only consume the caller's own cart.
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	result, err := h.service.Settle(r.Context(), req)
	if err != nil {
		h.logger.Error("settle payment", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	httpx.JSON(w, status, result)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil || principal.Email != email {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	list, err := h.service.History(r.Context(), email)
	if err != nil {
		h.logger.Error("payment history", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Payment{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

type intentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

func (h *Handler) createIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	secret, err := h.service.CreateIntent(r.Context(), req.Price)
	if err != nil {
		h.logger.Error("create payment intent", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}
