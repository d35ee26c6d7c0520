package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
)

// Handler wires HTTP endpoints for credential issue and logout.
type Handler struct {
	logger    *slog.Logger
	tokens    *TokenManager
	cookies   CookieWriter
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, tokens *TokenManager, cookies CookieWriter) *Handler {
	return &Handler{
		logger:    logger,
		tokens:    tokens,
		cookies:   cookies,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/jwt", h.handleIssue)
	r.Post("/logout", h.handleLogout)
}

type issueRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type issueResponse struct {
	Token string `json:"token"`
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		// Signing failures stay server-side; the caller only sees a
		// generic 500.
		h.logger.Error("issue credential", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.cookies.Write(w, token, h.tokens.TTL())
	httpx.JSON(w, http.StatusOK, issueResponse{Token: token})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
