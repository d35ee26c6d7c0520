package rbac

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

// Middleware wires the authorization guard for HTTP handlers. It assumes
// the credential verifier already ran; a request that reaches it without a
// principal is rejected outright.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// RequireAdmin permits continuation only for principals whose stored role
// is admin. Unknown principals read as non-admin, not as errors.
func (m Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := shared.PrincipalFromContext(r.Context())
			if principal == nil {
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			isAdmin, err := m.Service.IsAdmin(r.Context(), principal.Email)
			if err != nil && !errors.Is(err, httpx.ErrNotFound) {
				if m.Logger != nil {
					m.Logger.Error("rbac role lookup", slog.Any("error", err))
				}
				httpx.RespondError(w, err)
				return
			}
			if !isAdmin {
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
