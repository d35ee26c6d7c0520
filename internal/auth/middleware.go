package auth

import (
	"errors"
	"net/http"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

// RequireAuth is the credential verifier guard. A missing cookie or a
// credential that fails signature/expiry checks short-circuits with 401;
// otherwise the principal is attached to the request context for downstream
// guards and handlers. No store access happens here.
func RequireAuth(tokens *TokenManager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				if errors.Is(err, http.ErrNoCookie) {
					httpx.RespondError(w, httpx.ErrUnauthorized)
					return
				}
				httpx.RespondError(w, err)
				return
			}
			email, err := tokens.Verify(cookie.Value)
			if err != nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			ctx := shared.ContextWithPrincipal(r.Context(), &shared.Principal{Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
