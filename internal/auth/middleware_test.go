package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haqueashraful/bistro-server/internal/shared"
)

const testCookieName = "bistro_token"

func TestRequireAuthMissingCookie(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	guard := RequireAuth(tm, testCookieName)

	called := false
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/carts", nil))

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.False(t, called)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	guard := RequireAuth(tm, testCookieName)

	called := false
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "tampered"})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.False(t, called)
}

func TestRequireAuthAttachesPrincipal(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	guard := RequireAuth(tm, testCookieName)

	token, err := tm.Issue("guest@bistro.local")
	require.NoError(t, err)

	var principal *shared.Principal
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = shared.PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "guest@bistro.local", principal.Email)
}
