package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, chi.Router) {
	t.Helper()
	tm := NewTokenManager("test-secret", time.Hour)
	h := NewHandler(slog.Default(), tm, CookieWriter{Name: testCookieName})
	r := chi.NewRouter()
	h.MountRoutes(r)
	return h, r
}

func findCookie(t *testing.T, res *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range res.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestIssueSetsCookie(t *testing.T) {
	h, r := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"guest@bistro.local"}`))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"token"`)

	cookie := findCookie(t, res, testCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Positive(t, cookie.MaxAge)

	email, err := h.tokens.Verify(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "guest@bistro.local", email)
}

func TestIssueRejectsBadEmail(t *testing.T) {
	_, r := newTestHandler(t)

	for _, body := range []string{`{"email":"not-an-email"}`, `{}`, `{"email":`} {
		req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)
		assert.Equal(t, http.StatusBadRequest, res.Code, "body %q", body)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	_, r := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"success":true`)

	cookie := findCookie(t, res, testCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
