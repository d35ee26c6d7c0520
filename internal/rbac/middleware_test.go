package rbac

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

type stubRoleFinder struct {
	roles map[string]Role
	err   error
	calls int
}

func (s *stubRoleFinder) RoleByEmail(ctx context.Context, email string) (Role, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	role, ok := s.roles[email]
	if !ok {
		return "", httpx.ErrNotFound
	}
	return role, nil
}

func requestAs(email string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin-stats", nil)
	if email == "" {
		return req
	}
	ctx := shared.ContextWithPrincipal(req.Context(), &shared.Principal{Email: email})
	return req.WithContext(ctx)
}

func runGuard(finder *stubRoleFinder, req *http.Request) (*httptest.ResponseRecorder, bool) {
	mw := Middleware{Service: NewService(finder)}
	called := false
	handler := mw.RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res, called
}

func TestRequireAdminNoPrincipal(t *testing.T) {
	finder := &stubRoleFinder{}
	res, called := runGuard(finder, requestAs(""))

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.False(t, called)
	assert.Zero(t, finder.calls, "role store must not be consulted without a principal")
}

func TestRequireAdminNonAdmin(t *testing.T) {
	finder := &stubRoleFinder{roles: map[string]Role{"guest@bistro.local": RoleUser}}
	res, called := runGuard(finder, requestAs("guest@bistro.local"))

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.False(t, called)
}

func TestRequireAdminUnknownPrincipal(t *testing.T) {
	finder := &stubRoleFinder{}
	res, called := runGuard(finder, requestAs("ghost@bistro.local"))

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.False(t, called)
}

func TestRequireAdminPasses(t *testing.T) {
	finder := &stubRoleFinder{roles: map[string]Role{"boss@bistro.local": RoleAdmin}}
	res, called := runGuard(finder, requestAs("boss@bistro.local"))

	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, called)
}

func TestRequireAdminStoreError(t *testing.T) {
	finder := &stubRoleFinder{err: errors.New("connection refused")}
	res, called := runGuard(finder, requestAs("boss@bistro.local"))

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.False(t, called)
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"user", "admin"} {
		role, err := ParseRole(valid)
		assert.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}
	for _, invalid := range []string{"", "superadmin", "Admin"} {
		_, err := ParseRole(invalid)
		assert.Error(t, err, "role %q", invalid)
	}
}
