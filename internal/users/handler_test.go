package users

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haqueashraful/bistro-server/internal/platform/httpx"
	"github.com/haqueashraful/bistro-server/internal/rbac"
	"github.com/haqueashraful/bistro-server/internal/shared"
)

func authAs() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := r.Header.Get("X-Test-Principal")
			if email == "" {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			ctx := shared.ContextWithPrincipal(r.Context(), &shared.Principal{Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(t *testing.T, store *mockStore) chi.Router {
	t.Helper()
	svc := NewService(store, nil, nil)
	rbacMW := rbac.Middleware{Service: rbac.NewService(store), Logger: slog.Default()}
	h := NewHandler(slog.Default(), svc, authAs(), rbacMW)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func seedAdmin(t *testing.T, store *mockStore) {
	t.Helper()
	_, err := store.Create(context.Background(), "boss@bistro.local", "Boss")
	require.NoError(t, err)
	require.NoError(t, store.UpdateRole(context.Background(), store.byEmail["boss@bistro.local"].ID, rbac.RoleAdmin))
}

func doJSON(r chi.Router, method, path, principal, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if principal != "" {
		req.Header.Set("X-Test-Principal", principal)
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func TestRegisterEndpoint(t *testing.T) {
	r := newTestRouter(t, newMockStore())

	res := doJSON(r, http.MethodPost, "/", "", `{"email":"guest@bistro.local","name":"Guest"}`)
	require.Equal(t, http.StatusCreated, res.Code)
	assert.Contains(t, res.Body.String(), `"inserted":true`)

	res = doJSON(r, http.MethodPost, "/", "", `{"email":"guest@bistro.local","name":"Guest"}`)
	require.Equal(t, http.StatusOK, res.Code, "repeat registration succeeds without inserting")
	assert.Contains(t, res.Body.String(), `"inserted":false`)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter(t, newMockStore())

	res := doJSON(r, http.MethodPost, "/", "", `{"email":"nope","name":"Guest"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestGetRequiresCredential(t *testing.T) {
	store := newMockStore()
	_, err := store.Create(context.Background(), "guest@bistro.local", "Guest")
	require.NoError(t, err)
	r := newTestRouter(t, store)

	res := doJSON(r, http.MethodGet, "/guest@bistro.local", "", "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = doJSON(r, http.MethodGet, "/guest@bistro.local", "guest@bistro.local", "")
	assert.Equal(t, http.StatusOK, res.Code)

	res = doJSON(r, http.MethodGet, "/ghost@bistro.local", "guest@bistro.local", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestAdminStatusEndpoint(t *testing.T) {
	store := newMockStore()
	seedAdmin(t, store)
	r := newTestRouter(t, store)

	res := doJSON(r, http.MethodGet, "/admin/boss@bistro.local", "guest@bistro.local", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"isAdmin":true`)

	res = doJSON(r, http.MethodGet, "/admin/ghost@bistro.local", "guest@bistro.local", "")
	require.Equal(t, http.StatusOK, res.Code, "unknown email reads as non-admin, not 404")
	assert.Contains(t, res.Body.String(), `"isAdmin":false`)
}

func TestListRequiresAdmin(t *testing.T) {
	store := newMockStore()
	seedAdmin(t, store)
	_, err := store.Create(context.Background(), "guest@bistro.local", "Guest")
	require.NoError(t, err)
	r := newTestRouter(t, store)

	res := doJSON(r, http.MethodGet, "/", "guest@bistro.local", "")
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = doJSON(r, http.MethodGet, "/", "boss@bistro.local", "")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestPromoteEndpoint(t *testing.T) {
	store := newMockStore()
	seedAdmin(t, store)
	_, err := store.Create(context.Background(), "guest@bistro.local", "Guest")
	require.NoError(t, err)
	guestID := store.byEmail["guest@bistro.local"].ID
	r := newTestRouter(t, store)

	res := doJSON(r, http.MethodPatch, "/admin/"+itoa(guestID), "boss@bistro.local", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"role":"admin"`)
}

func TestDeleteEndpoint(t *testing.T) {
	store := newMockStore()
	seedAdmin(t, store)
	_, err := store.Create(context.Background(), "guest@bistro.local", "Guest")
	require.NoError(t, err)
	guestID := store.byEmail["guest@bistro.local"].ID
	r := newTestRouter(t, store)

	res := doJSON(r, http.MethodDelete, "/"+itoa(guestID), "guest@bistro.local", "")
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = doJSON(r, http.MethodDelete, "/"+itoa(guestID), "boss@bistro.local", "")
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(r, http.MethodDelete, "/"+itoa(guestID), "boss@bistro.local", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}
