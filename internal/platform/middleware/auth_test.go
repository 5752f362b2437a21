package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presales/pkg/roles"
)

type fakeValidator struct {
	principal *Principal
	err       error
}

func (f *fakeValidator) Validate(token string) (*Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.principal, nil
}

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := GetPrincipal(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Email", p.Email)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	validator := &fakeValidator{principal: &Principal{Email: "a@b.c", Role: roles.Editor}}
	handler := RequireAuth(validator, slog.Default())(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/masters/domains", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@b.c", rec.Header().Get("X-Email"))
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	handler := RequireAuth(&fakeValidator{}, slog.Default())(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Missing or invalid credentials"}`, rec.Body.String())
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	validator := &fakeValidator{err: errors.New("token expired")}
	handler := RequireAuth(validator, slog.Default())(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireMasterAdmin(t *testing.T) {
	tests := []struct {
		name string
		role roles.Role
		want int
	}{
		{name: "admin passes", role: roles.Admin, want: http.StatusOK},
		{name: "editor forbidden", role: roles.Editor, want: http.StatusForbidden},
		{name: "viewer forbidden", role: roles.Viewer, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &fakeValidator{principal: &Principal{Email: "u@x.com", Role: tt.role}}
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireAuth(validator, slog.Default())(RequireMasterAdmin(slog.Default())(inner))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/masters/domains", nil)
			req.Header.Set("Authorization", "Bearer tok")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireMasterAdmin_WithoutAuthContext(t *testing.T) {
	handler := RequireMasterAdmin(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
