package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presales/pkg/apperrors"
	"presales/pkg/credentials"
	"presales/pkg/roles"
)

type fakeInvalidator struct {
	calls int
	creds *credentials.MemoryStore
}

func (f *fakeInvalidator) Invalidate() {
	f.calls++
	_ = f.creds.Clear()
}

func TestDo_AttachesBearerWhenCredentialPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	creds := credentials.NewMemoryStore()
	require.NoError(t, creds.Save("tok-9", credentials.Identity{Email: "a@b.c", Role: roles.Admin}))

	client := New(creds, nil)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/masters/domains", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok-9", gotAuth)
}

func TestDo_NoCredentialLeavesRequestUnmodified(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	client := New(credentials.NewMemoryStore(), nil)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestDo_AuthorizationFailureInvalidatesExactlyOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := credentials.NewMemoryStore()
	require.NoError(t, creds.Save("expired", credentials.Identity{Email: "a@b.c", Role: roles.Viewer}))
	inv := &fakeInvalidator{creds: creds}

	navigations := 0
	client := New(creds, inv, WithAuthExpiredHook(func() { navigations++ }))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/masters/domains", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.ErrorIs(t, err, ErrAuthExpired)
	// The original response is propagated, not suppressed.
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, 1, navigations)

	_, ok := creds.Token()
	assert.False(t, ok)
	_, ok = creds.Identity()
	assert.False(t, ok)
}

func TestJSON_DecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(map[string]string{"echo": in["name"]})
	}))
	defer srv.Close()

	client := New(credentials.NewMemoryStore(), nil)

	var out map[string]string
	err := client.JSON(context.Background(), http.MethodPost, srv.URL+"/x", map[string]string{"name": "Cloud"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Cloud", out["echo"])
}

func TestJSON_ShapesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "unknown master category"})
	}))
	defer srv.Close()

	client := New(credentials.NewMemoryStore(), nil)

	err := client.JSON(context.Background(), http.MethodGet, srv.URL+"/x", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Contains(t, err.Error(), "unknown master category")
}

func TestJSON_AuthExpiredPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	inv := &fakeInvalidator{creds: credentials.NewMemoryStore()}
	client := New(inv.creds, inv)

	err := client.JSON(context.Background(), http.MethodGet, srv.URL+"/x", nil, nil)
	require.ErrorIs(t, err, ErrAuthExpired)
	assert.Equal(t, 1, inv.calls)
}
