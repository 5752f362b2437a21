package masters

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
	"presales/pkg/gateway"
	"presales/pkg/roles"
)

func newClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds := credentials.NewMemoryStore()
	require.NoError(t, creds.Save("tok", credentials.Identity{Email: "a@b.c", Role: roles.Admin}))
	return NewClient(gateway.New(creds, nil), srv.URL)
}

func TestList_DecodesContentEnvelope(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/masters/domains", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"content": []map[string]any{
					{"id": "1", "name": "Cloud", "description": "", "createdAt": "2026-01-02T15:04:05Z"},
				},
			},
		})
	}))

	items, err := client.List(context.Background(), "domains")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "Cloud", items[0].Name)
}

// After a successful create, a refetch reflects the grown list; the client
// never patches its own copy.
func TestCreateThenRefetch(t *testing.T) {
	items := []map[string]any{
		{"id": "1", "name": "Cloud", "description": "", "createdAt": "2026-01-02T15:04:05Z"},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/masters/domains", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"content": items}})
	})
	mux.HandleFunc("POST /api/v1/masters/domains", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		created := map[string]any{
			"id": "2", "name": body["name"], "description": body["description"],
			"createdAt": "2026-01-03T00:00:00Z",
		}
		items = append(items, created)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"data": created})
	})
	client := newClient(t, mux)

	first, err := client.List(context.Background(), "domains")
	require.NoError(t, err)
	require.Len(t, first, 1)

	created, err := client.Create(context.Background(), "domains", "Edge", "edge computing")
	require.NoError(t, err)
	assert.Equal(t, "2", created.ID)

	second, err := client.List(context.Background(), "domains")
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "Edge", second[1].Name)
}

func TestUpdateAndDelete_TargetItemURL(t *testing.T) {
	var gotPaths []string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/masters/industries/42", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "42", "name": "Retail"}})
	})
	mux.HandleFunc("DELETE /api/v1/masters/industries/42", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"data": nil, "message": "Deleted successfully"})
	})
	client := newClient(t, mux)

	updated, err := client.Update(context.Background(), "industries", "42", "Retail", "")
	require.NoError(t, err)
	assert.Equal(t, "Retail", updated.Name)

	require.NoError(t, client.Delete(context.Background(), "industries", "42"))
	assert.Equal(t, []string{"/api/v1/masters/industries/42", "/api/v1/masters/industries/42"}, gotPaths)
}

func TestUnknownCategoryRejectedLocally(t *testing.T) {
	called := false
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.List(context.Background(), "widgets")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeBadRequest))
	assert.False(t, called)
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("domains "))
	assert.False(t, ValidCategory(""))
}
