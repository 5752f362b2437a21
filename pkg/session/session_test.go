package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presales/pkg/credentials"
	"presales/pkg/roles"
)

func loginServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSignIn_SuccessWithDataEnvelope(t *testing.T) {
	srv := loginServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@example.com", req["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"token":       "tok-1",
				"email":       "admin@example.com",
				"displayName": "Admin",
				"role":        "ADMIN",
			},
		})
	})

	creds := credentials.NewMemoryStore()
	store := New(creds, srv.URL)

	require.NoError(t, store.SignIn(context.Background(), "admin@example.com", "secret"))

	assert.True(t, store.IsAuthenticated())
	assert.Empty(t, store.LastError())
	assert.False(t, store.IsLoading())

	identity := store.Identity()
	require.NotNil(t, identity)
	assert.Equal(t, "Admin", identity.DisplayName)
	assert.Equal(t, roles.Admin, identity.Role)

	// Persisted copy must reconstruct the in-memory identity.
	token, ok := creds.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-1", token)
	persisted, ok := creds.Identity()
	require.True(t, ok)
	assert.Equal(t, *identity, *persisted)
}

func TestSignIn_SuccessWithTopLevelPayload(t *testing.T) {
	srv := loginServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token":       "tok-2",
			"email":       "editor@example.com",
			"displayName": "Editor",
			"role":        "EDITOR",
		})
	})

	store := New(credentials.NewMemoryStore(), srv.URL)
	require.NoError(t, store.SignIn(context.Background(), "editor@example.com", "secret"))

	identity := store.Identity()
	require.NotNil(t, identity)
	assert.Equal(t, roles.Editor, identity.Role)
}

func TestSignIn_APIErrorSurfacesServerMessage(t *testing.T) {
	srv := loginServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	})

	creds := credentials.NewMemoryStore()
	store := New(creds, srv.URL)

	err := store.SignIn(context.Background(), "user@x.com", "wrongpass")
	require.Error(t, err)

	assert.Equal(t, "Invalid credentials", store.LastError())
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Identity())

	// A rejected attempt must leave persisted storage untouched.
	_, ok := creds.Token()
	assert.False(t, ok)
}

func TestSignIn_MessageFieldFallback(t *testing.T) {
	srv := loginServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Account locked"})
	})

	store := New(credentials.NewMemoryStore(), srv.URL)
	require.Error(t, store.SignIn(context.Background(), "user@x.com", "pw"))
	assert.Equal(t, "Account locked", store.LastError())
}

func TestSignIn_TransportErrorUsesGenericMessage(t *testing.T) {
	srv := loginServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	store := New(credentials.NewMemoryStore(), srv.URL)
	require.Error(t, store.SignIn(context.Background(), "user@x.com", "pw"))
	assert.Equal(t, genericSignInError, store.LastError())
}

func TestSignIn_LoadingSpansExactlyOneAttempt(t *testing.T) {
	release := make(chan struct{})
	srv := loginServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
	})

	store := New(credentials.NewMemoryStore(), srv.URL)
	assert.False(t, store.IsLoading())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.SignIn(context.Background(), "user@x.com", "pw")
	}()

	require.Eventually(t, store.IsLoading, time.Second, time.Millisecond)
	close(release)
	<-done

	assert.False(t, store.IsLoading())
}

func TestSignIn_DoesNotClearPriorErrorOnNewAttempt(t *testing.T) {
	release := make(chan struct{})
	srv := loginServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok", "email": "u@x.com", "displayName": "U", "role": "VIEWER",
		})
	})

	store := New(credentials.NewMemoryStore(), srv.URL)
	store.mu.Lock()
	store.lastErr = "Invalid credentials"
	store.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.SignIn(context.Background(), "u@x.com", "pw")
	}()

	// The stale message stays visible while the new attempt is in flight;
	// callers wanting a clean slate call ClearError first.
	require.Eventually(t, store.IsLoading, time.Second, time.Millisecond)
	assert.Equal(t, "Invalid credentials", store.LastError())

	close(release)
	<-done
	assert.Empty(t, store.LastError())
}

func TestClearError(t *testing.T) {
	store := New(credentials.NewMemoryStore(), "http://unused")
	store.mu.Lock()
	store.lastErr = "stale"
	store.mu.Unlock()

	store.ClearError()
	assert.Empty(t, store.LastError())
}

func TestSignOut_ClearsEverythingAndIsIdempotent(t *testing.T) {
	creds := credentials.NewMemoryStore()
	require.NoError(t, creds.Save("tok", credentials.Identity{Email: "a@b.c", Role: roles.Admin}))

	store := New(creds, "http://unused")
	require.True(t, store.IsAuthenticated())

	store.SignOut()

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Identity())
	assert.Empty(t, store.LastError())
	_, ok := creds.Token()
	assert.False(t, ok)
	_, ok = creds.Identity()
	assert.False(t, ok)

	// Second call: same end state, no panic, no error surfaced.
	store.SignOut()
	assert.False(t, store.IsAuthenticated())
}

func TestNew_LoadsPersistedIdentity(t *testing.T) {
	creds := credentials.NewMemoryStore()
	require.NoError(t, creds.Save("tok", credentials.Identity{Email: "a@b.c", DisplayName: "A", Role: roles.Viewer}))

	store := New(creds, "http://unused")
	assert.True(t, store.IsAuthenticated())
	require.NotNil(t, store.Identity())
	assert.Equal(t, "a@b.c", store.Identity().Email)
}

func TestNew_MalformedPersistedIdentityIsNoSession(t *testing.T) {
	creds := credentials.NewMemoryStore()
	creds.SetRawIdentity([]byte("{broken"))

	store := New(creds, "http://unused")
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Identity())
}

func TestIsAuthenticated_TracksIdentityExactly(t *testing.T) {
	store := New(credentials.NewMemoryStore(), "http://unused")
	assert.Equal(t, store.Identity() != nil, store.IsAuthenticated())

	srv := loginServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok", "email": "u@x.com", "displayName": "U", "role": "VIEWER",
		})
	})
	store = New(credentials.NewMemoryStore(), srv.URL)
	require.NoError(t, store.SignIn(context.Background(), "u@x.com", "pw"))
	assert.Equal(t, store.Identity() != nil, store.IsAuthenticated())

	store.SignOut()
	assert.Equal(t, store.Identity() != nil, store.IsAuthenticated())
}
