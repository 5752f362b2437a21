package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presales/pkg/roles"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	identity := Identity{Email: "admin@example.com", DisplayName: "Admin", Role: roles.Admin}
	require.NoError(t, store.Save("tok-123", identity))

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	got, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, identity, *got)
}

func TestFileStore_EmptyReadsAsAbsent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Token()
	assert.False(t, ok)
	_, ok = store.Identity()
	assert.False(t, ok)
}

func TestFileStore_MalformedIdentityReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, IdentityKey), []byte("{not json"), 0o600))

	_, ok := store.Identity()
	assert.False(t, ok)
}

func TestFileStore_ClearRemovesBothEntries(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("tok", Identity{Email: "a@b.c", Role: roles.Viewer}))
	require.NoError(t, store.Clear())

	_, ok := store.Token()
	assert.False(t, ok)
	_, ok = store.Identity()
	assert.False(t, ok)

	_, err = os.Stat(filepath.Join(dir, TokenKey))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

func TestMemoryStore_MalformedRawIdentity(t *testing.T) {
	store := NewMemoryStore()
	store.SetRawIdentity([]byte("???"))

	_, ok := store.Identity()
	assert.False(t, ok)
}

func TestMemoryStore_SaveOverridesRaw(t *testing.T) {
	store := NewMemoryStore()
	store.SetRawIdentity([]byte("???"))
	require.NoError(t, store.Save("tok", Identity{Email: "x@y.z", Role: roles.Editor}))

	got, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, "x@y.z", got.Email)
}
