// Package credentials persists the bearer credential and signed-in identity
// across process restarts. It is the client-side equivalent of browser local
// storage: two entries under an application namespace, readable at startup
// without contacting the server.
package credentials

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"presales/pkg/roles"
)

// Storage keys, namespaced to the application.
const (
	TokenKey    = "presales.auth.token"
	IdentityKey = "presales.auth.user"
)

// Identity is the persisted signed-in user.
type Identity struct {
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	Role        roles.Role `json:"role"`
}

// Store persists the credential pair. Implementations must treat the token
// and identity as independent entries but callers are expected to write and
// clear them together.
type Store interface {
	// Token returns the stored bearer credential, if any.
	Token() (string, bool)
	// Identity returns the stored identity. A stored value that cannot be
	// parsed reads as absent; it never returns an error for malformed state.
	Identity() (*Identity, bool)
	// Save writes both entries.
	Save(token string, identity Identity) error
	// Clear removes both entries. Clearing an empty store is a no-op.
	Clear() error
}

// FileStore keeps the credential pair as files in a directory, one file per
// storage key. Suited to CLI use where the directory lives under the user's
// config dir.
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(s.path(TokenKey))
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (s *FileStore) Identity() (*Identity, bool) {
	data, err := os.ReadFile(s.path(IdentityKey))
	if err != nil {
		return nil, false
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		// Malformed persisted state reads as "no session".
		return nil, false
	}
	return &id, true
}

func (s *FileStore) Save(token string, identity Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path(TokenKey), []byte(token), 0o600); err != nil {
		return err
	}
	return os.WriteFile(s.path(IdentityKey), data, 0o600)
}

func (s *FileStore) Clear() error {
	var errs []error
	for _, key := range []string{TokenKey, IdentityKey} {
		if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MemoryStore keeps the credential pair in memory. Used by tests and by
// embedders that manage persistence themselves.
type MemoryStore struct {
	mu       sync.RWMutex
	token    string
	identity *Identity
	// rawIdentity overrides identity when set, to simulate malformed
	// persisted state in tests.
	rawIdentity []byte
	hasRaw      bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Identity() (*Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hasRaw {
		var id Identity
		if err := json.Unmarshal(s.rawIdentity, &id); err != nil {
			return nil, false
		}
		return &id, true
	}
	if s.identity == nil {
		return nil, false
	}
	id := *s.identity
	return &id, true
}

func (s *MemoryStore) Save(token string, identity Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.identity = &identity
	s.hasRaw = false
	return nil
}

// SetRawIdentity stores an unparsed identity payload, bypassing Save.
func (s *MemoryStore) SetRawIdentity(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawIdentity = data
	s.hasRaw = true
	s.identity = nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.identity = nil
	s.rawIdentity = nil
	s.hasRaw = false
	return nil
}
