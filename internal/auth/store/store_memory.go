package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"presales/internal/auth/models"
	"presales/pkg/apperrors"
)

// InMemory stores users in memory for tests and demo mode.
type InMemory struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]*models.User
	emailIdx map[string]uuid.UUID
}

// NewInMemory creates an in-memory user store.
func NewInMemory() *InMemory {
	return &InMemory{
		users:    make(map[uuid.UUID]*models.User),
		emailIdx: make(map[string]uuid.UUID),
	}
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIdx[strings.ToLower(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := *s.users[id]
	return &user, nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// Save inserts or updates the user. Email lookups are case-insensitive.
func (s *InMemory) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lower := strings.ToLower(user.Email)
	if existing, ok := s.emailIdx[lower]; ok && existing != user.ID {
		return apperrors.New(apperrors.CodeConflict, "email already in use")
	}
	copied := *user
	s.users[user.ID] = &copied
	s.emailIdx[lower] = user.ID
	return nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
