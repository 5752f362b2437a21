// Package store persists user accounts. Two implementations: in-memory for
// tests and demo mode, PostgreSQL for real deployments.
package store

import (
	"context"

	"github.com/google/uuid"

	"presales/internal/auth/models"
	"presales/pkg/apperrors"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = apperrors.New(apperrors.CodeNotFound, "user not found")

// UserStore is the persistence contract for accounts.
//
// Error contract: FindBy* return ErrUserNotFound when no row matches; Save
// returns a conflict error for a duplicate email; infrastructure failures are
// returned wrapped with context.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int, error)
}
