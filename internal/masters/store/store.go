// Package store persists master-list items. Two implementations: in-memory
// for tests and demo mode, PostgreSQL for real deployments.
package store

import (
	"context"

	"github.com/google/uuid"

	"presales/internal/masters/models"
	"presales/pkg/apperrors"
)

// ErrItemNotFound is returned when no item matches the lookup.
var ErrItemNotFound = apperrors.New(apperrors.CodeNotFound, "master item not found")

// ItemStore is the persistence contract for master-list items. List returns
// items ordered by creation time, oldest first, so pages are stable between
// refetches.
type ItemStore interface {
	List(ctx context.Context, category models.Category, offset, limit int) ([]models.Item, int64, error)
	Get(ctx context.Context, category models.Category, id uuid.UUID) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, category models.Category, id uuid.UUID) error
}
