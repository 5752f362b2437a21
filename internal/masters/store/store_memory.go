package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"presales/internal/masters/models"
)

// InMemory stores master items in memory for tests and demo mode.
type InMemory struct {
	mu    sync.RWMutex
	items map[models.Category]map[uuid.UUID]models.Item
}

// NewInMemory creates an in-memory item store.
func NewInMemory() *InMemory {
	items := make(map[models.Category]map[uuid.UUID]models.Item, len(models.AllCategories))
	for _, c := range models.AllCategories {
		items[c] = make(map[uuid.UUID]models.Item)
	}
	return &InMemory{items: items}
}

func (s *InMemory) sorted(category models.Category) []models.Item {
	all := make([]models.Item, 0, len(s.items[category]))
	for _, item := range s.items[category] {
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all
}

func (s *InMemory) List(_ context.Context, category models.Category, offset, limit int) ([]models.Item, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sorted(category)
	total := int64(len(all))

	if offset >= len(all) {
		return []models.Item{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return append([]models.Item(nil), all[offset:end]...), total, nil
}

func (s *InMemory) Get(_ context.Context, category models.Category, id uuid.UUID) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[category][id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (s *InMemory) Create(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.Category][item.ID] = *item
	return nil
}

func (s *InMemory) Update(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.Category][item.ID]; !ok {
		return ErrItemNotFound
	}
	s.items[item.Category][item.ID] = *item
	return nil
}

func (s *InMemory) Delete(_ context.Context, category models.Category, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[category][id]; !ok {
		return ErrItemNotFound
	}
	delete(s.items[category], id)
	return nil
}
