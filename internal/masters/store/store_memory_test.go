package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presales/internal/masters/models"
)

func seedItem(t *testing.T, s *InMemory, category models.Category, name string, createdAt time.Time) models.Item {
	t.Helper()
	item := models.Item{
		ID:        uuid.New(),
		Category:  category,
		Name:      name,
		Active:    true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, s.Create(context.Background(), &item))
	return item
}

func TestInMemory_ListOrderedByCreation(t *testing.T) {
	s := NewInMemory()
	base := time.Now().UTC()

	third := seedItem(t, s, models.CategoryDomains, "Retail", base.Add(2*time.Second))
	first := seedItem(t, s, models.CategoryDomains, "Banking", base)
	second := seedItem(t, s, models.CategoryDomains, "Insurance", base.Add(time.Second))

	items, total, err := s.List(context.Background(), models.CategoryDomains, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, third.ID, items[2].ID)
}

func TestInMemory_ListPagination(t *testing.T) {
	s := NewInMemory()
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		seedItem(t, s, models.CategoryIndustries, "Item", base.Add(time.Duration(i)*time.Second))
	}

	items, total, err := s.List(context.Background(), models.CategoryIndustries, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, items, 2)

	items, total, err = s.List(context.Background(), models.CategoryIndustries, 10, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, items)
}

func TestInMemory_CategoriesAreIsolated(t *testing.T) {
	s := NewInMemory()
	now := time.Now().UTC()
	seedItem(t, s, models.CategoryDomains, "Banking", now)

	items, total, err := s.List(context.Background(), models.CategoryTechnologies, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, items)
}

func TestInMemory_GetUpdateDelete(t *testing.T) {
	s := NewInMemory()
	item := seedItem(t, s, models.CategorySBUs, "Cloud", time.Now().UTC())

	got, err := s.Get(context.Background(), models.CategorySBUs, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cloud", got.Name)

	got.Name = "Cloud Services"
	require.NoError(t, s.Update(context.Background(), got))

	got, err = s.Get(context.Background(), models.CategorySBUs, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cloud Services", got.Name)

	require.NoError(t, s.Delete(context.Background(), models.CategorySBUs, item.ID))

	_, err = s.Get(context.Background(), models.CategorySBUs, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestInMemory_UpdateMissing(t *testing.T) {
	s := NewInMemory()
	err := s.Update(context.Background(), &models.Item{
		ID:       uuid.New(),
		Category: models.CategoryDomains,
		Name:     "Ghost",
	})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestInMemory_DeleteMissing(t *testing.T) {
	s := NewInMemory()
	err := s.Delete(context.Background(), models.CategoryDomains, uuid.New())
	assert.ErrorIs(t, err, ErrItemNotFound)
}
