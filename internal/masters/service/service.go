// Package service implements master-list business rules: validation,
// timestamps, pagination bounds, and audit recording for mutations.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"presales/internal/audit"
	"presales/internal/masters/metrics"
	"presales/internal/masters/models"
	"presales/internal/masters/store"
	"presales/pkg/apperrors"
)

const (
	// DefaultPageSize matches what the admin screen requests.
	DefaultPageSize = 20
	// MaxPageSize caps a single page so a client cannot pull the whole
	// table in one request.
	MaxPageSize = 200
)

// Page is one page of master items plus the totals clients need to render
// pagination controls.
type Page struct {
	Items         []models.Item
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
	Last          bool
}

// Service wraps master-list business rules.
type Service struct {
	items    store.ItemStore
	recorder *audit.Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewService constructs the masters service. recorder and m may be nil.
func NewService(items store.ItemStore, recorder *audit.Recorder, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		items:    items,
		recorder: recorder,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("presales/masters"),
	}
}

// List returns one page of items for a category. Negative page or size fall
// back to defaults.
func (s *Service) List(ctx context.Context, category models.Category, page, size int) (*Page, error) {
	ctx, span := s.tracer.Start(ctx, "masters.list",
		trace.WithAttributes(
			attribute.String("masters.category", string(category)),
			attribute.Int("masters.page", page),
		))
	defer span.End()

	start := time.Now()
	s.metrics.IncrementOperations(string(category), "list")
	defer s.metrics.ObserveOperationDuration(string(category), "list", start)

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	items, total, err := s.items.List(ctx, category, page*size, size)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "listing master items")
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &Page{
		Items:         items,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}, nil
}

// Get returns a single item by id.
func (s *Service) Get(ctx context.Context, category models.Category, id uuid.UUID) (*models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "masters.get",
		trace.WithAttributes(attribute.String("masters.category", string(category))))
	defer span.End()

	item, err := s.items.Get(ctx, category, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Create adds a new item and records the mutation against the actor.
func (s *Service) Create(ctx context.Context, category models.Category, req models.CreateRequest, actor string) (*models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "masters.create",
		trace.WithAttributes(attribute.String("masters.category", string(category))))
	defer span.End()

	start := time.Now()
	s.metrics.IncrementOperations(string(category), "create")
	defer s.metrics.ObserveOperationDuration(string(category), "create", start)

	now := time.Now().UTC()
	item := &models.Item{
		ID:          uuid.New(),
		Category:    category,
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "creating master item")
	}

	s.logger.InfoContext(ctx, "master item created",
		"category", category, "id", item.ID, "name", item.Name, "actor", actor)
	s.recorder.Record(ctx, audit.Event{
		Actor:    actor,
		Action:   audit.ActionMasterCreated,
		Category: string(category),
		TargetID: item.ID.String(),
		Detail:   item.Name,
	})
	return item, nil
}

// Update replaces an item's mutable fields and records the mutation.
func (s *Service) Update(ctx context.Context, category models.Category, id uuid.UUID, req models.UpdateRequest, actor string) (*models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "masters.update",
		trace.WithAttributes(attribute.String("masters.category", string(category))))
	defer span.End()

	start := time.Now()
	s.metrics.IncrementOperations(string(category), "update")
	defer s.metrics.ObserveOperationDuration(string(category), "update", start)

	item, err := s.items.Get(ctx, category, id)
	if err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.Description = req.Description
	item.UpdatedAt = time.Now().UTC()
	if err := s.items.Update(ctx, item); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "updating master item")
	}

	s.logger.InfoContext(ctx, "master item updated",
		"category", category, "id", item.ID, "name", item.Name, "actor", actor)
	s.recorder.Record(ctx, audit.Event{
		Actor:    actor,
		Action:   audit.ActionMasterUpdated,
		Category: string(category),
		TargetID: item.ID.String(),
		Detail:   item.Name,
	})
	return item, nil
}

// Delete removes an item and records the mutation.
func (s *Service) Delete(ctx context.Context, category models.Category, id uuid.UUID, actor string) error {
	ctx, span := s.tracer.Start(ctx, "masters.delete",
		trace.WithAttributes(attribute.String("masters.category", string(category))))
	defer span.End()

	start := time.Now()
	s.metrics.IncrementOperations(string(category), "delete")
	defer s.metrics.ObserveOperationDuration(string(category), "delete", start)

	if err := s.items.Delete(ctx, category, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "master item deleted",
		"category", category, "id", id, "actor", actor)
	s.recorder.Record(ctx, audit.Event{
		Actor:    actor,
		Action:   audit.ActionMasterDeleted,
		Category: string(category),
		TargetID: id.String(),
	})
	return nil
}
