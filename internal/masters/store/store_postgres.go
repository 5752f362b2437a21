package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"presales/internal/masters/models"
)

// Postgres persists master items in PostgreSQL. All categories share one
// table keyed by a category column.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed item store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) List(ctx context.Context, category models.Category, offset, limit int) ([]models.Item, int64, error) {
	var total int64
	countQuery := `SELECT count(*) FROM masters WHERE category = $1`
	if err := s.db.QueryRowContext(ctx, countQuery, string(category)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count masters: %w", err)
	}

	query := `
		SELECT id, category, name, description, active, created_at, updated_at
		FROM masters
		WHERE category = $1
		ORDER BY created_at, id
		OFFSET $2 LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, string(category), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list masters: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list masters: %w", err)
	}
	return items, total, nil
}

func (s *Postgres) Get(ctx context.Context, category models.Category, id uuid.UUID) (*models.Item, error) {
	query := `
		SELECT id, category, name, description, active, created_at, updated_at
		FROM masters
		WHERE category = $1 AND id = $2
	`
	item, err := scanItem(s.db.QueryRowContext(ctx, query, string(category), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *Postgres) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO masters (id, category, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		string(item.Category),
		item.Name,
		item.Description,
		item.Active,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create master item: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE masters
		SET name = $3, description = $4, active = $5, updated_at = $6
		WHERE category = $1 AND id = $2
	`
	res, err := s.db.ExecContext(ctx, query,
		string(item.Category),
		item.ID,
		item.Name,
		item.Description,
		item.Active,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update master item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update master item: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, category models.Category, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM masters WHERE category = $1 AND id = $2`, string(category), id)
	if err != nil {
		return fmt.Errorf("delete master item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete master item: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	var category string
	err := row.Scan(
		&item.ID,
		&category,
		&item.Name,
		&item.Description,
		&item.Active,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan master item: %w", err)
	}
	item.Category = models.Category(category)
	return &item, nil
}
