// Package seeder populates empty stores with demo users and starter master
// data so a fresh instance is usable immediately.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authmodels "presales/internal/auth/models"
	mastermodels "presales/internal/masters/models"
	"presales/pkg/roles"
)

// UserStore defines the methods needed to seed users.
type UserStore interface {
	Save(ctx context.Context, user *authmodels.User) error
	Count(ctx context.Context) (int, error)
}

// ItemStore defines the methods needed to seed master items.
type ItemStore interface {
	Create(ctx context.Context, item *mastermodels.Item) error
}

// Seeder populates stores with demo data.
type Seeder struct {
	users  UserStore
	items  ItemStore
	logger *slog.Logger
}

// New creates a seeder.
func New(users UserStore, items ItemStore, logger *slog.Logger) *Seeder {
	return &Seeder{users: users, items: items, logger: logger}
}

// SeedAll populates the stores. It is a no-op when users already exist, so
// restarting against a populated database does not duplicate data.
func (s *Seeder) SeedAll(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("checking existing users: %w", err)
	}
	if count > 0 {
		s.logger.Info("stores already populated, skipping seed", "users", count)
		return nil
	}

	s.logger.Info("seeding demo data...")

	seeded, err := s.seedUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	itemCount, err := s.seedMasters(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed master data: %w", err)
	}

	s.logger.Info("demo data seeded successfully",
		"users", seeded,
		"master_items", itemCount,
	)
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) (int, error) {
	demoUsers := []struct {
		email       string
		displayName string
		password    string
		role        roles.Role
		status      authmodels.UserStatus
	}{
		{"admin@presales.local", "Asha Nair", "admin123", roles.Admin, authmodels.UserStatusActive},
		{"editor@presales.local", "Rohan Mehta", "editor123", roles.Editor, authmodels.UserStatusActive},
		{"viewer@presales.local", "Priya Iyer", "viewer123", roles.Viewer, authmodels.UserStatusActive},
		{"inactive@presales.local", "Dev Kapoor", "inactive123", roles.Viewer, authmodels.UserStatusInactive},
	}

	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return 0, err
		}
		user := &authmodels.User{
			ID:           uuid.New(),
			Email:        u.email,
			DisplayName:  u.displayName,
			PasswordHash: string(hash),
			Role:         u.role,
			Status:       u.status,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.users.Save(ctx, user); err != nil {
			return 0, err
		}
	}
	return len(demoUsers), nil
}

func (s *Seeder) seedMasters(ctx context.Context) (int, error) {
	starter := map[mastermodels.Category][]struct {
		name        string
		description string
	}{
		mastermodels.CategoryDomains: {
			{"Banking", "Retail and corporate banking"},
			{"Insurance", "Life and general insurance"},
			{"Retail", "Commerce and supply chain"},
		},
		mastermodels.CategoryIndustries: {
			{"Financial Services", ""},
			{"Healthcare", ""},
			{"Manufacturing", ""},
		},
		mastermodels.CategoryTechnologies: {
			{"Java", ""},
			{"React", ""},
			{"PostgreSQL", ""},
		},
		mastermodels.CategoryDocumentTypes: {
			{"Proposal", "Full solution proposal"},
			{"Case Study", ""},
			{"SOW", "Statement of work"},
		},
		mastermodels.CategoryBusinessUnits: {
			{"Digital Engineering", ""},
			{"Data & AI", ""},
		},
		mastermodels.CategorySBUs: {
			{"Cloud Services", ""},
			{"Enterprise Apps", ""},
		},
	}

	total := 0
	base := time.Now().UTC()
	for _, category := range mastermodels.AllCategories {
		for i, entry := range starter[category] {
			// Staggered timestamps keep list order deterministic.
			createdAt := base.Add(time.Duration(i) * time.Millisecond)
			item := &mastermodels.Item{
				ID:          uuid.New(),
				Category:    category,
				Name:        entry.name,
				Description: entry.description,
				Active:      true,
				CreatedAt:   createdAt,
				UpdatedAt:   createdAt,
			}
			if err := s.items.Create(ctx, item); err != nil {
				return 0, err
			}
			total++
		}
	}
	return total, nil
}
