// Package models contains the master-list domain: small reference lists
// (domains, industries, technologies and the like) administered through the
// masters screen.
package models

import (
	"time"

	"github.com/google/uuid"

	"presales/pkg/apperrors"
)

// Category is a closed enumeration of master-list categories. The URL slug is
// the canonical representation.
type Category string

const (
	CategoryDomains       Category = "domains"
	CategoryIndustries    Category = "industries"
	CategoryTechnologies  Category = "technologies"
	CategoryDocumentTypes Category = "document-types"
	CategoryBusinessUnits Category = "business-units"
	CategorySBUs          Category = "sbus"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryDomains,
	CategoryIndustries,
	CategoryTechnologies,
	CategoryDocumentTypes,
	CategoryBusinessUnits,
	CategorySBUs,
}

// ParseCategory validates a URL slug. Unknown categories are a not-found
// condition, mirroring how an unknown collection URL behaves.
func ParseCategory(slug string) (Category, error) {
	for _, c := range AllCategories {
		if string(c) == slug {
			return c, nil
		}
	}
	return "", apperrors.New(apperrors.CodeNotFound, "unknown master category: "+slug)
}

// Item is a single master-list entry.
type Item struct {
	ID          uuid.UUID
	Category    Category
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemDTO is the JSON shape served to clients.
type ItemDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DTO maps the entity to its response shape.
func (i *Item) DTO() ItemDTO {
	return ItemDTO{
		ID:          i.ID.String(),
		Name:        i.Name,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// CreateRequest carries the fields for a new item.
type CreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateRequest replaces an item's mutable fields.
type UpdateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
