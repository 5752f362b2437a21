// Package masters is the API client for master-list CRUD. All calls go
// through the request gateway; the client holds no cache, so consumers
// refetch the full list after every mutation instead of patching a local
// copy.
package masters

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"presales/pkg/apperrors"
	"presales/pkg/gateway"
)

// Categories administered through the masters screen. The set is fixed;
// anything else is rejected before a request is made.
var Categories = []string{
	"domains",
	"industries",
	"technologies",
	"document-types",
	"business-units",
	"sbus",
}

// ValidCategory reports whether the category is one of the fixed set.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Item is a master-list entry as served by the API.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Client calls the masters endpoints through the gateway.
type Client struct {
	gw      *gateway.Client
	baseURL string
}

func NewClient(gw *gateway.Client, baseURL string) *Client {
	return &Client{gw: gw, baseURL: baseURL}
}

func (c *Client) categoryURL(category string) string {
	return fmt.Sprintf("%s/api/v1/masters/%s", c.baseURL, category)
}

func (c *Client) itemURL(category, id string) string {
	return fmt.Sprintf("%s/api/v1/masters/%s/%s", c.baseURL, category, id)
}

type listEnvelope struct {
	Data struct {
		Content []Item `json:"content"`
	} `json:"data"`
}

type itemEnvelope struct {
	Data Item `json:"data"`
}

type mutationBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List fetches the full list for a category.
func (c *Client) List(ctx context.Context, category string) ([]Item, error) {
	if !ValidCategory(category) {
		return nil, apperrors.New(apperrors.CodeBadRequest, "unknown master category: "+category)
	}
	var envelope listEnvelope
	if err := c.gw.JSON(ctx, http.MethodGet, c.categoryURL(category), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Content, nil
}

// Create adds an item to a category.
func (c *Client) Create(ctx context.Context, category, name, description string) (Item, error) {
	if !ValidCategory(category) {
		return Item{}, apperrors.New(apperrors.CodeBadRequest, "unknown master category: "+category)
	}
	var envelope itemEnvelope
	body := mutationBody{Name: name, Description: description}
	if err := c.gw.JSON(ctx, http.MethodPost, c.categoryURL(category), body, &envelope); err != nil {
		return Item{}, err
	}
	return envelope.Data, nil
}

// Update replaces an item's name and description.
func (c *Client) Update(ctx context.Context, category, id, name, description string) (Item, error) {
	if !ValidCategory(category) {
		return Item{}, apperrors.New(apperrors.CodeBadRequest, "unknown master category: "+category)
	}
	var envelope itemEnvelope
	body := mutationBody{Name: name, Description: description}
	if err := c.gw.JSON(ctx, http.MethodPut, c.itemURL(category, id), body, &envelope); err != nil {
		return Item{}, err
	}
	return envelope.Data, nil
}

// Delete removes an item.
func (c *Client) Delete(ctx context.Context, category, id string) error {
	if !ValidCategory(category) {
		return apperrors.New(apperrors.CodeBadRequest, "unknown master category: "+category)
	}
	return c.gw.JSON(ctx, http.MethodDelete, c.itemURL(category, id), nil, nil)
}
