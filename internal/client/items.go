package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erazemk/najdeno/internal/model"
)

// ListItemsQuery filters and paginates ListItems. The zero value lists
// the first page of unresolved items.
type ListItemsQuery struct {
	Search          string
	Page            int
	Size            int
	Type            string
	Status          string
	UserID          string
	IncludeResolved bool
}

// CreateItemRequest holds the fields for a new posting.
type CreateItemRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// UpdateItemRequest holds the mutable fields of a posting. Lifecycle
// changes go through ClaimItem and friends.
type UpdateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// ListItems returns a page of the public item directory.
func (c *Client) ListItems(ctx context.Context, q ListItemsQuery) ([]model.Item, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		params.Set("size", strconv.Itoa(q.Size))
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.UserID != "" {
		params.Set("userId", q.UserID)
	}
	// The server hides resolved items unless told otherwise; only the
	// opt-in needs to travel.
	if q.IncludeResolved {
		params.Set("excludeResolved", "false")
	}

	endpoint := c.endpoint("items")
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var items []model.Item
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem posts a new item owned by the authenticated user.
func (c *Client) CreateItem(ctx context.Context, req CreateItemRequest) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPost, c.endpoint("items"), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem retrieves a single item by ID.
func (c *Client) GetItem(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodGet, c.endpoint("items", itemID), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces an item's mutable fields. Only the owner may call this.
func (c *Client) UpdateItem(ctx context.Context, itemID string, req UpdateItemRequest) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPut, c.endpoint("items", itemID), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem permanently removes an item and its message thread.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("items", itemID), nil, nil)
}

// ClaimItem claims an open item for userID, which must be the
// authenticated user. Fails with ErrInvalidTransition when the item is
// not open or userID owns it.
func (c *Client) ClaimItem(ctx context.Context, itemID, userID string) (*model.Item, error) {
	endpoint := c.endpoint("items", itemID, "claim") + "?userId=" + url.QueryEscape(userID)
	var item model.Item
	if err := c.do(ctx, http.MethodPut, endpoint, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UnclaimItem releases a claim, reopening the item.
func (c *Client) UnclaimItem(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPut, c.endpoint("items", itemID, "unclaim"), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ResolveItem marks an item resolved. Only the owner may call this.
func (c *Client) ResolveItem(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPut, c.endpoint("items", itemID, "resolve"), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UnresolveItem reopens a resolved item. Only the owner may call this.
func (c *Client) UnresolveItem(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPut, c.endpoint("items", itemID, "unresolve"), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
