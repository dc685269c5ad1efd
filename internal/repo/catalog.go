// Package repo defines the catalog contract shared by every product
// backend: the remote REST client, the in-memory and file-backed local
// stores, and the MongoDB store behind the hosted API.
package repo

import (
	"context"
	"slices"

	"github.com/sneakerfitai/sneakerfitai/internal/models"
)

// Catalog is the storage contract the product store and the API server
// drive. A page is at most limit items; a shorter page signals the end of
// the collection.
type Catalog interface {
	// List returns one page of products. Backends with native sorting
	// return pages newest first; backends without (SupportsSort false)
	// return their natural ascending order and leave reversal to the
	// caller.
	List(ctx context.Context, page, limit int) ([]models.Product, error)

	// Create persists a new product and returns the stored record with its
	// assigned id.
	Create(ctx context.Context, product models.Product) (*models.Product, error)

	// Delete removes a product by id. Unknown ids return models.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// SupportsSort reports whether List pages are already newest first.
	SupportsSort() bool
}

// ListNewestFirst fetches one page in display order, reversing pages from
// backends without native sorting.
func ListNewestFirst(ctx context.Context, c Catalog, page, limit int) ([]models.Product, error) {
	items, err := c.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	if !c.SupportsSort() {
		slices.Reverse(items)
	}
	return items, nil
}

// TailPage returns the page-th window of size limit counted from the end of
// items, preserving ascending order inside the window. Page 1 holds the
// most recently appended items; a page past the beginning is empty.
func TailPage[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 {
		return nil
	}
	end := len(items) - (page-1)*limit
	if end <= 0 {
		return nil
	}
	start := end - limit
	if start < 0 {
		start = 0
	}
	return slices.Clone(items[start:end])
}
