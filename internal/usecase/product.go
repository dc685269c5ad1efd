// Package usecase wires the HTTP surface to a catalog backend and the
// event publisher.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sneakerfitai/sneakerfitai/internal/events"
	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/repo"
)

type ProductUsecase interface {
	List(ctx context.Context, page, limit int) ([]models.Product, error)
	Create(ctx context.Context, product models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type productUsecase struct {
	catalog   repo.Catalog
	publisher events.Publisher
}

func NewProductUsecase(catalog repo.Catalog, publisher events.Publisher) ProductUsecase {
	return &productUsecase{
		catalog:   catalog,
		publisher: publisher,
	}
}

// List returns one page, newest first, regardless of the backend's native
// ordering.
func (uc *productUsecase) List(ctx context.Context, page, limit int) ([]models.Product, error) {
	products, err := repo.ListNewestFirst(ctx, uc.catalog, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (uc *productUsecase) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	created, err := uc.catalog.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	uc.publisher.ProductCreated(ctx, created)
	return created, nil
}

func (uc *productUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.catalog.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	uc.publisher.ProductDeleted(ctx, id)
	return nil
}
