// Package memstore keeps the product catalog in process memory. State lives
// for one session only; it is the backend for tests and throwaway runs.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/repo"
	"github.com/sneakerfitai/sneakerfitai/pkg/idgen"
)

type Store struct {
	mu       sync.RWMutex
	products []models.Product // insertion order, oldest first
}

func New() *Store {
	return &Store{}
}

var _ repo.Catalog = (*Store)(nil)

func (s *Store) List(ctx context.Context, page, limit int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return repo.TailPage(s.products, page, limit), nil
}

func (s *Store) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID == "" {
		product.ID = idgen.Next()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	s.products = append(s.products, product)
	return &product, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *Store) SupportsSort() bool {
	return false
}
