// Package boltstore persists the product catalog to a local bbolt file the
// way a browser keeps it in local storage: the whole list is one JSON blob
// under a fixed key, read once at startup and rewritten on every change.
package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/repo"
	"github.com/sneakerfitai/sneakerfitai/pkg/idgen"
)

const (
	bucketName = "catalog"
	recordKey  = "products"
)

type Store struct {
	mu       sync.Mutex
	db       *bbolt.DB
	log      *zap.Logger
	products []models.Product // insertion order, oldest first
}

// Open opens or creates the catalog file and loads the saved list. An
// unreadable record is discarded, never a startup failure.
func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	s := &Store{db: db, log: log}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

var _ repo.Catalog = (*Store)(nil)

func (s *Store) load() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return fmt.Errorf("failed to create catalog bucket: %w", err)
		}
		raw := b.Get([]byte(recordKey))
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, &s.products); err != nil {
			s.log.Warn("discarding unreadable catalog record", zap.Error(err))
			s.products = nil
		}
		return nil
	})
}

// flush rewrites the whole list under the record key.
func (s *Store) flush() error {
	raw, err := json.Marshal(s.products)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(recordKey), raw)
	})
}

func (s *Store) List(ctx context.Context, page, limit int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	if err := s.flush(); err != nil {
		// The in-memory list is still authoritative for this session.
		s.log.Warn("failed to persist catalog", zap.Error(err))
	}
	return &product, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			if err := s.flush(); err != nil {
				s.log.Warn("failed to persist catalog", zap.Error(err))
			}
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *Store) SupportsSort() bool {
	return false
}

func (s *Store) Close() error {
	return s.db.Close()
}
