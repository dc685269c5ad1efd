// Package store holds the client-side product list state machine: initial
// fetch, incremental pagination, create with best-effort color tagging, and
// optimistic delete with rollback.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/llm"
	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/repo"
)

// DefaultPageSize is the page length requested from the catalog when none
// is configured.
const DefaultPageSize = 9

// CreateInput is the raw form input for a new product. All fields are
// required; Link must be a URL.
type CreateInput struct {
	Name     string `validate:"required"`
	Link     string `validate:"required,url"`
	ImageSrc string `validate:"required"`
}

// Store owns the loaded product list for one session. It is the sole
// writer; surfaces read snapshots through Products and Filter. Mutating
// operations are exclusive: starting one while another is outstanding
// returns models.ErrOperationInFlight.
type Store struct {
	catalog  repo.Catalog
	analyzer llm.Analyzer
	validate *validator.Validate
	log      *zap.Logger
	pageSize int

	mu             sync.Mutex
	products       []models.Product // display order, newest first
	page           int
	hasMore        bool
	initialLoading bool
	loadingMore    bool
	creating       bool
	deleting       bool
}

func New(catalog repo.Catalog, analyzer llm.Analyzer, pageSize int, log *zap.Logger) *Store {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Store{
		catalog:  catalog,
		analyzer: analyzer,
		validate: validator.New(),
		log:      log,
		pageSize: pageSize,
	}
}

// Refresh loads page one and replaces the list. On failure the list is
// cleared so the surface shows an empty state alongside the error.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlightLocked() {
		s.mu.Unlock()
		return models.ErrOperationInFlight
	}
	s.initialLoading = true
	s.mu.Unlock()
	defer s.clearFlag(&s.initialLoading)

	page, err := repo.ListNewestFirst(ctx, s.catalog, 1, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Warn("initial product load failed", zap.Error(err))
		s.products = nil
		s.page = 1
		s.hasMore = false
		return fmt.Errorf("failed to load products: %w", err)
	}
	s.products = page
	s.page = 1
	s.hasMore = len(page) == s.pageSize
	return nil
}

// LoadMore fetches the page after the last loaded one and appends it.
// Loaded items are never replaced; a failed fetch leaves the list and the
// page cursor untouched so the page can be retried.
func (s *Store) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlightLocked() {
		s.mu.Unlock()
		return models.ErrOperationInFlight
	}
	if !s.hasMore {
		s.mu.Unlock()
		return models.ErrNoMorePages
	}
	next := s.page + 1
	s.loadingMore = true
	s.mu.Unlock()
	defer s.clearFlag(&s.loadingMore)

	page, err := repo.ListNewestFirst(ctx, s.catalog, next, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Warn("incremental product load failed", zap.Int("page", next), zap.Error(err))
		return fmt.Errorf("failed to load page %d: %w", next, err)
	}
	s.products = append(s.products, page...)
	s.page = next
	s.hasMore = len(page) == s.pageSize
	return nil
}

// Create validates input, derives color tags when an analyzer is
// configured, persists the product, and prepends the stored record.
// Tagging is best-effort: analyzer failures are logged and the product is
// created without tags.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Link = strings.TrimSpace(input.Link)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, describeFieldErrors(err))
	}

	s.mu.Lock()
	if s.inFlightLocked() {
		s.mu.Unlock()
		return nil, models.ErrOperationInFlight
	}
	s.creating = true
	s.mu.Unlock()
	defer s.clearFlag(&s.creating)

	product := models.Product{
		Name:      input.Name,
		Link:      input.Link,
		ImageSrc:  input.ImageSrc,
		CreatedAt: time.Now().UTC(),
	}
	if s.analyzer != nil {
		tags, err := s.analyzer.ColorTags(ctx, input.ImageSrc)
		if err != nil {
			s.log.Info("color tagging skipped", zap.Error(err))
		} else {
			product.ColorTags = tags
		}
	}

	created, err := s.catalog.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.mu.Lock()
	s.products = append([]models.Product{*created}, s.products...)
	s.mu.Unlock()
	return created, nil
}

// Delete removes the product optimistically: the local list drops it
// before the remote call, and a failed call restores the exact prior list.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.inFlightLocked() {
		s.mu.Unlock()
		return models.ErrOperationInFlight
	}
	idx := slices.IndexFunc(s.products, func(p models.Product) bool { return p.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return models.ErrNotFound
	}
	snapshot := slices.Clone(s.products)
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	s.deleting = true
	s.mu.Unlock()
	defer s.clearFlag(&s.deleting)

	if err := s.catalog.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.products = snapshot
		s.mu.Unlock()
		s.log.Warn("remote delete failed, item restored", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

// Products returns a copy of the loaded list, newest first.
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products)
}

// Filter returns the loaded products matching term, case-insensitively,
// against name or any color tag. It never mutates the list and never
// triggers a fetch; an empty term returns the full list.
func (s *Store) Filter(term string) []models.Product {
	term = strings.TrimSpace(term)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.MatchesTerm(term) {
			out = append(out, p)
		}
	}
	return out
}

// HasMore reports whether the catalog may hold another page.
func (s *Store) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// CanLoadMore reports whether the load-more affordance should be offered:
// no active search term, another page may exist, and no load is running.
func (s *Store) CanLoadMore(term string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(term) == "" && s.hasMore && !s.initialLoading && !s.loadingMore
}

// Loading reports whether the initial page load is in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialLoading
}

func (s *Store) inFlightLocked() bool {
	return s.initialLoading || s.loadingMore || s.creating || s.deleting
}

func (s *Store) clearFlag(flag *bool) {
	s.mu.Lock()
	*flag = false
	s.mu.Unlock()
}

// describeFieldErrors turns validator output into a short user-facing
// notice such as "name is required; link must be a valid URL".
func describeFieldErrors(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "url":
			parts = append(parts, field+" must be a valid URL")
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
