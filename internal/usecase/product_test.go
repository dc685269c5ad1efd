package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/repo/memstore"
	"github.com/sneakerfitai/sneakerfitai/internal/usecase"
)

type recordingPublisher struct {
	created []string
	deleted []string
}

func (p *recordingPublisher) ProductCreated(ctx context.Context, product *models.Product) {
	p.created = append(p.created, product.ID)
}

func (p *recordingPublisher) ProductDeleted(ctx context.Context, id string) {
	p.deleted = append(p.deleted, id)
}

func (p *recordingPublisher) Close() error { return nil }

func TestCreateStampsTimeAndPublishes(t *testing.T) {
	publisher := &recordingPublisher{}
	uc := usecase.NewProductUsecase(memstore.New(), publisher)

	created, err := uc.Create(t.Context(), models.Product{
		Name:     "Air Zoom",
		Link:     "https://example.com/air-zoom",
		ImageSrc: "https://img.example.com/air-zoom.jpg",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, []string{created.ID}, publisher.created)
}

func TestCreateKeepsProvidedTimestamp(t *testing.T) {
	uc := usecase.NewProductUsecase(memstore.New(), &recordingPublisher{})
	stamp := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	created, err := uc.Create(t.Context(), models.Product{
		Name:      "Court Low",
		Link:      "https://example.com/court-low",
		ImageSrc:  "https://img.example.com/court-low.jpg",
		CreatedAt: stamp,
	})
	require.NoError(t, err)
	assert.Equal(t, stamp, created.CreatedAt)
}

func TestListIsNewestFirst(t *testing.T) {
	catalog := memstore.New()
	uc := usecase.NewProductUsecase(catalog, &recordingPublisher{})

	var last string
	for _, name := range []string{"one", "two", "three"} {
		created, err := uc.Create(t.Context(), models.Product{
			Name:     name,
			Link:     "https://example.com/" + name,
			ImageSrc: "https://img.example.com/" + name + ".jpg",
		})
		require.NoError(t, err)
		last = created.ID
	}

	products, err := uc.List(t.Context(), 1, 2)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, last, products[0].ID)
	assert.Equal(t, "two", products[1].Name)
}

func TestDeletePublishes(t *testing.T) {
	catalog := memstore.New()
	publisher := &recordingPublisher{}
	uc := usecase.NewProductUsecase(catalog, publisher)

	created, err := uc.Create(t.Context(), models.Product{
		Name:     "Air Zoom",
		Link:     "https://example.com/air-zoom",
		ImageSrc: "https://img.example.com/air-zoom.jpg",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(t.Context(), created.ID))
	assert.Equal(t, []string{created.ID}, publisher.deleted)
}

func TestDeleteUnknownIDPublishesNothing(t *testing.T) {
	publisher := &recordingPublisher{}
	uc := usecase.NewProductUsecase(memstore.New(), publisher)

	err := uc.Delete(t.Context(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Empty(t, publisher.deleted)
}
