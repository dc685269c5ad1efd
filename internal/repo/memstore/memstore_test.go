package memstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/repo/memstore"
)

func TestCreateAssignsIdentity(t *testing.T) {
	st := memstore.New()

	created, err := st.Create(t.Context(), models.Product{Name: "Air Max 90", Link: "https://shop.example.com/am90"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	second, err := st.Create(t.Context(), models.Product{Name: "Dunk Low"})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)
}

func TestListPagesFromTheTail(t *testing.T) {
	st := memstore.New()
	for _, name := range []string{"one", "two", "three", "four", "five"} {
		_, err := st.Create(t.Context(), models.Product{Name: name, CreatedAt: time.Now().UTC()})
		require.NoError(t, err)
	}

	assert.False(t, st.SupportsSort())

	page1, err := st.List(t.Context(), 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "four", page1[0].Name)
	assert.Equal(t, "five", page1[1].Name)

	page3, err := st.List(t.Context(), 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "one", page3[0].Name)

	empty, err := st.List(t.Context(), 4, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDelete(t *testing.T) {
	st := memstore.New()
	created, err := st.Create(t.Context(), models.Product{Name: "Air Max 90"})
	require.NoError(t, err)

	require.NoError(t, st.Delete(t.Context(), created.ID))

	page, err := st.List(t.Context(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	assert.ErrorIs(t, st.Delete(t.Context(), created.ID), models.ErrNotFound)
}
