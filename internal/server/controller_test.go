package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/config"
	"github.com/sneakerfitai/sneakerfitai/internal/events"
	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/repo/memstore"
	pkgmdw "github.com/sneakerfitai/sneakerfitai/internal/server/middleware"
	"github.com/sneakerfitai/sneakerfitai/internal/usecase"
)

type fakeUsecase struct {
	products  []models.Product
	lastPage  int
	lastLimit int
}

func (f *fakeUsecase) List(ctx context.Context, page, limit int) ([]models.Product, error) {
	f.lastPage = page
	f.lastLimit = limit
	return f.products, nil
}

func (f *fakeUsecase) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	product.ID = "fake-1"
	return &product, nil
}

func (f *fakeUsecase) Delete(ctx context.Context, id string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{PageSize: 9},
	}
}

// newTestController wires the handlers to an in-memory catalog with
// publishing disabled.
func newTestController(t *testing.T) (Controller, *memstore.Store) {
	t.Helper()
	catalog := memstore.New()
	publisher, err := events.NewPublisher(testConfig(), zap.NewNop())
	require.NoError(t, err)
	return NewController(testConfig(), usecase.NewProductUsecase(catalog, publisher)), catalog
}

func newRequestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = pkgmdw.NewValidator()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func seed(t *testing.T, catalog *memstore.Store, names ...string) []models.Product {
	t.Helper()
	created := make([]models.Product, 0, len(names))
	for i, name := range names {
		p, err := catalog.Create(t.Context(), models.Product{
			Name:      name,
			Link:      "https://example.com/" + name,
			ImageSrc:  "https://img.example.com/" + name + ".jpg",
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		created = append(created, *p)
	}
	return created
}

func TestListProducts(t *testing.T) {
	t.Run("returns the page newest first", func(t *testing.T) {
		ctrl, catalog := newTestController(t)
		seeded := seed(t, catalog, "mono", "duo", "trio")

		c, rec := newRequestContext(http.MethodGet, "/api/products", "")
		require.NoError(t, ctrl.ListProducts(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got []models.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 3)
		assert.Equal(t, seeded[2].ID, got[0].ID)
		assert.Equal(t, seeded[1].ID, got[1].ID)
		assert.Equal(t, seeded[0].ID, got[2].ID)
	})

	t.Run("empty catalog is a bare empty array", func(t *testing.T) {
		ctrl, _ := newTestController(t)

		c, rec := newRequestContext(http.MethodGet, "/api/products", "")
		require.NoError(t, ctrl.ListProducts(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("pages beyond the data are empty", func(t *testing.T) {
		ctrl, catalog := newTestController(t)
		seed(t, catalog, "mono", "duo", "trio")

		c, rec := newRequestContext(http.MethodGet, "/api/products?page=2&limit=3", "")
		require.NoError(t, ctrl.ListProducts(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("query parameter handling", func(t *testing.T) {
		tests := []struct {
			name      string
			target    string
			wantPage  int
			wantLimit int
		}{
			{"defaults", "/api/products", 1, 9},
			{"explicit page and limit", "/api/products?page=3&limit=5", 3, 5},
			{"zero and negative fall back", "/api/products?page=0&limit=-2", 1, 9},
			{"non-numeric falls back", "/api/products?page=abc&limit=xyz", 1, 9},
			{"limit is capped", "/api/products?limit=500", 1, 100},
			{"canonical sort is accepted", "/api/products?sortBy=createdAt&order=desc", 1, 9},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := &fakeUsecase{}
				ctrl := NewController(testConfig(), uc)

				c, rec := newRequestContext(http.MethodGet, tt.target, "")
				require.NoError(t, ctrl.ListProducts(c))

				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, tt.wantPage, uc.lastPage)
				assert.Equal(t, tt.wantLimit, uc.lastLimit)
			})
		}
	})

	t.Run("unsupported orderings are rejected", func(t *testing.T) {
		tests := []struct {
			name   string
			target string
		}{
			{"sortBy name", "/api/products?sortBy=name"},
			{"ascending order", "/api/products?order=asc"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl, _ := newTestController(t)

				c, _ := newRequestContext(http.MethodGet, tt.target, "")
				err := ctrl.ListProducts(c)

				var he *echo.HTTPError
				require.ErrorAs(t, err, &he)
				assert.Equal(t, http.StatusBadRequest, he.Code)
			})
		}
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("creates and returns the product", func(t *testing.T) {
		ctrl, catalog := newTestController(t)

		body := `{"name":"Air Zoom","link":"https://example.com/air-zoom","imageSrc":"https://img.example.com/air-zoom.jpg"}`
		c, rec := newRequestContext(http.MethodPost, "/api/products", body)
		require.NoError(t, ctrl.CreateProduct(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got models.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Air Zoom", got.Name)
		assert.False(t, got.CreatedAt.IsZero())

		listed, err := catalog.List(t.Context(), 1, 9)
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	})

	t.Run("accepts an inline data URL image", func(t *testing.T) {
		ctrl, _ := newTestController(t)

		body := `{"name":"Court Low","link":"https://example.com/court-low","imageSrc":"data:image/png;base64,aGVsbG8="}`
		c, rec := newRequestContext(http.MethodPost, "/api/products", body)
		require.NoError(t, ctrl.CreateProduct(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		ctrl, _ := newTestController(t)

		c, _ := newRequestContext(http.MethodPost, "/api/products", `{"name": unterminated`)
		err := ctrl.CreateProduct(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("validation failures are 400s", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"missing name", `{"link":"https://example.com/x","imageSrc":"https://img.example.com/x.jpg"}`},
			{"malformed link", `{"name":"X","link":"not a url","imageSrc":"https://img.example.com/x.jpg"}`},
			{"missing image", `{"name":"X","link":"https://example.com/x"}`},
			{"image neither URL nor data URL", `{"name":"X","link":"https://example.com/x","imageSrc":"just words"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl, catalog := newTestController(t)

				c, _ := newRequestContext(http.MethodPost, "/api/products", tt.body)
				err := ctrl.CreateProduct(c)

				var he *echo.HTTPError
				require.ErrorAs(t, err, &he)
				assert.Equal(t, http.StatusBadRequest, he.Code)

				listed, listErr := catalog.List(t.Context(), 1, 9)
				require.NoError(t, listErr)
				assert.Empty(t, listed, "nothing is created on a rejected request")
			})
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("removes the product", func(t *testing.T) {
		ctrl, catalog := newTestController(t)
		seeded := seed(t, catalog, "mono", "duo")

		c, rec := newRequestContext(http.MethodDelete, "/api/products/"+seeded[0].ID, "")
		c.SetParamNames("id")
		c.SetParamValues(seeded[0].ID)
		require.NoError(t, ctrl.DeleteProduct(c))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		listed, err := catalog.List(t.Context(), 1, 9)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, seeded[1].ID, listed[0].ID)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		ctrl, _ := newTestController(t)

		c, _ := newRequestContext(http.MethodDelete, "/api/products/ghost", "")
		c.SetParamNames("id")
		c.SetParamValues("ghost")
		err := ctrl.DeleteProduct(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestHealth(t *testing.T) {
	ctrl, _ := newTestController(t)

	c, rec := newRequestContext(http.MethodGet, "/health", "")
	require.NoError(t, ctrl.Health(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
