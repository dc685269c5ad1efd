package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sneakerfitai/sneakerfitai/internal/config"
	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/usecase"
)

// maxPageLimit caps the page length a client may request.
const maxPageLimit = 100

type Controller interface {
	ListProducts(c echo.Context) error
	CreateProduct(c echo.Context) error
	DeleteProduct(c echo.Context) error
	Health(c echo.Context) error
}

type controller struct {
	productUsecase usecase.ProductUsecase
	pageSize       int
}

func NewController(conf *config.Config, productUsecase usecase.ProductUsecase) Controller {
	return &controller{
		productUsecase: productUsecase,
		pageSize:       conf.Catalog.PageSize,
	}
}

type createProductRequest struct {
	Name      string    `json:"name" validate:"required"`
	Link      string    `json:"link" validate:"required,url"`
	ImageSrc  string    `json:"imageSrc" validate:"required,imageref"`
	CreatedAt time.Time `json:"createdAt"`
	ColorTags []string  `json:"colorTags"`
}

// ListProducts returns one page as a bare JSON array, newest first. Only
// createdAt/desc ordering is served; anything else is rejected.
func (h *controller) ListProducts(c echo.Context) error {
	page := intQueryParam(c, "page", 1)
	limit := intQueryParam(c, "limit", h.pageSize)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if sortBy := c.QueryParam("sortBy"); sortBy != "" && sortBy != "createdAt" {
		return echo.NewHTTPError(http.StatusBadRequest, "products are only sortable by createdAt")
	}
	if order := c.QueryParam("order"); order != "" && order != "desc" {
		return echo.NewHTTPError(http.StatusBadRequest, "only descending order is supported")
	}

	products, err := h.productUsecase.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	if products == nil {
		products = []models.Product{}
	}

	return c.JSON(http.StatusOK, products)
}

func (h *controller) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product := models.Product{
		Name:      req.Name,
		Link:      req.Link,
		ImageSrc:  req.ImageSrc,
		ColorTags: req.ColorTags,
		CreatedAt: req.CreatedAt,
	}

	created, err := h.productUsecase.Create(c.Request().Context(), product)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *controller) DeleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := h.productUsecase.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "sneakerfit",
	})
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
