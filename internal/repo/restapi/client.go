// Package restapi drives a remote product API over REST/JSON: a hosted
// mockapi-style endpoint or a self-hosted sneakerfit server.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/repo"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

var _ repo.Catalog = (*Client)(nil)

// List requests one page sorted newest first. The API returns a bare JSON
// array; a page shorter than limit is the last one.
func (c *Client) List(ctx context.Context, page, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 9
	}
	if page <= 0 {
		page = 1
	}

	url := fmt.Sprintf("%s?page=%d&limit=%d&sortBy=createdAt&order=desc", c.baseURL, page, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return products, nil
}

func (c *Client) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	payload, err := json.Marshal(createPayload(product))
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var created models.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &created, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.ErrNotFound
	}
	if !success(resp.StatusCode) {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) SupportsSort() bool {
	return true
}

// createPayload strips the id so the API assigns its own.
func createPayload(product models.Product) map[string]any {
	payload := map[string]any{
		"name":      product.Name,
		"link":      product.Link,
		"imageSrc":  product.ImageSrc,
		"createdAt": product.CreatedAt,
	}
	if len(product.ColorTags) > 0 {
		payload["colorTags"] = product.ColorTags
	}
	return payload
}

func success(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
