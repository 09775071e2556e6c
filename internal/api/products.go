// internal/api/products.go
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gameall123/sito/internal/domain/catalog"
)

// ListProducts returns products matching the server-side query
func (c *Client) ListProducts(ctx context.Context, query catalog.ProductQuery) ([]catalog.Product, error) {
	values := url.Values{}
	if query.Category != "" {
		values.Set("category", query.Category)
	}
	if query.Platform != "" {
		values.Set("platform", query.Platform)
	}
	if query.Genre != "" {
		values.Set("genre", query.Genre)
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.Featured != nil {
		values.Set("featured", strconv.FormatBool(*query.Featured))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Skip > 0 {
		values.Set("skip", strconv.Itoa(query.Skip))
	}

	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", values, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single product by ID
func (c *Client) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product (admin only)
func (c *Client) CreateProduct(ctx context.Context, product catalog.Product) (*catalog.Product, error) {
	var created catalog.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces a product (admin only)
func (c *Client) UpdateProduct(ctx context.Context, id string, product catalog.Product) (*catalog.Product, error) {
	var updated catalog.Product
	path := "/api/products/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, nil, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct deletes a product (admin only)
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	path := "/api/products/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListCategories returns all product categories
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category (admin only)
func (c *Client) CreateCategory(ctx context.Context, category catalog.Category) (*catalog.Category, error) {
	var created catalog.Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", nil, category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
