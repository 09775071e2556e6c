// internal/api/cart.go
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gameall123/sito/internal/domain/cart"
)

// cartItemRequest is the add/update payload
type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GetCart returns the authenticated user's cart
func (c *Client) GetCart(ctx context.Context) (*cart.Payload, error) {
	var payload cart.Payload
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AddCartItem posts a quantity delta for a product
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) error {
	req := cartItemRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPost, "/api/cart/add", nil, req, nil)
}

// UpdateCartItem sets the quantity of a cart line
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) error {
	req := cartItemRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPut, "/api/cart/update", nil, req, nil)
}

// RemoveCartItem deletes a cart line
func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	path := "/api/cart/remove/" + url.PathEscape(productID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
