// internal/api/wishlist.go
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gameall123/sito/internal/domain/catalog"
)

// wishlistPayload is the wishlist resource wire format
type wishlistPayload struct {
	Items []catalog.Product `json:"items"`
}

// wishlistItemRequest is the add payload
type wishlistItemRequest struct {
	ProductID string `json:"product_id"`
}

// GetWishlist returns the authenticated user's wishlist products
func (c *Client) GetWishlist(ctx context.Context) ([]catalog.Product, error) {
	var payload wishlistPayload
	if err := c.do(ctx, http.MethodGet, "/api/wishlist", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// AddWishlistItem adds a product to the wishlist
func (c *Client) AddWishlistItem(ctx context.Context, productID string) error {
	req := wishlistItemRequest{ProductID: productID}
	return c.do(ctx, http.MethodPost, "/api/wishlist/add", nil, req, nil)
}

// RemoveWishlistItem removes a product from the wishlist
func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) error {
	path := "/api/wishlist/remove/" + url.PathEscape(productID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
