// internal/api/reviews.go
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gameall123/sito/internal/domain/review"
)

// createReviewRequest is the review submission payload
type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ListReviews returns all reviews for a product
func (c *Client) ListReviews(ctx context.Context, productID string) ([]review.Review, error) {
	var reviews []review.Review
	path := "/api/products/" + url.PathEscape(productID) + "/reviews"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview submits a review for a product
func (c *Client) CreateReview(ctx context.Context, productID string, rating int, comment string) (*review.Review, error) {
	var created review.Review
	path := "/api/products/" + url.PathEscape(productID) + "/reviews"
	req := createReviewRequest{Rating: rating, Comment: comment}
	if err := c.do(ctx, http.MethodPost, path, nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
