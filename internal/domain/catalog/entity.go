// internal/domain/catalog/entity.go
package catalog

import "time"

// Product represents a catalog product. Products are owned by the
// backend; the client only ever holds read-only copies.
type Product struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"image_url"`
	CategoryID    string    `json:"category_id"`
	Platform      []string  `json:"platform"`
	Genre         []string  `json:"genre"`
	Rating        string    `json:"rating"` // age rating: E, T, M, ...
	ReleaseDate   time.Time `json:"release_date"`
	Developer     string    `json:"developer"`
	Publisher     string    `json:"publisher"`
	InStock       int       `json:"in_stock"`
	Featured      bool      `json:"featured"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
}

// Category represents a product category
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// ProductQuery holds the server-side query parameters for listing
// products
type ProductQuery struct {
	Category string
	Platform string
	Genre    string
	Search   string
	Featured *bool
	Limit    int
	Skip     int
}
