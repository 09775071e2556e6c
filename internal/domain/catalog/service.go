// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gameall123/sito/internal/notify"
)

// API is the slice of the backend client the catalog pipeline needs
type API interface {
	ListProducts(ctx context.Context, query ProductQuery) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}

// Service runs catalog queries: server-side narrowing, client-side
// refinement and sorting
type Service struct {
	api      API
	notifier notify.Notifier
	logger   logrus.FieldLogger
}

// NewService creates a new catalog service
func NewService(api API, notifier notify.Notifier, logger logrus.FieldLogger) *Service {
	return &Service{
		api:      api,
		notifier: notifier,
		logger:   logger,
	}
}

// Query produces the ordered product list for the given criteria.
// Category, platform and genre narrow the result server-side; search
// and price bounds are refined client-side; the result is sorted with
// a stable comparator. On API failure it yields an empty result and a
// non-fatal notification; it never returns an error.
func (s *Service) Query(ctx context.Context, criteria Criteria) []Product {
	products, err := s.api.ListProducts(ctx, ProductQuery{
		Category: criteria.Category,
		Platform: criteria.Platform,
		Genre:    criteria.Genre,
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to load products")
		s.notifier.Errorf("Failed to load products")
		return []Product{}
	}

	products = Refine(products, criteria)
	Sort(products, criteria.Sort)
	return products
}

// Featured returns the featured product selection for the home page
func (s *Service) Featured(ctx context.Context, limit int) []Product {
	featured := true
	products, err := s.api.ListProducts(ctx, ProductQuery{Featured: &featured, Limit: limit})
	if err != nil {
		s.logger.WithError(err).Error("Failed to load featured products")
		s.notifier.Errorf("Failed to load products")
		return []Product{}
	}
	return products
}

// Categories returns all product categories. Failures degrade to an
// empty list; the filter UI renders without category options.
func (s *Service) Categories(ctx context.Context) []Category {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load categories")
		return []Category{}
	}
	return categories
}

// Get returns a single product by ID
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.api.GetProduct(ctx, id)
}

// Refine applies the client-side filters: case-insensitive search
// over title and description, and inclusive price bounds
func Refine(products []Product, criteria Criteria) []Product {
	filtered := make([]Product, 0, len(products))
	search := strings.ToLower(criteria.Search)

	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if criteria.PriceMin != nil && p.Price < *criteria.PriceMin {
			continue
		}
		if criteria.PriceMax != nil && p.Price > *criteria.PriceMax {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

// Sort orders products in place by the given mode. The sort is
// stable: ties retain their prior relative order.
func Sort(products []Product, mode SortMode) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch mode {
		case SortPriceAsc:
			return a.Price < b.Price
		case SortPriceDesc:
			return a.Price > b.Price
		case SortRating:
			return a.AverageRating > b.AverageRating
		case SortNewest:
			return a.ReleaseDate.After(b.ReleaseDate)
		default:
			return a.Title < b.Title
		}
	})
}
