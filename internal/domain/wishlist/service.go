// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/gameall123/sito/internal/domain/catalog"
	"github.com/gameall123/sito/internal/notify"
	"github.com/gameall123/sito/internal/pkg/apierror"
)

// API is the slice of the backend client the wishlist store needs
type API interface {
	GetWishlist(ctx context.Context) ([]catalog.Product, error)
	AddWishlistItem(ctx context.Context, productID string) error
	RemoveWishlistItem(ctx context.Context, productID string) error
}

// Auth gates wishlist availability on the session state
type Auth interface {
	IsAuthenticated() bool
	Invalidate()
}

// Service holds the authenticated user's wishlist: the product list
// plus a membership set for quick toggling from listing pages
type Service struct {
	mu       sync.Mutex
	api      API
	auth     Auth
	notifier notify.Notifier
	logger   logrus.FieldLogger
	products []catalog.Product
	ids      map[string]bool
}

// NewService creates a new wishlist store
func NewService(api API, auth Auth, notifier notify.Notifier, logger logrus.FieldLogger) *Service {
	return &Service{
		api:      api,
		auth:     auth,
		notifier: notifier,
		logger:   logger,
		ids:      map[string]bool{},
	}
}

// Load fetches the wishlist from the backend. Clears local state
// instead when unauthenticated.
func (s *Service) Load(ctx context.Context) error {
	if !s.auth.IsAuthenticated() {
		s.Reset()
		return nil
	}

	products, err := s.api.GetWishlist(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load wishlist")
		if apierror.IsUnauthorized(err) {
			s.auth.Invalidate()
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.ids = make(map[string]bool, len(products))
	for _, p := range products {
		s.ids[p.ID] = true
	}
	return nil
}

// Products returns a copy of the wishlist products
func (s *Service) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]catalog.Product, len(s.products))
	copy(products, s.products)
	return products
}

// Contains reports whether a product is on the wishlist
func (s *Service) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[productID]
}

// Toggle adds the product when absent and removes it when present.
// The membership set is patched locally after the call succeeds; the
// full product list refreshes on the next Load. Fails fast without a
// network call when unauthenticated.
func (s *Service) Toggle(ctx context.Context, productID string) error {
	if !s.auth.IsAuthenticated() {
		s.notifier.Errorf("You must be signed in to use the wishlist")
		return apierror.ErrAuthRequired
	}

	if s.Contains(productID) {
		return s.Remove(ctx, productID)
	}

	if err := s.api.AddWishlistItem(ctx, productID); err != nil {
		s.notifier.Errorf("%s", apierror.Message(err, "Failed to update wishlist"))
		if apierror.IsUnauthorized(err) {
			s.auth.Invalidate()
		}
		return err
	}

	s.mu.Lock()
	s.ids[productID] = true
	s.mu.Unlock()
	s.notifier.Successf("Added to wishlist")
	return nil
}

// Remove deletes a product from the wishlist
func (s *Service) Remove(ctx context.Context, productID string) error {
	if !s.auth.IsAuthenticated() {
		return apierror.ErrAuthRequired
	}

	if err := s.api.RemoveWishlistItem(ctx, productID); err != nil {
		s.notifier.Errorf("%s", apierror.Message(err, "Failed to update wishlist"))
		if apierror.IsUnauthorized(err) {
			s.auth.Invalidate()
		}
		return err
	}

	s.mu.Lock()
	delete(s.ids, productID)
	for i, p := range s.products {
		if p.ID == productID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.notifier.Successf("Removed from wishlist")
	return nil
}

// Reset drops the local wishlist state
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.ids = map[string]bool{}
}
