// internal/domain/cart/service.go
package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/gameall123/sito/internal/notify"
	"github.com/gameall123/sito/internal/pkg/apierror"
)

// API is the slice of the backend client the cart store needs
type API interface {
	GetCart(ctx context.Context) (*Payload, error)
	AddCartItem(ctx context.Context, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, productID string) error
}

// Auth is the slice of the session store the cart store needs to
// gate its own availability
type Auth interface {
	IsAuthenticated() bool
	Invalidate()
}

// Service holds the authenticated user's cart snapshot. The store is
// never authoritative: every mutation posts the delta to the backend
// and then reloads the full snapshot (reload-after-write).
type Service struct {
	mu       sync.Mutex
	api      API
	auth     Auth
	notifier notify.Notifier
	logger   logrus.FieldLogger
	items    []Item
	total    float64
	count    int
	state    State
}

// NewService creates a new cart store
func NewService(api API, auth Auth, notifier notify.Notifier, logger logrus.FieldLogger) *Service {
	return &Service{
		api:      api,
		auth:     auth,
		notifier: notifier,
		logger:   logger,
		state:    StateUnauthenticated,
	}
}

// Snapshot returns an atomic view of the cart. Items, Count and
// Total are always mutually consistent.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return Snapshot{
		Items: items,
		Total: s.total,
		Count: s.count,
		State: s.state,
	}
}

// Load fetches the authoritative snapshot from the backend and
// replaces the local one. When unauthenticated it clears local state
// instead and makes no network call.
func (s *Service) Load(ctx context.Context) Result {
	if !s.auth.IsAuthenticated() {
		s.Reset()
		return Result{OK: true}
	}

	s.setState(StateLoading)
	payload, err := s.api.GetCart(ctx)
	if err != nil {
		s.handleRemoteError(err, "Failed to load cart")
		return Result{OK: false, Message: apierror.Message(err, "Failed to load cart")}
	}

	s.replace(payload)
	return Result{OK: true}
}

// Add posts a quantity delta for a product and resynchronizes. When
// unauthenticated it fails fast without touching the network.
func (s *Service) Add(ctx context.Context, productID string, quantity int) Result {
	if !s.auth.IsAuthenticated() {
		s.notifier.Errorf("You must be signed in to add products to the cart")
		return Result{OK: false, Message: "authentication required"}
	}
	if quantity < 1 {
		return Result{OK: false, Message: "quantity must be at least 1"}
	}

	s.setState(StateLoading)
	if err := s.api.AddCartItem(ctx, productID, quantity); err != nil {
		message := apierror.Message(err, "Failed to add product to cart")
		s.handleRemoteError(err, message)
		return Result{OK: false, Message: message}
	}

	s.Load(ctx)
	s.notifier.Successf("Product added to cart")
	return Result{OK: true}
}

// UpdateQuantity sets the quantity of a cart line and
// resynchronizes. Quantity must be at least 1; a quantity of zero is
// the caller's removal path, not this operation's.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) Result {
	if !s.auth.IsAuthenticated() {
		return Result{OK: false, Message: "authentication required"}
	}
	if quantity < 1 {
		return Result{OK: false, Message: "quantity must be at least 1"}
	}

	s.setState(StateLoading)
	if err := s.api.UpdateCartItem(ctx, productID, quantity); err != nil {
		message := apierror.Message(err, "Failed to update cart")
		s.handleRemoteError(err, message)
		return Result{OK: false, Message: message}
	}

	s.Load(ctx)
	s.notifier.Successf("Cart updated")
	return Result{OK: true}
}

// Remove deletes one cart line and resynchronizes
func (s *Service) Remove(ctx context.Context, productID string) Result {
	if !s.auth.IsAuthenticated() {
		return Result{OK: false, Message: "authentication required"}
	}

	s.setState(StateLoading)
	if err := s.api.RemoveCartItem(ctx, productID); err != nil {
		message := apierror.Message(err, "Failed to remove product from cart")
		s.handleRemoteError(err, message)
		return Result{OK: false, Message: message}
	}

	s.Load(ctx)
	s.notifier.Successf("Product removed from cart")
	return Result{OK: true}
}

// Clear removes every line with one delete call per item. This is
// best-effort, not atomic: the loop stops at the first failure and
// the reload reflects whatever partial state resulted server-side.
func (s *Service) Clear(ctx context.Context) Result {
	if !s.auth.IsAuthenticated() {
		return Result{OK: false, Message: "authentication required"}
	}

	s.mu.Lock()
	ids := make([]string, len(s.items))
	for i, item := range s.items {
		ids[i] = item.Product.ID
	}
	s.mu.Unlock()

	s.setState(StateLoading)
	var failed error
	for _, id := range ids {
		if err := s.api.RemoveCartItem(ctx, id); err != nil {
			failed = err
			break
		}
	}

	s.Load(ctx)

	if failed != nil {
		message := apierror.Message(failed, "Failed to empty the cart")
		s.notifier.Errorf("%s", message)
		return Result{OK: false, Message: message}
	}
	s.notifier.Successf("Cart emptied")
	return Result{OK: true}
}

// Reset drops the local snapshot. Called on the unauthenticated
// transition; never touches the network.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.recompute()
	s.state = StateUnauthenticated
}

// replace swaps in a new snapshot and recomputes the derived totals
// in the same critical section
func (s *Service) replace(payload *Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = payload.Items
	s.recompute()
	s.state = StateReady
}

// recompute derives count and total from items. Callers hold s.mu.
func (s *Service) recompute() {
	s.count = 0
	s.total = 0
	for _, item := range s.items {
		s.count += item.Quantity
		s.total += item.Subtotal
	}
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// handleRemoteError reports a failed remote call and, on a rejected
// credential, invalidates the session. The previous snapshot is kept;
// the next successful reload recovers.
func (s *Service) handleRemoteError(err error, message string) {
	s.setState(StateError)
	s.logger.WithError(err).Warn("Cart request failed")
	s.notifier.Errorf("%s", message)
	if apierror.IsUnauthorized(err) {
		s.auth.Invalidate()
	}
}
