// internal/domain/review/service.go
package review

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gameall123/sito/internal/notify"
	"github.com/gameall123/sito/internal/pkg/apierror"
)

// Review represents a product review
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"` // 1-5 stars
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// API is the slice of the backend client the review service needs
type API interface {
	ListReviews(ctx context.Context, productID string) ([]Review, error)
	CreateReview(ctx context.Context, productID string, rating int, comment string) (*Review, error)
}

// Auth gates review submission on the session state
type Auth interface {
	IsAuthenticated() bool
	Invalidate()
}

// Result indicates success or failure of a review submission
type Result struct {
	OK      bool
	Message string
}

// Service lists and submits product reviews
type Service struct {
	api      API
	auth     Auth
	notifier notify.Notifier
	logger   logrus.FieldLogger
}

// NewService creates a new review service
func NewService(api API, auth Auth, notifier notify.Notifier, logger logrus.FieldLogger) *Service {
	return &Service{
		api:      api,
		auth:     auth,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns all reviews for a product. Failures degrade to an
// empty list with a notification.
func (s *Service) List(ctx context.Context, productID string) []Review {
	reviews, err := s.api.ListReviews(ctx, productID)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load reviews")
		s.notifier.Errorf("Failed to load reviews")
		return []Review{}
	}
	return reviews
}

// Submit creates a review. Rating and comment are validated locally
// before any network call; submitting twice for the same product
// surfaces the backend's message.
func (s *Service) Submit(ctx context.Context, productID string, rating int, comment string) Result {
	if !s.auth.IsAuthenticated() {
		s.notifier.Errorf("You must be signed in to write a review")
		return Result{OK: false, Message: "authentication required"}
	}
	if rating < 1 || rating > 5 {
		return Result{OK: false, Message: "rating must be between 1 and 5"}
	}
	if strings.TrimSpace(comment) == "" {
		return Result{OK: false, Message: "comment is required"}
	}

	if _, err := s.api.CreateReview(ctx, productID, rating, comment); err != nil {
		message := apierror.Message(err, "Failed to submit review")
		s.notifier.Errorf("%s", message)
		if apierror.IsUnauthorized(err) {
			s.auth.Invalidate()
		}
		return Result{OK: false, Message: message}
	}

	s.notifier.Successf("Review submitted")
	return Result{OK: true}
}
