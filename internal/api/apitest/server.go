// internal/api/apitest/server.go

// Package apitest provides an in-memory stand-in for the storefront
// backend API. It reproduces the backend's REST contract — auth with
// bcrypt passwords and HS256 bearer tokens, products, categories,
// cart, wishlist and reviews — so client and store tests can run
// against a real HTTP surface.
package apitest

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gameall123/sito/internal/domain/catalog"
	"github.com/gameall123/sito/internal/domain/review"
	"github.com/gameall123/sito/internal/domain/session"
)

const tokenExpiry = 30 * time.Minute

// userRecord is a stored user with its password hash
type userRecord struct {
	user session.User
	hash []byte
}

// cartEntry is a stored cart line, product reference plus quantity
type cartEntry struct {
	productID string
	quantity  int
}

// failure is an injected fault for one matching request
type failure struct {
	status int
	detail string
}

// Server is the in-memory backend
type Server struct {
	secret []byte
	engine *gin.Engine

	mu         sync.Mutex
	users      map[string]*userRecord // by username
	products   map[string]catalog.Product
	order      []string // product insertion order
	categories []catalog.Category
	carts      map[string][]cartEntry     // user ID -> lines
	wishlists  map[string][]string        // user ID -> product IDs
	reviews    map[string][]review.Review // product ID -> reviews
	failures   map[string]failure         // "METHOD path" -> injected fault
	requests   int
}

// NewServer creates an empty in-memory backend
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		secret:    []byte("apitest-signing-secret"),
		users:     map[string]*userRecord{},
		products:  map[string]catalog.Product{},
		carts:     map[string][]cartEntry{},
		wishlists: map[string][]string{},
		reviews:   map[string][]review.Review{},
		failures:  map[string]failure{},
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler, for use with httptest.NewServer
func (s *Server) Handler() http.Handler {
	return s.engine
}

// RequestCount returns the number of requests served so far. Tests
// use it to prove an operation made no network call.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// FailNext injects a one-shot fault: the next request matching
// method and path fails with the given status and detail
func (s *Server) FailNext(method, path string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, detail: detail}
}

// CreateUser registers a user directly, bypassing the HTTP surface
func (s *Server) CreateUser(username, password string, isAdmin bool) session.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("apitest: bcrypt: %v", err))
	}

	user := session.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     username + "@example.com",
		FullName:  username,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = &userRecord{user: user, hash: hash}
	return user
}

// Seed stores products directly, bypassing the HTTP surface
func (s *Server) Seed(products ...catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if _, exists := s.products[p.ID]; !exists {
			s.order = append(s.order, p.ID)
		}
		s.products[p.ID] = p
	}
}

// SeedCategories stores categories directly
func (s *Server) SeedCategories(categories ...catalog.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, categories...)
}

// Token mints a valid bearer token for a registered user
func (s *Server) Token(username string) string {
	token, err := s.signToken(username, time.Now().Add(tokenExpiry))
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}
	return token
}

// ExpiredToken mints a token whose expiry is already in the past
func (s *Server) ExpiredToken(username string) string {
	token, err := s.signToken(username, time.Now().Add(-time.Hour))
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}
	return token
}

func (s *Server) signToken(username string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// routes wires the REST surface
func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.countRequests(), s.injectFailures())

	r.POST("/api/auth/register", s.register)
	r.POST("/api/auth/login", s.login)
	r.GET("/api/auth/me", s.requireUser(), s.me)

	r.GET("/api/categories", s.listCategories)
	r.POST("/api/categories", s.requireUser(), s.requireAdmin(), s.createCategory)

	r.GET("/api/products", s.listProducts)
	r.GET("/api/products/:id", s.getProduct)
	r.POST("/api/products", s.requireUser(), s.requireAdmin(), s.createProduct)
	r.PUT("/api/products/:id", s.requireUser(), s.requireAdmin(), s.updateProduct)
	r.DELETE("/api/products/:id", s.requireUser(), s.requireAdmin(), s.deleteProduct)

	r.GET("/api/products/:id/reviews", s.listReviews)
	r.POST("/api/products/:id/reviews", s.requireUser(), s.createReview)

	r.GET("/api/cart", s.requireUser(), s.getCart)
	r.POST("/api/cart/add", s.requireUser(), s.addToCart)
	r.PUT("/api/cart/update", s.requireUser(), s.updateCartItem)
	r.DELETE("/api/cart/remove/:id", s.requireUser(), s.removeFromCart)

	r.GET("/api/wishlist", s.requireUser(), s.getWishlist)
	r.POST("/api/wishlist/add", s.requireUser(), s.addToWishlist)
	r.DELETE("/api/wishlist/remove/:id", s.requireUser(), s.removeFromWishlist)

	return r
}

// countRequests tracks served requests for no-network assertions
func (s *Server) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		c.Next()
	}
}

// injectFailures consumes a pending one-shot fault for this request
func (s *Server) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.Request.URL.Path
		s.mu.Lock()
		f, pending := s.failures[key]
		if pending {
			delete(s.failures, key)
		}
		s.mu.Unlock()

		if pending {
			c.AbortWithStatusJSON(f.status, gin.H{"detail": f.detail})
			return
		}
		c.Next()
	}
}

// requireUser validates the bearer token and loads the user
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			unauthorized(c)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			unauthorized(c)
			return
		}

		s.mu.Lock()
		record, found := s.users[claims.Subject]
		s.mu.Unlock()
		if !found {
			unauthorized(c)
			return
		}

		c.Set("user", record.user)
		c.Next()
	}
}

// requireAdmin gates admin-only endpoints
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Admin access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) session.User {
	return c.MustGet("user").(session.User)
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
}

// extractBearerToken pulls the token out of an Authorization header
func extractBearerToken(header string) string {
	if len(header) > 7 && header[:7] == "Bearer " {
		return header[7:]
	}
	return ""
}

// parseIntDefault parses a query integer with a fallback
func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return fallback
}
