// internal/api/apitest/handlers.go
package apitest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gameall123/sito/internal/domain/catalog"
	"github.com/gameall123/sito/internal/domain/review"
	"github.com/gameall123/sito/internal/domain/session"
)

// Auth handlers

func (s *Server) register(c *gin.Context) {
	var req session.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.users {
		if record.user.Username == req.Username || record.user.Email == req.Email {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username or email already registered"})
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to hash password"})
		return
	}

	user := session.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		IsAdmin:   false,
		CreatedAt: time.Now().UTC(),
	}
	s.users[req.Username] = &userRecord{user: user, hash: hash}

	c.JSON(http.StatusOK, user)
}

func (s *Server) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	s.mu.Lock()
	record, found := s.users[username]
	s.mu.Unlock()

	if !found || bcrypt.CompareHashAndPassword(record.hash, []byte(password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
		return
	}

	token, err := s.signToken(username, time.Now().Add(tokenExpiry))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// Category handlers

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories := make([]catalog.Category, len(s.categories))
	copy(categories, s.categories)
	c.JSON(http.StatusOK, categories)
}

func (s *Server) createCategory(c *gin.Context) {
	var category catalog.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	category.ID = uuid.NewString()

	s.mu.Lock()
	s.categories = append(s.categories, category)
	s.mu.Unlock()

	c.JSON(http.StatusOK, category)
}

// Product handlers

func (s *Server) listProducts(c *gin.Context) {
	category := c.Query("category")
	platform := c.Query("platform")
	genre := c.Query("genre")
	featured := c.Query("featured")
	limit := parseIntDefault(c.Query("limit"), 20)
	skip := parseIntDefault(c.Query("skip"), 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]catalog.Product, 0, len(s.order))
	for _, id := range s.order {
		p := s.products[id]
		if category != "" && p.CategoryID != category {
			continue
		}
		if platform != "" && !contains(p.Platform, platform) {
			continue
		}
		if genre != "" && !contains(p.Genre, genre) {
			continue
		}
		if featured != "" && p.Featured != (featured == "true") {
			continue
		}
		matched = append(matched, p)
	}

	if skip > len(matched) {
		skip = len(matched)
	}
	matched = matched[skip:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	c.JSON(http.StatusOK, matched)
}

func (s *Server) getProduct(c *gin.Context) {
	s.mu.Lock()
	product, found := s.products[c.Param("id")]
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) createProduct(c *gin.Context) {
	var product catalog.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	product.ID = uuid.NewString()

	s.mu.Lock()
	s.products[product.ID] = product
	s.order = append(s.order, product.ID)
	s.mu.Unlock()

	c.JSON(http.StatusOK, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	id := c.Param("id")

	var product catalog.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.products[id]; !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}
	product.ID = id
	s.products[id] = product
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.products[id]; !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}
	delete(s.products, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// Cart handlers

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) getCart(c *gin.Context) {
	user := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]gin.H, 0)
	total := 0.0
	for _, entry := range s.carts[user.ID] {
		product, found := s.products[entry.productID]
		if !found {
			continue
		}
		subtotal := product.Price * float64(entry.quantity)
		items = append(items, gin.H{
			"product":  product,
			"quantity": entry.quantity,
			"subtotal": subtotal,
		})
		total += subtotal
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

func (s *Server) addToCart(c *gin.Context) {
	user := currentUser(c)

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[user.ID]
	for i := range lines {
		if lines[i].productID == req.ProductID {
			lines[i].quantity += req.Quantity
			s.carts[user.ID] = lines
			c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
			return
		}
	}
	s.carts[user.ID] = append(lines, cartEntry{productID: req.ProductID, quantity: req.Quantity})
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
}

func (s *Server) updateCartItem(c *gin.Context) {
	user := currentUser(c)

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, found := s.carts[user.ID]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Cart not found"})
		return
	}
	for i := range lines {
		if lines[i].productID == req.ProductID {
			lines[i].quantity = req.Quantity
			s.carts[user.ID] = lines
			c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found in cart"})
}

func (s *Server) removeFromCart(c *gin.Context) {
	user := currentUser(c)
	productID := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[user.ID]
	kept := lines[:0]
	for _, entry := range lines {
		if entry.productID != productID {
			kept = append(kept, entry)
		}
	}
	s.carts[user.ID] = kept
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// Wishlist handlers

type wishlistItemRequest struct {
	ProductID string `json:"product_id"`
}

func (s *Server) getWishlist(c *gin.Context) {
	user := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]catalog.Product, 0)
	for _, id := range s.wishlists[user.ID] {
		if product, found := s.products[id]; found {
			items = append(items, product)
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) addToWishlist(c *gin.Context) {
	user := currentUser(c)

	var req wishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.wishlists[user.ID] {
		if id == req.ProductID {
			c.JSON(http.StatusOK, gin.H{"message": "Item already in wishlist"})
			return
		}
	}
	s.wishlists[user.ID] = append(s.wishlists[user.ID], req.ProductID)
	c.JSON(http.StatusOK, gin.H{"message": "Item added to wishlist"})
}

func (s *Server) removeFromWishlist(c *gin.Context) {
	user := currentUser(c)
	productID := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.wishlists[user.ID]
	kept := ids[:0]
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	s.wishlists[user.ID] = kept
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from wishlist"})
}

// Review handlers

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) listReviews(c *gin.Context) {
	productID := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := make([]review.Review, len(s.reviews[productID]))
	copy(reviews, s.reviews[productID])
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) createReview(c *gin.Context) {
	user := currentUser(c)
	productID := c.Param("id")

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reviews[productID] {
		if r.UserID == user.ID {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "You have already reviewed this product"})
			return
		}
	}

	created := review.Review{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	s.reviews[productID] = append(s.reviews[productID], created)

	// Recompute the product's aggregate rating
	if product, found := s.products[productID]; found {
		sum := 0
		for _, r := range s.reviews[productID] {
			sum += r.Rating
		}
		product.TotalReviews = len(s.reviews[productID])
		product.AverageRating = float64(sum) / float64(product.TotalReviews)
		s.products[productID] = product
	}

	c.JSON(http.StatusOK, created)
}

// contains reports whether list has the given value
func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
