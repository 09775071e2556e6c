// internal/domain/session/entity.go
package session

import "time"

// User represents the authenticated user's profile as returned by
// the backend
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest represents a new account registration
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Result indicates success or failure of an auth operation without
// raising an error, so callers can render inline messages
type Result struct {
	OK      bool
	Message string
}

// ok returns a success result
func ok() Result {
	return Result{OK: true}
}

// fail returns a failure result with a user-facing message
func fail(message string) Result {
	return Result{OK: false, Message: message}
}
