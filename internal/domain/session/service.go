// internal/domain/session/service.go
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/gameall123/sito/internal/notify"
	"github.com/gameall123/sito/internal/pkg/apierror"
)

// API is the slice of the backend client the session store needs
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Me(ctx context.Context) (*User, error)
	SetToken(token string)
	ClearToken()
}

// Store holds the current user identity and token. Token, user and
// the authenticated flag always change together: the token is set if
// and only if the user is set.
type Store struct {
	mu        sync.RWMutex
	api       API
	file      string
	notifier  notify.Notifier
	logger    logrus.FieldLogger
	token     string
	user      *User
	listeners []func(authenticated bool)
}

// NewStore creates a new auth session store persisting to file
func NewStore(api API, file string, notifier notify.Notifier, logger logrus.FieldLogger) *Store {
	return &Store{
		api:      api,
		file:     file,
		notifier: notifier,
		logger:   logger,
	}
}

// OnChange registers a listener invoked synchronously whenever the
// authenticated state transitions. The cart store subscribes here to
// load on login and reset on logout.
func (s *Store) OnChange(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// IsAuthenticated reports whether a session is established
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// IsAdmin reports whether the current user has the admin role
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// User returns a copy of the current user, or nil when
// unauthenticated
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Login authenticates with the backend and establishes the session.
// Failures are reported as a Result, never as a raised error, so the
// caller can render them inline.
func (s *Store) Login(ctx context.Context, username, password string) Result {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fail("Username and password are required")
	}

	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		message := apierror.Message(err, "Login failed, please try again")
		s.logger.WithError(err).WithField("username", username).Warn("Login failed")
		return fail(message)
	}

	s.api.SetToken(token)

	user, err := s.api.Me(ctx)
	if err != nil {
		// Token accepted but profile fetch failed: roll back so the
		// session invariant holds
		s.api.ClearToken()
		s.logger.WithError(err).Error("Failed to load user profile after login")
		return fail(apierror.Message(err, "Login failed, please try again"))
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	if err := saveSession(s.file, token, user); err != nil {
		// The in-memory session stands; only persistence failed
		s.logger.WithError(err).Warn("Failed to persist session")
	}

	s.logger.WithField("username", user.Username).Info("User logged in")
	for _, fn := range listeners {
		fn(true)
	}
	return ok()
}

// Register creates a new account. It does not authenticate; the
// caller logs in separately.
func (s *Store) Register(ctx context.Context, req RegisterRequest) Result {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)

	if req.Username == "" || req.Email == "" || req.FullName == "" {
		return fail("All fields are required")
	}
	if !strings.Contains(req.Email, "@") {
		return fail("Invalid email address")
	}
	if len(req.Password) < 6 {
		return fail("Password must be at least 6 characters")
	}

	if _, err := s.api.Register(ctx, req); err != nil {
		message := apierror.Message(err, "Registration failed, please try again")
		s.logger.WithError(err).WithField("username", req.Username).Warn("Registration failed")
		return fail(message)
	}

	s.logger.WithField("username", req.Username).Info("Account registered")
	return ok()
}

// Logout clears the session synchronously and unconditionally. No
// network failure can block it.
func (s *Store) Logout() {
	s.clear()
	s.logger.Info("User logged out")
}

// Invalidate clears the session in response to the backend rejecting
// the credential
func (s *Store) Invalidate() {
	if !s.IsAuthenticated() {
		return
	}
	s.clear()
	s.notifier.Errorf("Your session has expired, please sign in again")
	s.logger.Warn("Session invalidated by backend")
}

// Restore reads the persisted session at startup and re-establishes
// it without a network round trip. A stale token is accepted as-is;
// the first rejected API call will invalidate it.
func (s *Store) Restore() error {
	stored, err := loadSession(s.file)
	if err != nil {
		return err
	}
	if stored == nil {
		return nil
	}

	s.warnIfExpired(stored.Token)

	s.api.SetToken(stored.Token)
	s.mu.Lock()
	s.token = stored.Token
	s.user = stored.User
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	s.logger.WithField("username", stored.User.Username).Debug("Session restored")
	for _, fn := range listeners {
		fn(true)
	}
	return nil
}

// clear drops token, user and the session file, then notifies
// listeners
func (s *Store) clear() {
	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token = ""
	s.user = nil
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	s.api.ClearToken()
	if err := removeSession(s.file); err != nil {
		s.logger.WithError(err).Warn("Failed to remove session file")
	}

	if wasAuthenticated {
		for _, fn := range listeners {
			fn(false)
		}
	}
}

// warnIfExpired peeks at the token's exp claim without verifying the
// signature. It only logs; restore behavior is unchanged either way.
func (s *Store) warnIfExpired(token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		s.logger.WithField("expired_at", exp.Time).Warn("Restored session token is expired")
	}
}
