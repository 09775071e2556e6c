// internal/api/auth.go
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gameall123/sito/internal/domain/session"
)

// tokenResponse is the login endpoint's payload
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for an access token. The endpoint
// takes OAuth2 password-grant form fields.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token tokenResponse
	if err := c.doForm(ctx, http.MethodPost, "/api/auth/login", form, &token); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// Register creates a new account and returns the created profile.
// It does not authenticate.
func (c *Client) Register(ctx context.Context, req session.RegisterRequest) (*session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the profile of the authenticated user
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
