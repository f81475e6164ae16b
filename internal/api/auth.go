package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/creamcroissant/shopfront/internal/session"
)

const minPasswordLength = 8

type loginResponse struct {
	TokenPair
	User User `json:"user"`
}

// Login authenticates against the backend and establishes the local session,
// persisting the token pair and the cached user profile.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	if strings.TrimSpace(email) == "" {
		return User{}, ErrEmailRequired
	}
	var resp loginResponse
	err := c.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return User{}, err
	}
	if err := c.establishSession(ctx, resp); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

// Register creates an account and logs the new user in. The confirmation
// check happens before any network call.
func (c *Client) Register(ctx context.Context, name, email, password, confirm string) (User, error) {
	if strings.TrimSpace(email) == "" {
		return User{}, ErrEmailRequired
	}
	if len(password) < minPasswordLength {
		return User{}, ErrPasswordTooShort
	}
	if password != confirm {
		return User{}, ErrPasswordMismatch
	}
	var resp loginResponse
	err := c.post(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return User{}, err
	}
	if err := c.establishSession(ctx, resp); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

func (c *Client) establishSession(ctx context.Context, resp loginResponse) error {
	profile, err := json.Marshal(resp.User)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	creds := session.Credentials{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if err := c.session.Establish(ctx, creds, profile); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	return nil
}

// Logout revokes the refresh token server-side when possible and always
// drops the local session. A failed revoke still logs out locally.
func (c *Client) Logout(ctx context.Context) error {
	if c.session.LoggedIn() {
		if err := c.post(ctx, "/auth/logout", nil, nil); err != nil {
			c.log.Debug("server-side logout failed", "error", err)
		}
	}
	return c.session.Logout(ctx)
}

// ForgotPassword asks the backend to send a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	return c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword completes a password reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return c.post(ctx, "/auth/reset-password", map[string]string{
		"token":    token,
		"password": password,
	}, nil)
}

// Me fetches the current user from the backend and refreshes the cached
// profile copy.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	if err := c.get(ctx, "/users/me", &user); err != nil {
		return User{}, err
	}
	if profile, err := json.Marshal(user); err == nil {
		if err := c.session.UpdateProfile(ctx, profile); err != nil {
			c.log.Warn("update cached profile", "error", err)
		}
	}
	return user, nil
}

// CachedUser returns the locally cached profile without a network call.
func (c *Client) CachedUser(ctx context.Context) (User, error) {
	profile, err := c.session.Profile(ctx)
	if err != nil {
		return User{}, err
	}
	var user User
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &user); err != nil {
			return User{}, fmt.Errorf("decode cached profile: %w", err)
		}
	}
	return user, nil
}

// UpdateMe changes profile fields on the backend.
func (c *Client) UpdateMe(ctx context.Context, name string) (User, error) {
	var user User
	if err := c.put(ctx, "/users/me", map[string]string{"name": name}, &user); err != nil {
		return User{}, err
	}
	return user, nil
}
