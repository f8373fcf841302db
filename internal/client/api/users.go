package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate changes the caller's own account. Empty fields are left
// unchanged by the server.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// UserUpdate is an administrator's change to another account.
type UserUpdate struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
}

// Login exchanges credentials for a session. It is the only user call that
// takes no token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*user.Session, error) {
	var sess user.Session
	if err := c.doRequest(ctx, http.MethodPost, "/api/users/login", "", creds, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, reg Registration) (*user.Session, error) {
	var sess user.Session
	if err := c.doRequest(ctx, http.MethodPost, "/api/users", "", reg, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetUserDetails fetches a user. id "profile" addresses the caller's own
// account; any other id needs an admin token.
func (c *Client) GetUserDetails(ctx context.Context, id, token string) (*user.Profile, error) {
	var p user.Profile
	if err := c.doRequest(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile changes the caller's account and returns a session with a
// fresh token.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate, token string) (*user.Session, error) {
	var sess user.Session
	if err := c.doRequest(ctx, http.MethodPut, "/api/users/profile", token, upd, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context, token string) ([]user.Profile, error) {
	var users []user.Profile
	if err := c.doRequest(ctx, http.MethodGet, "/api/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser applies an administrator's change to account id.
func (c *Client) UpdateUser(ctx context.Context, id string, upd UserUpdate, token string) (*user.Profile, error) {
	var p user.Profile
	if err := c.doRequest(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), token, upd, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteUser removes account id and returns the server's acknowledgement.
func (c *Client) DeleteUser(ctx context.Context, id, token string) (string, error) {
	var ack messageResponse
	if err := c.doRequest(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), token, nil, &ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}
