// Package user contains the domain types for storefront accounts.
package user

import "time"

// User is a stored storefront account.
type User struct {
	// ID is the unique identifier (UUID).
	ID string
	// Name is the display name.
	Name string
	// Email is the login address. Unique across users.
	Email string
	// PasswordHash is the Argon2id hash of the password in PHC format.
	PasswordHash string
	// IsAdmin grants access to the admin endpoints.
	IsAdmin bool
	// CreatedAt is when the account was created (UTC).
	CreatedAt time.Time
	// UpdatedAt is when the account was last modified (UTC).
	UpdatedAt time.Time
}

// Profile is the public view of a user, without credentials.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Session is a profile plus the bearer token issued at login.
// It is the payload of the login, register and profile-update endpoints
// and the value the client keeps under the "userInfo" key.
type Session struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

// Profile returns the public view of u.
func (u *User) Profile() Profile {
	return Profile{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}

// Session returns the session view of u carrying token.
func (u *User) Session(token string) Session {
	return Session{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
		Token:   token,
	}
}
