package user

import (
	"context"
	"errors"
)

// Sentinel errors for user store operations.
var (
	// ErrNotFound is returned when a user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("user already exists")
)

// Store provides persistence for user accounts.
// This interface is defined in the domain to avoid circular imports.
// Implementations: SQLite.
type Store interface {
	// CreateUser stores a new user.
	// Returns ErrEmailTaken if the email is already registered.
	CreateUser(ctx context.Context, u *User) error

	// GetUser retrieves a user by ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetUser(ctx context.Context, id string) (*User, error)

	// GetUserByEmail retrieves a user by email address.
	// Returns ErrNotFound if no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// ListUsers returns all users ordered by creation time.
	ListUsers(ctx context.Context) ([]User, error)

	// UpdateUser saves name, email, password hash and admin flag.
	// Returns ErrNotFound if the user doesn't exist, ErrEmailTaken if the
	// new email belongs to another user.
	UpdateUser(ctx context.Context, u *User) error

	// DeleteUser removes a user by ID.
	// Returns ErrNotFound if the user doesn't exist.
	DeleteUser(ctx context.Context, id string) error
}
