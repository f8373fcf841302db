package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Sentinel-Gate/storefront/internal/domain/auth"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

// loginValidationMessage is returned when a login request lacks an email or
// a password. Clients match on this exact text.
const loginValidationMessage = "Invalid email or password Validation"

// RegisterInput is the payload of a registration.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProfileUpdate changes the caller's own account. Empty fields are left
// unchanged.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// AdminUserUpdate is an administrator's change to another account.
type AdminUserUpdate struct {
	Name    string `json:"name"`
	Email   string `json:"email" validate:"omitempty,email"`
	IsAdmin *bool  `json:"isAdmin"`
}

// UserService handles accounts, credentials and session tokens.
type UserService struct {
	store  user.Store
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(store user.Store, tokens *auth.TokenIssuer, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// Login checks credentials and returns a session carrying a fresh token.
// A missing email or password is a *ValidationError; a wrong pair is
// ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (user.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return user.Session{}, &ValidationError{Message: loginValidationMessage}
	}

	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Session{}, ErrInvalidCredentials
		}
		return user.Session{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		s.logger.Warn("stored password hash unusable", "user_id", u.ID, "error", err)
		return user.Session{}, ErrInvalidCredentials
	}
	if !ok {
		return user.Session{}, ErrInvalidCredentials
	}
	return s.session(u)
}

// Register creates a customer account and logs it in.
// Returns user.ErrEmailTaken if the email is already registered.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (user.Session, error) {
	u, err := s.CreateUser(ctx, in, false)
	if err != nil {
		return user.Session{}, err
	}
	return s.session(u)
}

// CreateUser validates in and stores a new account without issuing a token.
// The seed command uses it to create administrators.
func (s *UserService) CreateUser(ctx context.Context, in RegisterInput, isAdmin bool) (*user.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &user.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("user created", "id", u.ID, "admin", isAdmin)
	return u, nil
}

// Authenticate resolves a bearer token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*user.User, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return u, nil
}

// Profile returns the public view of one account.
func (s *UserService) Profile(ctx context.Context, id string) (user.Profile, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return user.Profile{}, err
	}
	return u.Profile(), nil
}

// UpdateProfile applies the caller's own changes and returns a session
// with a fresh token.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (user.Session, error) {
	if err := validateInput(in); err != nil {
		return user.Session{}, err
	}
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return user.Session{}, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		u.Email = email
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return user.Session{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return user.Session{}, err
	}
	return s.session(u)
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]user.Profile, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]user.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

// Get returns one account by ID.
func (s *UserService) Get(ctx context.Context, id string) (user.Profile, error) {
	return s.Profile(ctx, id)
}

// Update applies an administrator's changes to an account.
func (s *UserService) Update(ctx context.Context, id string, in AdminUserUpdate) (user.Profile, error) {
	if err := validateInput(in); err != nil {
		return user.Profile{}, err
	}
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return user.Profile{}, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		u.Email = email
	}
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return user.Profile{}, err
	}
	s.logger.Info("user updated", "id", u.ID, "admin", u.IsAdmin)
	return u.Profile(), nil
}

// Delete removes one account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", "id", id)
	return nil
}

func (s *UserService) session(u *user.User) (user.Session, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return user.Session{}, fmt.Errorf("issue token: %w", err)
	}
	return u.Session(token), nil
}

// EnsureAdmin creates an administrator with the given credentials unless an
// account with that email already exists.
func (s *UserService) EnsureAdmin(ctx context.Context, in RegisterInput) (*user.User, bool, error) {
	existing, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(in.Email))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, false, err
	}
	u, err := s.CreateUser(ctx, in, true)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

