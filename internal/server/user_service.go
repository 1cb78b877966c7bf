package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/resumeforge/resumeforge/internal/config"
	"github.com/resumeforge/resumeforge/internal/store"
)

// UserAccounts is the slice of the store the user service needs. The
// indirection keeps the service mockable in tests.
type UserAccounts interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (*store.User, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
}

// UserService holds the business logic for registration and login.
type UserService struct {
	accounts       UserAccounts
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a UserService with the given dependencies.
func NewUserService(accounts UserAccounts, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		accounts:       accounts,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new account with a hashed password.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*store.User, error) {
	passwordHash, err := s.passwordConfig.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.accounts.CreateUser(ctx, email, name, passwordHash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &ErrEmailAlreadyExists{Email: email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user. A missing account and a wrong password are
// deliberately the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*store.User, error) {
	user, err := s.accounts.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ErrInvalidCredentials{}
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !s.passwordConfig.VerifyPassword(password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return user, nil
}
