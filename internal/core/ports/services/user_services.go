package services

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// UserSvcFacade manages user records and credential checks.
type UserSvcFacade interface {
	// RegisterUser creates a new user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// GetUserByID retrieves a specific user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// UpdateUser edits the user's profile; a new password is re-hashed.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// VerifyCredentials checks an email/password pair and returns the user on
	// success.
	VerifyCredentials(ctx context.Context, email string, password string) (*domain.User, error)
}

// AuthSvcFacade issues access tokens for verified users.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
