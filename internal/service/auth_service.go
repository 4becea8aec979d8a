package service

import (
	"context"
	"fmt"

	"myblog/internal/models"
	"myblog/internal/repository"
)

// AuthService handles registration and credential checks.
type AuthService struct {
	authRepo repository.Authorization
}

func NewAuthService(repo repository.Authorization) *AuthService {
	return &AuthService{authRepo: repo}
}

// SignUp hashes the password and creates a new user.
func (s *AuthService) SignUp(ctx context.Context, r models.Registration) (int64, error) {
	existing, err := s.authRepo.GetByUsername(ctx, r.Username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, models.ErrUserExists
	}

	hash, err := HashPassword(r.Password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	// the UNIQUE constraint still catches a concurrent sign-up
	return s.authRepo.Create(ctx, models.User{
		Name:         r.Name,
		Email:        r.Email,
		Username:     r.Username,
		PasswordHash: hash,
	})
}

// SignIn returns the user when the credentials match. Unknown users, wrong passwords
// and corrupt digests all yield models.ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, models.ErrInvalidCredentials
	}

	ok, err := VerifyPassword(u.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidCredentials, err)
	}
	if !ok {
		return nil, models.ErrInvalidCredentials
	}
	return u, nil
}
