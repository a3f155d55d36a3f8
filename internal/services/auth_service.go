package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"playerslog-backend/internal/auth"
	"playerslog-backend/internal/models"
	"playerslog-backend/internal/repository"
)

// ErrInvalidCredentials means the email/password pair did not match an
// admin account. The message is shared for unknown email and wrong
// password so login failures do not leak which one was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService authenticates admin-console accounts.
type AuthService struct {
	repo *repository.Repository
}

// NewAuthService creates a new auth service
func NewAuthService(repo *repository.Repository) *AuthService {
	return &AuthService{repo: repo}
}

// Login verifies the credentials and returns a signed JWT plus the admin
// account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.AdminUser, error) {
	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[Auth] Admin %s logged in", admin.Email)
	return token, admin, nil
}

// HashPassword produces the bcrypt hash stored on admin accounts
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
