package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"playerslog-backend/internal/models"
	"playerslog-backend/internal/repository"
)

// ErrUserNotFound means the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserService handles member lookup and moderation.
type UserService struct {
	repo *repository.Repository
}

// NewUserService creates a new user service
func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// ListUsers retrieves users filtered by status and/or a search term
func (s *UserService) ListUsers(ctx context.Context, status models.UserStatus, search string) ([]models.User, error) {
	return s.repo.ListUsers(ctx, status, search)
}

// GetUser retrieves a single user
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	return user, err
}

// UpdateStatus activates or suspends a user
func (s *UserService) UpdateStatus(ctx context.Context, userID string, status models.UserStatus) error {
	if status != models.UserStatusActive && status != models.UserStatusSuspended {
		return fmt.Errorf("invalid user status %q", status)
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.UpdateUserStatus(ctx, userID, status); err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	log.Printf("[User] User %s status set to %s", userID, status)
	return nil
}

// GetBalance returns a user's current point balance
func (s *UserService) GetBalance(ctx context.Context, userID string) (int64, error) {
	balance, err := s.repo.GetBalance(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	return balance, err
}
