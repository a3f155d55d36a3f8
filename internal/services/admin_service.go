package services

import (
	"context"
	"fmt"
	"time"

	"playerslog-backend/internal/models"
	"playerslog-backend/internal/repository"
)

// AdminService assembles the dashboard summary and operator notifications.
type AdminService struct {
	repo *repository.Repository
}

// NewAdminService creates a new admin service
func NewAdminService(repo *repository.Repository) *AdminService {
	return &AdminService{repo: repo}
}

// GetDashboardStats returns the counters shown on the admin landing page
func (s *AdminService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	todayGames, err := s.repo.CountGamesOnDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}

	pendingReports, err := s.repo.CountPendingReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	pendingSettlement, err := s.repo.CountPendingSettlements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending settlements: %w", err)
	}

	return &models.DashboardStats{
		TotalUsers:        totalUsers,
		TodayGames:        todayGames,
		PendingReports:    pendingReports,
		PendingSettlement: pendingSettlement,
	}, nil
}

// GetNotifications derives operator alerts from current state; nothing is
// stored, so an alert disappears as soon as the underlying work is done.
func (s *AdminService) GetNotifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification

	pendingSettlement, err := s.repo.CountPendingSettlements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending settlements: %w", err)
	}
	if pendingSettlement > 0 {
		notifications = append(notifications, models.Notification{
			ID:      len(notifications) + 1,
			Type:    "settlement",
			Message: fmt.Sprintf("정산 대기 중인 경기가 %d건 있습니다", pendingSettlement),
		})
	}

	pendingReports, err := s.repo.CountPendingReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	if pendingReports > 0 {
		notifications = append(notifications, models.Notification{
			ID:      len(notifications) + 1,
			Type:    "report",
			Message: fmt.Sprintf("처리되지 않은 신고가 %d건 있습니다", pendingReports),
		})
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}
