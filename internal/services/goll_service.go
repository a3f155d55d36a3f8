package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"playerslog-backend/internal/models"
	"playerslog-backend/internal/repository"
	"playerslog-backend/internal/teams"
)

// ErrGollNotFound means the referenced goll does not exist.
var ErrGollNotFound = errors.New("goll not found")

// ErrReportNotFound means the referenced abuse report does not exist.
var ErrReportNotFound = errors.New("report not found")

// GollService handles goll moderation and abuse-report triage.
type GollService struct {
	repo *repository.Repository
}

// NewGollService creates a new goll service
func NewGollService(repo *repository.Repository) *GollService {
	return &GollService{repo: repo}
}

// ListGolls retrieves golls filtered by report status and/or a search term
func (s *GollService) ListGolls(ctx context.Context, reportStatus models.ReportStatus, search string) ([]models.Goll, error) {
	return s.repo.ListGolls(ctx, reportStatus, search)
}

// GetGoll retrieves a single goll
func (s *GollService) GetGoll(ctx context.Context, gollID uint) (*models.Goll, error) {
	goll, err := s.repo.GetGollByID(ctx, gollID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("goll %d: %w", gollID, ErrGollNotFound)
	}
	return goll, err
}

// UpdateStatus hides or unhides a goll
func (s *GollService) UpdateStatus(ctx context.Context, gollID uint, status models.GollStatus) error {
	if status != models.GollStatusActive && status != models.GollStatusHidden {
		return fmt.Errorf("invalid goll status %q", status)
	}
	if _, err := s.GetGoll(ctx, gollID); err != nil {
		return err
	}
	if err := s.repo.UpdateGollStatus(ctx, gollID, status); err != nil {
		return fmt.Errorf("failed to update goll status: %w", err)
	}

	log.Printf("[Goll] Goll %d status set to %s", gollID, status)
	return nil
}

// ListReports retrieves abuse reports with the derived team relation
// attached. A report is flagged same-team only when both the reporter's
// and the author's favorite teams are known KBO clubs and identical;
// missing or unknown teams never count as a match.
func (s *GollService) ListReports(ctx context.Context, status models.GollReportStatus) ([]models.GollReportView, error) {
	reports, err := s.repo.ListReports(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	views := make([]models.GollReportView, 0, len(reports))
	for _, report := range reports {
		reporterTeam := ""
		if report.ReporterTeam != nil {
			reporterTeam = *report.ReporterTeam
		}
		authorTeam := ""
		if report.AuthorTeam != nil {
			authorTeam = *report.AuthorTeam
		}
		relation := teams.ClassifyRelation(reporterTeam, authorTeam)
		views = append(views, models.GollReportView{
			GollReport: report,
			IsSameTeam: relation == teams.RelationSameTeam,
		})
	}
	return views, nil
}

// ResolveReport moves a report out of the pending state
func (s *GollService) ResolveReport(ctx context.Context, reportID uint, status models.GollReportStatus) error {
	if status != models.GollReportStatusResolved && status != models.GollReportStatusDismissed {
		return fmt.Errorf("invalid report status %q", status)
	}

	if _, err := s.repo.GetReportByID(ctx, reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("report %d: %w", reportID, ErrReportNotFound)
		}
		return fmt.Errorf("failed to load report: %w", err)
	}

	if err := s.repo.UpdateReportStatus(ctx, reportID, status); err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}

	log.Printf("[Goll] Report %d marked %s", reportID, status)
	return nil
}
