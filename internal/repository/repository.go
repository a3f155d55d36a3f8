package repository

import (
	"context"
	"time"

	"playerslog-backend/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository scoped to the given transaction handle, so a
// service can run several repository calls inside one unit of work.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ============================================================================
// Games
// ============================================================================

// GetGameByID retrieves a game by ID
func (r *Repository) GetGameByID(ctx context.Context, gameID uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).Where("id = ?", gameID).First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// ListGames retrieves games filtered by date and/or status
func (r *Repository) ListGames(ctx context.Context, date string, status models.GameStatus) ([]models.Game, error) {
	query := r.db.WithContext(ctx).Model(&models.Game{})
	if date != "" {
		query = query.Where("date = ?", date)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var games []models.Game
	err := query.Order("date DESC, time ASC").Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

// CreateGame creates a new game
func (r *Repository) CreateGame(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

// SaveGame persists all fields of a game
func (r *Repository) SaveGame(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

// DeleteGame removes a game
func (r *Repository) DeleteGame(ctx context.Context, gameID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Game{}, gameID).Error
}

// UpdateGameSettlementStatus flips the game's settlement status
func (r *Repository) UpdateGameSettlementStatus(ctx context.Context, gameID uint, status models.SettlementStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("id = ?", gameID).
		Update("settlement_status", status).Error
}

// AppendGameHistory records a schedule change
func (r *Repository) AppendGameHistory(ctx context.Context, history *models.GameHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// ListGameHistories retrieves all schedule changes, newest first
func (r *Repository) ListGameHistories(ctx context.Context) ([]models.GameHistory, error) {
	var histories []models.GameHistory
	err := r.db.WithContext(ctx).Order("changed_at DESC").Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

// ============================================================================
// Golls
// ============================================================================

// GetGollByID retrieves a goll by ID
func (r *Repository) GetGollByID(ctx context.Context, gollID uint) (*models.Goll, error) {
	var goll models.Goll
	err := r.db.WithContext(ctx).Where("id = ?", gollID).First(&goll).Error
	if err != nil {
		return nil, err
	}
	return &goll, nil
}

// ListGolls retrieves golls filtered by report status and/or a title/author search term
func (r *Repository) ListGolls(ctx context.Context, reportStatus models.ReportStatus, search string) ([]models.Goll, error) {
	query := r.db.WithContext(ctx).Model(&models.Goll{})
	if reportStatus != "" {
		query = query.Where("report_status = ?", reportStatus)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", pattern, pattern)
	}

	var golls []models.Goll
	err := query.Order("created_at DESC").Find(&golls).Error
	if err != nil {
		return nil, err
	}
	return golls, nil
}

// UpdateGollStatus hides or unhides a goll
func (r *Repository) UpdateGollStatus(ctx context.Context, gollID uint, status models.GollStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Goll{}).
		Where("id = ?", gollID).
		Update("status", status).Error
}

// ListEligibleGolls loads the golls that participate in a game's
// settlement. Hidden golls are excluded unless includeHidden is set, and a
// non-nil cutoff excludes golls created after the game result was
// confirmed.
func (r *Repository) ListEligibleGolls(ctx context.Context, gameID uint, includeHidden bool, cutoff *time.Time) ([]models.Goll, error) {
	query := r.db.WithContext(ctx).Where("game_id = ?", gameID)
	if !includeHidden {
		query = query.Where("status = ?", models.GollStatusActive)
	}
	if cutoff != nil {
		query = query.Where("created_at < ?", *cutoff)
	}

	var golls []models.Goll
	err := query.Order("created_at ASC").Find(&golls).Error
	if err != nil {
		return nil, err
	}
	return golls, nil
}

// ListReactions retrieves the like reactions for a goll
func (r *Repository) ListReactions(ctx context.Context, gollID uint) ([]models.GollReaction, error) {
	var reactions []models.GollReaction
	err := r.db.WithContext(ctx).
		Where("goll_id = ? AND type = ?", gollID, "like").
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	return reactions, nil
}

// ListReports retrieves abuse reports, optionally filtered by status
func (r *Repository) ListReports(ctx context.Context, status models.GollReportStatus) ([]models.GollReport, error) {
	query := r.db.WithContext(ctx).Model(&models.GollReport{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.GollReport
	err := query.Order("created_at DESC").Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// GetReportByID retrieves an abuse report by ID
func (r *Repository) GetReportByID(ctx context.Context, reportID uint) (*models.GollReport, error) {
	var report models.GollReport
	err := r.db.WithContext(ctx).Where("id = ?", reportID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// UpdateReportStatus resolves or dismisses an abuse report
func (r *Repository) UpdateReportStatus(ctx context.Context, reportID uint, status models.GollReportStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.GollReport{}).
		Where("id = ?", reportID).
		Update("status", status).Error
}

// ============================================================================
// Users / admins
// ============================================================================

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers retrieves users filtered by status and/or a nickname/email search term
func (r *Repository) ListUsers(ctx context.Context, status models.UserStatus, search string) ([]models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("nickname LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var users []models.User
	err := query.Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserStatus activates or suspends a user
func (r *Repository) UpdateUserStatus(ctx context.Context, userID string, status models.UserStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("status", status).Error
}

// GetAdminByEmail retrieves an admin account by email
func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// ============================================================================
// Dashboard counts
// ============================================================================

// CountUsers counts all registered users
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountGamesOnDate counts games scheduled for the given date
func (r *Repository) CountGamesOnDate(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Game{}).Where("date = ?", date).Count(&count).Error
	return count, err
}

// CountPendingReports counts unresolved abuse reports
func (r *Repository) CountPendingReports(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GollReport{}).
		Where("status = ?", models.GollReportStatusPending).
		Count(&count).Error
	return count, err
}

// CountPendingSettlements counts finished games that have not been settled yet
func (r *Repository) CountPendingSettlements(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("status = ? AND settlement_status = ?", models.GameStatusFinished, models.SettlementStatusPending).
		Count(&count).Error
	return count, err
}
