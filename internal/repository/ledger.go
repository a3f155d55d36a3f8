package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"playerslog-backend/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateTransaction means an active ledger row already exists for the
// same (game, user, source goll) key. The settlement guard should make this
// unreachable; seeing it indicates an invariant violation.
var ErrDuplicateTransaction = errors.New("duplicate point transaction")

// RecordTransactions writes the given point transactions and credits each
// user's balance in the same unit of work. The at-most-once rule is keyed
// on (game_id, user_id, source_goll_id) over non-reversed rows; call this
// through WithTx so a mid-batch failure rolls back every row and credit.
func (r *Repository) RecordTransactions(ctx context.Context, gameID uint, txns []models.PointTransaction) (int, error) {
	for i := range txns {
		txn := &txns[i]

		var count int64
		err := r.db.WithContext(ctx).
			Model(&models.PointTransaction{}).
			Where("game_id = ? AND user_id = ? AND source_goll_id = ? AND reversed = ?",
				gameID, txn.UserID, txn.SourceGollID, false).
			Count(&count).Error
		if err != nil {
			return 0, fmt.Errorf("failed to check for duplicate transaction: %w", err)
		}
		if count > 0 {
			return 0, fmt.Errorf("game %d, user %s, goll %d: %w",
				gameID, txn.UserID, txn.SourceGollID, ErrDuplicateTransaction)
		}

		if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
			return 0, fmt.Errorf("failed to record transaction: %w", err)
		}

		err = r.db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", txn.UserID).
			Update("points", gorm.Expr("points + ?", txn.TotalPoints)).Error
		if err != nil {
			return 0, fmt.Errorf("failed to credit user balance: %w", err)
		}
	}

	return len(txns), nil
}

// ReverseTransactions marks every active transaction for the game as
// reversed and debits each affected user's balance. The returned count is
// the number of reversed author rows, matching the participant figure
// reported at settlement time; the points total covers like shares too.
// Call through WithTx; the reversal is all-or-nothing only inside a
// transaction.
func (r *Repository) ReverseTransactions(ctx context.Context, gameID uint) (int, int64, error) {
	var txns []models.PointTransaction
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND reversed = ?", gameID, false).
		Find(&txns).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load transactions: %w", err)
	}

	now := time.Now()
	var participants int
	var totalPoints int64

	for i := range txns {
		txn := &txns[i]

		err := r.db.WithContext(ctx).
			Model(&models.PointTransaction{}).
			Where("id = ?", txn.ID).
			Updates(map[string]interface{}{
				"reversed":    true,
				"reversed_at": now,
			}).Error
		if err != nil {
			return 0, 0, fmt.Errorf("failed to reverse transaction %d: %w", txn.ID, err)
		}

		err = r.db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", txn.UserID).
			Update("points", gorm.Expr("points - ?", txn.TotalPoints)).Error
		if err != nil {
			return 0, 0, fmt.Errorf("failed to debit user balance: %w", err)
		}

		if txn.ParticipationType != models.ParticipationLike {
			participants++
		}
		totalPoints += txn.TotalPoints
	}

	return participants, totalPoints, nil
}

// GetTransactionsByGame retrieves all ledger rows for a game, including
// reversed ones
func (r *Repository) GetTransactionsByGame(ctx context.Context, gameID uint) ([]models.PointTransaction, error) {
	var txns []models.PointTransaction
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at ASC, id ASC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// GetBalance returns a user's current point balance
func (r *Repository) GetBalance(ctx context.Context, userID string) (int64, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("points").Where("id = ?", userID).First(&user).Error
	if err != nil {
		return 0, err
	}
	return user.Points, nil
}

// SumActivePoints sums a user's non-reversed transactions; the audit job
// compares it against the stored balance.
func (r *Repository) SumActivePoints(ctx context.Context, userID string) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&models.PointTransaction{}).
		Select("SUM(total_points)").
		Where("user_id = ? AND reversed = ?", userID, false).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// ============================================================================
// Settlement records & history
// ============================================================================

// GetActiveSettlement retrieves the settlement record for a game, or nil
// when the game is unsettled
func (r *Repository) GetActiveSettlement(ctx context.Context, gameID uint) (*models.Settlement, error) {
	var settlement models.Settlement
	err := r.db.WithContext(ctx).Where("game_id = ?", gameID).First(&settlement).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}

// CreateSettlement creates the one-per-game settlement record
func (r *Repository) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	return r.db.WithContext(ctx).Create(settlement).Error
}

// DeleteSettlement removes a game's settlement record, reopening it for
// re-processing
func (r *Repository) DeleteSettlement(ctx context.Context, gameID uint) error {
	return r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Delete(&models.Settlement{}).Error
}

// AppendSettlementHistory writes an audit entry; history rows are never
// updated or deleted
func (r *Repository) AppendSettlementHistory(ctx context.Context, history *models.SettlementHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// ListSettlementHistories retrieves the audit trail for a game, oldest first
func (r *Repository) ListSettlementHistories(ctx context.Context, gameID uint) ([]models.SettlementHistory, error) {
	var histories []models.SettlementHistory
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("performed_at ASC, id ASC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}
