package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"playerslog-backend/internal/config"
	"playerslog-backend/internal/lock"
	"playerslog-backend/internal/models"
	"playerslog-backend/internal/repository"
	"playerslog-backend/internal/scoring"
)

// SettlementService runs point settlement for finished games: it scores
// every eligible goll, writes the ledger, and records the settlement.
// Process and Cancel for the same game are serialized through a per-game
// lock and all writes happen inside one database transaction.
type SettlementService struct {
	db    *gorm.DB
	repo  *repository.Repository
	cfg   config.SettlementConfig
	locks *lock.GameLock
}

// NewSettlementService creates a new settlement service
func NewSettlementService(db *gorm.DB, repo *repository.Repository, cfg config.SettlementConfig) *SettlementService {
	return &SettlementService{
		db:    db,
		repo:  repo,
		cfg:   cfg,
		locks: lock.NewGameLock(),
	}
}

// ConfirmResult records a game's confirmed outcome. The game is marked
// finished and stamped with the confirmation time; settlement cutoff is
// measured against the first confirmation.
func (s *SettlementService) ConfirmResult(ctx context.Context, gameID uint, req *models.ConfirmResultRequest) (*models.Game, error) {
	var game *models.Game

	err := s.locks.WithLock(gameID, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			r := s.repo.WithTx(tx)

			var err error
			game, err = r.GetGameByID(ctx, gameID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("game %d: %w", gameID, ErrGameNotFound)
			}
			if err != nil {
				return fmt.Errorf("failed to load game: %w", err)
			}

			settlement, err := r.GetActiveSettlement(ctx, gameID)
			if err != nil {
				return fmt.Errorf("failed to check settlement: %w", err)
			}
			if settlement != nil {
				return fmt.Errorf("game %d: result is locked: %w", gameID, ErrAlreadySettled)
			}

			if req.Winner != nil && *req.Winner != "" &&
				*req.Winner != game.HomeTeam && *req.Winner != game.AwayTeam {
				return fmt.Errorf("winner %q is not playing in game %d: %w", *req.Winner, gameID, ErrInvalidResult)
			}
			if req.MVPType != nil && req.MVPPosition != nil && !req.MVPPosition.ValidForType(*req.MVPType) {
				return fmt.Errorf("mvp position %q is not valid for type %q: %w", *req.MVPPosition, *req.MVPType, ErrInvalidResult)
			}

			game.Winner = req.Winner
			game.MVP = req.MVP
			game.MVPType = req.MVPType
			game.MVPPosition = req.MVPPosition
			game.Status = models.GameStatusFinished
			if game.ResultConfirmedAt == nil {
				now := time.Now()
				game.ResultConfirmedAt = &now
			}

			return r.SaveGame(ctx, game)
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Settlement] Result confirmed for game %d", gameID)
	return game, nil
}

// Process settles a finished game: scores every eligible goll, awards
// points to authors and likers, and records the settlement. Re-processing
// an already settled game fails with ErrAlreadySettled.
func (s *SettlementService) Process(ctx context.Context, gameID uint, performedBy string) (*models.SettlementProcessResult, error) {
	var result *models.SettlementProcessResult

	err := s.locks.WithLock(gameID, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			r := s.repo.WithTx(tx)

			game, err := r.GetGameByID(ctx, gameID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("game %d: %w", gameID, ErrGameNotFound)
			}
			if err != nil {
				return fmt.Errorf("failed to load game: %w", err)
			}

			if game.Status != models.GameStatusFinished || game.Winner == nil || *game.Winner == "" {
				return fmt.Errorf("game %d: %w", gameID, ErrInvalidState)
			}

			existing, err := r.GetActiveSettlement(ctx, gameID)
			if err != nil {
				return fmt.Errorf("failed to check settlement: %w", err)
			}
			if existing != nil {
				return fmt.Errorf("game %d: %w", gameID, ErrAlreadySettled)
			}

			var cutoff *time.Time
			if s.cfg.CutoffAtResult {
				cutoff = game.ResultConfirmedAt
			}

			golls, err := r.ListEligibleGolls(ctx, gameID, s.cfg.IncludeHidden, cutoff)
			if err != nil {
				return fmt.Errorf("failed to load golls: %w", err)
			}

			actual := scoring.Result{
				HomeTeam:    game.HomeTeam,
				AwayTeam:    game.AwayTeam,
				Winner:      game.Winner,
				MVPType:     game.MVPType,
				MVPPosition: game.MVPPosition,
			}
			table := scoring.PointTable{
				WinLosePoints:     s.cfg.WinLosePoints,
				MVPTypePoints:     s.cfg.MVPTypePoints,
				MVPPositionPoints: s.cfg.MVPPositionPoints,
			}

			settlement := &models.Settlement{GameID: gameID}
			var txns []models.PointTransaction

			for i := range golls {
				goll := &golls[i]

				author, err := r.GetUserByID(ctx, goll.AuthorID)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					log.Printf("[Settlement] Skipping goll %d: author %s not found", goll.ID, goll.AuthorID)
					continue
				}
				if err != nil {
					return fmt.Errorf("failed to load author of goll %d: %w", goll.ID, err)
				}

				favoriteTeam := ""
				if author.FavoriteTeam != nil {
					favoriteTeam = *author.FavoriteTeam
				}

				pred := scoring.Prediction{
					FavoriteTeam: favoriteTeam,
					WinLoss:      goll.Prediction,
					MVPType:      goll.MVPType,
					MVPPosition:  goll.MVPPosition,
				}
				if !pred.Evaluable() {
					continue
				}

				breakdown := scoring.Score(pred, actual, table)

				settlement.TotalParticipants++
				settlement.TotalPointsAwarded += breakdown.Total()
				if breakdown.WinLoseCorrect {
					settlement.WinLoseCorrectCount++
				}
				if breakdown.MVPTypeCorrect {
					settlement.MVPTypeCorrectCount++
				}
				if breakdown.MVPPositionCorrect {
					settlement.MVPPositionCorrectCount++
				}

				txns = append(txns, models.PointTransaction{
					GameID:            gameID,
					UserID:            goll.AuthorID,
					ParticipationType: models.ParticipationAuthor,
					WinLosePoints:     breakdown.WinLosePoints,
					MVPTypePoints:     breakdown.MVPTypePoints,
					MVPPositionPoints: breakdown.MVPPositionPoints,
					TotalPoints:       breakdown.Total(),
					SourceGollID:      goll.ID,
					Details:           snapshotDetails(pred, game),
				})

				share := scoring.LikeShare(breakdown.Total(), s.cfg.LikeShareRatio)
				if share == 0 {
					continue
				}

				reactions, err := r.ListReactions(ctx, goll.ID)
				if err != nil {
					return fmt.Errorf("failed to load reactions of goll %d: %w", goll.ID, err)
				}
				// One share per liker: duplicate reaction rows (or a
				// self-like) would collide with the ledger key and abort
				// the whole run.
				seen := map[string]bool{goll.AuthorID: true}
				for _, reaction := range reactions {
					if seen[reaction.UserID] {
						continue
					}
					seen[reaction.UserID] = true
					settlement.TotalPointsAwarded += share
					txns = append(txns, models.PointTransaction{
						GameID:            gameID,
						UserID:            reaction.UserID,
						ParticipationType: models.ParticipationLike,
						TotalPoints:       share,
						SourceGollID:      goll.ID,
						Details: models.JSONB{
							"authorId":          goll.AuthorID,
							"authorTotalPoints": breakdown.Total(),
						},
					})
				}
			}

			if _, err := r.RecordTransactions(ctx, gameID, txns); err != nil {
				if errors.Is(err, repository.ErrDuplicateTransaction) {
					return fmt.Errorf("%w: %w", ErrConflict, err)
				}
				return fmt.Errorf("failed to write ledger: %w", err)
			}

			if err := r.CreateSettlement(ctx, settlement); err != nil {
				return fmt.Errorf("failed to create settlement: %w", err)
			}

			history := &models.SettlementHistory{
				GameID:             gameID,
				Action:             "settled",
				PerformedBy:        performedBy,
				PerformedAt:        time.Now(),
				TotalParticipants:  settlement.TotalParticipants,
				TotalPointsAwarded: settlement.TotalPointsAwarded,
			}
			if err := r.AppendSettlementHistory(ctx, history); err != nil {
				return fmt.Errorf("failed to append history: %w", err)
			}

			if err := r.UpdateGameSettlementStatus(ctx, gameID, models.SettlementStatusCompleted); err != nil {
				return fmt.Errorf("failed to update game status: %w", err)
			}

			result = &models.SettlementProcessResult{
				Processed:               true,
				GameID:                  gameID,
				TotalParticipants:       settlement.TotalParticipants,
				TotalPointsAwarded:      settlement.TotalPointsAwarded,
				WinLoseCorrectCount:     settlement.WinLoseCorrectCount,
				MVPTypeCorrectCount:     settlement.MVPTypeCorrectCount,
				MVPPositionCorrectCount: settlement.MVPPositionCorrectCount,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Settlement] Processed game %d: %d participants, %d points",
		gameID, result.TotalParticipants, result.TotalPointsAwarded)
	return result, nil
}

// Cancel reverses a game's settlement: every active ledger row is marked
// reversed, the awarded points are debited back, and the game returns to
// the unsettled state so it can be re-processed.
func (s *SettlementService) Cancel(ctx context.Context, gameID uint, performedBy string, reason *string) (*models.SettlementCancelResult, error) {
	var result *models.SettlementCancelResult

	err := s.locks.WithLock(gameID, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			r := s.repo.WithTx(tx)

			settlement, err := r.GetActiveSettlement(ctx, gameID)
			if err != nil {
				return fmt.Errorf("failed to check settlement: %w", err)
			}
			if settlement == nil {
				return fmt.Errorf("game %d: %w", gameID, ErrNotSettled)
			}

			count, points, err := r.ReverseTransactions(ctx, gameID)
			if err != nil {
				return fmt.Errorf("failed to reverse transactions: %w", err)
			}

			if err := r.DeleteSettlement(ctx, gameID); err != nil {
				return fmt.Errorf("failed to delete settlement: %w", err)
			}

			history := &models.SettlementHistory{
				GameID:             gameID,
				Action:             "cancelled",
				PerformedBy:        performedBy,
				PerformedAt:        time.Now(),
				TotalParticipants:  count,
				TotalPointsAwarded: points,
				Reason:             reason,
			}
			if err := r.AppendSettlementHistory(ctx, history); err != nil {
				return fmt.Errorf("failed to append history: %w", err)
			}

			if err := r.UpdateGameSettlementStatus(ctx, gameID, models.SettlementStatusPending); err != nil {
				return fmt.Errorf("failed to update game status: %w", err)
			}

			result = &models.SettlementCancelResult{
				Cancelled:              true,
				GameID:                 gameID,
				RolledBackParticipants: count,
				RolledBackPoints:       points,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Settlement] Cancelled settlement for game %d: %d transactions, %d points rolled back",
		gameID, result.RolledBackParticipants, result.RolledBackPoints)
	return result, nil
}

// GetDetail returns a game's settlement record (nil when unsettled), its
// full ledger including reversed rows, and the settle/cancel audit trail.
func (s *SettlementService) GetDetail(ctx context.Context, gameID uint) (*models.SettlementDetailResponse, error) {
	if _, err := s.repo.GetGameByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game %d: %w", gameID, ErrGameNotFound)
		}
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	settlement, err := s.repo.GetActiveSettlement(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlement: %w", err)
	}

	txns, err := s.repo.GetTransactionsByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	histories, err := s.repo.ListSettlementHistories(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load histories: %w", err)
	}

	return &models.SettlementDetailResponse{
		Settlement:   settlement,
		Transactions: txns,
		Histories:    histories,
	}, nil
}

// snapshotDetails freezes the inputs that produced an author transaction,
// so the ledger stays explainable even after the goll or game is edited.
func snapshotDetails(pred scoring.Prediction, game *models.Game) models.JSONB {
	details := models.JSONB{
		"favoriteTeam": pred.FavoriteTeam,
	}
	if pred.WinLoss != nil {
		details["prediction"] = string(*pred.WinLoss)
	}
	if game.Winner != nil {
		details["winner"] = *game.Winner
		outcome := "Loss"
		if pred.FavoriteTeam != "" && *game.Winner == pred.FavoriteTeam {
			outcome = "Win"
		}
		details["actualResult"] = outcome
	}
	if pred.MVPType != nil {
		details["predictedMvpType"] = string(*pred.MVPType)
	}
	if game.MVPType != nil {
		details["actualMvpType"] = string(*game.MVPType)
	}
	if pred.MVPPosition != nil {
		details["predictedMvpPosition"] = string(*pred.MVPPosition)
	}
	if game.MVPPosition != nil {
		details["actualMvpPosition"] = string(*game.MVPPosition)
	}
	return details
}
