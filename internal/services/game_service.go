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

// GameService manages the KBO game schedule: registration, edits,
// cancellation and the schedule-change history.
type GameService struct {
	db   *gorm.DB
	repo *repository.Repository
}

// NewGameService creates a new game service
func NewGameService(db *gorm.DB, repo *repository.Repository) *GameService {
	return &GameService{db: db, repo: repo}
}

// ListGames retrieves games filtered by date and/or status
func (s *GameService) ListGames(ctx context.Context, date string, status models.GameStatus) ([]models.Game, error) {
	return s.repo.ListGames(ctx, date, status)
}

// GetGame retrieves a single game
func (s *GameService) GetGame(ctx context.Context, gameID uint) (*models.Game, error) {
	game, err := s.repo.GetGameByID(ctx, gameID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("game %d: %w", gameID, ErrGameNotFound)
	}
	return game, err
}

// CreateGame registers a game and records the registration in the
// schedule history.
func (s *GameService) CreateGame(ctx context.Context, req *models.CreateGameRequest) (*models.Game, error) {
	if _, ok := teams.ByName(req.HomeTeam); !ok {
		return nil, fmt.Errorf("unknown home team %q", req.HomeTeam)
	}
	if _, ok := teams.ByName(req.AwayTeam); !ok {
		return nil, fmt.Errorf("unknown away team %q", req.AwayTeam)
	}
	if req.HomeTeam == req.AwayTeam {
		return nil, fmt.Errorf("home and away team must differ")
	}

	game := &models.Game{
		Season:         req.Season,
		Date:           req.Date,
		Time:           req.Time,
		HomeTeam:       req.HomeTeam,
		AwayTeam:       req.AwayTeam,
		Stadium:        req.Stadium,
		Status:         models.GameStatusScheduled,
		IsRescheduled:  req.IsRescheduled,
		OriginalGameID: req.OriginalGameID,
		SeriesNumber:   1,
	}
	if req.SeriesNumber != nil {
		game.SeriesNumber = *req.SeriesNumber
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.repo.WithTx(tx)
		if err := r.CreateGame(ctx, game); err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}

		historyType := "등록"
		if game.IsRescheduled {
			historyType = "재편성"
		}
		return r.AppendGameHistory(ctx, &models.GameHistory{
			GameID:  game.ID,
			Type:    historyType,
			NewDate: &game.Date,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Game] Created game %d: %s vs %s on %s", game.ID, game.HomeTeam, game.AwayTeam, game.Date)
	return game, nil
}

// BulkCreateGames registers a batch of games in one transaction; one bad
// row rejects the whole batch.
func (s *GameService) BulkCreateGames(ctx context.Context, reqs []models.CreateGameRequest) ([]models.Game, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("empty game batch")
	}

	games := make([]models.Game, 0, len(reqs))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.repo.WithTx(tx)

		for i := range reqs {
			req := &reqs[i]
			if _, ok := teams.ByName(req.HomeTeam); !ok {
				return fmt.Errorf("row %d: unknown home team %q", i, req.HomeTeam)
			}
			if _, ok := teams.ByName(req.AwayTeam); !ok {
				return fmt.Errorf("row %d: unknown away team %q", i, req.AwayTeam)
			}
			if req.HomeTeam == req.AwayTeam {
				return fmt.Errorf("row %d: home and away team must differ", i)
			}

			game := models.Game{
				Season:         req.Season,
				Date:           req.Date,
				Time:           req.Time,
				HomeTeam:       req.HomeTeam,
				AwayTeam:       req.AwayTeam,
				Stadium:        req.Stadium,
				Status:         models.GameStatusScheduled,
				IsRescheduled:  req.IsRescheduled,
				OriginalGameID: req.OriginalGameID,
				SeriesNumber:   1,
			}
			if req.SeriesNumber != nil {
				game.SeriesNumber = *req.SeriesNumber
			}

			if err := r.CreateGame(ctx, &game); err != nil {
				return fmt.Errorf("row %d: failed to create game: %w", i, err)
			}
			err := r.AppendGameHistory(ctx, &models.GameHistory{
				GameID:  game.ID,
				Type:    "등록",
				NewDate: &game.Date,
			})
			if err != nil {
				return err
			}
			games = append(games, game)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Game] Bulk created %d games", len(games))
	return games, nil
}

// UpdateScore updates the live score of a game
func (s *GameService) UpdateScore(ctx context.Context, gameID uint, homeScore, awayScore int) (*models.Game, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, fmt.Errorf("scores must not be negative")
	}
	return s.UpdateGame(ctx, gameID, &models.UpdateGameRequest{
		HomeScore: &homeScore,
		AwayScore: &awayScore,
	})
}

// UpdateGame applies a partial update. Date changes and cancellations are
// recorded in the schedule history; cancelling requires a reason.
func (s *GameService) UpdateGame(ctx context.Context, gameID uint, req *models.UpdateGameRequest) (*models.Game, error) {
	var game *models.Game

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.repo.WithTx(tx)

		var err error
		game, err = r.GetGameByID(ctx, gameID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("game %d: %w", gameID, ErrGameNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load game: %w", err)
		}

		oldDate := game.Date

		// The confirmed result is locked while an active settlement
		// exists; cancel the settlement before correcting it.
		if req.Winner != nil || req.MVP != nil || req.MVPType != nil || req.MVPPosition != nil {
			settlement, err := r.GetActiveSettlement(ctx, gameID)
			if err != nil {
				return fmt.Errorf("failed to check settlement: %w", err)
			}
			if settlement != nil {
				return fmt.Errorf("game %d: result is locked: %w", gameID, ErrAlreadySettled)
			}
		}

		if req.Status != nil && *req.Status == models.GameStatusCancelled {
			reason := req.CancellationReason
			if reason == nil {
				reason = game.CancellationReason
			}
			if reason == nil || *reason == "" {
				return fmt.Errorf("cancellation reason is required")
			}
		}

		if req.Season != nil {
			game.Season = *req.Season
		}
		if req.Date != nil {
			game.Date = *req.Date
		}
		if req.Time != nil {
			game.Time = *req.Time
		}
		if req.HomeTeam != nil {
			game.HomeTeam = *req.HomeTeam
		}
		if req.AwayTeam != nil {
			game.AwayTeam = *req.AwayTeam
		}
		if req.Stadium != nil {
			game.Stadium = *req.Stadium
		}
		if req.Status != nil {
			game.Status = *req.Status
		}
		if req.HomeScore != nil {
			game.HomeScore = *req.HomeScore
		}
		if req.AwayScore != nil {
			game.AwayScore = *req.AwayScore
		}
		if req.Winner != nil {
			game.Winner = req.Winner
		}
		if req.MVP != nil {
			game.MVP = req.MVP
		}
		if req.MVPType != nil {
			game.MVPType = req.MVPType
		}
		if req.MVPPosition != nil {
			game.MVPPosition = req.MVPPosition
		}
		if req.CancellationReason != nil {
			game.CancellationReason = req.CancellationReason
		}
		if req.DetailStatus != nil {
			game.DetailStatus = req.DetailStatus
		}

		if err := r.SaveGame(ctx, game); err != nil {
			return fmt.Errorf("failed to save game: %w", err)
		}

		if req.Date != nil && *req.Date != oldDate {
			err := r.AppendGameHistory(ctx, &models.GameHistory{
				GameID:  game.ID,
				Type:    "변경",
				OldDate: &oldDate,
				NewDate: req.Date,
			})
			if err != nil {
				return err
			}
		}
		if req.Status != nil && *req.Status == models.GameStatusCancelled {
			err := r.AppendGameHistory(ctx, &models.GameHistory{
				GameID: game.ID,
				Type:   "취소",
				Reason: game.CancellationReason,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return game, nil
}

// DeleteGame removes a game and records the deletion. Settled games cannot
// be deleted; cancel the settlement first.
func (s *GameService) DeleteGame(ctx context.Context, gameID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.repo.WithTx(tx)

		game, err := r.GetGameByID(ctx, gameID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("game %d: %w", gameID, ErrGameNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load game: %w", err)
		}

		if game.SettlementStatus == models.SettlementStatusCompleted {
			return fmt.Errorf("game %d: %w", gameID, ErrAlreadySettled)
		}

		if err := r.DeleteGame(ctx, gameID); err != nil {
			return fmt.Errorf("failed to delete game: %w", err)
		}

		return r.AppendGameHistory(ctx, &models.GameHistory{
			GameID:  gameID,
			Type:    "삭제",
			OldDate: &game.Date,
		})
	})
	if err != nil {
		return err
	}

	log.Printf("[Game] Deleted game %d", gameID)
	return nil
}

// ListHistories retrieves the schedule-change history, newest first
func (s *GameService) ListHistories(ctx context.Context) ([]models.GameHistory, error) {
	return s.repo.ListGameHistories(ctx)
}
