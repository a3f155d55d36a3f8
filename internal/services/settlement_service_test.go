package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"playerslog-backend/internal/config"
	"playerslog-backend/internal/models"
	"playerslog-backend/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Named memory DB with a shared cache so every pooled connection sees
	// the same database; the name keeps tests isolated from each other.
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.Game{},
		&models.GameHistory{},
		&models.Goll{},
		&models.GollReaction{},
		&models.GollReport{},
		&models.PointTransaction{},
		&models.Settlement{},
		&models.SettlementHistory{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func testSettlementConfig() config.SettlementConfig {
	return config.SettlementConfig{
		WinLosePoints:     100,
		MVPTypePoints:     50,
		MVPPositionPoints: 30,
		LikeShareRatio:    decimal.RequireFromString("0.1"),
		CutoffAtResult:    false,
		IncludeHidden:     false,
	}
}

func newTestSettlementService(t *testing.T, cfg config.SettlementConfig) (*gorm.DB, *repository.Repository, *SettlementService) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	return db, repo, NewSettlementService(db, repo, cfg)
}

func createTestUser(t *testing.T, db *gorm.DB, nickname, favoriteTeam string) *models.User {
	user := &models.User{
		Email:    nickname + "@test.local",
		Nickname: nickname,
		Status:   models.UserStatusActive,
	}
	if favoriteTeam != "" {
		user.FavoriteTeam = &favoriteTeam
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", nickname, err)
	}
	return user
}

// createFinishedGame registers 두산 vs LG with a confirmed result:
// 두산 won, MVP was a closing pitcher.
func createFinishedGame(t *testing.T, db *gorm.DB) *models.Game {
	winner := "두산"
	mvpType := models.MVPTypePitcher
	mvpPosition := models.MVPPositionCloser
	confirmedAt := time.Now()
	game := &models.Game{
		Season:            "2026",
		Date:              "2026-08-15",
		Time:              "18:30",
		HomeTeam:          "두산",
		AwayTeam:          "LG",
		Stadium:           "잠실야구장",
		Status:            models.GameStatusFinished,
		HomeScore:         5,
		AwayScore:         3,
		Winner:            &winner,
		MVPType:           &mvpType,
		MVPPosition:       &mvpPosition,
		SettlementStatus:  models.SettlementStatusPending,
		ResultConfirmedAt: &confirmedAt,
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("failed to create game: %v", err)
	}
	return game
}

func createTestGoll(t *testing.T, db *gorm.DB, gameID uint, author *models.User,
	winLoss models.WinLoss, mvpType models.MVPType, mvpPosition models.MVPPosition) *models.Goll {
	goll := &models.Goll{
		Type:        models.GollTypePreview,
		Title:       author.Nickname + "의 예측",
		Author:      author.Nickname,
		AuthorID:    author.ID,
		Prediction:  &winLoss,
		MVPType:     &mvpType,
		MVPPosition: &mvpPosition,
		GameID:      &gameID,
		Status:      models.GollStatusActive,
	}
	if err := db.Create(goll).Error; err != nil {
		t.Fatalf("failed to create goll: %v", err)
	}
	return goll
}

func TestProcessRejectsUnfinishedGame(t *testing.T) {
	db, _, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := &models.Game{
		Season: "2026", Date: "2026-08-15", Time: "18:30",
		HomeTeam: "두산", AwayTeam: "LG",
		Status: models.GameStatusScheduled,
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	_, err := svc.Process(ctx, game.ID, "admin@test.local")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestProcessRejectsMissingResult(t *testing.T) {
	db, _, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := &models.Game{
		Season: "2026", Date: "2026-08-15", Time: "18:30",
		HomeTeam: "두산", AwayTeam: "LG",
		Status: models.GameStatusFinished, // finished but no winner entered
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	_, err := svc.Process(ctx, game.ID, "admin@test.local")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestProcessRejectsMissingGame(t *testing.T) {
	_, _, svc := newTestSettlementService(t, testSettlementConfig())

	_, err := svc.Process(context.Background(), 9999, "admin@test.local")
	if !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestProcessScoresAllLegs(t *testing.T) {
	db, repo, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := createFinishedGame(t, db)

	// p1 nails every leg, p2 only the win/lose call, p3 called the wrong
	// winner but got the MVP category right.
	p1 := createTestUser(t, db, "p1", "두산")
	p2 := createTestUser(t, db, "p2", "두산")
	p3 := createTestUser(t, db, "p3", "LG")
	createTestGoll(t, db, game.ID, p1, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)
	createTestGoll(t, db, game.ID, p2, models.PredictionWin, models.MVPTypeBatter, models.MVPPositionCenter)
	createTestGoll(t, db, game.ID, p3, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionMiddle)

	result, err := svc.Process(ctx, game.ID, "admin@test.local")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if result.TotalParticipants != 3 {
		t.Errorf("TotalParticipants = %d, want 3", result.TotalParticipants)
	}
	if result.WinLoseCorrectCount != 2 {
		t.Errorf("WinLoseCorrectCount = %d, want 2", result.WinLoseCorrectCount)
	}
	if result.MVPTypeCorrectCount != 2 {
		t.Errorf("MVPTypeCorrectCount = %d, want 2", result.MVPTypeCorrectCount)
	}
	if result.MVPPositionCorrectCount != 1 {
		t.Errorf("MVPPositionCorrectCount = %d, want 1", result.MVPPositionCorrectCount)
	}
	if result.TotalPointsAwarded != 330 {
		t.Errorf("TotalPointsAwarded = %d, want 330", result.TotalPointsAwarded)
	}

	for _, tc := range []struct {
		user *models.User
		want int64
	}{
		{p1, 180}, // 100 + 50 + 30
		{p2, 100},
		{p3, 50},
	} {
		balance, err := repo.GetBalance(ctx, tc.user.ID)
		if err != nil {
			t.Fatalf("GetBalance(%s) failed: %v", tc.user.Nickname, err)
		}
		if balance != tc.want {
			t.Errorf("%s balance = %d, want %d", tc.user.Nickname, balance, tc.want)
		}
	}

	var reloaded models.Game
	if err := db.First(&reloaded, game.ID).Error; err != nil {
		t.Fatalf("failed to reload game: %v", err)
	}
	if reloaded.SettlementStatus != models.SettlementStatusCompleted {
		t.Errorf("SettlementStatus = %q, want %q", reloaded.SettlementStatus, models.SettlementStatusCompleted)
	}
}

func TestProcessIsNotRepeatable(t *testing.T) {
	db, repo, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := createFinishedGame(t, db)
	p1 := createTestUser(t, db, "p1", "두산")
	createTestGoll(t, db, game.ID, p1, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)

	if _, err := svc.Process(ctx, game.ID, "admin@test.local"); err != nil {
		t.Fatalf("first Process failed: %v", err)
	}

	_, err := svc.Process(ctx, game.ID, "admin@test.local")
	if !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled, got %v", err)
	}

	// Nothing must have been double-awarded.
	balance, err := repo.GetBalance(ctx, p1.ID)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance != 180 {
		t.Errorf("balance after repeated Process = %d, want 180", balance)
	}

	txns, err := repo.GetTransactionsByGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetTransactionsByGame failed: %v", err)
	}
	if len(txns) != 1 {
		t.Errorf("transaction count = %d, want 1", len(txns))
	}
}

func TestCancelRestoresBalances(t *testing.T) {
	db, repo, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := createFinishedGame(t, db)
	p1 := createTestUser(t, db, "p1", "두산")
	p2 := createTestUser(t, db, "p2", "LG")
	createTestGoll(t, db, game.ID, p1, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)
	createTestGoll(t, db, game.ID, p2, models.PredictionLoss, models.MVPTypeBatter, models.MVPPositionTop)

	if _, err := svc.Process(ctx, game.ID, "admin@test.local"); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	reason := "점수 오기입"
	cancel, err := svc.Cancel(ctx, game.ID, "admin@test.local", &reason)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancel.RolledBackParticipants != 2 {
		t.Errorf("RolledBackParticipants = %d, want 2", cancel.RolledBackParticipants)
	}
	if cancel.RolledBackPoints != 280 {
		t.Errorf("RolledBackPoints = %d, want 280", cancel.RolledBackPoints)
	}

	for _, user := range []*models.User{p1, p2} {
		balance, err := repo.GetBalance(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetBalance failed: %v", err)
		}
		if balance != 0 {
			t.Errorf("%s balance after cancel = %d, want 0", user.Nickname, balance)
		}
	}

	var reloaded models.Game
	if err := db.First(&reloaded, game.ID).Error; err != nil {
		t.Fatalf("failed to reload game: %v", err)
	}
	if reloaded.SettlementStatus != models.SettlementStatusPending {
		t.Errorf("SettlementStatus = %q, want %q", reloaded.SettlementStatus, models.SettlementStatusPending)
	}

	// Reversed rows stay in the ledger for audit.
	txns, err := repo.GetTransactionsByGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetTransactionsByGame failed: %v", err)
	}
	for _, txn := range txns {
		if !txn.Reversed || txn.ReversedAt == nil {
			t.Errorf("transaction %d not marked reversed", txn.ID)
		}
	}
}

func TestCancelThenReprocess(t *testing.T) {
	db, repo, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := createFinishedGame(t, db)
	p1 := createTestUser(t, db, "p1", "두산")
	createTestGoll(t, db, game.ID, p1, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)

	first, err := svc.Process(ctx, game.ID, "admin@test.local")
	if err != nil {
		t.Fatalf("first Process failed: %v", err)
	}
	if _, err := svc.Cancel(ctx, game.ID, "admin@test.local", nil); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	second, err := svc.Process(ctx, game.ID, "admin@test.local")
	if err != nil {
		t.Fatalf("second Process failed: %v", err)
	}

	if second.TotalParticipants != first.TotalParticipants ||
		second.TotalPointsAwarded != first.TotalPointsAwarded ||
		second.WinLoseCorrectCount != first.WinLoseCorrectCount ||
		second.MVPTypeCorrectCount != first.MVPTypeCorrectCount ||
		second.MVPPositionCorrectCount != first.MVPPositionCorrectCount {
		t.Errorf("re-settlement aggregates diverged: first %+v, second %+v", first, second)
	}

	// The balance must equal the sum of active ledger rows, and the
	// reversed rows from the first run must still be there.
	balance, err := repo.GetBalance(ctx, p1.ID)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	active, err := repo.SumActivePoints(ctx, p1.ID)
	if err != nil {
		t.Fatalf("SumActivePoints failed: %v", err)
	}
	if balance != active {
		t.Errorf("balance %d != active ledger sum %d", balance, active)
	}
	if balance != 180 {
		t.Errorf("balance = %d, want 180", balance)
	}

	txns, err := repo.GetTransactionsByGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetTransactionsByGame failed: %v", err)
	}
	if len(txns) != 2 {
		t.Errorf("ledger row count = %d, want 2 (one reversed, one active)", len(txns))
	}
}

func TestCancelWithoutSettlement(t *testing.T) {
	db, _, svc := newTestSettlementService(t, testSettlementConfig())

	game := createFinishedGame(t, db)
	_, err := svc.Cancel(context.Background(), game.ID, "admin@test.local", nil)
	if !errors.Is(err, ErrNotSettled) {
		t.Errorf("expected ErrNotSettled, got %v", err)
	}
}

func TestProcessAwardsLikeShares(t *testing.T) {
	db, repo, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := createFinishedGame(t, db)
	author := createTestUser(t, db, "author", "두산")
	liker1 := createTestUser(t, db, "liker1", "")
	liker2 := createTestUser(t, db, "liker2", "LG")
	goll := createTestGoll(t, db, game.ID, author, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)

	// A self-like must not produce a second ledger row for the author.
	for _, userID := range []string{liker1.ID, liker2.ID, author.ID} {
		reaction := &models.GollReaction{GollID: goll.ID, UserID: userID, Type: "like"}
		if err := db.Create(reaction).Error; err != nil {
			t.Fatalf("failed to create reaction: %v", err)
		}
	}

	result, err := svc.Process(ctx, game.ID, "admin@test.local")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	// Author scored 180; each liker gets 10% rounded to whole points.
	if result.TotalParticipants != 1 {
		t.Errorf("TotalParticipants = %d, want 1 (likers are not participants)", result.TotalParticipants)
	}
	if result.TotalPointsAwarded != 180+18+18 {
		t.Errorf("TotalPointsAwarded = %d, want 216", result.TotalPointsAwarded)
	}

	for _, tc := range []struct {
		user *models.User
		want int64
	}{
		{author, 180},
		{liker1, 18},
		{liker2, 18},
	} {
		balance, err := repo.GetBalance(ctx, tc.user.ID)
		if err != nil {
			t.Fatalf("GetBalance(%s) failed: %v", tc.user.Nickname, err)
		}
		if balance != tc.want {
			t.Errorf("%s balance = %d, want %d", tc.user.Nickname, balance, tc.want)
		}
	}

	txns, err := repo.GetTransactionsByGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetTransactionsByGame failed: %v", err)
	}
	if len(txns) != 3 {
		t.Errorf("transaction count = %d, want 3", len(txns))
	}
	likes := 0
	for _, txn := range txns {
		if txn.ParticipationType == models.ParticipationLike {
			likes++
			if txn.TotalPoints != 18 {
				t.Errorf("like share = %d, want 18", txn.TotalPoints)
			}
		}
	}
	if likes != 2 {
		t.Errorf("like transaction count = %d, want 2", likes)
	}
}

func TestProcessToleratesDuplicateLikeRows(t *testing.T) {
	db, repo, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := createFinishedGame(t, db)
	author := createTestUser(t, db, "author", "두산")
	liker := createTestUser(t, db, "liker", "")
	goll := createTestGoll(t, db, game.ID, author, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)

	// The same user liked twice; only one share may be paid out, and the
	// run must not abort on the duplicate ledger key.
	for i := 0; i < 2; i++ {
		reaction := &models.GollReaction{GollID: goll.ID, UserID: liker.ID, Type: "like"}
		if err := db.Create(reaction).Error; err != nil {
			t.Fatalf("failed to create reaction: %v", err)
		}
	}

	result, err := svc.Process(ctx, game.ID, "admin@test.local")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.TotalPointsAwarded != 180+18 {
		t.Errorf("TotalPointsAwarded = %d, want 198", result.TotalPointsAwarded)
	}

	balance, err := repo.GetBalance(ctx, liker.ID)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance != 18 {
		t.Errorf("liker balance = %d, want 18", balance)
	}

	txns, err := repo.GetTransactionsByGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetTransactionsByGame failed: %v", err)
	}
	if len(txns) != 2 {
		t.Errorf("transaction count = %d, want 2 (author + one like share)", len(txns))
	}
}

func TestCancelReportsAuthorParticipants(t *testing.T) {
	db, _, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := createFinishedGame(t, db)
	author := createTestUser(t, db, "author", "두산")
	liker1 := createTestUser(t, db, "liker1", "")
	liker2 := createTestUser(t, db, "liker2", "")
	goll := createTestGoll(t, db, game.ID, author, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)
	for _, userID := range []string{liker1.ID, liker2.ID} {
		reaction := &models.GollReaction{GollID: goll.ID, UserID: userID, Type: "like"}
		if err := db.Create(reaction).Error; err != nil {
			t.Fatalf("failed to create reaction: %v", err)
		}
	}

	result, err := svc.Process(ctx, game.ID, "admin@test.local")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	// The rolled-back participant figure must mirror the settled one:
	// authors only, even though the like shares are reversed too.
	cancel, err := svc.Cancel(ctx, game.ID, "admin@test.local", nil)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancel.RolledBackParticipants != result.TotalParticipants {
		t.Errorf("RolledBackParticipants = %d, want %d", cancel.RolledBackParticipants, result.TotalParticipants)
	}
	if cancel.RolledBackPoints != result.TotalPointsAwarded {
		t.Errorf("RolledBackPoints = %d, want %d", cancel.RolledBackPoints, result.TotalPointsAwarded)
	}
}

func TestProcessExcludesHiddenGolls(t *testing.T) {
	db, _, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := createFinishedGame(t, db)
	p1 := createTestUser(t, db, "p1", "두산")
	p2 := createTestUser(t, db, "p2", "두산")
	createTestGoll(t, db, game.ID, p1, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)
	hidden := createTestGoll(t, db, game.ID, p2, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)
	if err := db.Model(hidden).Update("status", models.GollStatusHidden).Error; err != nil {
		t.Fatalf("failed to hide goll: %v", err)
	}

	result, err := svc.Process(ctx, game.ID, "admin@test.local")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.TotalParticipants != 1 {
		t.Errorf("TotalParticipants = %d, want 1 (hidden goll excluded)", result.TotalParticipants)
	}
}

func TestProcessIncludesHiddenGollsWhenConfigured(t *testing.T) {
	cfg := testSettlementConfig()
	cfg.IncludeHidden = true
	db, _, svc := newTestSettlementService(t, cfg)
	ctx := context.Background()

	game := createFinishedGame(t, db)
	p1 := createTestUser(t, db, "p1", "두산")
	hidden := createTestGoll(t, db, game.ID, p1, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)
	if err := db.Model(hidden).Update("status", models.GollStatusHidden).Error; err != nil {
		t.Fatalf("failed to hide goll: %v", err)
	}

	result, err := svc.Process(ctx, game.ID, "admin@test.local")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.TotalParticipants != 1 {
		t.Errorf("TotalParticipants = %d, want 1 (hidden goll included)", result.TotalParticipants)
	}
}

func TestProcessCutoffExcludesLateGolls(t *testing.T) {
	cfg := testSettlementConfig()
	cfg.CutoffAtResult = true
	db, _, svc := newTestSettlementService(t, cfg)
	ctx := context.Background()

	game := createFinishedGame(t, db)
	confirmedAt := time.Now().Add(-time.Hour)
	if err := db.Model(game).Update("result_confirmed_at", confirmedAt).Error; err != nil {
		t.Fatalf("failed to set confirmation time: %v", err)
	}

	early := createTestUser(t, db, "early", "두산")
	late := createTestUser(t, db, "late", "두산")

	earlyGoll := createTestGoll(t, db, game.ID, early, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)
	if err := db.Model(earlyGoll).Update("created_at", confirmedAt.Add(-time.Hour)).Error; err != nil {
		t.Fatalf("failed to backdate goll: %v", err)
	}
	// Created after the result was confirmed; must not be scored.
	createTestGoll(t, db, game.ID, late, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)

	result, err := svc.Process(ctx, game.ID, "admin@test.local")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.TotalParticipants != 1 {
		t.Errorf("TotalParticipants = %d, want 1 (late goll excluded)", result.TotalParticipants)
	}
}

func TestGetDetail(t *testing.T) {
	db, _, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := createFinishedGame(t, db)
	p1 := createTestUser(t, db, "p1", "두산")
	createTestGoll(t, db, game.ID, p1, models.PredictionWin, models.MVPTypePitcher, models.MVPPositionCloser)

	detail, err := svc.GetDetail(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetDetail before settlement failed: %v", err)
	}
	if detail.Settlement != nil {
		t.Errorf("expected nil settlement before processing")
	}

	if _, err := svc.Process(ctx, game.ID, "admin@test.local"); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if _, err := svc.Cancel(ctx, game.ID, "admin@test.local", nil); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	detail, err = svc.GetDetail(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}
	if detail.Settlement != nil {
		t.Errorf("expected nil settlement after cancel")
	}
	if len(detail.Transactions) != 1 {
		t.Errorf("transaction count = %d, want 1 (reversed row kept)", len(detail.Transactions))
	}
	if len(detail.Histories) != 2 {
		t.Fatalf("history count = %d, want 2", len(detail.Histories))
	}
	if detail.Histories[0].Action != "settled" || detail.Histories[1].Action != "cancelled" {
		t.Errorf("history actions = %s, %s; want settled, cancelled",
			detail.Histories[0].Action, detail.Histories[1].Action)
	}
}

func TestConfirmResult(t *testing.T) {
	db, _, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := &models.Game{
		Season: "2026", Date: "2026-08-15", Time: "18:30",
		HomeTeam: "두산", AwayTeam: "LG",
		Status: models.GameStatusInProgress,
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	winner := "한화"
	_, err := svc.ConfirmResult(ctx, game.ID, &models.ConfirmResultRequest{Winner: &winner})
	if err == nil {
		t.Error("expected error for winner not playing in the game")
	}

	winner = "두산"
	mvpType := models.MVPTypePitcher
	mvpPosition := models.MVPPositionCloser
	updated, err := svc.ConfirmResult(ctx, game.ID, &models.ConfirmResultRequest{
		Winner:      &winner,
		MVPType:     &mvpType,
		MVPPosition: &mvpPosition,
	})
	if err != nil {
		t.Fatalf("ConfirmResult failed: %v", err)
	}
	if updated.Status != models.GameStatusFinished {
		t.Errorf("Status = %q, want FINISHED", updated.Status)
	}
	if updated.ResultConfirmedAt == nil {
		t.Error("ResultConfirmedAt not set")
	}

	// MVP position from the wrong category is rejected.
	badPosition := models.MVPPositionTop
	_, err = svc.ConfirmResult(ctx, game.ID, &models.ConfirmResultRequest{
		Winner:      &winner,
		MVPType:     &mvpType,
		MVPPosition: &badPosition,
	})
	if err == nil {
		t.Error("expected error for position outside the MVP category")
	}

	// Once settled, the result is locked until the settlement is cancelled.
	if _, err := svc.Process(ctx, game.ID, "admin@test.local"); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	_, err = svc.ConfirmResult(ctx, game.ID, &models.ConfirmResultRequest{Winner: &winner})
	if !errors.Is(err, ErrAlreadySettled) {
		t.Errorf("expected ErrAlreadySettled, got %v", err)
	}
}

func TestProcessSkipsUnscorableGolls(t *testing.T) {
	db, _, svc := newTestSettlementService(t, testSettlementConfig())
	ctx := context.Background()

	game := createFinishedGame(t, db)
	p1 := createTestUser(t, db, "p1", "두산")

	// No prediction on any leg: the goll produces no transaction.
	goll := &models.Goll{
		Type:     models.GollTypeReview,
		Title:    "경기 후기만 쓴 골",
		Author:   p1.Nickname,
		AuthorID: p1.ID,
		GameID:   &game.ID,
		Status:   models.GollStatusActive,
	}
	if err := db.Create(goll).Error; err != nil {
		t.Fatalf("failed to create goll: %v", err)
	}

	result, err := svc.Process(ctx, game.ID, "admin@test.local")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.TotalParticipants != 0 {
		t.Errorf("TotalParticipants = %d, want 0", result.TotalParticipants)
	}
	if result.TotalPointsAwarded != 0 {
		t.Errorf("TotalPointsAwarded = %d, want 0", result.TotalPointsAwarded)
	}
}
