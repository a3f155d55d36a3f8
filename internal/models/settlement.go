package models

import (
	"time"
)

type ParticipationType string

const (
	ParticipationAuthor ParticipationType = "author"
	ParticipationLike   ParticipationType = "like"
)

// PointTransaction is one ledger row: points awarded to one user for one
// game. Rows are immutable once written; cancellation flips Reversed
// instead of deleting, so the audit trail survives re-settlement.
type PointTransaction struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	GameID            uint              `gorm:"not null;index" json:"gameId"`
	UserID            string            `gorm:"type:uuid;not null;index" json:"userId"`
	ParticipationType ParticipationType `gorm:"size:20;not null;default:author" json:"participationType"`
	WinLosePoints     int64             `gorm:"not null;default:0" json:"winLosePoints"`
	MVPTypePoints     int64             `gorm:"not null;default:0" json:"mvpTypePoints"`
	MVPPositionPoints int64             `gorm:"not null;default:0" json:"mvpPositionPoints"`
	TotalPoints       int64             `gorm:"not null;default:0" json:"totalPoints"`
	SourceGollID      uint              `gorm:"not null;index" json:"sourceGollId"`
	Details           JSONB             `gorm:"type:jsonb" json:"details"`
	Reversed          bool              `gorm:"not null;default:false;index" json:"reversed"`
	ReversedAt        *time.Time        `json:"reversedAt,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

func (PointTransaction) TableName() string {
	return "point_transactions"
}

// Settlement is the one-per-game record of a completed settlement run.
type Settlement struct {
	ID                      uint      `gorm:"primaryKey" json:"id"`
	GameID                  uint      `gorm:"uniqueIndex;not null" json:"gameId"`
	Status                  string    `gorm:"size:20;not null;default:completed" json:"status"`
	TotalParticipants       int       `gorm:"not null;default:0" json:"totalParticipants"`
	TotalPointsAwarded      int64     `gorm:"not null;default:0" json:"totalPointsAwarded"`
	WinLoseCorrectCount     int       `gorm:"not null;default:0" json:"winLoseCorrectCount"`
	MVPTypeCorrectCount     int       `gorm:"not null;default:0" json:"mvpTypeCorrectCount"`
	MVPPositionCorrectCount int       `gorm:"not null;default:0" json:"mvpPositionCorrectCount"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

func (Settlement) TableName() string {
	return "settlements"
}

// SettlementHistory is the append-only audit log of settle/cancel actions.
type SettlementHistory struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	GameID             uint      `gorm:"not null;index" json:"gameId"`
	Action             string    `gorm:"size:20;not null" json:"action"` // settled, cancelled
	PerformedBy        string    `gorm:"size:255;not null" json:"performedBy"`
	PerformedAt        time.Time `gorm:"not null" json:"performedAt"`
	TotalParticipants  int       `gorm:"not null;default:0" json:"totalParticipants"`
	TotalPointsAwarded int64     `gorm:"not null;default:0" json:"totalPointsAwarded"`
	Reason             *string   `gorm:"size:255" json:"reason"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (SettlementHistory) TableName() string {
	return "settlement_histories"
}

// SettlementProcessResult is returned from POST /settlements/:gameId/process
type SettlementProcessResult struct {
	Processed               bool  `json:"processed"`
	GameID                  uint  `json:"gameId"`
	TotalParticipants       int   `json:"totalParticipants"`
	TotalPointsAwarded      int64 `json:"totalPointsAwarded"`
	WinLoseCorrectCount     int   `json:"winLoseCorrectCount"`
	MVPTypeCorrectCount     int   `json:"mvpTypeCorrectCount"`
	MVPPositionCorrectCount int   `json:"mvpPositionCorrectCount"`
}

// SettlementCancelResult is returned from DELETE /settlements/:gameId
type SettlementCancelResult struct {
	Cancelled              bool  `json:"cancelled"`
	GameID                 uint  `json:"gameId"`
	RolledBackParticipants int   `json:"rolledBackParticipants"`
	RolledBackPoints       int64 `json:"rolledBackPoints"`
}

// SettlementDetailResponse is returned from GET /settlements/:gameId
type SettlementDetailResponse struct {
	Settlement   *Settlement         `json:"settlement"`
	Transactions []PointTransaction  `json:"transactions"`
	Histories    []SettlementHistory `json:"histories"`
}
