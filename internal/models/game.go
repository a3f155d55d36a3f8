package models

import (
	"time"
)

type GameStatus string

const (
	GameStatusScheduled  GameStatus = "SCHEDULED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
	GameStatusSuspended  GameStatus = "SUSPENDED"
	GameStatusFinished   GameStatus = "FINISHED"
	GameStatusCancelled  GameStatus = "CANCELLED"
)

// SettlementStatus uses the Korean labels the admin client renders directly.
type SettlementStatus string

const (
	SettlementStatusPending   SettlementStatus = "미정산"
	SettlementStatusCompleted SettlementStatus = "정산완료"
)

type MVPType string

const (
	MVPTypePitcher MVPType = "Pitcher"
	MVPTypeBatter  MVPType = "Batter"
)

type MVPPosition string

const (
	MVPPositionStarter MVPPosition = "Starter"
	MVPPositionMiddle  MVPPosition = "Middle"
	MVPPositionCloser  MVPPosition = "Closer"
	MVPPositionTop     MVPPosition = "Top"
	MVPPositionCenter  MVPPosition = "Center"
	MVPPositionBottom  MVPPosition = "Bottom"
)

// ValidForType reports whether the sub-position belongs to the given MVP
// category. The pitcher and batter enums are disjoint, so a position from
// the wrong category never matches.
func (p MVPPosition) ValidForType(t MVPType) bool {
	switch t {
	case MVPTypePitcher:
		return p == MVPPositionStarter || p == MVPPositionMiddle || p == MVPPositionCloser
	case MVPTypeBatter:
		return p == MVPPositionTop || p == MVPPositionCenter || p == MVPPositionBottom
	}
	return false
}

// Game represents a scheduled KBO match. The settlement engine only reads
// result fields and flips SettlementStatus; everything else is owned by the
// game-scheduling flow.
type Game struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	Season             string           `gorm:"size:20;not null;index" json:"season"`
	Date               string           `gorm:"size:10;not null;index" json:"date"`
	Time               string           `gorm:"size:5;not null" json:"time"`
	HomeTeam           string           `gorm:"size:50;not null" json:"homeTeam"`
	AwayTeam           string           `gorm:"size:50;not null" json:"awayTeam"`
	Stadium            string           `gorm:"size:100" json:"stadium"`
	Status             GameStatus       `gorm:"size:20;not null;default:SCHEDULED;index" json:"status"`
	HomeScore          int              `gorm:"default:0" json:"homeScore"`
	AwayScore          int              `gorm:"default:0" json:"awayScore"`
	Winner             *string          `gorm:"size:50" json:"winner,omitempty"`
	MVP                *string          `gorm:"size:100" json:"mvp,omitempty"`
	MVPType            *MVPType         `gorm:"size:20" json:"mvpType,omitempty"`
	MVPPosition        *MVPPosition     `gorm:"size:20" json:"mvpPosition,omitempty"`
	CancellationReason *string          `gorm:"size:255" json:"cancellationReason,omitempty"`
	DetailStatus       *string          `gorm:"size:100" json:"detailStatus,omitempty"`
	IsRescheduled      bool             `gorm:"default:false" json:"isRescheduled"`
	OriginalGameID     *uint            `gorm:"index" json:"originalGameId,omitempty"`
	SeriesNumber       int              `gorm:"default:1" json:"seriesNumber"`
	SettlementStatus   SettlementStatus `gorm:"size:20;not null;default:미정산;index" json:"settlementStatus"`
	ResultConfirmedAt  *time.Time       `json:"resultConfirmedAt,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

func (Game) TableName() string {
	return "games"
}

// GameHistory records schedule changes (등록/변경/취소/재편성/삭제).
type GameHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GameID    uint      `gorm:"not null;index" json:"gameId"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	OldDate   *string   `gorm:"size:10" json:"oldDate,omitempty"`
	NewDate   *string   `gorm:"size:10" json:"newDate,omitempty"`
	Reason    *string   `gorm:"size:255" json:"reason,omitempty"`
	ChangedAt time.Time `gorm:"autoCreateTime" json:"changedAt"`
}

func (GameHistory) TableName() string {
	return "game_histories"
}

// CreateGameRequest is the payload for registering a game
type CreateGameRequest struct {
	Season         string `json:"season" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	HomeTeam       string `json:"homeTeam" binding:"required"`
	AwayTeam       string `json:"awayTeam" binding:"required"`
	Stadium        string `json:"stadium"`
	SeriesNumber   *int   `json:"seriesNumber"`
	IsRescheduled  bool   `json:"isRescheduled"`
	OriginalGameID *uint  `json:"originalGameId"`
}

// UpdateGameRequest carries partial game updates; nil fields are untouched.
type UpdateGameRequest struct {
	Season             *string       `json:"season"`
	Date               *string       `json:"date"`
	Time               *string       `json:"time"`
	HomeTeam           *string       `json:"homeTeam"`
	AwayTeam           *string       `json:"awayTeam"`
	Stadium            *string       `json:"stadium"`
	Status             *GameStatus   `json:"status"`
	HomeScore          *int          `json:"homeScore"`
	AwayScore          *int          `json:"awayScore"`
	Winner             *string       `json:"winner"`
	MVP                *string       `json:"mvp"`
	MVPType            *MVPType      `json:"mvpType"`
	MVPPosition        *MVPPosition  `json:"mvpPosition"`
	CancellationReason *string       `json:"cancellationReason"`
	DetailStatus       *string       `json:"detailStatus"`
}

// ConfirmResultRequest is the payload for PUT /settlements/:gameId/result
type ConfirmResultRequest struct {
	Winner      *string      `json:"winner"`
	MVP         *string      `json:"mvp"`
	MVPType     *MVPType     `json:"mvpType"`
	MVPPosition *MVPPosition `json:"mvpPosition"`
}
