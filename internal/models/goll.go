package models

import (
	"time"
)

type GollType string

const (
	GollTypePreview GollType = "Preview"
	GollTypeReview  GollType = "Review"
)

type GollStatus string

const (
	GollStatusActive GollStatus = "active"
	GollStatusHidden GollStatus = "hidden"
)

type ReportStatus string

const (
	ReportStatusNormal   ReportStatus = "normal"
	ReportStatusReported ReportStatus = "reported"
)

// WinLoss is the author's call relative to their declared favorite team.
type WinLoss string

const (
	PredictionWin  WinLoss = "Win"
	PredictionLoss WinLoss = "Loss"
)

// Goll is a user-authored prediction post tied to a game. The settlement
// engine never mutates golls; moderation (hide/unhide) happens through
// GollService.
type Goll struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Type         GollType     `gorm:"size:20;not null;default:Preview" json:"type"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Content      string       `gorm:"type:text" json:"content"`
	Author       string       `gorm:"size:100;not null" json:"author"`
	AuthorID     string       `gorm:"type:uuid;not null;index" json:"authorId"`
	Prediction   *WinLoss     `gorm:"size:10" json:"prediction,omitempty"`
	MVP          *string      `gorm:"size:100" json:"mvp,omitempty"`
	MVPType      *MVPType     `gorm:"size:20" json:"mvpType,omitempty"`
	MVPPosition  *MVPPosition `gorm:"size:20" json:"mvpPosition,omitempty"`
	Link         *string      `gorm:"size:500" json:"link,omitempty"`
	GameID       *uint        `gorm:"index" json:"gameId,omitempty"`
	Status       GollStatus   `gorm:"size:20;not null;default:active;index" json:"status"`
	ReportStatus ReportStatus `gorm:"size:20;not null;default:normal;index" json:"reportStatus"`
	ReportReason *string      `gorm:"size:255" json:"reportReason,omitempty"`
	LikeCount    int          `gorm:"default:0" json:"likeCount"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (Goll) TableName() string {
	return "golls"
}

// GollReaction is a like on a goll; likers share in settlement points.
type GollReaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GollID    uint      `gorm:"not null;index" json:"gollId"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	Type      string    `gorm:"size:20;not null;default:like" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func (GollReaction) TableName() string {
	return "goll_reactions"
}

type GollReportStatus string

const (
	GollReportStatusPending   GollReportStatus = "pending"
	GollReportStatusResolved  GollReportStatus = "resolved"
	GollReportStatusDismissed GollReportStatus = "dismissed"
)

// GollReport is an abuse report against a goll. ReporterTeam and AuthorTeam
// are snapshots of each user's favorite team at report time; the same-team
// flag is derived on read, never stored.
type GollReport struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	GollID       uint             `gorm:"not null;index" json:"gollId"`
	ReporterID   string           `gorm:"type:uuid;not null;index" json:"reporterId"`
	ReporterTeam *string          `gorm:"size:50" json:"reporterTeam,omitempty"`
	AuthorTeam   *string          `gorm:"size:50" json:"authorTeam,omitempty"`
	Reason       string           `gorm:"size:255;not null" json:"reason"`
	Detail       *string          `gorm:"type:text" json:"detail,omitempty"`
	Status       GollReportStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func (GollReport) TableName() string {
	return "goll_reports"
}

// GollReportView is a report row with the derived team relation attached.
type GollReportView struct {
	GollReport
	IsSameTeam bool `json:"isSameTeam"`
}
