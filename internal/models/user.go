package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// User represents a platform member. Points is the running balance
// maintained exclusively by the point ledger; it must always equal the sum
// of the user's non-reversed point transactions.
type User struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Nickname      string     `gorm:"size:100;uniqueIndex;not null" json:"nickname"`
	Role          string     `gorm:"size:20;not null;default:user" json:"role"`
	ProfileImage  *string    `gorm:"size:500" json:"profileImage,omitempty"`
	FavoriteTeam  *string    `gorm:"size:50" json:"favoriteTeam,omitempty"`
	Status        UserStatus `gorm:"size:20;not null;default:active;index" json:"status"`
	ReportedCount int        `gorm:"default:0" json:"reportedCount"`
	Points        int64      `gorm:"default:0" json:"points"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
