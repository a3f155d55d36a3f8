package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONB for PostgreSQL JSON support
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &j)
}

// AdminUser represents a staff account for the admin console
type AdminUser struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:admin" json:"role"` // admin, superadmin
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// DashboardStats is the summary surfaced on the admin landing page
type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	TodayGames        int64 `json:"todayGames"`
	PendingReports    int64 `json:"pendingReports"`
	PendingSettlement int64 `json:"pendingSettlement"`
}

// Notification is a lightweight operator alert derived from current state
type Notification struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
}
