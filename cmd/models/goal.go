package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusAchieved  GoalStatus = "achieved"
	GoalStatusCancelled GoalStatus = "cancelled"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusActive, GoalStatusPaused, GoalStatusAchieved, GoalStatusCancelled:
		return true
	}
	return false
}

// Goal carries a gorm.DeletedAt so deletion is a soft delete; listings go
// through GORM's default scope and never see soft-deleted rows.
type Goal struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"column:user_id;not null;index" json:"user_id"`
	Name         string          `gorm:"column:name;size:255;not null" json:"name"`
	Description  string          `gorm:"column:description;type:text" json:"description,omitempty"`
	TargetAmount decimal.Decimal `gorm:"column:target_amount;type:numeric(18,2);not null" json:"target_amount"`
	TargetDate   time.Time       `gorm:"column:target_date;not null" json:"target_date"`
	Priority     int             `gorm:"column:priority;not null;default:3" json:"priority"`
	Status       GoalStatus      `gorm:"column:status;size:20;not null;default:active" json:"status"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
