package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction rows are immutable once created; status and type stay open
// strings so clients can introduce new values without a migration.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Account     string          `gorm:"column:account;size:255;not null" json:"account"`
	Description string          `gorm:"column:description;type:text;not null" json:"description"`
	Category    string          `gorm:"column:category;size:255;not null" json:"category"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Status      string          `gorm:"column:status;size:50;not null" json:"status"`
	Type        string          `gorm:"column:type;size:50;not null" json:"type"`
	Date        time.Time       `gorm:"column:date;not null" json:"date"`
	UserID      uint            `gorm:"column:user_id;not null;index" json:"user_id"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

const StatusPending = "pending"
