package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"column:full_name;size:255;not null" json:"full_name"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Goals        []Goal        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}
