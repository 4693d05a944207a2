package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents application user.
type User struct {
	ID              string `gorm:"primaryKey;size:36"`
	Name            string `gorm:"size:64;not null"`
	Email           string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash    string `gorm:"size:255;not null"`
	DefaultCurrency string `gorm:"size:8;default:IDR"`
	Timezone        string `gorm:"size:64;default:Asia/Jakarta"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
