package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a free-form label attached to transactions.
type Tag struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index:idx_tag_user_name,unique;size:36;not null"`
	Name      string `gorm:"index:idx_tag_user_name,unique;size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TransactionTag links a transaction to a tag.
type TransactionTag struct {
	TransactionID string `gorm:"primaryKey;size:36"`
	TagID         string `gorm:"primaryKey;size:36"`
	CreatedAt     time.Time

	Tag Tag `gorm:"constraint:OnDelete:CASCADE"`
}
