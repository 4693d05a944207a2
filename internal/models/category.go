package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category types.
const (
	CategoryIncome  = "INCOME"
	CategoryExpense = "EXPENSE"
)

// Category represents an income/expense category.
type Category struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"index;size:36;not null"`
	Name       string `gorm:"size:64;not null"`
	Type       string `gorm:"size:16;index;not null"`
	Icon       string `gorm:"size:16"`
	Color      string `gorm:"size:16"`
	IsArchived bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
