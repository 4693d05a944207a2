package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a per-month spending plan, unique per (user, month, year).
type Budget struct {
	ID         string              `gorm:"primaryKey;size:36"`
	UserID     string              `gorm:"index:idx_budget_user_month,unique;size:36;not null"`
	Month      int                 `gorm:"index:idx_budget_user_month,unique;not null"`
	Year       int                 `gorm:"index:idx_budget_user_month,unique;not null"`
	TotalLimit decimal.NullDecimal `gorm:"type:decimal(20,8)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User  User         `gorm:"constraint:OnDelete:CASCADE"`
	Items []BudgetItem `gorm:"constraint:OnDelete:CASCADE"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BudgetItem is a per-category limit inside a budget.
type BudgetItem struct {
	ID          string          `gorm:"primaryKey;size:36"`
	BudgetID    string          `gorm:"index;size:36;not null"`
	CategoryID  string          `gorm:"size:36;not null"`
	LimitAmount decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category Category `gorm:"foreignKey:CategoryID"`
}

func (b *BudgetItem) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
