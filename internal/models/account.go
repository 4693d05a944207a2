package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account types.
const (
	AccountBank    = "BANK"
	AccountCash    = "CASH"
	AccountEwallet = "EWALLET"
	AccountOther   = "OTHER"
)

// Account represents a cash account. StartingBalance is an immutable snapshot;
// CurrentBalance is mutated only through the balance delta primitive in the
// service layer, so it always equals StartingBalance plus the signed effect of
// every non-deleted transaction touching the account.
type Account struct {
	ID              string          `gorm:"primaryKey;size:36"`
	UserID          string          `gorm:"index;size:36;not null"`
	Name            string          `gorm:"size:64;not null"`
	Type            string          `gorm:"size:16;not null"`
	Currency        string          `gorm:"size:8;default:IDR"`
	StartingBalance decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CurrentBalance  decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	IsArchived      bool            `gorm:"index;not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
