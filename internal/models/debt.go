package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Debt directions and statuses.
const (
	DebtOwedByMe = "OWED_BY_ME"
	DebtOwedToMe = "OWED_TO_ME"

	DebtActive = "ACTIVE"
	DebtPaid   = "PAID"
)

// Debt tracks money owed to or by the user. RemainingAmount decreases with
// each payment and flips Status to PAID when it reaches zero.
type Debt struct {
	ID              string              `gorm:"primaryKey;size:36"`
	UserID          string              `gorm:"index;size:36;not null"`
	Name            string              `gorm:"size:64;not null"`
	Direction       string              `gorm:"size:16;not null"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	RemainingAmount decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	MinimumPayment  decimal.NullDecimal `gorm:"type:decimal(20,8)"`
	DueDate         *time.Time
	Status          string `gorm:"size:16;index;not null;default:ACTIVE"`
	Note            string `gorm:"size:255"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User     User          `gorm:"constraint:OnDelete:CASCADE"`
	Payments []DebtPayment `gorm:"constraint:OnDelete:CASCADE"`
}

func (d *Debt) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DebtPayment records one installment against a debt.
type DebtPayment struct {
	ID            string          `gorm:"primaryKey;size:36"`
	DebtID        string          `gorm:"index;size:36;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	PaidAt        time.Time       `gorm:"not null"`
	TransactionID *string         `gorm:"size:36"`
	CreatedAt     time.Time

	Transaction *Transaction `gorm:"foreignKey:TransactionID"`
}

func (d *DebtPayment) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
