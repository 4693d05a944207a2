package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill statuses.
const (
	BillUnpaid = "UNPAID"
	BillPaid   = "PAID"
)

// Bill is a payable with a due date. Status is derived from the sum of its
// payments against Amount.
type Bill struct {
	ID         string          `gorm:"primaryKey;size:36"`
	UserID     string          `gorm:"index;size:36;not null"`
	Name       string          `gorm:"size:64;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency   string          `gorm:"size:8;default:IDR"`
	DueDate    time.Time       `gorm:"index;not null"`
	Status     string          `gorm:"size:16;index;not null;default:UNPAID"`
	CategoryID *string         `gorm:"size:36"`
	Note       string          `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User     User          `gorm:"constraint:OnDelete:CASCADE"`
	Category *Category     `gorm:"foreignKey:CategoryID"`
	Payments []BillPayment `gorm:"constraint:OnDelete:CASCADE"`
}

func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BillPayment records money put toward a bill, optionally linked to the
// expense transaction that moved it.
type BillPayment struct {
	ID            string          `gorm:"primaryKey;size:36"`
	BillID        string          `gorm:"index;size:36;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	PaidAt        time.Time       `gorm:"not null"`
	TransactionID *string         `gorm:"size:36"`
	CreatedAt     time.Time

	Transaction *Transaction `gorm:"foreignKey:TransactionID"`
}

func (b *BillPayment) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
