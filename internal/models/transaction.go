package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types.
const (
	TransactionIncome   = "INCOME"
	TransactionExpense  = "EXPENSE"
	TransactionTransfer = "TRANSFER"
)

// Transaction is a single income, expense or transfer. INCOME/EXPENSE carry a
// single AccountID; TRANSFER carries FromAccountID and ToAccountID instead.
// Deletion is soft: IsDeleted is flipped only after the balance effect has
// been reversed, and every read path filters on it, so a deleted transaction
// can never be reversed twice.
type Transaction struct {
	ID            string          `gorm:"primaryKey;size:36"`
	UserID        string          `gorm:"index;size:36;not null"`
	Type          string          `gorm:"size:16;index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency      string          `gorm:"size:8;default:IDR"`
	OccurredAt    time.Time       `gorm:"index;not null"`
	AccountID     *string         `gorm:"index;size:36"`
	CategoryID    *string         `gorm:"index;size:36"`
	FromAccountID *string         `gorm:"size:36"`
	ToAccountID   *string         `gorm:"size:36"`
	Note          string          `gorm:"size:255"`
	ReceiptURL    string          `gorm:"size:255"`
	IsDeleted     bool            `gorm:"index;not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User     User      `gorm:"constraint:OnDelete:CASCADE"`
	Account  *Account  `gorm:"foreignKey:AccountID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
