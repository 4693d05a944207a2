package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recurring schedule types.
const (
	ScheduleDaily   = "DAILY"
	ScheduleWeekly  = "WEEKLY"
	ScheduleMonthly = "MONTHLY"
	ScheduleYearly  = "YEARLY"
)

// RecurringRule is a template transaction plus a schedule. NextRunAt always
// holds the next scheduled instant derived from the last executed date.
type RecurringRule struct {
	ID            string          `gorm:"primaryKey;size:36"`
	UserID        string          `gorm:"index;size:36;not null"`
	Name          string          `gorm:"size:64;not null"`
	Type          string          `gorm:"size:16;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency      string          `gorm:"size:8;default:IDR"`
	CategoryID    string          `gorm:"size:36;not null"`
	AccountID     string          `gorm:"size:36;not null"`
	ScheduleType  string          `gorm:"size:16;not null"`
	ScheduleValue string          `gorm:"size:16;not null"`
	NextRunAt     time.Time       `gorm:"index;not null"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User     User     `gorm:"constraint:OnDelete:CASCADE"`
	Category Category `gorm:"foreignKey:CategoryID"`
	Account  Account  `gorm:"foreignKey:AccountID"`
}

func (r *RecurringRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RecurringRun is the audit trail linking a rule to the transaction an
// execution produced.
type RecurringRun struct {
	ID              string    `gorm:"primaryKey;size:36"`
	RecurringRuleID string    `gorm:"index;size:36;not null"`
	TransactionID   string    `gorm:"size:36;not null"`
	ExecutedAt      time.Time `gorm:"index;not null"`
	CreatedAt       time.Time

	Transaction Transaction `gorm:"foreignKey:TransactionID"`
}

func (r *RecurringRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
