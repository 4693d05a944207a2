package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Investment asset types.
const (
	AssetStock  = "STOCK"
	AssetFund   = "FUND"
	AssetCrypto = "CRYPTO"
	AssetBond   = "BOND"
	AssetOther  = "OTHER"
)

// Investment transaction types.
const (
	InvestmentBuy      = "BUY"
	InvestmentSell     = "SELL"
	InvestmentDividend = "DIVIDEND"
	InvestmentFee      = "FEE"
	InvestmentDeposit  = "DEPOSIT"
	InvestmentWithdraw = "WITHDRAW"
)

// InvestmentAsset is an instrument the user trades, unique per (user, symbol).
type InvestmentAsset struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index:idx_asset_user_symbol,unique;size:36;not null"`
	Symbol    string `gorm:"index:idx_asset_user_symbol,unique;size:32;not null"`
	Name      string `gorm:"size:128;not null"`
	AssetType string `gorm:"size:16;index;not null"`
	Currency  string `gorm:"size:8;default:IDR"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (a *InvestmentAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// InvestmentTransaction is one ledger event against an asset. Units and
// PricePerUnit are set for BUY/SELL only; NetAmount is always positive, with
// direction decided by Type. CashAccountID optionally links the cash account
// debited or credited by the event.
type InvestmentTransaction struct {
	ID            string              `gorm:"primaryKey;size:36"`
	UserID        string              `gorm:"index;size:36;not null"`
	AssetID       string              `gorm:"index;size:36;not null"`
	Type          string              `gorm:"size:16;index;not null"`
	Units         decimal.NullDecimal `gorm:"type:decimal(20,8)"`
	PricePerUnit  decimal.NullDecimal `gorm:"type:decimal(20,8)"`
	GrossAmount   decimal.NullDecimal `gorm:"type:decimal(20,8)"`
	FeeAmount     decimal.Decimal     `gorm:"type:decimal(20,8);not null;default:0"`
	TaxAmount     decimal.Decimal     `gorm:"type:decimal(20,8);not null;default:0"`
	NetAmount     decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	OccurredAt    time.Time           `gorm:"index;not null"`
	Note          string              `gorm:"size:255"`
	CashAccountID *string             `gorm:"size:36"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User        User            `gorm:"constraint:OnDelete:CASCADE"`
	Asset       InvestmentAsset `gorm:"foreignKey:AssetID"`
	CashAccount *Account        `gorm:"foreignKey:CashAccountID"`
}

func (t *InvestmentTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Holding is the weighted-average position per (user, asset). A holding with
// zero units is deleted rather than kept around.
type Holding struct {
	ID          string          `gorm:"primaryKey;size:36"`
	UserID      string          `gorm:"index:idx_holding_user_asset,unique;size:36;not null"`
	AssetID     string          `gorm:"index:idx_holding_user_asset,unique;size:36;not null"`
	UnitsTotal  decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	AvgBuyPrice decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User  User            `gorm:"constraint:OnDelete:CASCADE"`
	Asset InvestmentAsset `gorm:"foreignKey:AssetID"`
}

func (h *Holding) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
