package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Price alert conditions.
const (
	AlertAbove = "ABOVE"
	AlertBelow = "BELOW"
)

// WatchlistItem pins an asset to the user's watchlist, unique per (user, asset).
type WatchlistItem struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index:idx_watchlist_user_asset,unique;size:36;not null"`
	AssetID   string `gorm:"index:idx_watchlist_user_asset,unique;size:36;not null"`
	CreatedAt time.Time

	User  User            `gorm:"constraint:OnDelete:CASCADE"`
	Asset InvestmentAsset `gorm:"foreignKey:AssetID"`
}

func (w *WatchlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// PriceAlert fires when an asset crosses a target price. Evaluation against a
// price feed is out of scope; the rule itself is plain CRUD state.
type PriceAlert struct {
	ID          string          `gorm:"primaryKey;size:36"`
	UserID      string          `gorm:"index;size:36;not null"`
	AssetID     string          `gorm:"index;size:36;not null"`
	Condition   string          `gorm:"size:8;not null"`
	TargetPrice decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	IsActive    bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User  User            `gorm:"constraint:OnDelete:CASCADE"`
	Asset InvestmentAsset `gorm:"foreignKey:AssetID"`
}

func (p *PriceAlert) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
