package service

import (
	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Position is the in-memory state of one (user, asset) holding. Held=false
// means no holding row exists. All four transitions are pure so the
// weighted-average arithmetic stays testable without a database.
type Position struct {
	Held        bool
	Units       decimal.Decimal
	AvgBuyPrice decimal.Decimal
}

// ApplyBuy adds units at a price, recomputing the value-weighted average.
func (p Position) ApplyBuy(units, price decimal.Decimal) Position {
	if !p.Held {
		return Position{Held: true, Units: units, AvgBuyPrice: price}
	}
	totalUnits := p.Units.Add(units)
	totalValue := p.Units.Mul(p.AvgBuyPrice).Add(units.Mul(price))
	return Position{
		Held:        true,
		Units:       totalUnits,
		AvgBuyPrice: totalValue.Div(totalUnits),
	}
}

// ApplySell removes units. The average price is untouched: a sell scales the
// cost basis down proportionally. Selling more than held is a hard error,
// never a clamp. Selling everything dissolves the position.
func (p Position) ApplySell(units, price decimal.Decimal) (Position, error) {
	if !p.Held {
		return p, util.NewValidationError("Cannot SELL: No holding found for this asset")
	}
	if p.Units.LessThan(units) {
		return p, util.NewInsufficientHoldingError(p.Units, units)
	}

	remaining := p.Units.Sub(units)
	if remaining.IsZero() {
		return Position{}, nil
	}
	return Position{Held: true, Units: remaining, AvgBuyPrice: p.AvgBuyPrice}, nil
}

// ReverseBuy is the algebraic inverse of ApplyBuy: it subtracts the value the
// original buy contributed and recovers the pre-buy average. When the
// recomputed average lands at or below zero from accumulated rounding, the
// prior average is retained instead of storing a nonsense price. Reversing a
// buy with no position at all means the ledger and the holdings have drifted,
// which is an error rather than a silent no-op.
func (p Position) ReverseBuy(units, price decimal.Decimal) (Position, error) {
	if !p.Held {
		return p, util.NewValidationError("Cannot reverse: Holding not found")
	}

	remaining := p.Units.Sub(units)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return Position{}, nil
	}

	newAvg := p.Units.Mul(p.AvgBuyPrice).Sub(units.Mul(price)).Div(remaining)
	if newAvg.LessThanOrEqual(decimal.Zero) {
		newAvg = p.AvgBuyPrice
	}
	return Position{Held: true, Units: remaining, AvgBuyPrice: newAvg}, nil
}

// ReverseSell undoes a sell by buying the units back at the price recorded on
// the original sell. A sell at average cost removed value proportionally, so
// the buy-back uses the same weighted-average formula as ApplyBuy.
func (p Position) ReverseSell(units, price decimal.Decimal) Position {
	return p.ApplyBuy(units, price)
}

// loadPosition fetches the holding row for (user, asset), if any.
func loadPosition(tx *gorm.DB, userID, assetID string) (Position, *models.Holding, error) {
	var holding models.Holding
	err := tx.Where("user_id = ? AND asset_id = ?", userID, assetID).First(&holding).Error
	if err == gorm.ErrRecordNotFound {
		return Position{}, nil, nil
	}
	if err != nil {
		return Position{}, nil, err
	}
	return Position{Held: true, Units: holding.UnitsTotal, AvgBuyPrice: holding.AvgBuyPrice}, &holding, nil
}

// savePosition persists a transition result: creates, updates or deletes the
// holding row depending on the before/after states.
func savePosition(tx *gorm.DB, userID, assetID string, row *models.Holding, pos Position) error {
	switch {
	case pos.Held && row == nil:
		return tx.Create(&models.Holding{
			UserID:      userID,
			AssetID:     assetID,
			UnitsTotal:  pos.Units,
			AvgBuyPrice: pos.AvgBuyPrice,
		}).Error
	case pos.Held:
		return tx.Model(row).Updates(map[string]interface{}{
			"units_total":   pos.Units,
			"avg_buy_price": pos.AvgBuyPrice,
		}).Error
	case row != nil:
		return tx.Delete(row).Error
	}
	return nil
}

// applyHoldingChange loads the position, runs one BUY/SELL transition
// (forward or reversed) and persists the result.
func applyHoldingChange(tx *gorm.DB, userID, assetID, txType string, units, price decimal.Decimal, reverse bool) error {
	pos, row, err := loadPosition(tx, userID, assetID)
	if err != nil {
		return err
	}

	var next Position
	switch {
	case txType == models.InvestmentBuy && !reverse:
		next = pos.ApplyBuy(units, price)
	case txType == models.InvestmentBuy && reverse:
		next, err = pos.ReverseBuy(units, price)
		if err != nil {
			return err
		}
	case txType == models.InvestmentSell && !reverse:
		next, err = pos.ApplySell(units, price)
		if err != nil {
			return err
		}
	case txType == models.InvestmentSell && reverse:
		next = pos.ReverseSell(units, price)
	default:
		return nil
	}

	return savePosition(tx, userID, assetID, row, next)
}
