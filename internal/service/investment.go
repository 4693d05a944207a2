package service

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentService keeps holdings and the linked cash account consistent
// with the investment ledger. Updates reverse the old effects (holding and
// cash) before reapplying the new ones; deletes reverse and hard-delete.
type InvestmentService struct {
	DB *gorm.DB
}

func NewInvestmentService(db *gorm.DB) *InvestmentService {
	return &InvestmentService{DB: db}
}

// CreateInvestmentInput is the payload for a new investment transaction.
type CreateInvestmentInput struct {
	AssetID       string
	Type          string
	Units         *decimal.Decimal
	PricePerUnit  *decimal.Decimal
	GrossAmount   *decimal.Decimal
	FeeAmount     *decimal.Decimal
	TaxAmount     *decimal.Decimal
	NetAmount     *decimal.Decimal
	OccurredAt    time.Time
	Note          string
	CashAccountID *string
}

// UpdateInvestmentInput carries a partial patch; nil keeps the old value.
type UpdateInvestmentInput struct {
	AssetID       *string
	Type          *string
	Units         *decimal.Decimal
	PricePerUnit  *decimal.Decimal
	GrossAmount   *decimal.Decimal
	FeeAmount     *decimal.Decimal
	TaxAmount     *decimal.Decimal
	NetAmount     *decimal.Decimal
	OccurredAt    *time.Time
	Note          *string
	CashAccountID *string
}

// InvestmentFilter narrows List results.
type InvestmentFilter struct {
	AssetID string
	Type    string
	From    *time.Time
	To      *time.Time
	Page    int
	Limit   int
}

func isTrade(txType string) bool {
	return txType == models.InvestmentBuy || txType == models.InvestmentSell
}

func validInvestmentType(txType string) bool {
	switch txType {
	case models.InvestmentBuy, models.InvestmentSell, models.InvestmentDividend,
		models.InvestmentFee, models.InvestmentDeposit, models.InvestmentWithdraw:
		return true
	}
	return false
}

// cashDelta converts a net amount into the signed balance impact for the
// linked cash account. BUY/DEPOSIT/FEE/WITHDRAW move money out, SELL/DIVIDEND
// bring money in. Sign lives here, never in the stored amount.
func cashDelta(txType string, net decimal.Decimal) decimal.Decimal {
	switch txType {
	case models.InvestmentBuy, models.InvestmentDeposit, models.InvestmentFee, models.InvestmentWithdraw:
		return net.Neg()
	case models.InvestmentSell, models.InvestmentDividend:
		return net
	}
	return decimal.Zero
}

// calculateNetAmount derives the cash effect of a transaction. An explicit
// netAmount wins. BUY/SELL derive gross from units x price unless overridden,
// then subtract fee and tax; the result must stay positive. All other types
// require netAmount as direct input.
func calculateNetAmount(txType string, units, price, gross, fee, tax, net *decimal.Decimal) (decimal.Decimal, error) {
	if net != nil {
		return *net, nil
	}

	if isTrade(txType) {
		if units == nil || price == nil {
			return decimal.Zero, util.NewValidationError("units and pricePerUnit are required for BUY/SELL")
		}
		g := units.Mul(*price)
		if gross != nil {
			g = *gross
		}
		f := decimal.Zero
		if fee != nil {
			f = *fee
		}
		t := decimal.Zero
		if tax != nil {
			t = *tax
		}
		result := g.Sub(f).Sub(t)
		if result.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, util.NewValidationError("netAmount must be greater than 0")
		}
		return result, nil
	}

	return decimal.Zero, util.NewValidationError("netAmount is required for this transaction type")
}

// getOwnedInvestment fetches an investment transaction and enforces ownership.
func (s *InvestmentService) getOwnedInvestment(tx *gorm.DB, transactionID, userID string) (*models.InvestmentTransaction, error) {
	var txn models.InvestmentTransaction
	if err := tx.Where("id = ?", transactionID).First(&txn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Investment transaction not found")
		}
		return nil, err
	}
	if txn.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this investment transaction")
	}
	return &txn, nil
}

// Get returns one investment transaction with its asset and cash account.
func (s *InvestmentService) Get(transactionID, userID string) (*models.InvestmentTransaction, error) {
	var txn models.InvestmentTransaction
	if err := s.DB.Preload("Asset").Preload("CashAccount").
		Where("id = ?", transactionID).First(&txn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Investment transaction not found")
		}
		return nil, err
	}
	if txn.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this investment transaction")
	}
	return &txn, nil
}

// List returns a filtered, paginated page of investment transactions.
func (s *InvestmentService) List(userID string, f InvestmentFilter) ([]models.InvestmentTransaction, int64, error) {
	base := s.DB.Model(&models.InvestmentTransaction{}).Where("user_id = ?", userID)

	if f.AssetID != "" {
		base = base.Where("asset_id = ?", f.AssetID)
	}
	if f.Type != "" {
		base = base.Where("type = ?", f.Type)
	}
	if f.From != nil {
		base = base.Where("occurred_at >= ?", *f.From)
	}
	if f.To != nil {
		base = base.Where("occurred_at <= ?", *f.To)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page <= 0 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var txns []models.InvestmentTransaction
	if err := base.Session(&gorm.Session{}).
		Preload("Asset").Preload("CashAccount").
		Order("occurred_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// Create inserts the transaction, updates the holding for BUY/SELL and moves
// the linked cash balance, as one atomic unit. Any failure, including an
// oversell, rolls the insert back.
func (s *InvestmentService) Create(userID string, data CreateInvestmentInput) (*models.InvestmentTransaction, error) {
	if !validInvestmentType(data.Type) {
		return nil, util.NewValidationError("invalid investment transaction type")
	}
	if isTrade(data.Type) {
		if data.Units == nil || data.Units.LessThanOrEqual(decimal.Zero) {
			return nil, util.NewValidationError("units must be greater than 0")
		}
		if data.PricePerUnit == nil || data.PricePerUnit.LessThanOrEqual(decimal.Zero) {
			return nil, util.NewValidationError("pricePerUnit must be greater than 0")
		}
	}

	if _, err := getOwnedAsset(s.DB, data.AssetID, userID); err != nil {
		return nil, err
	}
	if data.CashAccountID != nil {
		if _, err := getOwnedAccount(s.DB, *data.CashAccountID, userID); err != nil {
			return nil, err
		}
	}

	netAmount, err := calculateNetAmount(data.Type, data.Units, data.PricePerUnit,
		data.GrossAmount, data.FeeAmount, data.TaxAmount, data.NetAmount)
	if err != nil {
		return nil, err
	}
	if netAmount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("netAmount must be greater than 0")
	}

	txn := models.InvestmentTransaction{
		UserID:        userID,
		AssetID:       data.AssetID,
		Type:          data.Type,
		NetAmount:     netAmount,
		OccurredAt:    data.OccurredAt,
		Note:          data.Note,
		CashAccountID: data.CashAccountID,
	}
	if isTrade(data.Type) {
		txn.Units = decimal.NullDecimal{Decimal: *data.Units, Valid: true}
		txn.PricePerUnit = decimal.NullDecimal{Decimal: *data.PricePerUnit, Valid: true}
		gross := data.Units.Mul(*data.PricePerUnit)
		if data.GrossAmount != nil {
			gross = *data.GrossAmount
		}
		txn.GrossAmount = decimal.NullDecimal{Decimal: gross, Valid: true}
		if data.FeeAmount != nil {
			txn.FeeAmount = *data.FeeAmount
		}
		if data.TaxAmount != nil {
			txn.TaxAmount = *data.TaxAmount
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		if isTrade(txn.Type) {
			if err := applyHoldingChange(tx, userID, txn.AssetID, txn.Type,
				txn.Units.Decimal, txn.PricePerUnit.Decimal, false); err != nil {
				return err
			}
		}
		if txn.CashAccountID != nil {
			if err := applyBalanceDelta(tx, *txn.CashAccountID,
				cashDelta(txn.Type, txn.NetAmount)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(txn.ID, userID)
}

// Update fully reverses the old holding and cash effects, then reapplies the
// effects of the patched values, inside one atomic unit. A patch touching
// only unrelated fields round-trips to the same holding and balance state.
func (s *InvestmentService) Update(transactionID, userID string, data UpdateInvestmentInput) (*models.InvestmentTransaction, error) {
	existing, err := s.getOwnedInvestment(s.DB, transactionID, userID)
	if err != nil {
		return nil, err
	}

	// Effective values after the patch.
	next := *existing
	if data.AssetID != nil {
		next.AssetID = *data.AssetID
	}
	if data.Type != nil {
		if !validInvestmentType(*data.Type) {
			return nil, util.NewValidationError("invalid investment transaction type")
		}
		next.Type = *data.Type
	}
	if data.Units != nil {
		next.Units = decimal.NullDecimal{Decimal: *data.Units, Valid: true}
	}
	if data.PricePerUnit != nil {
		next.PricePerUnit = decimal.NullDecimal{Decimal: *data.PricePerUnit, Valid: true}
	}
	if data.GrossAmount != nil {
		next.GrossAmount = decimal.NullDecimal{Decimal: *data.GrossAmount, Valid: true}
	}
	if data.FeeAmount != nil {
		next.FeeAmount = *data.FeeAmount
	}
	if data.TaxAmount != nil {
		next.TaxAmount = *data.TaxAmount
	}
	if data.OccurredAt != nil {
		next.OccurredAt = *data.OccurredAt
	}
	if data.Note != nil {
		next.Note = *data.Note
	}
	if data.CashAccountID != nil {
		next.CashAccountID = data.CashAccountID
	}

	if isTrade(next.Type) {
		if !next.Units.Valid || next.Units.Decimal.LessThanOrEqual(decimal.Zero) {
			return nil, util.NewValidationError("units must be greater than 0")
		}
		if !next.PricePerUnit.Valid || next.PricePerUnit.Decimal.LessThanOrEqual(decimal.Zero) {
			return nil, util.NewValidationError("pricePerUnit must be greater than 0")
		}
	}
	if data.GrossAmount != nil && data.GrossAmount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("grossAmount must be greater than 0")
	}

	if data.AssetID != nil {
		if _, err := getOwnedAsset(s.DB, *data.AssetID, userID); err != nil {
			return nil, err
		}
	}
	if data.CashAccountID != nil {
		if _, err := getOwnedAccount(s.DB, *data.CashAccountID, userID); err != nil {
			return nil, err
		}
	}

	// New net amount: explicit patch wins, then re-derivation for BUY/SELL,
	// otherwise the old value stands.
	next.NetAmount = existing.NetAmount
	if data.NetAmount != nil {
		next.NetAmount = *data.NetAmount
	} else if isTrade(next.Type) && next.Units.Valid && next.PricePerUnit.Valid {
		gross := next.Units.Decimal.Mul(next.PricePerUnit.Decimal)
		if data.GrossAmount != nil {
			gross = *data.GrossAmount
		}
		next.NetAmount = gross.Sub(next.FeeAmount).Sub(next.TaxAmount)
	}
	if next.NetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("netAmount must be greater than 0")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Reverse the old effects using the old snapshot.
		if isTrade(existing.Type) && existing.Units.Valid && existing.PricePerUnit.Valid {
			if err := applyHoldingChange(tx, userID, existing.AssetID, existing.Type,
				existing.Units.Decimal, existing.PricePerUnit.Decimal, true); err != nil {
				return err
			}
		}
		if existing.CashAccountID != nil {
			if err := applyBalanceDelta(tx, *existing.CashAccountID,
				cashDelta(existing.Type, existing.NetAmount).Neg()); err != nil {
				return err
			}
		}

		// Apply the new effects.
		if isTrade(next.Type) && next.Units.Valid && next.PricePerUnit.Valid {
			if err := applyHoldingChange(tx, userID, next.AssetID, next.Type,
				next.Units.Decimal, next.PricePerUnit.Decimal, false); err != nil {
				return err
			}
		}
		if next.CashAccountID != nil {
			if err := applyBalanceDelta(tx, *next.CashAccountID,
				cashDelta(next.Type, next.NetAmount)); err != nil {
				return err
			}
		}

		return tx.Model(&models.InvestmentTransaction{}).Where("id = ?", transactionID).
			Updates(map[string]interface{}{
				"asset_id":        next.AssetID,
				"type":            next.Type,
				"units":           next.Units,
				"price_per_unit":  next.PricePerUnit,
				"gross_amount":    next.GrossAmount,
				"fee_amount":      next.FeeAmount,
				"tax_amount":      next.TaxAmount,
				"net_amount":      next.NetAmount,
				"occurred_at":     next.OccurredAt,
				"note":            next.Note,
				"cash_account_id": next.CashAccountID,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(transactionID, userID)
}

// Delete reverses holding and cash effects and hard-deletes the row.
func (s *InvestmentService) Delete(transactionID, userID string) error {
	existing, err := s.getOwnedInvestment(s.DB, transactionID, userID)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if isTrade(existing.Type) && existing.Units.Valid && existing.PricePerUnit.Valid {
			if err := applyHoldingChange(tx, userID, existing.AssetID, existing.Type,
				existing.Units.Decimal, existing.PricePerUnit.Decimal, true); err != nil {
				return err
			}
		}
		if existing.CashAccountID != nil {
			if err := applyBalanceDelta(tx, *existing.CashAccountID,
				cashDelta(existing.Type, existing.NetAmount).Neg()); err != nil {
				return err
			}
		}
		return tx.Delete(&models.InvestmentTransaction{}, "id = ?", transactionID).Error
	})
}
