package service

import (
	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// applyBalanceDelta is the single write path for Account.CurrentBalance.
// The delta is applied relative to the stored value (positive = credit,
// negative = debit) so two concurrent mutations of the same account cannot
// lose an update. Balances are allowed to go negative; overdraft tracking is
// a feature, not an error. Callers are responsible for invoking this exactly
// once per logical event, inside their enclosing transaction.
func applyBalanceDelta(tx *gorm.DB, accountID string, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	res := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		UpdateColumn("current_balance", gorm.Expr("current_balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.NewNotFoundError("Account not found")
	}
	return nil
}
