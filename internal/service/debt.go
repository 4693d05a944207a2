package service

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DebtService tracks money owed to or by the user. RemainingAmount walks down
// with each payment and the debt flips to PAID at zero.
type DebtService struct {
	DB *gorm.DB
}

func NewDebtService(db *gorm.DB) *DebtService {
	return &DebtService{DB: db}
}

type DebtInput struct {
	Name           string
	Direction      string
	TotalAmount    decimal.Decimal
	MinimumPayment decimal.NullDecimal
	DueDate        *time.Time
	Note           string
}

// PayDebtInput records an installment; with AccountID set the matching cash
// movement is written too. Direction decides the transaction type: paying
// down OWED_BY_ME is an expense, collecting OWED_TO_ME is income.
type PayDebtInput struct {
	Amount     decimal.Decimal
	PaidAt     time.Time
	AccountID  *string
	CategoryID *string
}

func (s *DebtService) List(userID, direction, status string) ([]models.Debt, error) {
	query := s.DB.Where("user_id = ?", userID)
	if direction != "" {
		query = query.Where("direction = ?", direction)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var debts []models.Debt
	err := query.Order("created_at DESC").Find(&debts).Error
	return debts, err
}

func (s *DebtService) Get(debtID, userID string) (*models.Debt, error) {
	var debt models.Debt
	err := s.DB.Preload("Payments").Where("id = ?", debtID).First(&debt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Debt not found")
		}
		return nil, err
	}
	if debt.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this debt")
	}
	return &debt, nil
}

func (s *DebtService) Create(userID string, data DebtInput) (*models.Debt, error) {
	if data.Direction != models.DebtOwedByMe && data.Direction != models.DebtOwedToMe {
		return nil, util.NewValidationError("direction must be OWED_BY_ME or OWED_TO_ME")
	}
	if data.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("total amount must be positive")
	}

	debt := models.Debt{
		UserID:          userID,
		Name:            data.Name,
		Direction:       data.Direction,
		TotalAmount:     data.TotalAmount,
		RemainingAmount: data.TotalAmount,
		MinimumPayment:  data.MinimumPayment,
		DueDate:         data.DueDate,
		Status:          models.DebtActive,
		Note:            data.Note,
	}
	if err := s.DB.Create(&debt).Error; err != nil {
		return nil, err
	}
	return &debt, nil
}

func (s *DebtService) Update(debtID, userID string, name, note *string, dueDate *time.Time) (*models.Debt, error) {
	if _, err := s.Get(debtID, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if note != nil {
		updates["note"] = *note
	}
	if dueDate != nil {
		updates["due_date"] = *dueDate
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&models.Debt{}).Where("id = ?", debtID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(debtID, userID)
}

func (s *DebtService) Delete(debtID, userID string) error {
	if _, err := s.Get(debtID, userID); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("debt_id = ?", debtID).Delete(&models.DebtPayment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Debt{}, "id = ?", debtID).Error
	})
}

// Pay records an installment, walks RemainingAmount down, and flips the debt
// to PAID when it reaches zero. Overpaying past the remaining amount is
// rejected.
func (s *DebtService) Pay(debtID, userID string, data PayDebtInput) (*models.Debt, error) {
	debt, err := s.Get(debtID, userID)
	if err != nil {
		return nil, err
	}
	if debt.Status == models.DebtPaid {
		return nil, util.NewValidationError("Debt is already paid off")
	}
	if data.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("amount must be positive")
	}
	if data.Amount.GreaterThan(debt.RemainingAmount) {
		return nil, util.NewValidationError("payment exceeds remaining amount")
	}

	paidAt := data.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		payment := models.DebtPayment{
			DebtID: debt.ID,
			Amount: data.Amount,
			PaidAt: paidAt,
		}

		if data.AccountID != nil {
			if _, err := getOwnedAccount(tx, *data.AccountID, userID); err != nil {
				return err
			}
			txnType := models.TransactionExpense
			if debt.Direction == models.DebtOwedToMe {
				txnType = models.TransactionIncome
			}
			txn := models.Transaction{
				UserID:     userID,
				Type:       txnType,
				Amount:     data.Amount,
				AccountID:  data.AccountID,
				CategoryID: data.CategoryID,
				OccurredAt: paidAt,
				Note:       "Debt: " + debt.Name,
			}
			if err := tx.Create(&txn).Error; err != nil {
				return err
			}
			if err := applyTransactionEffect(tx, &txn, false); err != nil {
				return err
			}
			payment.TransactionID = &txn.ID
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		remaining := debt.RemainingAmount.Sub(data.Amount)
		updates := map[string]interface{}{"remaining_amount": remaining}
		if remaining.IsZero() {
			updates["status"] = models.DebtPaid
		}
		return tx.Model(&models.Debt{}).Where("id = ?", debt.ID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(debtID, userID)
}
