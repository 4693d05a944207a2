package service

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillService tracks payables and their payments. Status is derived: a bill
// flips to PAID once the sum of payments covers Amount.
type BillService struct {
	DB *gorm.DB
}

func NewBillService(db *gorm.DB) *BillService {
	return &BillService{DB: db}
}

type BillInput struct {
	Name       string
	Amount     decimal.Decimal
	Currency   string
	DueDate    time.Time
	CategoryID *string
	Note       string
}

// PayBillInput records a payment; when AccountID is set an expense
// transaction is created alongside and the account is debited.
type PayBillInput struct {
	Amount     decimal.Decimal
	PaidAt     time.Time
	AccountID  *string
	CategoryID *string
}

func (s *BillService) List(userID, status string, dueBefore *time.Time) ([]models.Bill, error) {
	query := s.DB.Preload("Category").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if dueBefore != nil {
		query = query.Where("due_date < ?", *dueBefore)
	}

	var bills []models.Bill
	err := query.Order("due_date ASC").Find(&bills).Error
	return bills, err
}

func (s *BillService) Get(billID, userID string) (*models.Bill, error) {
	var bill models.Bill
	err := s.DB.Preload("Category").Preload("Payments").
		Where("id = ?", billID).First(&bill).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Bill not found")
		}
		return nil, err
	}
	if bill.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this bill")
	}
	return &bill, nil
}

func (s *BillService) Create(userID string, data BillInput) (*models.Bill, error) {
	if data.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("amount must be positive")
	}
	if data.CategoryID != nil {
		if _, err := getOwnedCategory(s.DB, *data.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	bill := models.Bill{
		UserID:     userID,
		Name:       data.Name,
		Amount:     data.Amount,
		Currency:   data.Currency,
		DueDate:    data.DueDate,
		Status:     models.BillUnpaid,
		CategoryID: data.CategoryID,
		Note:       data.Note,
	}
	if err := s.DB.Create(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *BillService) Update(billID, userID string, name *string, amount *decimal.Decimal, dueDate *time.Time, note *string) (*models.Bill, error) {
	bill, err := s.Get(billID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if amount != nil {
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, util.NewValidationError("amount must be positive")
		}
		updates["amount"] = *amount
	}
	if dueDate != nil {
		updates["due_date"] = *dueDate
	}
	if note != nil {
		updates["note"] = *note
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&models.Bill{}).Where("id = ?", bill.ID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
		// amount change can flip the derived status either way
		if amount != nil {
			if err := s.refreshStatus(s.DB, bill.ID); err != nil {
				return nil, err
			}
		}
	}
	return s.Get(billID, userID)
}

func (s *BillService) Delete(billID, userID string) error {
	bill, err := s.Get(billID, userID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillPayment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Bill{}, "id = ?", bill.ID).Error
	})
}

// Pay records a payment. With an account attached it also creates the expense
// transaction and debits the account atomically.
func (s *BillService) Pay(billID, userID string, data PayBillInput) (*models.Bill, error) {
	bill, err := s.Get(billID, userID)
	if err != nil {
		return nil, err
	}
	if data.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("amount must be positive")
	}

	paidAt := data.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		payment := models.BillPayment{
			BillID: bill.ID,
			Amount: data.Amount,
			PaidAt: paidAt,
		}

		if data.AccountID != nil {
			if _, err := getOwnedAccount(tx, *data.AccountID, userID); err != nil {
				return err
			}
			categoryID := data.CategoryID
			if categoryID == nil {
				categoryID = bill.CategoryID
			}
			txn := models.Transaction{
				UserID:     userID,
				Type:       models.TransactionExpense,
				Amount:     data.Amount,
				AccountID:  data.AccountID,
				CategoryID: categoryID,
				OccurredAt: paidAt,
				Note:       "Bill: " + bill.Name,
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
		return s.refreshStatus(tx, bill.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(billID, userID)
}

// refreshStatus recomputes the derived PAID/UNPAID state from the payment sum.
func (s *BillService) refreshStatus(tx *gorm.DB, billID string) error {
	var bill models.Bill
	if err := tx.Where("id = ?", billID).First(&bill).Error; err != nil {
		return err
	}

	var raw struct {
		Total decimal.NullDecimal
	}
	if err := tx.Model(&models.BillPayment{}).
		Select("SUM(amount) AS total").
		Where("bill_id = ?", billID).
		Scan(&raw).Error; err != nil {
		return err
	}

	paid := decimal.Zero
	if raw.Total.Valid {
		paid = raw.Total.Decimal
	}

	status := models.BillUnpaid
	if paid.GreaterThanOrEqual(bill.Amount) {
		status = models.BillPaid
	}
	if status == bill.Status {
		return nil
	}
	return tx.Model(&models.Bill{}).Where("id = ?", billID).
		Update("status", status).Error
}
