package service

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionService keeps account balances consistent with the transaction
// ledger. Every mutation follows the same discipline: fetch an immutable
// snapshot of the old row, reverse its balance effect, apply the new effect,
// then persist, all inside one database transaction.
type TransactionService struct {
	DB *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{DB: db}
}

// CreateTransactionInput is the payload for INCOME/EXPENSE transactions.
type CreateTransactionInput struct {
	Type       string
	Amount     decimal.Decimal
	Currency   string
	OccurredAt time.Time
	AccountID  *string
	CategoryID *string
	Note       string
	ReceiptURL string
	TagIDs     []string
}

// CreateTransferInput is the payload for TRANSFER transactions.
type CreateTransferInput struct {
	Amount        decimal.Decimal
	Currency      string
	OccurredAt    time.Time
	FromAccountID string
	ToAccountID   string
	Note          string
}

// UpdateTransactionInput carries a partial patch. Nil fields keep the old
// value. TagIDs replaces the tag set wholesale when non-nil.
type UpdateTransactionInput struct {
	Type          *string
	Amount        *decimal.Decimal
	Currency      *string
	OccurredAt    *time.Time
	AccountID     *string
	CategoryID    *string
	Note          *string
	ReceiptURL    *string
	FromAccountID *string
	ToAccountID   *string
	TagIDs        *[]string
}

// TransactionFilter narrows List results.
type TransactionFilter struct {
	Type       string
	AccountID  string
	CategoryID string
	TagID      string
	From       *time.Time
	To         *time.Time
	Query      string
	Page       int
	Limit      int
}

// applyTransactionEffect applies (reverse=false) or reverses (reverse=true)
// the signed balance impact of a transaction on its account(s).
func applyTransactionEffect(tx *gorm.DB, txn *models.Transaction, reverse bool) error {
	amount := txn.Amount
	if reverse {
		amount = amount.Neg()
	}

	switch txn.Type {
	case models.TransactionIncome:
		if txn.AccountID != nil {
			return applyBalanceDelta(tx, *txn.AccountID, amount)
		}
	case models.TransactionExpense:
		if txn.AccountID != nil {
			return applyBalanceDelta(tx, *txn.AccountID, amount.Neg())
		}
	case models.TransactionTransfer:
		if txn.FromAccountID != nil && txn.ToAccountID != nil {
			if err := applyBalanceDelta(tx, *txn.FromAccountID, amount.Neg()); err != nil {
				return err
			}
			return applyBalanceDelta(tx, *txn.ToAccountID, amount)
		}
	}
	return nil
}

// getOwnedTransaction fetches a live (not soft-deleted) transaction and
// enforces ownership. Mutations only ever see rows through this path, which
// is what guarantees a soft-deleted transaction is never reversed twice.
func (s *TransactionService) getOwnedTransaction(tx *gorm.DB, transactionID, userID string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := tx.Where("id = ? AND is_deleted = ?", transactionID, false).First(&txn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Transaction not found")
		}
		return nil, err
	}
	if txn.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this transaction")
	}
	return &txn, nil
}

// Get returns one transaction with its account, category and tags.
func (s *TransactionService) Get(transactionID, userID string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.DB.Preload("Account").Preload("Category").
		Where("id = ? AND is_deleted = ?", transactionID, false).
		First(&txn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Transaction not found")
		}
		return nil, err
	}
	if txn.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this transaction")
	}
	return &txn, nil
}

// List returns a filtered, paginated page of live transactions plus the total.
func (s *TransactionService) List(userID string, f TransactionFilter) ([]models.Transaction, int64, error) {
	base := s.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)

	if f.Type != "" {
		base = base.Where("type = ?", f.Type)
	}
	if f.AccountID != "" {
		base = base.Where("account_id = ?", f.AccountID)
	}
	if f.CategoryID != "" {
		base = base.Where("category_id = ?", f.CategoryID)
	}
	if f.TagID != "" {
		base = base.Where("id IN (?)", s.DB.Model(&models.TransactionTag{}).
			Select("transaction_id").Where("tag_id = ?", f.TagID))
	}
	if f.From != nil {
		base = base.Where("occurred_at >= ?", *f.From)
	}
	if f.To != nil {
		base = base.Where("occurred_at <= ?", *f.To)
	}
	if f.Query != "" {
		base = base.Where("note LIKE ?", "%"+f.Query+"%")
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

	var txns []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Preload("Account").Preload("Category").
		Order("occurred_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// Create records an INCOME or EXPENSE transaction and credits/debits its
// account in one atomic unit.
func (s *TransactionService) Create(userID string, data CreateTransactionInput) (*models.Transaction, error) {
	if data.Type != models.TransactionIncome && data.Type != models.TransactionExpense {
		return nil, util.NewValidationError("type must be INCOME or EXPENSE")
	}
	if data.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("amount must be greater than 0")
	}
	if data.AccountID == nil {
		return nil, util.NewValidationError("accountId is required for INCOME/EXPENSE transactions")
	}

	if _, err := getOwnedAccount(s.DB, *data.AccountID, userID); err != nil {
		return nil, err
	}
	if data.CategoryID != nil {
		category, err := getOwnedCategory(s.DB, *data.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if category.Type != data.Type {
			return nil, util.NewValidationError("Category type must match transaction type")
		}
	}

	txn := models.Transaction{
		UserID:     userID,
		Type:       data.Type,
		Amount:     data.Amount,
		Currency:   data.Currency,
		OccurredAt: data.OccurredAt,
		AccountID:  data.AccountID,
		CategoryID: data.CategoryID,
		Note:       data.Note,
		ReceiptURL: data.ReceiptURL,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		if err := applyTransactionEffect(tx, &txn, false); err != nil {
			return err
		}
		return s.replaceTags(tx, txn.ID, userID, data.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(txn.ID, userID)
}

// CreateTransfer moves an amount between two accounts of the same user. The
// two deltas are symmetric, so the sum of both balances is conserved.
func (s *TransactionService) CreateTransfer(userID string, data CreateTransferInput) (*models.Transaction, error) {
	if data.FromAccountID == data.ToAccountID {
		return nil, util.NewValidationError("fromAccountId and toAccountId cannot be the same")
	}
	if data.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("amount must be greater than 0")
	}

	if _, err := getOwnedAccount(s.DB, data.FromAccountID, userID); err != nil {
		return nil, err
	}
	if _, err := getOwnedAccount(s.DB, data.ToAccountID, userID); err != nil {
		return nil, err
	}

	txn := models.Transaction{
		UserID:        userID,
		Type:          models.TransactionTransfer,
		Amount:        data.Amount,
		Currency:      data.Currency,
		OccurredAt:    data.OccurredAt,
		FromAccountID: &data.FromAccountID,
		ToAccountID:   &data.ToAccountID,
		Note:          data.Note,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		return applyTransactionEffect(tx, &txn, false)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(txn.ID, userID)
}

// Update patches a transaction. The old effect is fully reversed before the
// new one is applied, even when the patch touches no balance-affecting field:
// a no-op patch must round-trip to the same balances.
func (s *TransactionService) Update(transactionID, userID string, data UpdateTransactionInput) (*models.Transaction, error) {
	existing, err := s.getOwnedTransaction(s.DB, transactionID, userID)
	if err != nil {
		return nil, err
	}

	// Effective values after the patch, old values as fallback.
	next := *existing
	if data.Type != nil {
		switch *data.Type {
		case models.TransactionIncome, models.TransactionExpense, models.TransactionTransfer:
		default:
			return nil, util.NewValidationError("type must be INCOME, EXPENSE or TRANSFER")
		}
		next.Type = *data.Type
	}
	if data.Amount != nil {
		next.Amount = *data.Amount
	}
	if data.Currency != nil {
		next.Currency = *data.Currency
	}
	if data.OccurredAt != nil {
		next.OccurredAt = *data.OccurredAt
	}
	if data.AccountID != nil {
		next.AccountID = data.AccountID
	}
	if data.CategoryID != nil {
		next.CategoryID = data.CategoryID
	}
	if data.Note != nil {
		next.Note = *data.Note
	}
	if data.ReceiptURL != nil {
		next.ReceiptURL = *data.ReceiptURL
	}
	if data.FromAccountID != nil {
		next.FromAccountID = data.FromAccountID
	}
	if data.ToAccountID != nil {
		next.ToAccountID = data.ToAccountID
	}

	if next.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("amount must be greater than 0")
	}
	if next.Type == models.TransactionTransfer {
		if next.FromAccountID == nil || next.ToAccountID == nil {
			return nil, util.NewValidationError("fromAccountId and toAccountId are required for TRANSFER transactions")
		}
		if *next.FromAccountID == *next.ToAccountID {
			return nil, util.NewValidationError("fromAccountId and toAccountId cannot be the same")
		}
	} else if next.AccountID == nil {
		return nil, util.NewValidationError("accountId is required for INCOME/EXPENSE transactions")
	}

	// Newly referenced accounts/categories must belong to the same user.
	if data.AccountID != nil {
		if _, err := getOwnedAccount(s.DB, *data.AccountID, userID); err != nil {
			return nil, err
		}
	}
	if data.FromAccountID != nil {
		if _, err := getOwnedAccount(s.DB, *data.FromAccountID, userID); err != nil {
			return nil, err
		}
	}
	if data.ToAccountID != nil {
		if _, err := getOwnedAccount(s.DB, *data.ToAccountID, userID); err != nil {
			return nil, err
		}
	}
	if data.CategoryID != nil {
		if _, err := getOwnedCategory(s.DB, *data.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := applyTransactionEffect(tx, existing, true); err != nil {
			return err
		}
		if err := applyTransactionEffect(tx, &next, false); err != nil {
			return err
		}
		if data.TagIDs != nil {
			if err := tx.Where("transaction_id = ?", transactionID).
				Delete(&models.TransactionTag{}).Error; err != nil {
				return err
			}
			if err := s.replaceTags(tx, transactionID, userID, *data.TagIDs); err != nil {
				return err
			}
		}
		return tx.Model(&models.Transaction{}).Where("id = ?", transactionID).
			Updates(map[string]interface{}{
				"type":            next.Type,
				"amount":          next.Amount,
				"currency":        next.Currency,
				"occurred_at":     next.OccurredAt,
				"account_id":      next.AccountID,
				"category_id":     next.CategoryID,
				"note":            next.Note,
				"receipt_url":     next.ReceiptURL,
				"from_account_id": next.FromAccountID,
				"to_account_id":   next.ToAccountID,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(transactionID, userID)
}

// Delete reverses the balance effect and soft-deletes the row. The row is
// fetched through the not-deleted path, so a second delete cannot reverse
// the effect again.
func (s *TransactionService) Delete(transactionID, userID string) error {
	existing, err := s.getOwnedTransaction(s.DB, transactionID, userID)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := applyTransactionEffect(tx, existing, true); err != nil {
			return err
		}
		return tx.Model(&models.Transaction{}).Where("id = ?", transactionID).
			Update("is_deleted", true).Error
	})
}

// Tags returns the tags linked to a transaction.
func (s *TransactionService) Tags(transactionID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.DB.
		Joins("JOIN transaction_tags ON transaction_tags.tag_id = tags.id").
		Where("transaction_tags.transaction_id = ?", transactionID).
		Find(&tags).Error
	return tags, err
}

func (s *TransactionService) replaceTags(tx *gorm.DB, transactionID, userID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	if err := verifyTags(tx, userID, tagIDs); err != nil {
		return err
	}
	links := make([]models.TransactionTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, models.TransactionTag{TransactionID: transactionID, TagID: tagID})
	}
	return tx.Create(&links).Error
}
