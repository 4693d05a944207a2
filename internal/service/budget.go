package service

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetService upserts monthly budgets and reports spending against them.
type BudgetService struct {
	DB *gorm.DB
}

func NewBudgetService(db *gorm.DB) *BudgetService {
	return &BudgetService{DB: db}
}

// BudgetItemInput is one per-category limit in an upsert payload.
type BudgetItemInput struct {
	CategoryID  string
	LimitAmount decimal.Decimal
}

// UpsertBudgetInput replaces the budget for (month, year) wholesale.
type UpsertBudgetInput struct {
	Month      int
	Year       int
	TotalLimit decimal.NullDecimal
	Items      []BudgetItemInput
}

// BudgetItemStatus is a budget line with actual spending for the month.
type BudgetItemStatus struct {
	models.BudgetItem
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// BudgetStatus is a budget with per-item spending filled in.
type BudgetStatus struct {
	models.Budget
	ItemStatus []BudgetItemStatus `json:"itemStatus"`
	TotalSpent decimal.Decimal    `json:"totalSpent"`
}

// Upsert creates or replaces the budget for one month. Items are replaced
// wholesale; every category must belong to the user, be EXPENSE typed, and
// appear at most once.
func (s *BudgetService) Upsert(userID string, data UpsertBudgetInput) (*models.Budget, error) {
	if data.Month < 1 || data.Month > 12 {
		return nil, util.NewValidationError("month must be between 1 and 12")
	}
	if data.Year < 2000 || data.Year > 2200 {
		return nil, util.NewValidationError("year is out of range")
	}

	seen := map[string]bool{}
	for _, item := range data.Items {
		if seen[item.CategoryID] {
			return nil, util.NewValidationError("duplicate category in budget items")
		}
		seen[item.CategoryID] = true

		category, err := getOwnedCategory(s.DB, item.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if category.Type != models.CategoryExpense {
			return nil, util.NewValidationError("budget items must use EXPENSE categories")
		}
		if item.LimitAmount.LessThanOrEqual(decimal.Zero) {
			return nil, util.NewValidationError("limit amount must be positive")
		}
	}

	var budget models.Budget
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND month = ? AND year = ?", userID, data.Month, data.Year).
			First(&budget).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			budget = models.Budget{
				UserID:     userID,
				Month:      data.Month,
				Year:       data.Year,
				TotalLimit: data.TotalLimit,
			}
			if err := tx.Create(&budget).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&models.Budget{}).Where("id = ?", budget.ID).
				Update("total_limit", data.TotalLimit).Error; err != nil {
				return err
			}
			if err := tx.Where("budget_id = ?", budget.ID).
				Delete(&models.BudgetItem{}).Error; err != nil {
				return err
			}
		}

		for _, item := range data.Items {
			row := models.BudgetItem{
				BudgetID:    budget.ID,
				CategoryID:  item.CategoryID,
				LimitAmount: item.LimitAmount,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.getByID(budget.ID)
}

// Get returns the budget for one month with spending computed from live
// expense transactions in that month.
func (s *BudgetService) Get(userID string, month, year int) (*BudgetStatus, error) {
	var budget models.Budget
	err := s.DB.Preload("Items").Preload("Items.Category").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&budget).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("No budget for this month")
		}
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	status := BudgetStatus{Budget: budget, TotalSpent: decimal.Zero}
	for _, item := range budget.Items {
		spent, err := s.spentForCategory(userID, item.CategoryID, start, end)
		if err != nil {
			return nil, err
		}
		status.ItemStatus = append(status.ItemStatus, BudgetItemStatus{
			BudgetItem: item,
			Spent:      spent,
			Remaining:  item.LimitAmount.Sub(spent),
		})
		status.TotalSpent = status.TotalSpent.Add(spent)
	}
	return &status, nil
}

func (s *BudgetService) Delete(userID string, month, year int) error {
	var budget models.Budget
	err := s.DB.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&budget).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.NewNotFoundError("No budget for this month")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.BudgetItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Budget{}, "id = ?", budget.ID).Error
	})
}

func (s *BudgetService) getByID(budgetID string) (*models.Budget, error) {
	var budget models.Budget
	err := s.DB.Preload("Items").Preload("Items.Category").
		Where("id = ?", budgetID).First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (s *BudgetService) spentForCategory(userID, categoryID string, start, end time.Time) (decimal.Decimal, error) {
	var raw struct {
		Total decimal.NullDecimal
	}
	err := s.DB.Model(&models.Transaction{}).
		Select("SUM(amount) AS total").
		Where("user_id = ? AND category_id = ? AND type = ? AND is_deleted = ?",
			userID, categoryID, models.TransactionExpense, false).
		Where("occurred_at >= ? AND occurred_at < ?", start, end).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !raw.Total.Valid {
		return decimal.Zero, nil
	}
	return raw.Total.Decimal, nil
}
