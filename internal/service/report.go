package service

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportService aggregates live transactions into summaries. Deleted rows are
// always excluded; transfers move money between accounts and never count as
// income or expense.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// CashflowSummary is the income/expense total for one month.
type CashflowSummary struct {
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	TotalIncome decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net         decimal.Decimal `json:"net"`
}

// CategorySpend is the expense total for one category in a period.
type CategorySpend struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// NetWorthSummary is the sum of unarchived account balances.
type NetWorthSummary struct {
	TotalBalance decimal.Decimal   `json:"totalBalance"`
	Accounts     []models.Account  `json:"accounts"`
}

// MonthlyCashflow sums live INCOME and EXPENSE transactions for one month.
func (s *ReportService) MonthlyCashflow(userID string, month, year int) (*CashflowSummary, error) {
	if month < 1 || month > 12 {
		return nil, util.NewValidationError("month must be between 1 and 12")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	income, err := s.sumByType(userID, models.TransactionIncome, start, end)
	if err != nil {
		return nil, err
	}
	expense, err := s.sumByType(userID, models.TransactionExpense, start, end)
	if err != nil {
		return nil, err
	}

	return &CashflowSummary{
		Month:        month,
		Year:         year,
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          income.Sub(expense),
	}, nil
}

// SpendByCategory groups live expense transactions by category over a period.
func (s *ReportService) SpendByCategory(userID string, from, to time.Time) ([]CategorySpend, error) {
	if !to.After(from) {
		return nil, util.NewValidationError("to must be after from")
	}

	var rows []struct {
		CategoryID   string
		CategoryName string
		Total        decimal.Decimal
	}
	err := s.DB.Model(&models.Transaction{}).
		Select("transactions.category_id AS category_id, categories.name AS category_name, SUM(transactions.amount) AS total").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ? AND transactions.is_deleted = ?",
			userID, models.TransactionExpense, false).
		Where("transactions.occurred_at >= ? AND transactions.occurred_at < ?", from, to).
		Group("transactions.category_id, categories.name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]CategorySpend, 0, len(rows))
	for _, row := range rows {
		result = append(result, CategorySpend(row))
	}
	return result, nil
}

// NetWorth sums current balances across unarchived accounts.
func (s *ReportService) NetWorth(userID string) (*NetWorthSummary, error) {
	var accounts []models.Account
	err := s.DB.Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at ASC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.CurrentBalance)
	}
	return &NetWorthSummary{TotalBalance: total, Accounts: accounts}, nil
}

func (s *ReportService) sumByType(userID, txnType string, start, end time.Time) (decimal.Decimal, error) {
	var raw struct {
		Total decimal.NullDecimal
	}
	err := s.DB.Model(&models.Transaction{}).
		Select("SUM(amount) AS total").
		Where("user_id = ? AND type = ? AND is_deleted = ?", userID, txnType, false).
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
