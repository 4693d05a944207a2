package database

import (
	"fmt"

	"github.com/muhammadarssy/backend-finances/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Tag{},
		&models.Transaction{},
		&models.TransactionTag{},
		&models.Budget{},
		&models.BudgetItem{},
		&models.Bill{},
		&models.BillPayment{},
		&models.Debt{},
		&models.DebtPayment{},
		&models.RecurringRule{},
		&models.RecurringRun{},
		&models.InvestmentAsset{},
		&models.InvestmentTransaction{},
		&models.Holding{},
		&models.WatchlistItem{},
		&models.PriceAlert{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
