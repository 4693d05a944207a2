package service

import (
	"testing"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database and runs the migrations.
// MaxOpenConns is pinned to 1 so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Tag{},
		&models.TransactionTag{},
		&models.Transaction{},
		&models.InvestmentAsset{},
		&models.InvestmentTransaction{},
		&models.Holding{},
		&models.RecurringRule{},
		&models.RecurringRun{},
		&models.Budget{},
		&models.BudgetItem{},
		&models.Bill{},
		&models.BillPayment{},
		&models.Debt{},
		&models.DebtPayment{},
		&models.WatchlistItem{},
		&models.PriceAlert{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestAccount(t *testing.T, db *gorm.DB, userID string, balance decimal.Decimal) *models.Account {
	t.Helper()
	account := models.Account{
		UserID:          userID,
		Name:            "Checking",
		Type:            models.AccountBank,
		Currency:        "IDR",
		StartingBalance: balance,
		CurrentBalance:  balance,
	}
	require.NoError(t, db.Create(&account).Error)
	return &account
}

func createTestCategory(t *testing.T, db *gorm.DB, userID, name, categoryType string) *models.Category {
	t.Helper()
	category := models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func createTestAsset(t *testing.T, db *gorm.DB, userID, symbol string) *models.InvestmentAsset {
	t.Helper()
	asset := models.InvestmentAsset{
		UserID:    userID,
		Symbol:    symbol,
		Name:      symbol + " Asset",
		AssetType: models.AssetStock,
		Currency:  "IDR",
	}
	require.NoError(t, db.Create(&asset).Error)
	return &asset
}

func accountBalance(t *testing.T, db *gorm.DB, accountID string) decimal.Decimal {
	t.Helper()
	var account models.Account
	require.NoError(t, db.Where("id = ?", accountID).First(&account).Error)
	return account.CurrentBalance
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
