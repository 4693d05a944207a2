package service

import (
	"testing"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtPaymentWalksRemainingDown(t *testing.T) {
	db := newTestDB(t)
	svc := NewDebtService(db)
	user := createTestUser(t, db, "debt@test.dev")

	debt, err := svc.Create(user.ID, DebtInput{
		Name:        "Car loan",
		Direction:   models.DebtOwedByMe,
		TotalAmount: dec("1000"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.DebtActive, debt.Status)
	assert.True(t, debt.RemainingAmount.Equal(dec("1000")))

	debt, err = svc.Pay(debt.ID, user.ID, PayDebtInput{Amount: dec("400")})
	require.NoError(t, err)
	assert.True(t, debt.RemainingAmount.Equal(dec("600")))
	assert.Equal(t, models.DebtActive, debt.Status)

	debt, err = svc.Pay(debt.ID, user.ID, PayDebtInput{Amount: dec("600")})
	require.NoError(t, err)
	assert.True(t, debt.RemainingAmount.IsZero())
	assert.Equal(t, models.DebtPaid, debt.Status)

	// a paid debt refuses further payments
	_, err = svc.Pay(debt.ID, user.ID, PayDebtInput{Amount: dec("1")})
	require.Error(t, err)
}

func TestDebtOverpaymentRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewDebtService(db)
	user := createTestUser(t, db, "debtover@test.dev")

	debt, err := svc.Create(user.ID, DebtInput{
		Name:        "Loan",
		Direction:   models.DebtOwedByMe,
		TotalAmount: dec("100"),
	})
	require.NoError(t, err)

	_, err = svc.Pay(debt.ID, user.ID, PayDebtInput{Amount: dec("150")})
	require.Error(t, err)
}

func TestDebtPaymentDirectionDrivesTransactionType(t *testing.T) {
	db := newTestDB(t)
	svc := NewDebtService(db)
	user := createTestUser(t, db, "debtdir@test.dev")
	account := createTestAccount(t, db, user.ID, dec("1000"))

	owedToMe, err := svc.Create(user.ID, DebtInput{
		Name:        "Lent to a friend",
		Direction:   models.DebtOwedToMe,
		TotalAmount: dec("300"),
	})
	require.NoError(t, err)

	// collecting money owed to me is income
	_, err = svc.Pay(owedToMe.ID, user.ID, PayDebtInput{
		Amount:    dec("300"),
		PaidAt:    day(2026, time.May, 1),
		AccountID: &account.ID,
	})
	require.NoError(t, err)
	assert.True(t, accountBalance(t, db, account.ID).Equal(dec("1300")))

	var txn models.Transaction
	require.NoError(t, db.Where("user_id = ? AND note = ?", user.ID, "Debt: Lent to a friend").
		First(&txn).Error)
	assert.Equal(t, models.TransactionIncome, txn.Type)
}
