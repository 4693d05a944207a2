package service

import (
	"testing"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetUpsertRejectsDuplicateCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db)
	user := createTestUser(t, db, "buddup@test.dev")
	groceries := createTestCategory(t, db, user.ID, "Groceries", models.CategoryExpense)

	_, err := svc.Upsert(user.ID, UpsertBudgetInput{
		Month: 3, Year: 2026,
		Items: []BudgetItemInput{
			{CategoryID: groceries.ID, LimitAmount: dec("100")},
			{CategoryID: groceries.ID, LimitAmount: dec("200")},
		},
	})
	require.Error(t, err)
}

func TestBudgetUpsertRejectsIncomeCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db)
	user := createTestUser(t, db, "budinc@test.dev")
	salary := createTestCategory(t, db, user.ID, "Salary", models.CategoryIncome)

	_, err := svc.Upsert(user.ID, UpsertBudgetInput{
		Month: 3, Year: 2026,
		Items: []BudgetItemInput{{CategoryID: salary.ID, LimitAmount: dec("100")}},
	})
	require.Error(t, err)
}

func TestBudgetUpsertReplacesItemsWholesale(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db)
	user := createTestUser(t, db, "budrepl@test.dev")
	groceries := createTestCategory(t, db, user.ID, "Groceries", models.CategoryExpense)
	transport := createTestCategory(t, db, user.ID, "Transport", models.CategoryExpense)

	first, err := svc.Upsert(user.ID, UpsertBudgetInput{
		Month: 3, Year: 2026,
		Items: []BudgetItemInput{{CategoryID: groceries.ID, LimitAmount: dec("500")}},
	})
	require.NoError(t, err)

	second, err := svc.Upsert(user.ID, UpsertBudgetInput{
		Month: 3, Year: 2026,
		Items: []BudgetItemInput{{CategoryID: transport.ID, LimitAmount: dec("300")}},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same month must reuse the budget row")
	require.Len(t, second.Items, 1)
	assert.Equal(t, transport.ID, second.Items[0].CategoryID)
}

func TestBudgetSpentFromLiveTransactions(t *testing.T) {
	db := newTestDB(t)
	budgetSvc := NewBudgetService(db)
	txnSvc := NewTransactionService(db)
	user := createTestUser(t, db, "budspent@test.dev")
	account := createTestAccount(t, db, user.ID, dec("10000"))
	groceries := createTestCategory(t, db, user.ID, "Groceries", models.CategoryExpense)

	_, err := budgetSvc.Upsert(user.ID, UpsertBudgetInput{
		Month: 3, Year: 2026,
		Items: []BudgetItemInput{{CategoryID: groceries.ID, LimitAmount: dec("500")}},
	})
	require.NoError(t, err)

	spend := func(amount string, when time.Time) *models.Transaction {
		txn, err := txnSvc.Create(user.ID, CreateTransactionInput{
			Type:       models.TransactionExpense,
			Amount:     dec(amount),
			OccurredAt: when,
			AccountID:  &account.ID,
			CategoryID: &groceries.ID,
		})
		require.NoError(t, err)
		return txn
	}

	spend("120", day(2026, time.March, 3))
	deleted := spend("80", day(2026, time.March, 10))
	spend("40", day(2026, time.April, 1)) // outside the month

	require.NoError(t, txnSvc.Delete(deleted.ID, user.ID))

	status, err := budgetSvc.Get(user.ID, 3, 2026)
	require.NoError(t, err)
	require.Len(t, status.ItemStatus, 1)
	assert.True(t, status.ItemStatus[0].Spent.Equal(dec("120")),
		"deleted and out-of-month spending must not count, got %s", status.ItemStatus[0].Spent)
	assert.True(t, status.ItemStatus[0].Remaining.Equal(dec("380")))
	assert.True(t, status.TotalSpent.Equal(dec("120")))
}
