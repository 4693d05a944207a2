package service

import (
	"testing"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func holdingFor(t *testing.T, db *gorm.DB, userID, assetID string) *models.Holding {
	t.Helper()
	var holding models.Holding
	err := db.Where("user_id = ? AND asset_id = ?", userID, assetID).First(&holding).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	require.NoError(t, err)
	return &holding
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestInvestmentBuyDerivesNetAndDebitsCash(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvestmentService(db)
	user := createTestUser(t, db, "buy@test.dev")
	cash := createTestAccount(t, db, user.ID, dec("100000"))
	asset := createTestAsset(t, db, user.ID, "BBCA")

	txn, err := svc.Create(user.ID, CreateInvestmentInput{
		AssetID:       asset.ID,
		Type:          models.InvestmentBuy,
		Units:         ptr(dec("10")),
		PricePerUnit:  ptr(dec("9000")),
		FeeAmount:     ptr(dec("500")),
		OccurredAt:    day(2026, time.January, 5),
		CashAccountID: &cash.ID,
	})
	require.NoError(t, err)

	// gross 10*9000 = 90000, net = 90000 - 500 = 89500
	assert.True(t, txn.GrossAmount.Decimal.Equal(dec("90000")))
	assert.True(t, txn.NetAmount.Equal(dec("89500")))
	assert.True(t, accountBalance(t, db, cash.ID).Equal(dec("10500")))

	holding := holdingFor(t, db, user.ID, asset.ID)
	require.NotNil(t, holding)
	assert.True(t, holding.UnitsTotal.Equal(dec("10")))
	assert.True(t, holding.AvgBuyPrice.Equal(dec("9000")))
}

func TestInvestmentSellCreditsCashKeepsAverage(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvestmentService(db)
	user := createTestUser(t, db, "sell@test.dev")
	cash := createTestAccount(t, db, user.ID, dec("0"))
	asset := createTestAsset(t, db, user.ID, "TLKM")

	_, err := svc.Create(user.ID, CreateInvestmentInput{
		AssetID:      asset.ID,
		Type:         models.InvestmentBuy,
		Units:        ptr(dec("20")),
		PricePerUnit: ptr(dec("3000")),
		OccurredAt:   day(2026, time.January, 5),
	})
	require.NoError(t, err)

	_, err = svc.Create(user.ID, CreateInvestmentInput{
		AssetID:       asset.ID,
		Type:          models.InvestmentSell,
		Units:         ptr(dec("5")),
		PricePerUnit:  ptr(dec("3500")),
		OccurredAt:    day(2026, time.February, 5),
		CashAccountID: &cash.ID,
	})
	require.NoError(t, err)

	assert.True(t, accountBalance(t, db, cash.ID).Equal(dec("17500")))

	holding := holdingFor(t, db, user.ID, asset.ID)
	require.NotNil(t, holding)
	assert.True(t, holding.UnitsTotal.Equal(dec("15")))
	assert.True(t, holding.AvgBuyPrice.Equal(dec("3000")), "sell must not move the average")
}

func TestInvestmentOversellRollsBackInsert(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvestmentService(db)
	user := createTestUser(t, db, "oversell@test.dev")
	asset := createTestAsset(t, db, user.ID, "GOTO")

	_, err := svc.Create(user.ID, CreateInvestmentInput{
		AssetID:      asset.ID,
		Type:         models.InvestmentBuy,
		Units:        ptr(dec("5")),
		PricePerUnit: ptr(dec("100")),
		OccurredAt:   day(2026, time.January, 5),
	})
	require.NoError(t, err)

	_, err = svc.Create(user.ID, CreateInvestmentInput{
		AssetID:      asset.ID,
		Type:         models.InvestmentSell,
		Units:        ptr(dec("6")),
		PricePerUnit: ptr(dec("100")),
		OccurredAt:   day(2026, time.February, 5),
	})
	require.Error(t, err)

	appErr, ok := err.(*util.AppError)
	require.True(t, ok)
	assert.Equal(t, util.CodeInsufficient, appErr.Code)

	// the failed sell must leave no ledger row behind
	var count int64
	require.NoError(t, db.Model(&models.InvestmentTransaction{}).
		Where("user_id = ? AND type = ?", user.ID, models.InvestmentSell).
		Count(&count).Error)
	assert.Equal(t, int64(0), count)

	holding := holdingFor(t, db, user.ID, asset.ID)
	require.NotNil(t, holding)
	assert.True(t, holding.UnitsTotal.Equal(dec("5")))
}

func TestInvestmentSellAllDeletesHolding(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvestmentService(db)
	user := createTestUser(t, db, "sellall@test.dev")
	asset := createTestAsset(t, db, user.ID, "ANTM")

	_, err := svc.Create(user.ID, CreateInvestmentInput{
		AssetID:      asset.ID,
		Type:         models.InvestmentBuy,
		Units:        ptr(dec("7")),
		PricePerUnit: ptr(dec("2000")),
		OccurredAt:   day(2026, time.January, 5),
	})
	require.NoError(t, err)

	_, err = svc.Create(user.ID, CreateInvestmentInput{
		AssetID:      asset.ID,
		Type:         models.InvestmentSell,
		Units:        ptr(dec("7")),
		PricePerUnit: ptr(dec("2500")),
		OccurredAt:   day(2026, time.February, 5),
	})
	require.NoError(t, err)

	assert.Nil(t, holdingFor(t, db, user.ID, asset.ID), "zero-unit holding must be removed")
}

func TestInvestmentDividendRequiresNetAmount(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvestmentService(db)
	user := createTestUser(t, db, "dividend@test.dev")
	cash := createTestAccount(t, db, user.ID, dec("0"))
	asset := createTestAsset(t, db, user.ID, "UNVR")

	_, err := svc.Create(user.ID, CreateInvestmentInput{
		AssetID:    asset.ID,
		Type:       models.InvestmentDividend,
		OccurredAt: day(2026, time.March, 1),
	})
	require.Error(t, err)

	_, err = svc.Create(user.ID, CreateInvestmentInput{
		AssetID:       asset.ID,
		Type:          models.InvestmentDividend,
		NetAmount:     ptr(dec("1200")),
		OccurredAt:    day(2026, time.March, 1),
		CashAccountID: &cash.ID,
	})
	require.NoError(t, err)
	assert.True(t, accountBalance(t, db, cash.ID).Equal(dec("1200")))
}

func TestInvestmentDeleteRestoresState(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvestmentService(db)
	user := createTestUser(t, db, "invdelete@test.dev")
	cash := createTestAccount(t, db, user.ID, dec("50000"))
	asset := createTestAsset(t, db, user.ID, "ASII")

	txn, err := svc.Create(user.ID, CreateInvestmentInput{
		AssetID:       asset.ID,
		Type:          models.InvestmentBuy,
		Units:         ptr(dec("4")),
		PricePerUnit:  ptr(dec("5000")),
		OccurredAt:    day(2026, time.January, 5),
		CashAccountID: &cash.ID,
	})
	require.NoError(t, err)
	require.True(t, accountBalance(t, db, cash.ID).Equal(dec("30000")))

	require.NoError(t, svc.Delete(txn.ID, user.ID))

	assert.True(t, accountBalance(t, db, cash.ID).Equal(dec("50000")))
	assert.Nil(t, holdingFor(t, db, user.ID, asset.ID))
}

func TestInvestmentUpdateReversesThenReapplies(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvestmentService(db)
	user := createTestUser(t, db, "invupdate@test.dev")
	cash := createTestAccount(t, db, user.ID, dec("100000"))
	asset := createTestAsset(t, db, user.ID, "BMRI")

	txn, err := svc.Create(user.ID, CreateInvestmentInput{
		AssetID:       asset.ID,
		Type:          models.InvestmentBuy,
		Units:         ptr(dec("10")),
		PricePerUnit:  ptr(dec("6000")),
		OccurredAt:    day(2026, time.January, 5),
		CashAccountID: &cash.ID,
	})
	require.NoError(t, err)
	require.True(t, accountBalance(t, db, cash.ID).Equal(dec("40000")))

	_, err = svc.Update(txn.ID, user.ID, UpdateInvestmentInput{
		Units: ptr(dec("5")),
	})
	require.NoError(t, err)

	// new net = 5 * 6000 = 30000, so the cash account reflects only that
	assert.True(t, accountBalance(t, db, cash.ID).Equal(dec("70000")))

	holding := holdingFor(t, db, user.ID, asset.ID)
	require.NotNil(t, holding)
	assert.True(t, holding.UnitsTotal.Equal(dec("5")))
	assert.True(t, holding.AvgBuyPrice.Equal(dec("6000")))
}

func TestInvestmentUpdateRejectsNonPositiveUnitsAndPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvestmentService(db)
	user := createTestUser(t, db, "invbadpatch@test.dev")
	cash := createTestAccount(t, db, user.ID, dec("100000"))
	asset := createTestAsset(t, db, user.ID, "PGAS")

	txn, err := svc.Create(user.ID, CreateInvestmentInput{
		AssetID:       asset.ID,
		Type:          models.InvestmentBuy,
		Units:         ptr(dec("10")),
		PricePerUnit:  ptr(dec("1500")),
		OccurredAt:    day(2026, time.January, 5),
		CashAccountID: &cash.ID,
	})
	require.NoError(t, err)

	for _, patch := range []UpdateInvestmentInput{
		{Units: ptr(dec("-50")), NetAmount: ptr(dec("100"))},
		{Units: ptr(dec("0"))},
		{PricePerUnit: ptr(dec("-1"))},
		{GrossAmount: ptr(dec("-100"))},
	} {
		_, err = svc.Update(txn.ID, user.ID, patch)
		require.Error(t, err)

		appErr, ok := err.(*util.AppError)
		require.True(t, ok)
		assert.Equal(t, util.CodeValidation, appErr.Code)
	}

	// the rejected patches must leave holding and cash untouched
	assert.True(t, accountBalance(t, db, cash.ID).Equal(dec("85000")))
	holding := holdingFor(t, db, user.ID, asset.ID)
	require.NotNil(t, holding)
	assert.True(t, holding.UnitsTotal.Equal(dec("10")))
	assert.True(t, holding.AvgBuyPrice.Equal(dec("1500")))
}

func TestInvestmentUpdateNoopPatchKeepsState(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvestmentService(db)
	user := createTestUser(t, db, "invnoop@test.dev")
	cash := createTestAccount(t, db, user.ID, dec("100000"))
	asset := createTestAsset(t, db, user.ID, "ICBP")

	txn, err := svc.Create(user.ID, CreateInvestmentInput{
		AssetID:       asset.ID,
		Type:          models.InvestmentBuy,
		Units:         ptr(dec("10")),
		PricePerUnit:  ptr(dec("1000")),
		OccurredAt:    day(2026, time.January, 5),
		CashAccountID: &cash.ID,
	})
	require.NoError(t, err)

	note := "monthly top-up"
	_, err = svc.Update(txn.ID, user.ID, UpdateInvestmentInput{Note: &note})
	require.NoError(t, err)

	assert.True(t, accountBalance(t, db, cash.ID).Equal(dec("90000")))

	holding := holdingFor(t, db, user.ID, asset.ID)
	require.NotNil(t, holding)
	assert.True(t, holding.UnitsTotal.Equal(dec("10")))
	assert.True(t, holding.AvgBuyPrice.Equal(dec("1000")))
}
