package service

import (
	"testing"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func insertRawInvestment(t *testing.T, db *gorm.DB, userID, assetID, txType string, units, price decimal.Decimal, occurredAt time.Time) {
	t.Helper()
	txn := models.InvestmentTransaction{
		UserID:       userID,
		AssetID:      assetID,
		Type:         txType,
		Units:        decimal.NewNullDecimal(units),
		PricePerUnit: decimal.NewNullDecimal(price),
		NetAmount:    units.Mul(price),
		OccurredAt:   occurredAt,
	}
	require.NoError(t, db.Create(&txn).Error)
}

func TestRebuildMatchesIncrementalState(t *testing.T) {
	db := newTestDB(t)
	invSvc := NewInvestmentService(db)
	pfSvc := NewPortfolioService(db)
	user := createTestUser(t, db, "rebuild@test.dev")
	asset := createTestAsset(t, db, user.ID, "BBRI")

	for _, step := range []struct {
		txType string
		units  string
		price  string
		when   time.Time
	}{
		{models.InvestmentBuy, "10", "9000", day(2026, time.January, 5)},
		{models.InvestmentBuy, "10", "11000", day(2026, time.February, 5)},
		{models.InvestmentSell, "5", "12000", day(2026, time.March, 5)},
	} {
		_, err := invSvc.Create(user.ID, CreateInvestmentInput{
			AssetID:      asset.ID,
			Type:         step.txType,
			Units:        ptr(dec(step.units)),
			PricePerUnit: ptr(dec(step.price)),
			OccurredAt:   step.when,
		})
		require.NoError(t, err)
	}

	before := holdingFor(t, db, user.ID, asset.ID)
	require.NotNil(t, before)

	result, err := pfSvc.RebuildHoldings(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.HoldingsCreated)
	assert.Equal(t, 3, result.TransactionsProcessed)

	after := holdingFor(t, db, user.ID, asset.ID)
	require.NotNil(t, after)
	assert.True(t, after.UnitsTotal.Equal(before.UnitsTotal),
		"rebuild %s vs incremental %s", after.UnitsTotal, before.UnitsTotal)
	assert.True(t, after.AvgBuyPrice.Equal(before.AvgBuyPrice),
		"rebuild %s vs incremental %s", after.AvgBuyPrice, before.AvgBuyPrice)
	assert.True(t, after.UnitsTotal.Equal(dec("15")))
	assert.True(t, after.AvgBuyPrice.Equal(dec("10000")))
}

func TestRebuildSkipsInconsistentSell(t *testing.T) {
	db := newTestDB(t)
	pfSvc := NewPortfolioService(db)
	user := createTestUser(t, db, "skip@test.dev")
	asset := createTestAsset(t, db, user.ID, "PGAS")

	// history inserted behind the service's back: a sell larger than the
	// position at that point
	insertRawInvestment(t, db, user.ID, asset.ID, models.InvestmentBuy,
		dec("5"), dec("100"), day(2026, time.January, 5))
	insertRawInvestment(t, db, user.ID, asset.ID, models.InvestmentSell,
		dec("50"), dec("100"), day(2026, time.February, 5))
	insertRawInvestment(t, db, user.ID, asset.ID, models.InvestmentBuy,
		dec("3"), dec("200"), day(2026, time.March, 5))

	result, err := pfSvc.RebuildHoldings(user.ID)
	require.NoError(t, err, "an inconsistent sell must be skipped, not fail the rebuild")
	assert.Equal(t, 1, result.HoldingsCreated)

	holding := holdingFor(t, db, user.ID, asset.ID)
	require.NotNil(t, holding)
	// 5@100 then 3@200 with the oversell ignored: 8 units, avg 137.5
	assert.True(t, holding.UnitsTotal.Equal(dec("8")))
	assert.True(t, holding.AvgBuyPrice.Equal(dec("137.5")), "avg = %s", holding.AvgBuyPrice)
}

func TestRebuildRemovesStaleHoldings(t *testing.T) {
	db := newTestDB(t)
	pfSvc := NewPortfolioService(db)
	user := createTestUser(t, db, "stale@test.dev")
	asset := createTestAsset(t, db, user.ID, "WIKA")

	// a holding row with no ledger history behind it
	stale := models.Holding{
		UserID:      user.ID,
		AssetID:     asset.ID,
		UnitsTotal:  dec("99"),
		AvgBuyPrice: dec("1"),
	}
	require.NoError(t, db.Create(&stale).Error)

	result, err := pfSvc.RebuildHoldings(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.HoldingsCreated)
	assert.Nil(t, holdingFor(t, db, user.ID, asset.ID))
}

func TestPortfolioSummary(t *testing.T) {
	db := newTestDB(t)
	invSvc := NewInvestmentService(db)
	pfSvc := NewPortfolioService(db)
	user := createTestUser(t, db, "summary@test.dev")
	asset := createTestAsset(t, db, user.ID, "BBNI")

	_, err := invSvc.Create(user.ID, CreateInvestmentInput{
		AssetID:      asset.ID,
		Type:         models.InvestmentBuy,
		Units:        ptr(dec("10")),
		PricePerUnit: ptr(dec("5000")),
		OccurredAt:   day(2026, time.January, 5),
	})
	require.NoError(t, err)

	_, err = invSvc.Create(user.ID, CreateInvestmentInput{
		AssetID:      asset.ID,
		Type:         models.InvestmentSell,
		Units:        ptr(dec("4")),
		PricePerUnit: ptr(dec("6000")),
		FeeAmount:    ptr(dec("1000")),
		OccurredAt:   day(2026, time.February, 5),
	})
	require.NoError(t, err)

	summary, err := pfSvc.Summary(user.ID)
	require.NoError(t, err)

	// 6 units left at avg 5000
	assert.True(t, summary.TotalCostBasis.Equal(dec("30000")))
	require.Len(t, summary.Allocation, 1)
	assert.Equal(t, models.AssetStock, summary.Allocation[0].AssetType)
	assert.True(t, summary.Allocation[0].Value.Equal(dec("30000")))

	// realized P/L values the sell against its own price:
	// net 4*6000-1000 = 23000, basis 4*6000 = 24000, pl = -1000 (the fee)
	assert.True(t, summary.RealizedPL.Equal(dec("-1000")), "pl = %s", summary.RealizedPL)
}

func TestListHoldingsCostBasis(t *testing.T) {
	db := newTestDB(t)
	invSvc := NewInvestmentService(db)
	pfSvc := NewPortfolioService(db)
	user := createTestUser(t, db, "holdings@test.dev")
	asset := createTestAsset(t, db, user.ID, "INDF")

	_, err := invSvc.Create(user.ID, CreateInvestmentInput{
		AssetID:      asset.ID,
		Type:         models.InvestmentBuy,
		Units:        ptr(dec("12")),
		PricePerUnit: ptr(dec("250")),
		OccurredAt:   day(2026, time.January, 5),
	})
	require.NoError(t, err)

	views, err := pfSvc.ListHoldings(user.ID, "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].CostBasis.Equal(dec("3000")))
}
