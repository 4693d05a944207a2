package service

import (
	"testing"

	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyBuyFirstPurchase(t *testing.T) {
	pos := Position{}.ApplyBuy(dec("10"), dec("9000"))

	assert.True(t, pos.Held)
	assert.True(t, pos.Units.Equal(dec("10")))
	assert.True(t, pos.AvgBuyPrice.Equal(dec("9000")))
}

func TestApplyBuyWeightedAverage(t *testing.T) {
	pos := Position{}.ApplyBuy(dec("10"), dec("9000"))
	pos = pos.ApplyBuy(dec("10"), dec("11000"))

	// (10*9000 + 10*11000) / 20 = 10000
	assert.True(t, pos.Units.Equal(dec("20")))
	assert.True(t, pos.AvgBuyPrice.Equal(dec("10000")), "avg = %s", pos.AvgBuyPrice)
}

func TestApplySellKeepsAverage(t *testing.T) {
	pos := Position{}.ApplyBuy(dec("20"), dec("10000"))

	next, err := pos.ApplySell(dec("5"), dec("12000"))
	require.NoError(t, err)

	assert.True(t, next.Units.Equal(dec("15")))
	assert.True(t, next.AvgBuyPrice.Equal(dec("10000")), "sell must not move the average")
}

func TestApplySellAllDissolvesPosition(t *testing.T) {
	pos := Position{}.ApplyBuy(dec("20"), dec("10000"))

	next, err := pos.ApplySell(dec("20"), dec("12000"))
	require.NoError(t, err)
	assert.False(t, next.Held)
}

func TestApplySellOversell(t *testing.T) {
	pos := Position{}.ApplyBuy(dec("5"), dec("10000"))

	_, err := pos.ApplySell(dec("6"), dec("10000"))
	require.Error(t, err)

	appErr, ok := err.(*util.AppError)
	require.True(t, ok)
	assert.Equal(t, util.CodeInsufficient, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestApplySellWithoutHolding(t *testing.T) {
	_, err := Position{}.ApplySell(dec("1"), dec("10000"))
	require.Error(t, err)
}

func TestReverseBuyRecoversPriorAverage(t *testing.T) {
	pos := Position{}.ApplyBuy(dec("10"), dec("9000"))
	pos = pos.ApplyBuy(dec("10"), dec("11000"))

	reversed, err := pos.ReverseBuy(dec("10"), dec("11000"))
	require.NoError(t, err)
	assert.True(t, reversed.Units.Equal(dec("10")))
	assert.True(t, reversed.AvgBuyPrice.Equal(dec("9000")), "avg = %s", reversed.AvgBuyPrice)
}

func TestReverseBuyOfOnlyPurchaseDissolves(t *testing.T) {
	pos := Position{}.ApplyBuy(dec("10"), dec("9000"))

	reversed, err := pos.ReverseBuy(dec("10"), dec("9000"))
	require.NoError(t, err)
	assert.False(t, reversed.Held)
}

func TestReverseBuyClampsNonPositiveAverage(t *testing.T) {
	// Removing 5 units at a price far above the pooled value would push the
	// recomputed average negative; the prior average is kept instead.
	pos := Position{Held: true, Units: dec("10"), AvgBuyPrice: dec("100")}

	reversed, err := pos.ReverseBuy(dec("5"), dec("1000"))
	require.NoError(t, err)
	assert.True(t, reversed.Held)
	assert.True(t, reversed.Units.Equal(dec("5")))
	assert.True(t, reversed.AvgBuyPrice.Equal(dec("100")))
}

func TestReverseBuyWithoutHolding(t *testing.T) {
	// no position to reverse against means the ledger and the holdings drifted
	_, err := Position{}.ReverseBuy(dec("1"), dec("100"))
	require.Error(t, err)

	appErr, ok := err.(*util.AppError)
	require.True(t, ok)
	assert.Equal(t, util.CodeValidation, appErr.Code)
}

func TestReverseSellIsBuyBack(t *testing.T) {
	pos := Position{Held: true, Units: dec("15"), AvgBuyPrice: dec("10000")}

	// the original sell was recorded at the average price, so buying back at
	// that price restores both units and average
	restored := pos.ReverseSell(dec("5"), dec("10000"))
	assert.True(t, restored.Units.Equal(dec("20")))
	assert.True(t, restored.AvgBuyPrice.Equal(dec("10000")))
}

func TestBuySellRoundTrip(t *testing.T) {
	pos := Position{}.ApplyBuy(dec("8"), dec("250"))
	sold, err := pos.ApplySell(dec("3"), dec("300"))
	require.NoError(t, err)

	restored := sold.ReverseSell(dec("3"), dec("250"))
	assert.True(t, restored.Units.Equal(pos.Units))
	assert.True(t, restored.AvgBuyPrice.Equal(pos.AvgBuyPrice))
}
