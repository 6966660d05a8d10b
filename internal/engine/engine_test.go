package engine

import (
	"testing"

	"mizan-backend/internal/assets"
	"mizan-backend/internal/currency"
	"mizan-backend/internal/nisab"

	"github.com/stretchr/testify/assert"
)

var testPrices = nisab.MetalPrices{Gold: 93.98, Silver: 1.10, Currency: "usd"}

func usdTable() currency.RateTable {
	return currency.NewRateTable("usd", map[string]float64{"eur": 0.92})
}

func usdOpts() Options {
	return Options{DisplayCurrency: "usd"}
}

// Cash-only scenario: $50,000 checking, hawl met, gold nisab $7,988.30.
func TestCalculate_CashOnlyEligible(t *testing.T) {
	in := assets.Inputs{Cash: assets.CashInput{CheckingAccount: 50000, HawlMet: true}}

	r := Calculate(in, testPrices, usdTable(), usdOpts())
	assert.True(t, r.IsEligible)
	assert.InDelta(t, 7988.30, r.Nisab.ThresholdValue, 1e-9)
	assert.True(t, r.Nisab.IsDirectPrice)
	assert.Equal(t, 50000.0, r.TotalAssets)
	assert.Equal(t, 50000.0, r.ZakatableAmount)
	assert.InDelta(t, 1250.0, r.ZakatDue, 1e-9)
}

func TestCalculate_NoHawlNeverEligible(t *testing.T) {
	in := assets.Inputs{
		Cash:   assets.CashInput{CheckingAccount: 1_000_000},
		Metals: assets.MetalsInput{GoldInvestmentGrams: 500},
		Stocks: assets.StocksInput{ActiveTrading: 250_000},
	}
	r := Calculate(in, testPrices, usdTable(), usdOpts())
	assert.False(t, r.IsEligible)
	assert.Zero(t, r.ZakatDue)
	assert.Zero(t, r.ZakatableAmount)
	assert.Greater(t, r.TotalAssets, 0.0)
}

func TestCalculate_BelowThresholdNotEligible(t *testing.T) {
	in := assets.Inputs{Cash: assets.CashInput{CashOnHand: 500, HawlMet: true}}
	r := Calculate(in, testPrices, usdTable(), usdOpts())
	assert.False(t, r.IsEligible)
	assert.Zero(t, r.ZakatDue)
	assert.Equal(t, 500.0, r.ZakatableAmount)
}

// Metals crossing the gram threshold pull the entire pool due, not
// just the metals sub-pool.
func TestCalculate_MetalWeightTriggerCoversWholePool(t *testing.T) {
	in := assets.Inputs{
		Cash:   assets.CashInput{CashOnHand: 1000, HawlMet: true}, // below gold value nisab alone
		Metals: assets.MetalsInput{GoldInvestmentGrams: 85, HawlMet: true},
	}
	r := Calculate(in, testPrices, usdTable(), usdOpts())
	assert.True(t, r.IsEligible)
	expectedPool := 1000 + 85*93.98
	assert.InDelta(t, expectedPool, r.ZakatableAmount, 1e-9)
	assert.InDelta(t, expectedPool*ZakatRate, r.ZakatDue, 1e-9)
}

// Worn jewelry alone: counted in totals, never in the zakatable pool.
func TestCalculate_RegularUseJewelryOnly(t *testing.T) {
	in := assets.Inputs{Metals: assets.MetalsInput{GoldRegularGrams: 50, HawlMet: true}}
	r := Calculate(in, testPrices, usdTable(), usdOpts())
	assert.Greater(t, r.TotalAssets, 0.0)
	assert.Zero(t, r.ZakatableAmount)
	assert.False(t, r.IsEligible)
	assert.Zero(t, r.ZakatDue)
}

func TestCalculate_HawlExcludesCategoryFromPool(t *testing.T) {
	in := assets.Inputs{
		Cash:   assets.CashInput{CheckingAccount: 50000, HawlMet: true},
		Crypto: assets.CryptoInput{Holdings: 10000, HawlMet: false},
	}
	r := Calculate(in, testPrices, usdTable(), usdOpts())
	assert.Equal(t, 60000.0, r.TotalAssets)
	assert.Equal(t, 50000.0, r.ZakatableAmount)
	assert.InDelta(t, 1250.0, r.ZakatDue, 1e-9)
}

func TestCalculate_LowerOfTwoPolicy(t *testing.T) {
	// Silver nisab: 595 * 1.10 = 654.50; gold nisab: 7988.30.
	in := assets.Inputs{Cash: assets.CashInput{SavingsAccount: 700, HawlMet: true}}

	any := Calculate(in, testPrices, usdTable(), usdOpts())
	assert.False(t, any.IsEligible)

	lower := Calculate(in, testPrices, usdTable(), Options{DisplayCurrency: "usd", Policy: PolicyLowerOfTwo})
	assert.True(t, lower.IsEligible)
	assert.Equal(t, nisab.Silver, lower.Nisab.ThresholdType)
	assert.InDelta(t, 654.50, lower.Nisab.ThresholdValue, 1e-9)
	assert.InDelta(t, 700*ZakatRate, lower.ZakatDue, 1e-9)
}

func TestCalculate_UnavailableConversionMeansNotEligible(t *testing.T) {
	in := assets.Inputs{Cash: assets.CashInput{CheckingAccount: 1_000_000, HawlMet: true}}
	r := Calculate(in, testPrices, usdTable(), Options{DisplayCurrency: "jpy"})
	assert.False(t, r.IsEligible)
	assert.Zero(t, r.ZakatDue)
	assert.Zero(t, r.Nisab.ThresholdValue)
	assert.False(t, r.Nisab.IsDirectPrice)
}

func TestCalculate_DefaultsToTableBaseCurrency(t *testing.T) {
	in := assets.Inputs{Cash: assets.CashInput{CheckingAccount: 50000, HawlMet: true}}
	r := Calculate(in, testPrices, usdTable(), Options{})
	assert.Equal(t, "usd", r.DisplayCurrency)
	assert.True(t, r.IsEligible)
}

func TestCalculate_MalformedInputCoercedNotFatal(t *testing.T) {
	in := assets.Inputs{Cash: assets.CashInput{CashOnHand: -999, CheckingAccount: 50000, HawlMet: true}}
	r := Calculate(in, testPrices, usdTable(), usdOpts())
	assert.Equal(t, 50000.0, r.TotalAssets)
	assert.InDelta(t, 1250.0, r.ZakatDue, 1e-9)
}
