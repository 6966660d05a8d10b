package assets

import (
	"mizan-backend/internal/currency"
	"mizan-backend/internal/nisab"
)

// Zakatable share of passive equity holdings. Approximates the
// cash-and-receivables portion of the underlying companies when the
// holder cannot establish the exact ratio.
const passiveStocksRatio = 0.30

// Breakdown is the per-category aggregation result. Zakatable never
// exceeds Total. Produced fresh on every call; callers may retain it.
type Breakdown struct {
	Total                  float64 `json:"total"`
	Zakatable              float64 `json:"zakatable"`
	MeetsNisabIndividually bool    `json:"meetsNisabIndividually,omitempty"`
}

// AggregateCash sums liquid holdings; everything is zakatable.
func AggregateCash(in CashInput) Breakdown {
	total := in.CashOnHand + in.CheckingAccount + in.SavingsAccount + in.DigitalWallets + in.ForeignCurrency
	return Breakdown{Total: total, Zakatable: total}
}

// AggregateMetals values gold and silver weights at the supplied spot
// prices, converted into displayCurrency. Regular-use jewelry counts
// toward Total only. MeetsNisabIndividually compares zakatable grams,
// not value, against the fixed gram thresholds.
//
// When the spot-price currency cannot be converted the metals are
// valued at zero; the gram-based nisab check still applies.
func AggregateMetals(in MetalsInput, prices nisab.MetalPrices, table currency.RateTable, displayCurrency string) Breakdown {
	goldPerGram, err := currency.Convert(prices.Gold, prices.Currency, displayCurrency, table)
	if err != nil {
		goldPerGram = 0
	}
	silverPerGram, err := currency.Convert(prices.Silver, prices.Currency, displayCurrency, table)
	if err != nil {
		silverPerGram = 0
	}

	goldZakatableGrams := in.GoldOccasionalGrams + in.GoldInvestmentGrams
	silverZakatableGrams := in.SilverOccasionalGrams + in.SilverInvestmentGrams

	totalGoldGrams := in.GoldRegularGrams + goldZakatableGrams
	totalSilverGrams := in.SilverRegularGrams + silverZakatableGrams

	return Breakdown{
		Total:     totalGoldGrams*goldPerGram + totalSilverGrams*silverPerGram,
		Zakatable: goldZakatableGrams*goldPerGram + silverZakatableGrams*silverPerGram,
		MeetsNisabIndividually: goldZakatableGrams >= nisab.GoldThresholdGrams ||
			silverZakatableGrams >= nisab.SilverThresholdGrams,
	}
}

// AggregateStocks: actively-traded positions and received dividends are
// fully zakatable; passive holdings at the fixed ratio.
func AggregateStocks(in StocksInput) Breakdown {
	return Breakdown{
		Total:     in.ActiveTrading + in.PassiveHoldings + in.Dividends,
		Zakatable: in.ActiveTrading + in.PassiveHoldings*passiveStocksRatio + in.Dividends,
	}
}

// AggregateRetirement: accessible funds are zakatable net of the
// estimated withdrawal penalty and tax; locked funds are not.
func AggregateRetirement(in RetirementInput) Breakdown {
	zakatable := in.AccessibleFunds - in.WithdrawalPenalty - in.TaxEstimate
	if zakatable < 0 {
		zakatable = 0
	}
	return Breakdown{
		Total:     in.AccessibleFunds + in.LockedFunds,
		Zakatable: zakatable,
	}
}

// AggregateRealEstate: property held for sale and saved rental income
// are zakatable; the primary residence is not.
func AggregateRealEstate(in RealEstateInput) Breakdown {
	return Breakdown{
		Total:     in.PrimaryResidence + in.RentalIncomeSaved + in.PropertyForSale,
		Zakatable: in.RentalIncomeSaved + in.PropertyForSale,
	}
}

// AggregateCrypto: tradable holdings and received staking rewards are
// fully zakatable; principal locked in staking is excluded until it
// can be withdrawn.
func AggregateCrypto(in CryptoInput) Breakdown {
	return Breakdown{
		Total:     in.Holdings + in.StakedLocked + in.StakingRewards,
		Zakatable: in.Holdings + in.StakingRewards,
	}
}

// AggregateReceivables: loans expected to be repaid are zakatable now;
// doubtful debts only once collected.
func AggregateReceivables(in ReceivablesInput) Breakdown {
	return Breakdown{
		Total:     in.GoodLoans + in.DoubtfulDebts,
		Zakatable: in.GoodLoans,
	}
}

// AggregateAll sanitizes the inputs and produces every category
// breakdown in displayCurrency. Empty input yields zero breakdowns,
// never an error.
func AggregateAll(in Inputs, prices nisab.MetalPrices, table currency.RateTable, displayCurrency string) map[Category]Breakdown {
	in = in.Sanitized()
	return map[Category]Breakdown{
		CategoryCash:        AggregateCash(in.Cash),
		CategoryMetals:      AggregateMetals(in.Metals, prices, table, displayCurrency),
		CategoryStocks:      AggregateStocks(in.Stocks),
		CategoryRetirement:  AggregateRetirement(in.Retirement),
		CategoryRealEstate:  AggregateRealEstate(in.RealEstate),
		CategoryCrypto:      AggregateCrypto(in.Crypto),
		CategoryReceivables: AggregateReceivables(in.Receivables),
	}
}
