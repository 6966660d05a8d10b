package engine

import (
	"mizan-backend/internal/assets"
	"mizan-backend/internal/currency"
	"mizan-backend/internal/nisab"
)

// ZakatRate is the fixed rate applied to the zakatable pool once
// eligibility is established. Never configurable per category.
const ZakatRate = 0.025

// NisabPolicy selects how per-category threshold checks combine into
// one eligibility verdict.
type NisabPolicy string

const (
	// PolicyAnyThreshold: eligibility triggers when the metals pool
	// meets its own gram threshold, or the monetary pool crosses the
	// gold-denominated value threshold. Matches observed app behavior.
	PolicyAnyThreshold NisabPolicy = "any"
	// PolicyLowerOfTwo: the classical rule; total wealth is compared
	// against the lower of the gold and silver value thresholds.
	PolicyLowerOfTwo NisabPolicy = "lower_of_two"
)

// Options configures a calculation run.
type Options struct {
	DisplayCurrency string
	Policy          NisabPolicy
}

// Result is the full output of one calculation run.
type Result struct {
	TotalAssets     float64                             `json:"totalAssets"`
	ZakatableAmount float64                             `json:"zakatableAmount"`
	ZakatDue        float64                             `json:"zakatDue"`
	IsEligible      bool                                `json:"isEligible"`
	Nisab           nisab.Status                        `json:"nisab"`
	Breakdown       map[assets.Category]assets.Breakdown `json:"breakdown"`
	DisplayCurrency string                              `json:"displayCurrency"`
}

// Calculate recomputes eligibility and zakat due from scratch. Pure:
// no I/O, no shared state; two concurrent calls with different inputs
// cannot interfere.
//
// The zakatable pool counts only categories whose hawl flag is set.
// Once any qualifying condition is met the entire pool becomes due,
// not just the sub-pool that triggered eligibility.
func Calculate(in assets.Inputs, prices nisab.MetalPrices, table currency.RateTable, opts Options) Result {
	if opts.DisplayCurrency == "" {
		opts.DisplayCurrency = table.BaseCurrency
	}
	if opts.Policy == "" {
		opts.Policy = PolicyAnyThreshold
	}

	in = in.Sanitized()
	breakdown := assets.AggregateAll(in, prices, table, opts.DisplayCurrency)

	var totalAssets, zakatable float64
	for _, cat := range assets.Categories {
		b := breakdown[cat]
		totalAssets += b.Total
		if in.HawlMet(cat) {
			zakatable += b.Zakatable
		}
	}

	goldStatus := nisab.Evaluate(nisab.Gold, prices, table, opts.DisplayCurrency)
	silverStatus := nisab.Evaluate(nisab.Silver, prices, table, opts.DisplayCurrency)

	status, eligible := decide(opts.Policy, zakatable, goldStatus, silverStatus,
		in.Metals.HawlMet && breakdown[assets.CategoryMetals].MeetsNisabIndividually)
	status.MeetsNisab = eligible

	result := Result{
		TotalAssets:     totalAssets,
		ZakatableAmount: zakatable,
		IsEligible:      eligible,
		Nisab:           status,
		Breakdown:       breakdown,
		DisplayCurrency: currency.Normalize(opts.DisplayCurrency),
	}
	if eligible {
		result.ZakatDue = zakatable * ZakatRate
	}
	return result
}

func decide(policy NisabPolicy, zakatable float64, gold, silver nisab.Status, metalsMeetWeight bool) (nisab.Status, bool) {
	switch policy {
	case PolicyLowerOfTwo:
		lower := silver
		// A zero threshold means the conversion failed; prefer the
		// usable one.
		if lower.ThresholdValue <= 0 ||
			(gold.ThresholdValue > 0 && gold.ThresholdValue < lower.ThresholdValue) {
			lower = gold
		}
		return lower, lower.MeetsValue(zakatable)
	default:
		// Either/or rule: the gram-weight check on metals, or the
		// gold-denominated value check on the pooled wealth.
		return gold, metalsMeetWeight || gold.MeetsValue(zakatable)
	}
}
