package nisab

import (
	"time"

	"mizan-backend/internal/currency"
)

// Nisab weight thresholds in grams.
const (
	GoldThresholdGrams   = 85.0
	SilverThresholdGrams = 595.0
)

// ThresholdType selects which metal denominates the nisab threshold.
type ThresholdType string

const (
	Gold   ThresholdType = "gold"
	Silver ThresholdType = "silver"
)

// MetalPrices is a point-in-time snapshot of spot prices per gram in
// Currency. Staleness is the caller's concern.
type MetalPrices struct {
	Gold        float64   `json:"gold"`
	Silver      float64   `json:"silver"`
	Currency    string    `json:"currency"`
	LastUpdated time.Time `json:"lastUpdated"`
	Source      string    `json:"source"`
}

// PricePerGram returns the per-gram price for the given metal.
func (p MetalPrices) PricePerGram(t ThresholdType) float64 {
	if t == Silver {
		return p.Silver
	}
	return p.Gold
}

// WeightFor returns the gram threshold for the given metal.
func WeightFor(t ThresholdType) float64 {
	if t == Silver {
		return SilverThresholdGrams
	}
	return GoldThresholdGrams
}

// Status is the evaluated nisab threshold in a display currency.
// IsDirectPrice is false whenever the threshold value required a
// currency conversion rather than a native-currency metal price, so
// callers can flag reduced numeric confidence.
type Status struct {
	ThresholdType  ThresholdType `json:"thresholdType"`
	ThresholdValue float64       `json:"thresholdValueInDisplayCurrency"`
	MeetsNisab     bool          `json:"meetsNisab"`
	IsDirectPrice  bool          `json:"isDirectPrice"`
}

// MeetsValue reports whether a wealth value crosses this threshold.
// A zero threshold (conversion was unavailable) never qualifies:
// absence of a usable threshold must not read as "eligible".
func (s Status) MeetsValue(value float64) bool {
	if s.ThresholdValue <= 0 {
		return false
	}
	return value >= s.ThresholdValue
}

// Evaluate establishes the nisab threshold value in displayCurrency.
// It does not decide eligibility for any particular asset pool; use
// Status.MeetsValue for that. When the per-gram price cannot be
// converted into displayCurrency the returned Status carries a zero
// threshold and MeetsNisab=false instead of an error.
func Evaluate(thresholdType ThresholdType, prices MetalPrices, table currency.RateTable, displayCurrency string) Status {
	weight := WeightFor(thresholdType)
	perGram := prices.PricePerGram(thresholdType)

	status := Status{ThresholdType: thresholdType}
	if perGram <= 0 {
		return status
	}

	if currency.Normalize(prices.Currency) == currency.Normalize(displayCurrency) {
		status.ThresholdValue = perGram * weight
		status.IsDirectPrice = true
		return status
	}

	converted, err := currency.Convert(perGram, prices.Currency, displayCurrency, table)
	if err != nil {
		return status
	}
	status.ThresholdValue = converted * weight
	return status
}
