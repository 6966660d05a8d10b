package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Parse converts a raw string amount to a float64. Invalid input
// parses to zero rather than failing, same policy as the aggregators.
// Decimal parsing avoids float artifacts on long fractional strings
// before the single conversion to float64.
func Parse(s string) float64 {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return Sanitize(f)
}

// Sanitize clamps NaN, infinities and negatives to zero. Every raw
// numeric field crosses this before the engine sees it.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Round2 rounds to two decimal places for display and storage.
// Half-away-from-zero, via decimal to keep .005 cases stable.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Equal compares two amounts within tolerance. Zero tolerance means
// the default 1e-6.
func Equal(a, b, tolerance float64) bool {
	if tolerance <= 0 {
		tolerance = 1e-6
	}
	return math.Abs(a-b) <= tolerance
}
