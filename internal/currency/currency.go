package currency

import (
	"fmt"
	"strings"
)

// ErrRateUnavailable is returned when a required currency code is missing
// from the rate table. Callers decide the fallback policy; Convert never
// substitutes a guessed rate.
var ErrRateUnavailable = fmt.Errorf("exchange rate unavailable")

// RateTable holds multiplicative factors relative to one base currency.
// rates[base] == 1; rates[x] converts one unit of base into x.
// The table may be partial; conversions through a missing code fail
// with ErrRateUnavailable rather than returning zero.
type RateTable struct {
	BaseCurrency string
	rates        map[string]float64
}

// NewRateTable builds a table from a code->factor map. Codes are
// normalized to lowercase at this boundary so lookups never depend on
// call-site casing. Non-positive factors are dropped. The base currency
// self-rate is forced to 1.
func NewRateTable(base string, rates map[string]float64) RateTable {
	t := RateTable{
		BaseCurrency: Normalize(base),
		rates:        make(map[string]float64, len(rates)+1),
	}
	for code, factor := range rates {
		if factor > 0 {
			t.rates[Normalize(code)] = factor
		}
	}
	t.rates[t.BaseCurrency] = 1
	return t
}

// Rate returns the base->code factor, or ErrRateUnavailable if absent.
func (t RateTable) Rate(code string) (float64, error) {
	r, ok := t.rates[Normalize(code)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrRateUnavailable, Normalize(code))
	}
	return r, nil
}

// Has reports whether the table can convert between base and code.
func (t RateTable) Has(code string) bool {
	_, ok := t.rates[Normalize(code)]
	return ok
}

// Factors returns a copy of the code->factor map, for serialization.
func (t RateTable) Factors() map[string]float64 {
	out := make(map[string]float64, len(t.rates))
	for code, factor := range t.rates {
		out[code] = factor
	}
	return out
}

// Codes returns all currency codes present in the table.
func (t RateTable) Codes() []string {
	out := make([]string, 0, len(t.rates))
	for code := range t.rates {
		out = append(out, code)
	}
	return out
}

// Normalize lowercases and trims a currency code.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Convert converts amount from one currency to another through the
// table's base currency. Same-currency conversions return the amount
// unchanged without touching the table, so a missing self-rate entry
// never fails and no floating error is introduced.
func Convert(amount float64, from, to string, table RateTable) (float64, error) {
	from = Normalize(from)
	to = Normalize(to)
	if from == to {
		return amount, nil
	}
	if from == table.BaseCurrency {
		rate, err := table.Rate(to)
		if err != nil {
			return 0, err
		}
		return amount * rate, nil
	}
	if to == table.BaseCurrency {
		rate, err := table.Rate(from)
		if err != nil {
			return 0, err
		}
		return amount / rate, nil
	}
	// Pivot through base: into base, then into target. There is no
	// direct cross-rate table; this keeps the rate table linear in the
	// number of currencies.
	fromRate, err := table.Rate(from)
	if err != nil {
		return 0, err
	}
	toRate, err := table.Rate(to)
	if err != nil {
		return 0, err
	}
	return amount / fromRate * toRate, nil
}
