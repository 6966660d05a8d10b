package validation

import "regexp"

// Currency codes: three ASCII letters (ISO 4217), any case.
var currencyRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

func IsValidCurrencyCode(code string) bool {
	return currencyRe.MatchString(code)
}
