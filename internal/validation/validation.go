// Package validation collects per-field violations for request inputs.
// Checks run before any store mutation is attempted.
package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MaxLen(field, value string, maxLen int, v Violations) {
	if len(value) > maxLen {
		v[field] = "too_long"
	}
}

func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}

// Money validates a monetary amount: a decimal string holding a non-negative
// whole number of arbitrary size. Returns the parsed value when valid.
// Exponent notation, fractions and signs other than a plain leading digit
// run are all rejected so the stored form round-trips byte for byte.
func Money(field, value string, v Violations) (decimal.Decimal, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		v[field] = "required"
		return decimal.Decimal{}, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			v[field] = "must_be_nonnegative_integer"
			return decimal.Decimal{}, false
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		v[field] = "must_be_nonnegative_integer"
		return decimal.Decimal{}, false
	}
	return d, true
}
