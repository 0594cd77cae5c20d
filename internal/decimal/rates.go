// Package decimal wraps shopspring/decimal for the rate fields that
// travel as strings in form state and as exact numbers on the wire.
package decimal

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// ratePattern is the accepted form-state rendering of a rate:
// digits with an optional dot-separated fraction of 1 or 2 digits.
var ratePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// ErrInvalidRate rejects strings outside the rate pattern.
var ErrInvalidRate = errors.New("invalid rate")

// IsRateString reports whether s matches the rate pattern. Grouping
// characters and comma separators are rejected; parsing is
// locale-invariant with "." as the only separator.
func IsRateString(s string) bool {
	return ratePattern.MatchString(s)
}

// ParseRate parses a rate string into an exact decimal.
func ParseRate(s string) (decimal.Decimal, error) {
	if !IsRateString(s) {
		return Zero, ErrInvalidRate
	}
	return decimal.NewFromString(s)
}

// RateNumber renders a rate string as a bare JSON number, keeping the
// exact decimal digits. The input must already have passed structural
// validation; unparsable input falls back to "0".
func RateNumber(s string) json.Number {
	d, err := ParseRate(s)
	if err != nil {
		return json.Number("0")
	}
	return json.Number(d.String())
}

// InPercentRange reports whether d is within [0, 100].
func InPercentRange(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero) && d.LessThanOrEqual(decimal.NewFromInt(100))
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}

// FromString parses decimal from string after trimming space.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
