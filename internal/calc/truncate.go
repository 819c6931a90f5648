package calc

import "github.com/shopspring/decimal"

// Truncate floors value at the given number of fractional digits:
// the result is the largest multiple of 10^-places that is less than
// or equal to value. Digits past the scale are dropped, never rounded,
// so 0.12349 truncates to 0.1234 at four places. Negative values also
// floor toward negative infinity: -0.00947867 becomes -0.0095.
func Truncate(value decimal.Decimal, places int32) decimal.Decimal {
	return value.RoundFloor(places)
}
