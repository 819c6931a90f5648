// Package calc implements the price-adjustment engine for public-works
// contracts under Lei 14.133/21: the adjustment factor K, the adjustment
// value R and the legal interstice check. All arithmetic is exact
// decimal; machine floating point never enters the pipeline.
package calc

import "github.com/shopspring/decimal"

const (
	// FactorScale is the mandated scale of the adjustment factor K:
	// four decimal digits, without rounding.
	FactorScale = 4

	// CurrencyScale is the scale of monetary amounts (centavos).
	CurrencyScale = 2

	// divisionScale is the number of fractional digits carried by the
	// raw K division before truncation. Passed to DivRound on every
	// call so concurrent calculations never share precision state.
	divisionScale = 24
)

var one = decimal.NewFromInt(1)

// Result holds the two figures a calculation persists verbatim.
type Result struct {
	// FactorK is (adjustmentIndex / baseIndex) - 1 floored at four
	// decimal digits.
	FactorK decimal.Decimal

	// AdjustmentValue is FactorK × measurement floored at two decimal
	// digits. Always derived from the truncated FactorK, never from
	// the raw quotient.
	AdjustmentValue decimal.Decimal
}

// Compute derives the adjustment factor and adjustment value from a
// base index (I0), an adjustment index (I1) and a measurement value
// (Vr). The measurement may be negative (credit notes). Pure function:
// identical inputs always produce identical results.
func Compute(baseIndex, adjustmentIndex, measurement decimal.Decimal) (Result, error) {
	if baseIndex.Sign() <= 0 || adjustmentIndex.Sign() < 0 {
		return Result{}, &InvalidIndexError{Base: baseIndex, Adjustment: adjustmentIndex}
	}

	rawK := adjustmentIndex.DivRound(baseIndex, divisionScale).Sub(one)
	factorK := Truncate(rawK, FactorScale)
	adjustment := Truncate(factorK.Mul(measurement), CurrencyScale)

	return Result{FactorK: factorK, AdjustmentValue: adjustment}, nil
}
