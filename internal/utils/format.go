package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a decimal as Brazilian currency: R$ 1.234.567,89.
func FormatBRL(v decimal.Decimal) string {
	s := v.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + decPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPercent renders a fraction as a percentage with the given
// number of decimal digits, Brazilian style: 0.1050 -> "10,5000%".
func FormatPercent(v decimal.Decimal, places int32) string {
	pct := v.Mul(decimal.NewFromInt(100)).StringFixed(places)
	return strings.Replace(pct, ".", ",", 1) + "%"
}

// FormatDateBR renders a date as dd/mm/yyyy.
func FormatDateBR(d time.Time) string {
	return d.Format("02/01/2006")
}

// FormatMonthBR renders a monthly reference date as mm/yyyy.
func FormatMonthBR(d time.Time) string {
	return d.Format("01/2006")
}
