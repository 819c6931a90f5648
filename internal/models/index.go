package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultIndexName is the economic index used for public-works
// adjustments in Paraná (INCC-DI, FGV).
const DefaultIndexName = "INCC-DI"

// EconomicIndex is one monthly index value. ReferenceDate is always
// the first day of the month and uniquely identifies the entry.
// Immutable once stored; corrections are an administrative
// delete-and-recreate.
type EconomicIndex struct {
	ReferenceDate time.Time       `json:"reference_date"`
	Name          string          `json:"name"`
	Value         decimal.Decimal `json:"value"`
}
