package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationRecord is one entry of the audit ledger: every adjustment
// calculation ever performed, with the exact inputs that produced it.
// Index values are snapshots taken at calculation time so the record
// stays reproducible even if the source index or contract is later
// corrected or deleted. Records are append-only: once written they are
// never mutated or removed.
type CalculationRecord struct {
	ID                   string          `json:"id"`
	ContractID           int64           `json:"contract_id"`
	ComputedAt           time.Time       `json:"computed_at"`
	BaseIndexDate        time.Time       `json:"base_index_date"`
	BaseIndexValue       decimal.Decimal `json:"base_index_value"`
	AdjustmentIndexDate  time.Time       `json:"adjustment_index_date"`
	AdjustmentIndexValue decimal.Decimal `json:"adjustment_index_value"`
	FactorK              decimal.Decimal `json:"factor_k"`
	MeasurementValue     decimal.Decimal `json:"measurement_value"`
	AdjustmentValue      decimal.Decimal `json:"adjustment_value"`
}
