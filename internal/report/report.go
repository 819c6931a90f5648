// Package report assembles the "memória de cálculo" payload for one
// audited calculation. Every figure is copied verbatim from the ledger
// record; nothing is ever recomputed here, so the report can never
// disagree with the audit trail.
package report

import (
	"github.com/sesp-cea/reajuste-service/internal/calc"
	"github.com/sesp-cea/reajuste-service/internal/models"
	"github.com/sesp-cea/reajuste-service/internal/utils"
)

// LegalCitation is reproduced on every memória de cálculo.
const LegalCitation = "Reajuste calculado na forma da Lei nº 14.133/2021 e do Decreto Estadual nº 10.086/2022, " +
	"com o fator K considerado até a quarta casa decimal, sem arredondamento."

// Report is the memória de cálculo for a single ledger record.
type Report struct {
	CalculationID   string `json:"calculation_id"`
	ComputedAt      string `json:"computed_at"`
	ContractNumber  string `json:"contract_number"`
	Company         string `json:"company"`
	Description     string `json:"description"`
	BudgetBaseDate  string `json:"budget_base_date"`
	SignatureDate   string `json:"signature_date"`
	BaseIndexMonth  string `json:"base_index_month"`
	BaseIndexValue  string `json:"base_index_value"`
	AdjustmentMonth string `json:"adjustment_index_month"`
	AdjustmentIndex string `json:"adjustment_index_value"`
	FactorK         string `json:"factor_k"`
	FactorKPercent  string `json:"factor_k_percent"`
	Measurement     string `json:"measurement_value"`
	Adjustment      string `json:"adjustment_value"`
	Total           string `json:"total_value"`
	LegalCitation   string `json:"legal_citation"`
}

// Build renders one ledger record plus its contract metadata into a
// report. The only arithmetic is the presentation total Vr + R.
func Build(rec *models.CalculationRecord, contract *models.Contract) *Report {
	total := rec.MeasurementValue.Add(rec.AdjustmentValue)

	return &Report{
		CalculationID:   rec.ID,
		ComputedAt:      rec.ComputedAt.Format("02/01/2006 15:04:05"),
		ContractNumber:  contract.Number,
		Company:         contract.Company,
		Description:     contract.Description,
		BudgetBaseDate:  utils.FormatDateBR(contract.BudgetBaseDate),
		SignatureDate:   utils.FormatDateBR(contract.SignatureDate),
		BaseIndexMonth:  utils.FormatMonthBR(rec.BaseIndexDate),
		BaseIndexValue:  rec.BaseIndexValue.String(),
		AdjustmentMonth: utils.FormatMonthBR(rec.AdjustmentIndexDate),
		AdjustmentIndex: rec.AdjustmentIndexValue.String(),
		FactorK:         rec.FactorK.StringFixed(calc.FactorScale),
		FactorKPercent:  utils.FormatPercent(rec.FactorK, calc.FactorScale),
		Measurement:     utils.FormatBRL(rec.MeasurementValue),
		Adjustment:      utils.FormatBRL(rec.AdjustmentValue),
		Total:           utils.FormatBRL(total),
		LegalCitation:   LegalCitation,
	}
}
