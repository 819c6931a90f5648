package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sesp-cea/reajuste-service/internal/calc"
	"github.com/sesp-cea/reajuste-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service handles business logic
type Service struct {
	indices   IndexRepository
	contracts ContractRepository
	ledger    Ledger
	log       *logrus.Logger
}

// NewService initializes a new service
func NewService(indices IndexRepository, contracts ContractRepository, ledger Ledger, log *logrus.Logger) *Service {
	return &Service{indices: indices, contracts: contracts, ledger: ledger, log: log}
}

// monthStart normalizes a date to the first day of its month, the key
// under which monthly indices are stored.
func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CreateIndex registers a new monthly index value. The reference date
// is normalized to the first day of the month; the value must be
// strictly positive.
func (s *Service) CreateIndex(referenceDate time.Time, name string, value decimal.Decimal) (*models.EconomicIndex, error) {
	if value.Sign() <= 0 {
		return nil, fmt.Errorf("%w: index value must be positive, got %s", ErrInvalidInput, value)
	}
	if strings.TrimSpace(name) == "" {
		name = models.DefaultIndexName
	}

	idx := &models.EconomicIndex{
		ReferenceDate: monthStart(referenceDate),
		Name:          strings.TrimSpace(name),
		Value:         value,
	}
	if err := s.indices.CreateIndex(idx); err != nil {
		return nil, err
	}

	s.log.Infof("Index registered: %s %s = %s", idx.Name, idx.ReferenceDate.Format("01/2006"), idx.Value)
	return idx, nil
}

// GetIndex returns the index for the month containing date.
func (s *Service) GetIndex(date time.Time) (*models.EconomicIndex, error) {
	return s.indices.FindIndexByDate(monthStart(date))
}

// ListIndices returns up to limit indices, most recent month first.
func (s *Service) ListIndices(limit int) ([]models.EconomicIndex, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.indices.ListIndices(limit)
}

// DeleteIndex removes an index value. Administrative action: past
// calculations keep their snapshots regardless.
func (s *Service) DeleteIndex(date time.Time) error {
	month := monthStart(date)
	if err := s.indices.DeleteIndex(month); err != nil {
		return err
	}
	s.log.Infof("Index removed: %s", month.Format("01/2006"))
	return nil
}

// CreateContract registers a new public-works contract.
func (s *Service) CreateContract(number, description, company string, budgetBaseDate, signatureDate time.Time, initialValue decimal.Decimal) (*models.Contract, error) {
	number = strings.TrimSpace(number)
	company = strings.TrimSpace(company)
	if number == "" {
		return nil, fmt.Errorf("%w: contract number cannot be empty", ErrInvalidInput)
	}
	if company == "" {
		return nil, fmt.Errorf("%w: company name cannot be empty", ErrInvalidInput)
	}
	if initialValue.Sign() <= 0 {
		return nil, fmt.Errorf("%w: initial contract value must be positive, got %s", ErrInvalidInput, initialValue)
	}

	c := &models.Contract{
		Number:         number,
		Description:    strings.TrimSpace(description),
		Company:        company,
		BudgetBaseDate: budgetBaseDate,
		SignatureDate:  signatureDate,
		InitialValue:   initialValue,
	}
	if err := s.contracts.CreateContract(c); err != nil {
		return nil, err
	}

	s.log.Infof("Contract registered: %s (%s)", c.Number, c.Company)
	return c, nil
}

// GetContract returns one contract by id.
func (s *Service) GetContract(id int64) (*models.Contract, error) {
	return s.contracts.FindContractByID(id)
}

// ListContracts returns all contracts, newest first.
func (s *Service) ListContracts() ([]models.Contract, error) {
	return s.contracts.ListContracts()
}

// DeleteContract removes a contract. The ledger keeps every
// calculation ever recorded for it.
func (s *Service) DeleteContract(id int64) error {
	if err := s.contracts.DeleteContract(id); err != nil {
		return err
	}
	s.log.Infof("Contract %d removed", id)
	return nil
}

// Calculate runs one full adjustment calculation for a contract and a
// target adjustment date, and appends the result to the audit ledger.
//
// Both index values are snapshotted once, up front, and those
// snapshots feed both the arithmetic and the persisted record, so the
// record is internally consistent even if an index is corrected a
// moment later. Nothing is appended when any validation fails.
func (s *Service) Calculate(ctx context.Context, contractID int64, adjustmentDate time.Time, measurement decimal.Decimal) (*models.CalculationRecord, error) {
	contract, err := s.contracts.FindContractByID(contractID)
	if err != nil {
		return nil, fmt.Errorf("contract %d: %w", contractID, err)
	}

	baseMonth := monthStart(contract.BudgetBaseDate)
	adjustmentMonth := monthStart(adjustmentDate)

	baseIdx, err := s.findIndexSnapshot(baseMonth)
	if err != nil {
		return nil, err
	}
	adjustmentIdx, err := s.findIndexSnapshot(adjustmentMonth)
	if err != nil {
		return nil, err
	}

	ok, days := calc.ValidateInterstice(contract.BudgetBaseDate, adjustmentDate)
	if !ok {
		return nil, &calc.IntersticeError{
			BaseDate:    contract.BudgetBaseDate,
			TargetDate:  adjustmentDate,
			ElapsedDays: days,
		}
	}

	result, err := calc.Compute(baseIdx.Value, adjustmentIdx.Value, measurement)
	if err != nil {
		return nil, err
	}

	rec := &models.CalculationRecord{
		ID:                   uuid.NewString(),
		ContractID:           contract.ID,
		ComputedAt:           time.Now().UTC(),
		BaseIndexDate:        baseIdx.ReferenceDate,
		BaseIndexValue:       baseIdx.Value,
		AdjustmentIndexDate:  adjustmentIdx.ReferenceDate,
		AdjustmentIndexValue: adjustmentIdx.Value,
		FactorK:              result.FactorK,
		MeasurementValue:     measurement,
		AdjustmentValue:      result.AdjustmentValue,
	}
	if err := s.ledger.AppendCalculation(rec); err != nil {
		return nil, err
	}

	s.log.Infof("Calculation recorded for contract %s: K=%s R=%s (record %s)",
		contract.Number, rec.FactorK.StringFixed(calc.FactorScale),
		rec.AdjustmentValue.StringFixed(calc.CurrencyScale), rec.ID)
	return rec, nil
}

func (s *Service) findIndexSnapshot(month time.Time) (*models.EconomicIndex, error) {
	idx, err := s.indices.FindIndexByDate(month)
	if isNotFound(err) {
		return nil, &calc.IndexNotFoundError{Date: month}
	}
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// ListCalculations returns the ledger history for a contract, oldest
// first.
func (s *Service) ListCalculations(contractID int64) ([]models.CalculationRecord, error) {
	if _, err := s.contracts.FindContractByID(contractID); err != nil {
		return nil, fmt.Errorf("contract %d: %w", contractID, err)
	}
	return s.ledger.ListCalculationsByContract(contractID)
}

// GetCalculation returns one ledger record.
func (s *Service) GetCalculation(id string) (*models.CalculationRecord, error) {
	return s.ledger.FindCalculationByID(id)
}

// Eligibility reports whether the legal interstice has elapsed for a
// contract as of the given date, with the elapsed day count.
func (s *Service) Eligibility(contractID int64, asOf time.Time) (bool, int, error) {
	contract, err := s.contracts.FindContractByID(contractID)
	if err != nil {
		return false, 0, fmt.Errorf("contract %d: %w", contractID, err)
	}
	ok, days := calc.ValidateInterstice(contract.BudgetBaseDate, asOf)
	return ok, days, nil
}
