package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sesp-cea/reajuste-service/internal/calc"
	"github.com/sesp-cea/reajuste-service/internal/models"
	"github.com/sesp-cea/reajuste-service/internal/repository"
	"github.com/sesp-cea/reajuste-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements the service's repository interfaces in memory.
type fakeStore struct {
	indices   map[string]models.EconomicIndex
	contracts map[int64]models.Contract
	records   []models.CalculationRecord
	nextID    int64
	appendErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		indices:   make(map[string]models.EconomicIndex),
		contracts: make(map[int64]models.Contract),
		nextID:    1,
	}
}

func dateKey(d time.Time) string { return d.Format("2006-01-02") }

func (f *fakeStore) CreateIndex(idx *models.EconomicIndex) error {
	if _, ok := f.indices[dateKey(idx.ReferenceDate)]; ok {
		return repository.ErrDuplicate
	}
	f.indices[dateKey(idx.ReferenceDate)] = *idx
	return nil
}

func (f *fakeStore) FindIndexByDate(date time.Time) (*models.EconomicIndex, error) {
	idx, ok := f.indices[dateKey(date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &idx, nil
}

func (f *fakeStore) ListIndices(limit int) ([]models.EconomicIndex, error) {
	var out []models.EconomicIndex
	for _, idx := range f.indices {
		out = append(out, idx)
	}
	return out, nil
}

func (f *fakeStore) DeleteIndex(date time.Time) error {
	if _, ok := f.indices[dateKey(date)]; !ok {
		return repository.ErrNotFound
	}
	delete(f.indices, dateKey(date))
	return nil
}

func (f *fakeStore) CreateContract(c *models.Contract) error {
	for _, existing := range f.contracts {
		if existing.Number == c.Number {
			return repository.ErrDuplicate
		}
	}
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	f.nextID++
	f.contracts[c.ID] = *c
	return nil
}

func (f *fakeStore) FindContractByID(id int64) (*models.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeStore) FindContractByNumber(number string) (*models.Contract, error) {
	for _, c := range f.contracts {
		if c.Number == number {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) ListContracts() ([]models.Contract, error) {
	var out []models.Contract
	for _, c := range f.contracts {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) DeleteContract(id int64) error {
	if _, ok := f.contracts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.contracts, id)
	return nil
}

func (f *fakeStore) AppendCalculation(rec *models.CalculationRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeStore) ListCalculationsByContract(contractID int64) ([]models.CalculationRecord, error) {
	var out []models.CalculationRecord
	for _, rec := range f.records {
		if rec.ContractID == contractID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) FindCalculationByID(id string) (*models.CalculationRecord, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// newTestService seeds one contract (budget base 10/01/2023) and the
// two index months its first adjustment needs.
func newTestService(t *testing.T) (*service.Service, *fakeStore, *models.Contract) {
	t.Helper()
	store := newFakeStore()
	svc := service.NewService(store, store, store, quietLogger())

	require.NoError(t, store.CreateIndex(&models.EconomicIndex{
		ReferenceDate: month(2023, time.January), Name: models.DefaultIndexName, Value: dec(t, "105.4"),
	}))
	require.NoError(t, store.CreateIndex(&models.EconomicIndex{
		ReferenceDate: month(2024, time.February), Name: models.DefaultIndexName, Value: dec(t, "105.5"),
	}))

	contract := &models.Contract{
		Number:         "001/2023",
		Description:    "Reforma do quartel",
		Company:        "Construtora Alfa Ltda",
		BudgetBaseDate: time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC),
		SignatureDate:  time.Date(2023, time.March, 2, 0, 0, 0, 0, time.UTC),
		InitialValue:   dec(t, "4850000.00"),
	}
	require.NoError(t, store.CreateContract(contract))
	return svc, store, contract
}

func TestCalculate_AppendsRecordWithSnapshots(t *testing.T) {
	svc, store, contract := newTestService(t)

	adjustmentDate := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	rec, err := svc.Calculate(context.Background(), contract.ID, adjustmentDate, dec(t, "10000.00"))
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, contract.ID, rec.ContractID)
	assert.False(t, rec.ComputedAt.IsZero())

	// I0 comes from the budget base month, not the signature date.
	assert.Equal(t, month(2023, time.January), rec.BaseIndexDate)
	assert.True(t, rec.BaseIndexValue.Equal(dec(t, "105.4")))
	assert.Equal(t, month(2024, time.February), rec.AdjustmentIndexDate)
	assert.True(t, rec.AdjustmentIndexValue.Equal(dec(t, "105.5")))

	assert.True(t, rec.FactorK.Equal(dec(t, "0.0009")))
	assert.True(t, rec.MeasurementValue.Equal(dec(t, "10000.00")))
	assert.True(t, rec.AdjustmentValue.Equal(dec(t, "9.00")))

	require.Len(t, store.records, 1)
	assert.Equal(t, rec.ID, store.records[0].ID)
}

func TestCalculate_RepeatCreatesIndependentRecords(t *testing.T) {
	svc, store, contract := newTestService(t)

	adjustmentDate := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	first, err := svc.Calculate(context.Background(), contract.ID, adjustmentDate, dec(t, "10000.00"))
	require.NoError(t, err)
	second, err := svc.Calculate(context.Background(), contract.ID, adjustmentDate, dec(t, "10000.00"))
	require.NoError(t, err)

	assert.True(t, first.FactorK.Equal(second.FactorK))
	assert.True(t, first.AdjustmentValue.Equal(second.AdjustmentValue))
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, store.records, 2)
}

func TestCalculate_IntersticeNotMet(t *testing.T) {
	svc, store, contract := newTestService(t)

	// Needs the June/2023 index present so the failure is really the
	// interstice, not a missing index.
	require.NoError(t, store.CreateIndex(&models.EconomicIndex{
		ReferenceDate: month(2023, time.June), Name: models.DefaultIndexName, Value: dec(t, "105.1"),
	}))

	adjustmentDate := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Calculate(context.Background(), contract.ID, adjustmentDate, dec(t, "10000.00"))

	var intersticeErr *calc.IntersticeError
	require.ErrorAs(t, err, &intersticeErr)
	assert.Equal(t, 142, intersticeErr.ElapsedDays)
	assert.Empty(t, store.records, "no record may be written when validation fails")
}

func TestCalculate_MissingAdjustmentIndex(t *testing.T) {
	svc, store, contract := newTestService(t)

	adjustmentDate := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Calculate(context.Background(), contract.ID, adjustmentDate, dec(t, "10000.00"))

	var notFoundErr *calc.IndexNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, month(2024, time.March), notFoundErr.Date)
	assert.Empty(t, store.records)
}

func TestCalculate_UnknownContract(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Calculate(context.Background(), 999, time.Now(), dec(t, "10000.00"))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCalculate_StorageFaultPropagates(t *testing.T) {
	svc, store, contract := newTestService(t)
	store.appendErr = assert.AnError

	adjustmentDate := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Calculate(context.Background(), contract.ID, adjustmentDate, dec(t, "10000.00"))
	require.ErrorIs(t, err, assert.AnError)
}

func TestCreateIndex_NormalizesToMonthStart(t *testing.T) {
	store := newFakeStore()
	svc := service.NewService(store, store, store, quietLogger())

	idx, err := svc.CreateIndex(time.Date(2024, time.May, 17, 14, 30, 0, 0, time.UTC), "", dec(t, "988.460"))
	require.NoError(t, err)
	assert.Equal(t, month(2024, time.May), idx.ReferenceDate)
	assert.Equal(t, models.DefaultIndexName, idx.Name)
}

func TestCreateIndex_RejectsNonPositiveValue(t *testing.T) {
	store := newFakeStore()
	svc := service.NewService(store, store, store, quietLogger())

	_, err := svc.CreateIndex(month(2024, time.May), "", dec(t, "0"))
	require.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = svc.CreateIndex(month(2024, time.May), "", dec(t, "-1.5"))
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCreateContract_Validation(t *testing.T) {
	store := newFakeStore()
	svc := service.NewService(store, store, store, quietLogger())
	base := time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateContract("  ", "obra", "Alfa", base, base, dec(t, "1000.00"))
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.CreateContract("002/2023", "obra", "", base, base, dec(t, "1000.00"))
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.CreateContract("002/2023", "obra", "Alfa", base, base, dec(t, "0"))
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestEligibility(t *testing.T) {
	svc, _, contract := newTestService(t)

	ok, days, err := svc.Eligibility(contract.ID, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 142, days)

	ok, days, err = svc.Eligibility(contract.ID, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 365, days)
}

func TestSeedDemoData_Idempotent(t *testing.T) {
	store := newFakeStore()
	svc := service.NewService(store, store, store, quietLogger())

	require.NoError(t, svc.SeedDemoData())
	indices := len(store.indices)
	contracts := len(store.contracts)
	assert.Greater(t, indices, 0)
	assert.Greater(t, contracts, 0)

	require.NoError(t, svc.SeedDemoData())
	assert.Equal(t, indices, len(store.indices))
	assert.Equal(t, contracts, len(store.contracts))
}
