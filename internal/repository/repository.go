package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sesp-cea/reajuste-service/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (index reference date, contract number).
	ErrDuplicate = errors.New("record already exists")
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateIndex stores a new monthly economic index value.
func (r *Repository) CreateIndex(idx *models.EconomicIndex) error {
	query := `
		INSERT INTO reajuste.economic_indices (reference_date, name, value)
		VALUES ($1, $2, $3)`
	_, err := r.db.Exec(query, idx.ReferenceDate, idx.Name, idx.Value)
	if isUniqueViolation(err) {
		return fmt.Errorf("index for %s: %w", idx.ReferenceDate.Format("01/2006"), ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

// FindIndexByDate retrieves the index for a reference date.
func (r *Repository) FindIndexByDate(date time.Time) (*models.EconomicIndex, error) {
	idx := &models.EconomicIndex{}
	query := `
		SELECT reference_date, name, value
		FROM reajuste.economic_indices
		WHERE reference_date = $1`
	err := r.db.QueryRow(query, date).
		Scan(&idx.ReferenceDate, &idx.Name, &idx.Value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find index: %w", err)
	}
	return idx, nil
}

// ListIndices returns up to limit indices, most recent month first.
func (r *Repository) ListIndices(limit int) ([]models.EconomicIndex, error) {
	query := `
		SELECT reference_date, name, value
		FROM reajuste.economic_indices
		ORDER BY reference_date DESC
		LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list indices: %w", err)
	}
	defer rows.Close()

	var indices []models.EconomicIndex
	for rows.Next() {
		var idx models.EconomicIndex
		if err := rows.Scan(&idx.ReferenceDate, &idx.Name, &idx.Value); err != nil {
			return nil, fmt.Errorf("failed to scan index: %w", err)
		}
		indices = append(indices, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list indices: %w", err)
	}
	return indices, nil
}

// DeleteIndex removes an index. Administrative action only; ledger
// records keep their own snapshot of any value ever used.
func (r *Repository) DeleteIndex(date time.Time) error {
	res, err := r.db.Exec(`DELETE FROM reajuste.economic_indices WHERE reference_date = $1`, date)
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateContract stores a new contract and fills in its generated id
// and creation timestamp.
func (r *Repository) CreateContract(c *models.Contract) error {
	query := `
		INSERT INTO reajuste.contracts
			(number, description, company, budget_base_date, signature_date, initial_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query,
		c.Number, c.Description, c.Company, c.BudgetBaseDate, c.SignatureDate, c.InitialValue).
		Scan(&c.ID, &c.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("contract number %q: %w", c.Number, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// FindContractByID retrieves a contract by id.
func (r *Repository) FindContractByID(id int64) (*models.Contract, error) {
	c := &models.Contract{}
	query := `
		SELECT id, number, description, company, budget_base_date, signature_date, initial_value, created_at
		FROM reajuste.contracts
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&c.ID, &c.Number, &c.Description, &c.Company, &c.BudgetBaseDate, &c.SignatureDate, &c.InitialValue, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return c, nil
}

// FindContractByNumber retrieves a contract by its unique number.
func (r *Repository) FindContractByNumber(number string) (*models.Contract, error) {
	c := &models.Contract{}
	query := `
		SELECT id, number, description, company, budget_base_date, signature_date, initial_value, created_at
		FROM reajuste.contracts
		WHERE number = $1`
	err := r.db.QueryRow(query, number).
		Scan(&c.ID, &c.Number, &c.Description, &c.Company, &c.BudgetBaseDate, &c.SignatureDate, &c.InitialValue, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return c, nil
}

// ListContracts returns all contracts, most recently created first.
func (r *Repository) ListContracts() ([]models.Contract, error) {
	query := `
		SELECT id, number, description, company, budget_base_date, signature_date, initial_value, created_at
		FROM reajuste.contracts
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		var c models.Contract
		if err := rows.Scan(&c.ID, &c.Number, &c.Description, &c.Company,
			&c.BudgetBaseDate, &c.SignatureDate, &c.InitialValue, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// DeleteContract removes a contract. Administrative action only;
// calculations already on the ledger are kept untouched.
func (r *Repository) DeleteContract(id int64) error {
	res, err := r.db.Exec(`DELETE FROM reajuste.contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendCalculation inserts a new ledger record. Insert only: no
// update or delete statement exists for this table anywhere in the
// codebase, and repeated calculations for the same contract and month
// append independent rows.
func (r *Repository) AppendCalculation(rec *models.CalculationRecord) error {
	query := `
		INSERT INTO reajuste.calculations
			(id, contract_id, computed_at, base_index_date, base_index_value,
			 adjustment_index_date, adjustment_index_value, factor_k,
			 measurement_value, adjustment_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(query,
		rec.ID, rec.ContractID, rec.ComputedAt,
		rec.BaseIndexDate, rec.BaseIndexValue,
		rec.AdjustmentIndexDate, rec.AdjustmentIndexValue,
		rec.FactorK, rec.MeasurementValue, rec.AdjustmentValue)
	if err != nil {
		return fmt.Errorf("failed to append calculation: %w", err)
	}
	return nil
}

// ListCalculationsByContract returns every ledger record for a
// contract, oldest calculation first.
func (r *Repository) ListCalculationsByContract(contractID int64) ([]models.CalculationRecord, error) {
	query := `
		SELECT id, contract_id, computed_at, base_index_date, base_index_value,
		       adjustment_index_date, adjustment_index_value, factor_k,
		       measurement_value, adjustment_value
		FROM reajuste.calculations
		WHERE contract_id = $1
		ORDER BY computed_at ASC`
	rows, err := r.db.Query(query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var records []models.CalculationRecord
	for rows.Next() {
		var rec models.CalculationRecord
		if err := rows.Scan(&rec.ID, &rec.ContractID, &rec.ComputedAt,
			&rec.BaseIndexDate, &rec.BaseIndexValue,
			&rec.AdjustmentIndexDate, &rec.AdjustmentIndexValue,
			&rec.FactorK, &rec.MeasurementValue, &rec.AdjustmentValue); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return records, nil
}

// FindCalculationByID retrieves one ledger record.
func (r *Repository) FindCalculationByID(id string) (*models.CalculationRecord, error) {
	rec := &models.CalculationRecord{}
	query := `
		SELECT id, contract_id, computed_at, base_index_date, base_index_value,
		       adjustment_index_date, adjustment_index_value, factor_k,
		       measurement_value, adjustment_value
		FROM reajuste.calculations
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&rec.ID, &rec.ContractID, &rec.ComputedAt,
			&rec.BaseIndexDate, &rec.BaseIndexValue,
			&rec.AdjustmentIndexDate, &rec.AdjustmentIndexValue,
			&rec.FactorK, &rec.MeasurementValue, &rec.AdjustmentValue)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find calculation: %w", err)
	}
	return rec, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
