package service

import (
	"time"

	"github.com/sesp-cea/reajuste-service/internal/models"
)

// IndexRepository resolves monthly economic index values.
type IndexRepository interface {
	CreateIndex(idx *models.EconomicIndex) error
	FindIndexByDate(date time.Time) (*models.EconomicIndex, error)
	ListIndices(limit int) ([]models.EconomicIndex, error)
	DeleteIndex(date time.Time) error
}

// ContractRepository supplies contract metadata, in particular the
// budget base date that determines I0.
type ContractRepository interface {
	CreateContract(c *models.Contract) error
	FindContractByID(id int64) (*models.Contract, error)
	FindContractByNumber(number string) (*models.Contract, error)
	ListContracts() ([]models.Contract, error)
	DeleteContract(id int64) error
}

// Ledger is the append-only store of calculation records. It is the
// single source of truth for what was actually computed; downstream
// consumers render from its records and never re-derive figures.
type Ledger interface {
	AppendCalculation(rec *models.CalculationRecord) error
	ListCalculationsByContract(contractID int64) ([]models.CalculationRecord, error)
	FindCalculationByID(id string) (*models.CalculationRecord, error)
}
