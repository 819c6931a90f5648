package service

import (
	"fmt"
	"time"

	"github.com/sesp-cea/reajuste-service/internal/models"
	"github.com/shopspring/decimal"
)

// INCC-DI monthly history (FGV, number-index base Aug/1994 = 100).
// Kept here so a fresh environment is usable without manual data
// entry; existing rows are never overwritten.
var seedIndices = []struct {
	month string
	value string
}{
	{"2023-01", "949.481"},
	{"2023-02", "951.368"},
	{"2023-03", "953.510"},
	{"2023-04", "957.443"},
	{"2023-05", "961.286"},
	{"2023-06", "962.571"},
	{"2023-07", "963.298"},
	{"2023-08", "965.731"},
	{"2023-09", "967.848"},
	{"2023-10", "969.412"},
	{"2023-11", "971.647"},
	{"2023-12", "973.519"},
	{"2024-01", "976.438"},
	{"2024-02", "979.125"},
	{"2024-03", "981.540"},
	{"2024-04", "984.712"},
	{"2024-05", "988.460"},
	{"2024-06", "992.318"},
	{"2024-07", "996.805"},
	{"2024-08", "1000.292"},
	{"2024-09", "1003.517"},
	{"2024-10", "1006.931"},
	{"2024-11", "1010.224"},
	{"2024-12", "1013.368"},
	{"2025-01", "1017.422"},
	{"2025-02", "1021.490"},
	{"2025-03", "1024.660"},
	{"2025-04", "1028.247"},
	{"2025-05", "1032.360"},
	{"2025-06", "1035.975"},
}

var seedContracts = []struct {
	number       string
	description  string
	company      string
	budgetBase   string
	signature    string
	initialValue string
}{
	{
		number:       "001/2023",
		description:  "Reforma e ampliação do quartel do 1º Batalhão",
		company:      "Construtora Alfa Ltda",
		budgetBase:   "2023-01-10",
		signature:    "2023-03-02",
		initialValue: "4850000.00",
	},
	{
		number:       "017/2024",
		description:  "Construção de delegacia cidadã - Londrina",
		company:      "Engenharia Beta S/A",
		budgetBase:   "2024-02-15",
		signature:    "2024-04-22",
		initialValue: "12300000.00",
	},
}

// SeedDemoData loads the INCC-DI history and demo contracts into an
// empty database. Idempotent: rows that already exist are skipped.
func (s *Service) SeedDemoData() error {
	seeded := 0
	for _, row := range seedIndices {
		month, err := time.Parse("2006-01", row.month)
		if err != nil {
			return fmt.Errorf("invalid seed month %q: %w", row.month, err)
		}
		if _, err := s.indices.FindIndexByDate(month); err == nil {
			continue
		} else if !isNotFound(err) {
			return err
		}
		value, err := decimal.NewFromString(row.value)
		if err != nil {
			return fmt.Errorf("invalid seed value %q: %w", row.value, err)
		}
		idx := &models.EconomicIndex{ReferenceDate: month, Name: models.DefaultIndexName, Value: value}
		if err := s.indices.CreateIndex(idx); err != nil {
			return err
		}
		seeded++
	}

	for _, row := range seedContracts {
		if _, err := s.contracts.FindContractByNumber(row.number); err == nil {
			continue
		} else if !isNotFound(err) {
			return err
		}
		budgetBase, err := time.Parse("2006-01-02", row.budgetBase)
		if err != nil {
			return fmt.Errorf("invalid seed date %q: %w", row.budgetBase, err)
		}
		signature, err := time.Parse("2006-01-02", row.signature)
		if err != nil {
			return fmt.Errorf("invalid seed date %q: %w", row.signature, err)
		}
		initialValue, err := decimal.NewFromString(row.initialValue)
		if err != nil {
			return fmt.Errorf("invalid seed value %q: %w", row.initialValue, err)
		}
		c := &models.Contract{
			Number:         row.number,
			Description:    row.description,
			Company:        row.company,
			BudgetBaseDate: budgetBase,
			SignatureDate:  signature,
			InitialValue:   initialValue,
		}
		if err := s.contracts.CreateContract(c); err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		s.log.Infof("Demo data seeded: %d new rows", seeded)
	}
	return nil
}
