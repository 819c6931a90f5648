package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract is a public-works contract. BudgetBaseDate is the sole
// determinant of the base index I0 for every adjustment of this
// contract; it is not the signature date.
type Contract struct {
	ID             int64           `json:"id"`
	Number         string          `json:"number"`
	Description    string          `json:"description"`
	Company        string          `json:"company"`
	BudgetBaseDate time.Time       `json:"budget_base_date"`
	SignatureDate  time.Time       `json:"signature_date"`
	InitialValue   decimal.Decimal `json:"initial_value"`
	CreatedAt      time.Time       `json:"created_at"`
}
