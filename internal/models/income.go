package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income represents a single income transaction
type Income struct {
	ID              int64           `json:"id"`
	BusinessID      int64           `json:"business_id"`
	Amount          decimal.Decimal `json:"amount"`
	Source          string          `json:"source"`
	TransactionDate time.Time       `json:"transaction_date"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
