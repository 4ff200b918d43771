package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single expense transaction
type Expense struct {
	ID              int64           `json:"id"`
	BusinessID      int64           `json:"business_id"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transaction_date"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ExpenseCategories lists the fixed set of accepted expense categories
var ExpenseCategories = []string{
	"Rent",
	"Salary",
	"Supplies",
	"Transport",
	"Food",
	"Utilities",
	"Marketing",
	"Maintenance",
	"Tax",
	"Loan",
	"Inventory",
	"Equipment",
	"Other",
}

// ValidExpenseCategory reports whether category is one of the accepted values
func ValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}
