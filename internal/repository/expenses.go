package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flowiq/cashflow-service/internal/apperr"
	"github.com/flowiq/cashflow-service/internal/models"
)

// CreateExpense creates a new expense transaction
func (r *Repository) CreateExpense(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO flowiq.expenses (business_id, amount, category, description, transaction_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		expense.BusinessID, expense.Amount, expense.Category, expense.Description,
		expense.TransactionDate, nullString(expense.Notes)).
		Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// FindExpenseByID retrieves an expense transaction by id
func (r *Repository) FindExpenseByID(ctx context.Context, id int64) (*models.Expense, error) {
	expense := &models.Expense{}
	var notes sql.NullString
	query := `
		SELECT id, business_id, amount, category, description, transaction_date, notes, created_at, updated_at
		FROM flowiq.expenses
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&expense.ID, &expense.BusinessID, &expense.Amount, &expense.Category,
			&expense.Description, &expense.TransactionDate, &notes, &expense.CreatedAt, &expense.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Expense", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	expense.Notes = notes.String
	return expense, nil
}

// UpdateExpense updates the mutable fields of an expense transaction
func (r *Repository) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	query := `
		UPDATE flowiq.expenses
		SET amount = $2, category = $3, description = $4, transaction_date = $5, notes = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		expense.ID, expense.Amount, expense.Category, expense.Description,
		expense.TransactionDate, nullString(expense.Notes)).
		Scan(&expense.UpdatedAt)
	if err == sql.ErrNoRows {
		return apperr.NotFound("Expense", expense.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense transaction
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flowiq.expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Expense", id)
	}
	return nil
}

// ListExpensesByDateRange retrieves expense transactions dated in [from, to)
func (r *Repository) ListExpensesByDateRange(ctx context.Context, businessID int64, from, to time.Time) ([]models.Expense, error) {
	query := `
		SELECT id, business_id, amount, category, description, transaction_date, notes, created_at, updated_at
		FROM flowiq.expenses
		WHERE business_id = $1 AND transaction_date >= $2 AND transaction_date < $3
		ORDER BY transaction_date`
	return r.listExpenses(ctx, query, businessID, from, to)
}

// ListExpensesByCategory retrieves expense transactions with the given category
func (r *Repository) ListExpensesByCategory(ctx context.Context, businessID int64, category string) ([]models.Expense, error) {
	query := `
		SELECT id, business_id, amount, category, description, transaction_date, notes, created_at, updated_at
		FROM flowiq.expenses
		WHERE business_id = $1 AND category = $2
		ORDER BY transaction_date`
	return r.listExpenses(ctx, query, businessID, category)
}

func (r *Repository) listExpenses(ctx context.Context, query string, args ...interface{}) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		var notes sql.NullString
		if err := rows.Scan(&e.ID, &e.BusinessID, &e.Amount, &e.Category,
			&e.Description, &e.TransactionDate, &notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Notes = notes.String
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// SumExpense sums expense amounts for transactions dated in [from, to)
func (r *Repository) SumExpense(ctx context.Context, businessID int64, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM flowiq.expenses
		WHERE business_id = $1 AND transaction_date >= $2 AND transaction_date < $3`
	if err := r.db.QueryRowContext(ctx, query, businessID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

// ExpenseByDay sums expense amounts per UTC calendar day for transactions dated in [from, to).
// Days with no transactions are absent from the result.
func (r *Repository) ExpenseByDay(ctx context.Context, businessID int64, from, to time.Time) ([]models.DayTotal, error) {
	query := `
		SELECT date_trunc('day', transaction_date AT TIME ZONE 'UTC') AS day, SUM(amount)
		FROM flowiq.expenses
		WHERE business_id = $1 AND transaction_date >= $2 AND transaction_date < $3
		GROUP BY day
		ORDER BY day`
	return r.sumByDay(ctx, query, businessID, from, to)
}
