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

// CreateIncome creates a new income transaction
func (r *Repository) CreateIncome(ctx context.Context, income *models.Income) error {
	query := `
		INSERT INTO flowiq.incomes (business_id, amount, source, transaction_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		income.BusinessID, income.Amount, income.Source, income.TransactionDate, nullString(income.Notes)).
		Scan(&income.ID, &income.CreatedAt, &income.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

// FindIncomeByID retrieves an income transaction by id
func (r *Repository) FindIncomeByID(ctx context.Context, id int64) (*models.Income, error) {
	income := &models.Income{}
	var notes sql.NullString
	query := `
		SELECT id, business_id, amount, source, transaction_date, notes, created_at, updated_at
		FROM flowiq.incomes
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&income.ID, &income.BusinessID, &income.Amount, &income.Source,
			&income.TransactionDate, &notes, &income.CreatedAt, &income.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Income", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find income: %w", err)
	}
	income.Notes = notes.String
	return income, nil
}

// UpdateIncome updates the mutable fields of an income transaction
func (r *Repository) UpdateIncome(ctx context.Context, income *models.Income) error {
	query := `
		UPDATE flowiq.incomes
		SET amount = $2, source = $3, transaction_date = $4, notes = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		income.ID, income.Amount, income.Source, income.TransactionDate, nullString(income.Notes)).
		Scan(&income.UpdatedAt)
	if err == sql.ErrNoRows {
		return apperr.NotFound("Income", income.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return nil
}

// DeleteIncome removes an income transaction
func (r *Repository) DeleteIncome(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flowiq.incomes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Income", id)
	}
	return nil
}

// ListIncomesByDateRange retrieves income transactions dated in [from, to)
func (r *Repository) ListIncomesByDateRange(ctx context.Context, businessID int64, from, to time.Time) ([]models.Income, error) {
	query := `
		SELECT id, business_id, amount, source, transaction_date, notes, created_at, updated_at
		FROM flowiq.incomes
		WHERE business_id = $1 AND transaction_date >= $2 AND transaction_date < $3
		ORDER BY transaction_date`
	rows, err := r.db.QueryContext(ctx, query, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		var i models.Income
		var notes sql.NullString
		if err := rows.Scan(&i.ID, &i.BusinessID, &i.Amount, &i.Source,
			&i.TransactionDate, &notes, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		i.Notes = notes.String
		incomes = append(incomes, i)
	}
	return incomes, rows.Err()
}

// SumIncome sums income amounts for transactions dated in [from, to)
func (r *Repository) SumIncome(ctx context.Context, businessID int64, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM flowiq.incomes
		WHERE business_id = $1 AND transaction_date >= $2 AND transaction_date < $3`
	if err := r.db.QueryRowContext(ctx, query, businessID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum incomes: %w", err)
	}
	return total, nil
}

// IncomeByDay sums income amounts per UTC calendar day for transactions dated in [from, to).
// Days with no transactions are absent from the result.
func (r *Repository) IncomeByDay(ctx context.Context, businessID int64, from, to time.Time) ([]models.DayTotal, error) {
	query := `
		SELECT date_trunc('day', transaction_date AT TIME ZONE 'UTC') AS day, SUM(amount)
		FROM flowiq.incomes
		WHERE business_id = $1 AND transaction_date >= $2 AND transaction_date < $3
		GROUP BY day
		ORDER BY day`
	return r.sumByDay(ctx, query, businessID, from, to)
}

func (r *Repository) sumByDay(ctx context.Context, query string, businessID int64, from, to time.Time) ([]models.DayTotal, error) {
	rows, err := r.db.QueryContext(ctx, query, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum by day: %w", err)
	}
	defer rows.Close()

	totals := []models.DayTotal{}
	for rows.Next() {
		var t models.DayTotal
		if err := rows.Scan(&t.Day, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan day total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
