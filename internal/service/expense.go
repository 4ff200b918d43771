package service

import (
	"context"
	"time"

	"github.com/flowiq/cashflow-service/internal/apperr"
	"github.com/flowiq/cashflow-service/internal/models"
)

// CreateExpense records an expense transaction for an existing business
func (s *Service) CreateExpense(ctx context.Context, businessID int64, expense *models.Expense) (*models.Expense, error) {
	if !expense.Amount.IsPositive() {
		return nil, apperr.BadRequest("amount must be greater than zero")
	}
	if !models.ValidExpenseCategory(expense.Category) {
		return nil, apperr.BadRequest("unknown expense category")
	}

	exists, err := s.repo.BusinessExists(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Business", businessID)
	}

	expense.BusinessID = businessID
	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	s.log.Infof("Expense recorded for business %d: %s (%s)", businessID, expense.Amount, expense.Category)
	return expense, nil
}

// GetExpense returns an expense transaction belonging to the business
func (s *Service) GetExpense(ctx context.Context, expenseID, businessID int64) (*models.Expense, error) {
	expense, err := s.repo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.BusinessID != businessID {
		return nil, apperr.Unauthorized()
	}
	return expense, nil
}

// UpdateExpense updates an expense transaction belonging to the business
func (s *Service) UpdateExpense(ctx context.Context, expenseID, businessID int64, update *models.Expense) (*models.Expense, error) {
	expense, err := s.repo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.BusinessID != businessID {
		return nil, apperr.Unauthorized()
	}
	if !update.Amount.IsPositive() {
		return nil, apperr.BadRequest("amount must be greater than zero")
	}
	if !models.ValidExpenseCategory(update.Category) {
		return nil, apperr.BadRequest("unknown expense category")
	}

	expense.Amount = update.Amount
	expense.Category = update.Category
	expense.Description = update.Description
	expense.TransactionDate = update.TransactionDate
	expense.Notes = update.Notes

	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense transaction belonging to the business
func (s *Service) DeleteExpense(ctx context.Context, expenseID, businessID int64) error {
	expense, err := s.repo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.BusinessID != businessID {
		return apperr.Unauthorized()
	}
	return s.repo.DeleteExpense(ctx, expenseID)
}

// ListExpenses returns expense transactions dated in [from, to)
func (s *Service) ListExpenses(ctx context.Context, businessID int64, from, to time.Time) ([]models.Expense, error) {
	return s.repo.ListExpensesByDateRange(ctx, businessID, from, to)
}

// ListExpensesByCategory returns expense transactions with the given category
func (s *Service) ListExpensesByCategory(ctx context.Context, businessID int64, category string) ([]models.Expense, error) {
	if !models.ValidExpenseCategory(category) {
		return nil, apperr.BadRequest("unknown expense category")
	}
	return s.repo.ListExpensesByCategory(ctx, businessID, category)
}
