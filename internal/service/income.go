package service

import (
	"context"
	"time"

	"github.com/flowiq/cashflow-service/internal/apperr"
	"github.com/flowiq/cashflow-service/internal/models"
)

// CreateIncome records an income transaction for an existing business
func (s *Service) CreateIncome(ctx context.Context, businessID int64, income *models.Income) (*models.Income, error) {
	if !income.Amount.IsPositive() {
		return nil, apperr.BadRequest("amount must be greater than zero")
	}

	exists, err := s.repo.BusinessExists(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Business", businessID)
	}

	income.BusinessID = businessID
	if err := s.repo.CreateIncome(ctx, income); err != nil {
		return nil, err
	}

	s.log.Infof("Income recorded for business %d: %s", businessID, income.Amount)
	return income, nil
}

// GetIncome returns an income transaction belonging to the business
func (s *Service) GetIncome(ctx context.Context, incomeID, businessID int64) (*models.Income, error) {
	income, err := s.repo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, err
	}
	if income.BusinessID != businessID {
		return nil, apperr.Unauthorized()
	}
	return income, nil
}

// UpdateIncome updates an income transaction belonging to the business
func (s *Service) UpdateIncome(ctx context.Context, incomeID, businessID int64, update *models.Income) (*models.Income, error) {
	income, err := s.repo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, err
	}
	if income.BusinessID != businessID {
		return nil, apperr.Unauthorized()
	}
	if !update.Amount.IsPositive() {
		return nil, apperr.BadRequest("amount must be greater than zero")
	}

	income.Amount = update.Amount
	income.Source = update.Source
	income.TransactionDate = update.TransactionDate
	income.Notes = update.Notes

	if err := s.repo.UpdateIncome(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

// DeleteIncome removes an income transaction belonging to the business
func (s *Service) DeleteIncome(ctx context.Context, incomeID, businessID int64) error {
	income, err := s.repo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return err
	}
	if income.BusinessID != businessID {
		return apperr.Unauthorized()
	}
	return s.repo.DeleteIncome(ctx, incomeID)
}

// ListIncomes returns income transactions dated in [from, to)
func (s *Service) ListIncomes(ctx context.Context, businessID int64, from, to time.Time) ([]models.Income, error) {
	return s.repo.ListIncomesByDateRange(ctx, businessID, from, to)
}
