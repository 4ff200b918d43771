package service

import (
	"context"
	"strings"

	"github.com/flowiq/cashflow-service/internal/apperr"
	"github.com/flowiq/cashflow-service/internal/models"
)

// CreateBusiness registers a new business for the user
func (s *Service) CreateBusiness(ctx context.Context, userID int64, business *models.Business) (*models.Business, error) {
	if strings.TrimSpace(business.Name) == "" {
		return nil, apperr.BadRequest("business name is required")
	}

	business.UserID = userID
	if err := s.repo.CreateBusiness(ctx, business); err != nil {
		return nil, err
	}

	s.log.Infof("Business created for user %d: %s", userID, business.Name)
	return business, nil
}

// GetBusiness returns a business owned by the user
func (s *Service) GetBusiness(ctx context.Context, businessID, userID int64) (*models.Business, error) {
	business, err := s.repo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.UserID != userID {
		return nil, apperr.Unauthorized()
	}
	return business, nil
}

// ListBusinesses returns all businesses owned by the user
func (s *Service) ListBusinesses(ctx context.Context, userID int64) ([]models.Business, error) {
	return s.repo.ListBusinessesByUser(ctx, userID)
}

// UpdateBusiness updates a business owned by the user
func (s *Service) UpdateBusiness(ctx context.Context, businessID, userID int64, update *models.Business) (*models.Business, error) {
	business, err := s.repo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.UserID != userID {
		return nil, apperr.Unauthorized()
	}
	if strings.TrimSpace(update.Name) == "" {
		return nil, apperr.BadRequest("business name is required")
	}

	business.Name = update.Name
	business.Description = update.Description
	business.Category = update.Category
	business.Address = update.Address

	if err := s.repo.UpdateBusiness(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}
