package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flowiq/cashflow-service/internal/apperr"
	"github.com/flowiq/cashflow-service/internal/models"
)

// CreateBusiness creates a new business in the database
func (r *Repository) CreateBusiness(ctx context.Context, business *models.Business) error {
	query := `
		INSERT INTO flowiq.businesses (user_id, name, description, category, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		business.UserID, business.Name, nullString(business.Description),
		nullString(business.Category), nullString(business.Address)).
		Scan(&business.ID, &business.CreatedAt, &business.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

// FindBusinessByID retrieves a business by id
func (r *Repository) FindBusinessByID(ctx context.Context, id int64) (*models.Business, error) {
	business := &models.Business{}
	var description, category, address sql.NullString
	query := `
		SELECT id, user_id, name, description, category, address, created_at, updated_at
		FROM flowiq.businesses
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&business.ID, &business.UserID, &business.Name,
			&description, &category, &address, &business.CreatedAt, &business.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Business", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find business: %w", err)
	}
	business.Description = description.String
	business.Category = category.String
	business.Address = address.String
	return business, nil
}

// ListBusinessesByUser retrieves all businesses owned by a user
func (r *Repository) ListBusinessesByUser(ctx context.Context, userID int64) ([]models.Business, error) {
	query := `
		SELECT id, user_id, name, description, category, address, created_at, updated_at
		FROM flowiq.businesses
		WHERE user_id = $1
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	businesses := []models.Business{}
	for rows.Next() {
		var b models.Business
		var description, category, address sql.NullString
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name,
			&description, &category, &address, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		b.Description = description.String
		b.Category = category.String
		b.Address = address.String
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

// UpdateBusiness updates the mutable fields of a business
func (r *Repository) UpdateBusiness(ctx context.Context, business *models.Business) error {
	query := `
		UPDATE flowiq.businesses
		SET name = $2, description = $3, category = $4, address = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		business.ID, business.Name, nullString(business.Description),
		nullString(business.Category), nullString(business.Address)).
		Scan(&business.UpdatedAt)
	if err == sql.ErrNoRows {
		return apperr.NotFound("Business", business.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	return nil
}

// BusinessExists reports whether a business with the given id exists
func (r *Repository) BusinessExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM flowiq.businesses WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check business existence: %w", err)
	}
	return exists, nil
}

// GetBusinessName retrieves only the display name of a business
func (r *Repository) GetBusinessName(ctx context.Context, id int64) (string, error) {
	var name string
	query := `SELECT name FROM flowiq.businesses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", apperr.NotFound("Business", id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get business name: %w", err)
	}
	return name, nil
}
