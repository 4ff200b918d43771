package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/flowiq/cashflow-service/internal/apperr"
	"github.com/flowiq/cashflow-service/internal/models"
)

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO flowiq.users (phone_number, full_name, email, otp_hash, otp_expires_at, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		user.PhoneNumber, user.FullName, nullString(user.Email), nullString(user.OTPHash), user.OTPExpiresAt, user.IsVerified).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByPhone retrieves a user by phone number
func (r *Repository) FindUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	user := &models.User{}
	var email, otpHash sql.NullString
	query := `
		SELECT id, phone_number, full_name, email, otp_hash, otp_expires_at, is_verified, last_login_at, created_at, updated_at
		FROM flowiq.users
		WHERE phone_number = $1`
	err := r.db.QueryRowContext(ctx, query, phone).
		Scan(&user.ID, &user.PhoneNumber, &user.FullName, &email, &otpHash,
			&user.OTPExpiresAt, &user.IsVerified, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("User", phone)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.Email = email.String
	user.OTPHash = otpHash.String
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	var email, otpHash sql.NullString
	query := `
		SELECT id, phone_number, full_name, email, otp_hash, otp_expires_at, is_verified, last_login_at, created_at, updated_at
		FROM flowiq.users
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.PhoneNumber, &user.FullName, &email, &otpHash,
			&user.OTPExpiresAt, &user.IsVerified, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("User", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.Email = email.String
	user.OTPHash = otpHash.String
	return user, nil
}

// UpdateUserProfile updates phone number and full name
func (r *Repository) UpdateUserProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE flowiq.users
		SET phone_number = $2, full_name = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.PhoneNumber, user.FullName).
		Scan(&user.UpdatedAt)
	if err == sql.ErrNoRows {
		return apperr.NotFound("User", user.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// SetUserOTP stores a fresh OTP hash and its expiry for the user
func (r *Repository) SetUserOTP(ctx context.Context, userID int64, otpHash string, expiresAt time.Time) error {
	query := `
		UPDATE flowiq.users
		SET otp_hash = $2, otp_expires_at = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, otpHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set OTP: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("User", userID)
	}
	return nil
}

// MarkUserVerified clears the OTP and records a successful login
func (r *Repository) MarkUserVerified(ctx context.Context, userID int64, loginAt time.Time) error {
	query := `
		UPDATE flowiq.users
		SET is_verified = TRUE, otp_hash = NULL, otp_expires_at = NULL, last_login_at = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, loginAt)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("User", userID)
	}
	return nil
}

// PurgeExpiredOTPs clears OTP codes whose expiry has passed
func (r *Repository) PurgeExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE flowiq.users
		SET otp_hash = NULL, otp_expires_at = NULL
		WHERE otp_expires_at IS NOT NULL AND otp_expires_at < $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired OTPs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged OTPs: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
