package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/flowiq/cashflow-service/internal/apperr"
	"github.com/flowiq/cashflow-service/internal/models"
	"github.com/flowiq/cashflow-service/internal/utils"
)

const (
	otpTTL   = 5 * time.Minute
	tokenTTL = 24 * time.Hour
)

// AuthResult is returned after a successful OTP verification
type AuthResult struct {
	Token       string    `json:"token"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Register creates an unverified user and issues the first OTP
func (s *Service) Register(ctx context.Context, phone, fullName, email string) (*models.User, string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.TrimSpace(fullName) == "" {
		return nil, "", apperr.BadRequest("phone number and full name are required")
	}

	existing, err := s.repo.FindUserByPhone(ctx, phone)
	if err != nil && !isNotFound(err) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperr.Conflict("a user with this phone number already exists")
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash OTP: %w", err)
	}

	expiresAt := s.now().Add(otpTTL)
	user := &models.User{
		PhoneNumber:  phone,
		FullName:     strings.TrimSpace(fullName),
		Email:        strings.TrimSpace(email),
		OTPHash:      string(hash),
		OTPExpiresAt: &expiresAt,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	s.deliverOTP(user, code)
	s.log.Infof("User registered: %s", user.PhoneNumber)
	return user, s.otpMessage(code), nil
}

// RequestOTP issues a fresh OTP for an existing user
func (s *Service) RequestOTP(ctx context.Context, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	user, err := s.repo.FindUserByPhone(ctx, phone)
	if err != nil {
		return "", err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash OTP: %w", err)
	}
	if err := s.repo.SetUserOTP(ctx, user.ID, string(hash), s.now().Add(otpTTL)); err != nil {
		return "", err
	}

	s.deliverOTP(user, code)
	s.log.Infof("OTP issued for user: %s", user.PhoneNumber)
	return s.otpMessage(code), nil
}

// VerifyOTP checks the submitted code and returns a signed JWT on success
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (*AuthResult, error) {
	phone = strings.TrimSpace(phone)
	user, err := s.repo.FindUserByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if user.OTPHash == "" || user.OTPExpiresAt == nil || user.OTPExpiresAt.Before(now) {
		return nil, apperr.BadRequest("invalid or expired OTP")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.OTPHash), []byte(code)); err != nil {
		return nil, apperr.BadRequest("invalid or expired OTP")
	}

	// Sign the token before consuming the OTP so a signing failure
	// leaves the code intact for a retry
	expiresAt := now.Add(tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.repo.MarkUserVerified(ctx, user.ID, now); err != nil {
		return nil, err
	}

	s.log.Infof("User logged in: %s", user.PhoneNumber)
	return &AuthResult{
		Token:       tokenString,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		ExpiresAt:   expiresAt,
	}, nil
}

// GetProfile returns the profile of the authenticated user
func (s *Service) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.FindUserByID(ctx, userID)
}

// UpdateProfile changes phone number and/or full name
func (s *Service) UpdateProfile(ctx context.Context, userID int64, phone, fullName string) (*models.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	phone = strings.TrimSpace(phone)
	fullName = strings.TrimSpace(fullName)
	if phone == "" && fullName == "" {
		return nil, apperr.BadRequest("provide at least one field to update")
	}

	if phone != "" {
		existing, err := s.repo.FindUserByPhone(ctx, phone)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, apperr.Conflict("a user with this phone number already exists")
		}
		user.PhoneNumber = phone
	}
	if fullName != "" {
		user.FullName = fullName
	}

	if err := s.repo.UpdateUserProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// deliverOTP sends the code by email when the user registered one.
// Delivery failures are logged, not surfaced: the code can be re-requested.
func (s *Service) deliverOTP(user *models.User, code string) {
	if s.otp == nil || user.Email == "" {
		return
	}
	if err := s.otp.SendOTP(user.Email, user.FullName, code); err != nil {
		s.log.Errorf("Failed to deliver OTP to %s: %v", user.Email, err)
	}
}

// otpMessage builds the response message; development mode echoes the code
// the way the mock SMS gateway did
func (s *Service) otpMessage(code string) string {
	if s.config.IsDevelopment() {
		return fmt.Sprintf("OTP sent successfully. (Mock OTP: %s)", code)
	}
	return "OTP sent successfully."
}

func isNotFound(err error) bool {
	var nf *apperr.NotFoundError
	return errors.As(err, &nf)
}
