package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flowiq/cashflow-service/internal/config"
	"github.com/flowiq/cashflow-service/internal/models"
)

// Repository is the persistence surface the service depends on.
// *repository.Repository satisfies it; tests use an in-memory fake.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByPhone(ctx context.Context, phone string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserProfile(ctx context.Context, user *models.User) error
	SetUserOTP(ctx context.Context, userID int64, otpHash string, expiresAt time.Time) error
	MarkUserVerified(ctx context.Context, userID int64, loginAt time.Time) error

	CreateBusiness(ctx context.Context, business *models.Business) error
	FindBusinessByID(ctx context.Context, id int64) (*models.Business, error)
	ListBusinessesByUser(ctx context.Context, userID int64) ([]models.Business, error)
	UpdateBusiness(ctx context.Context, business *models.Business) error
	BusinessExists(ctx context.Context, id int64) (bool, error)

	CreateIncome(ctx context.Context, income *models.Income) error
	FindIncomeByID(ctx context.Context, id int64) (*models.Income, error)
	UpdateIncome(ctx context.Context, income *models.Income) error
	DeleteIncome(ctx context.Context, id int64) error
	ListIncomesByDateRange(ctx context.Context, businessID int64, from, to time.Time) ([]models.Income, error)

	CreateExpense(ctx context.Context, expense *models.Expense) error
	FindExpenseByID(ctx context.Context, id int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	ListExpensesByDateRange(ctx context.Context, businessID int64, from, to time.Time) ([]models.Expense, error)
	ListExpensesByCategory(ctx context.Context, businessID int64, category string) ([]models.Expense, error)
}

// OTPSender delivers a one-time code to a user out of band
type OTPSender interface {
	SendOTP(to, fullName, code string) error
}

// Service handles business logic
type Service struct {
	repo   Repository
	log    *logrus.Logger
	config *config.Config
	otp    OTPSender
	now    func() time.Time
}

// NewService initializes a new service. now may be nil, in which case
// the system clock is used.
func NewService(repo Repository, log *logrus.Logger, cfg *config.Config, otp OTPSender, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, log: log, config: cfg, otp: otp, now: now}
}
