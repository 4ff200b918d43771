package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flowiq/cashflow-service/internal/apperr"
	"github.com/flowiq/cashflow-service/internal/config"
	"github.com/flowiq/cashflow-service/internal/models"
)

// fakeRepo is an in-memory Repository for service tests
type fakeRepo struct {
	users      map[int64]*models.User
	businesses map[int64]*models.Business
	incomes    map[int64]*models.Income
	expenses   map[int64]*models.Expense
	nextID     int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:      map[int64]*models.User{},
		businesses: map[int64]*models.Business{},
		incomes:    map[int64]*models.Income{},
		expenses:   map[int64]*models.Expense{},
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = f.id()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepo) FindUserByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.PhoneNumber == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User", phone)
}

func (f *fakeRepo) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User", id)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) UpdateUserProfile(_ context.Context, user *models.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return apperr.NotFound("User", user.ID)
	}
	stored.PhoneNumber = user.PhoneNumber
	stored.FullName = user.FullName
	return nil
}

func (f *fakeRepo) SetUserOTP(_ context.Context, userID int64, otpHash string, expiresAt time.Time) error {
	stored, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User", userID)
	}
	stored.OTPHash = otpHash
	stored.OTPExpiresAt = &expiresAt
	return nil
}

func (f *fakeRepo) MarkUserVerified(_ context.Context, userID int64, loginAt time.Time) error {
	stored, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User", userID)
	}
	stored.IsVerified = true
	stored.OTPHash = ""
	stored.OTPExpiresAt = nil
	stored.LastLoginAt = &loginAt
	return nil
}

func (f *fakeRepo) CreateBusiness(_ context.Context, business *models.Business) error {
	business.ID = f.id()
	copied := *business
	f.businesses[business.ID] = &copied
	return nil
}

func (f *fakeRepo) FindBusinessByID(_ context.Context, id int64) (*models.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, apperr.NotFound("Business", id)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) ListBusinessesByUser(_ context.Context, userID int64) ([]models.Business, error) {
	out := []models.Business{}
	for _, b := range f.businesses {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateBusiness(_ context.Context, business *models.Business) error {
	if _, ok := f.businesses[business.ID]; !ok {
		return apperr.NotFound("Business", business.ID)
	}
	copied := *business
	f.businesses[business.ID] = &copied
	return nil
}

func (f *fakeRepo) BusinessExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.businesses[id]
	return ok, nil
}

func (f *fakeRepo) CreateIncome(_ context.Context, income *models.Income) error {
	income.ID = f.id()
	copied := *income
	f.incomes[income.ID] = &copied
	return nil
}

func (f *fakeRepo) FindIncomeByID(_ context.Context, id int64) (*models.Income, error) {
	i, ok := f.incomes[id]
	if !ok {
		return nil, apperr.NotFound("Income", id)
	}
	copied := *i
	return &copied, nil
}

func (f *fakeRepo) UpdateIncome(_ context.Context, income *models.Income) error {
	if _, ok := f.incomes[income.ID]; !ok {
		return apperr.NotFound("Income", income.ID)
	}
	copied := *income
	f.incomes[income.ID] = &copied
	return nil
}

func (f *fakeRepo) DeleteIncome(_ context.Context, id int64) error {
	if _, ok := f.incomes[id]; !ok {
		return apperr.NotFound("Income", id)
	}
	delete(f.incomes, id)
	return nil
}

func (f *fakeRepo) ListIncomesByDateRange(_ context.Context, businessID int64, from, to time.Time) ([]models.Income, error) {
	out := []models.Income{}
	for _, i := range f.incomes {
		if i.BusinessID == businessID && !i.TransactionDate.Before(from) && i.TransactionDate.Before(to) {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateExpense(_ context.Context, expense *models.Expense) error {
	expense.ID = f.id()
	copied := *expense
	f.expenses[expense.ID] = &copied
	return nil
}

func (f *fakeRepo) FindExpenseByID(_ context.Context, id int64) (*models.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, apperr.NotFound("Expense", id)
	}
	copied := *e
	return &copied, nil
}

func (f *fakeRepo) UpdateExpense(_ context.Context, expense *models.Expense) error {
	if _, ok := f.expenses[expense.ID]; !ok {
		return apperr.NotFound("Expense", expense.ID)
	}
	copied := *expense
	f.expenses[expense.ID] = &copied
	return nil
}

func (f *fakeRepo) DeleteExpense(_ context.Context, id int64) error {
	if _, ok := f.expenses[id]; !ok {
		return apperr.NotFound("Expense", id)
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeRepo) ListExpensesByDateRange(_ context.Context, businessID int64, from, to time.Time) ([]models.Expense, error) {
	out := []models.Expense{}
	for _, e := range f.expenses {
		if e.BusinessID == businessID && !e.TransactionDate.Before(from) && e.TransactionDate.Before(to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListExpensesByCategory(_ context.Context, businessID int64, category string) ([]models.Expense, error) {
	out := []models.Expense{}
	for _, e := range f.expenses {
		if e.BusinessID == businessID && e.Category == category {
			out = append(out, *e)
		}
	}
	return out, nil
}

// recordingSender captures OTP deliveries
type recordingSender struct {
	to    string
	codes []string
}

func (r *recordingSender) SendOTP(to, _, code string) error {
	r.to = to
	r.codes = append(r.codes, code)
	return nil
}

var testNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, sender OTPSender) *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cfg := &config.Config{Env: "development", JWTSecret: "test-secret"}
	return NewService(repo, log, cfg, sender, func() time.Time { return testNow })
}
