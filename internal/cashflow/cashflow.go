// Package cashflow aggregates raw income and expense rows into
// time-bucketed, status-classified summaries. All ranges are half-open
// [from, to) and day buckets anchor to UTC midnight, so a transaction at
// any instant of a day belongs to exactly one bucket and boundary
// instants are never double-counted.
package cashflow

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/flowiq/cashflow-service/internal/models"
)

// QueryProvider is the persistence surface the calculator reads from.
// Implementations must apply the half-open [from, to) rule; a reversed
// range simply matches no rows.
type QueryProvider interface {
	SumIncome(ctx context.Context, businessID int64, from, to time.Time) (decimal.Decimal, error)
	SumExpense(ctx context.Context, businessID int64, from, to time.Time) (decimal.Decimal, error)
	IncomeByDay(ctx context.Context, businessID int64, from, to time.Time) ([]models.DayTotal, error)
	ExpenseByDay(ctx context.Context, businessID int64, from, to time.Time) ([]models.DayTotal, error)
}

// BusinessLookup resolves a business display name, failing with a
// not-found error for unknown ids.
type BusinessLookup interface {
	GetBusinessName(ctx context.Context, businessID int64) (string, error)
}

// Calculator computes cashflow summaries. It keeps no state between
// calls and is safe for concurrent use.
type Calculator struct {
	store      QueryProvider
	businesses BusinessLookup
	log        *logrus.Logger
	now        func() time.Time
}

// NewCalculator initializes a calculator. now may be nil, in which case
// the system clock is used; tests inject a fixed clock instead.
func NewCalculator(store QueryProvider, businesses BusinessLookup, log *logrus.Logger, now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{store: store, businesses: businesses, log: log, now: now}
}

// today returns the current UTC calendar day at midnight
func (c *Calculator) today() time.Time {
	t := c.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sumRange sums both streams over [from, to). The two queries are
// independent and run concurrently.
func (c *Calculator) sumRange(ctx context.Context, businessID int64, from, to time.Time) (income, expense decimal.Decimal, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		income, err = c.store.SumIncome(ctx, businessID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		expense, err = c.store.SumExpense(ctx, businessID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return income, expense, nil
}

// Calculate computes totals and status for an explicit [from, to) range
func (c *Calculator) Calculate(ctx context.Context, businessID int64, from, to time.Time) (*models.CashflowResult, error) {
	income, expense, err := c.sumRange(ctx, businessID, from, to)
	if err != nil {
		return nil, err
	}
	net := income.Sub(expense)

	return &models.CashflowResult{
		TotalIncome:  income,
		TotalExpense: expense,
		NetCashflow:  net,
		Status:       Classify(income, expense, net),
		From:         from,
		To:           to,
	}, nil
}

// DashboardSummary computes today, week-to-date and month-to-date totals.
// Weeks start on Sunday; all three ranges end at tomorrow's UTC midnight.
// Only today's figures are classified.
func (c *Calculator) DashboardSummary(ctx context.Context, businessID int64) (*models.DashboardSummary, error) {
	name, err := c.businesses.GetBusinessName(ctx, businessID)
	if err != nil {
		return nil, err
	}

	today := c.today()
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	todayIncome, todayExpense, err := c.sumRange(ctx, businessID, today, tomorrow)
	if err != nil {
		return nil, err
	}
	weekIncome, weekExpense, err := c.sumRange(ctx, businessID, weekStart, tomorrow)
	if err != nil {
		return nil, err
	}
	monthIncome, monthExpense, err := c.sumRange(ctx, businessID, monthStart, tomorrow)
	if err != nil {
		return nil, err
	}

	todayNet := todayIncome.Sub(todayExpense)

	return &models.DashboardSummary{
		TodayIncome:  todayIncome,
		TodayExpense: todayExpense,
		TodayNet:     todayNet,
		TodayStatus:  Classify(todayIncome, todayExpense, todayNet),
		WeekIncome:   weekIncome,
		WeekExpense:  weekExpense,
		MonthIncome:  monthIncome,
		MonthExpense: monthExpense,
		BusinessName: name,
	}, nil
}

// trendWindow maps a period token to its trailing day count. Unrecognized
// tokens fall back to the weekly window.
func trendWindow(period string) int {
	switch period {
	case "monthly":
		return 30
	default: // "weekly", "daily" and anything else
		return 7
	}
}

// Trends computes a per-day series over a trailing window ending today,
// oldest day first. Buckets come from a single grouped query per stream
// rather than one round trip per day; empty days are filled with zeros.
func (c *Calculator) Trends(ctx context.Context, businessID int64, period string) (*models.TrendSeries, error) {
	days := trendWindow(period)
	today := c.today()
	from := today.AddDate(0, 0, -(days - 1))
	to := today.AddDate(0, 0, 1)

	var incomeDays, expenseDays []models.DayTotal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomeDays, err = c.store.IncomeByDay(gctx, businessID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		expenseDays, err = c.store.ExpenseByDay(gctx, businessID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	incomeByDay := bucketMap(incomeDays)
	expenseByDay := bucketMap(expenseDays)

	trends := make([]models.TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		income := incomeByDay[key]
		expense := expenseByDay[key]
		trends = append(trends, models.TrendPoint{
			Date:    key,
			Income:  income,
			Expense: expense,
			Net:     income.Sub(expense),
		})
	}

	c.log.Debugf("Computed %d trend points for business %d (period %q)", days, businessID, period)

	return &models.TrendSeries{Period: period, Trends: trends}, nil
}

func bucketMap(totals []models.DayTotal) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		m[t.Day.UTC().Format("2006-01-02")] = t.Total
	}
	return m
}

// ratioSentinel marks an undefined income/expense ratio when there are
// no expenses but there is income.
var ratioSentinel = decimal.NewFromInt(999)

// Health classifies the month-to-date figures and derives the
// income-to-expense ratio rounded to two decimal places.
func (c *Calculator) Health(ctx context.Context, businessID int64) (*models.HealthReport, error) {
	today := c.today()
	tomorrow := today.AddDate(0, 0, 1)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	income, expense, err := c.sumRange(ctx, businessID, monthStart, tomorrow)
	if err != nil {
		return nil, err
	}
	net := income.Sub(expense)
	status := Classify(income, expense, net)

	var ratio decimal.Decimal
	switch {
	case expense.IsPositive():
		ratio = income.Div(expense).Round(2)
	case income.IsPositive():
		ratio = ratioSentinel
	default:
		ratio = decimal.Zero
	}

	return &models.HealthReport{
		Status:               status,
		Message:              healthMessage(status),
		NetCashflow:          net,
		IncomeToExpenseRatio: ratio,
	}, nil
}

// History aggregates per-day buckets over a trailing lookback window,
// including today, for the AI service. Lookbacks shorter than a week are
// widened to 7 days.
func (c *Calculator) History(ctx context.Context, businessID int64, lookbackDays int) ([]models.DailyDataPoint, error) {
	if lookbackDays < 7 {
		lookbackDays = 7
	}
	today := c.today()
	from := today.AddDate(0, 0, -lookbackDays)
	to := today.AddDate(0, 0, 1)

	var incomeDays, expenseDays []models.DayTotal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomeDays, err = c.store.IncomeByDay(gctx, businessID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		expenseDays, err = c.store.ExpenseByDay(gctx, businessID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	incomeByDay := bucketMap(incomeDays)
	expenseByDay := bucketMap(expenseDays)

	points := make([]models.DailyDataPoint, 0, lookbackDays+1)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		points = append(points, models.DailyDataPoint{
			Date:    key,
			Income:  incomeByDay[key],
			Expense: expenseByDay[key],
		})
	}
	return points, nil
}
