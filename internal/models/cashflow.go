package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashflowStatus classifies the financial health of a period
type CashflowStatus string

const (
	StatusHealthy  CashflowStatus = "Healthy"
	StatusWarning  CashflowStatus = "Warning"
	StatusCritical CashflowStatus = "Critical"
)

// CashflowResult represents a point-in-time cashflow calculation over a range
type CashflowResult struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetCashflow  decimal.Decimal `json:"net_cashflow"`
	Status       CashflowStatus  `json:"status"`
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
}

// DashboardSummary represents today/week/month figures for the dashboard
type DashboardSummary struct {
	TodayIncome  decimal.Decimal `json:"today_income"`
	TodayExpense decimal.Decimal `json:"today_expense"`
	TodayNet     decimal.Decimal `json:"today_net"`
	TodayStatus  CashflowStatus  `json:"today_status"`
	WeekIncome   decimal.Decimal `json:"week_income"`
	WeekExpense  decimal.Decimal `json:"week_expense"`
	MonthIncome  decimal.Decimal `json:"month_income"`
	MonthExpense decimal.Decimal `json:"month_expense"`
	BusinessName string          `json:"business_name"`
}

// DayTotal is one day's summed amount for a single stream, as grouped by the database
type DayTotal struct {
	Day   time.Time
	Total decimal.Decimal
}

// TrendPoint represents income, expense and net for a single day
type TrendPoint struct {
	Date    string          `json:"date"` // Format: YYYY-MM-DD
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// TrendSeries represents a daily breakdown over a trailing window
type TrendSeries struct {
	Period string       `json:"period"`
	Trends []TrendPoint `json:"trends"`
}

// HealthReport represents month-to-date cashflow health
type HealthReport struct {
	Status               CashflowStatus  `json:"status"`
	Message              string          `json:"message"`
	NetCashflow          decimal.Decimal `json:"net_cashflow"`
	IncomeToExpenseRatio decimal.Decimal `json:"income_to_expense_ratio"`
}
