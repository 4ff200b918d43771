package cashflow

import (
	"github.com/shopspring/decimal"

	"github.com/flowiq/cashflow-service/internal/models"
)

// warningThreshold is the expense/income ratio above which a non-negative
// period is still flagged. Exactly 0.80 stays Healthy.
var warningThreshold = decimal.New(80, -2)

// Classify determines the cashflow status for an (income, expense, net) triple.
// Rules apply in order: no activity is Healthy, a negative net is Critical,
// expenses consuming more than 80% of a positive income are a Warning.
func Classify(income, expense, net decimal.Decimal) models.CashflowStatus {
	if income.IsZero() && expense.IsZero() {
		return models.StatusHealthy
	}
	if net.IsNegative() {
		return models.StatusCritical
	}
	// expense/income > 0.80, rearranged as expense > income*0.80 so the
	// comparison stays exact instead of depending on division precision
	if income.IsPositive() && expense.GreaterThan(income.Mul(warningThreshold)) {
		return models.StatusWarning
	}
	return models.StatusHealthy
}

var statusMessages = map[models.CashflowStatus]string{
	models.StatusHealthy:  "Your business cashflow is looking good! Keep it up.",
	models.StatusWarning:  "Your expenses are getting close to your income. Watch your spending.",
	models.StatusCritical: "Your expenses have exceeded your income. Take action now.",
}

// healthMessage returns the human-readable message for a status
func healthMessage(status models.CashflowStatus) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return "Unable to determine cashflow health."
}
