package models

import "github.com/shopspring/decimal"

// DailyDataPoint is one day of aggregated history sent to the AI service
type DailyDataPoint struct {
	Date    string          `json:"date"` // Format: YYYY-MM-DD
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// PredictionPoint is one forecasted day returned by the AI service
type PredictionPoint struct {
	Date             string          `json:"date"`
	PredictedIncome  decimal.Decimal `json:"predicted_income"`
	PredictedExpense decimal.Decimal `json:"predicted_expense"`
	PredictedNet     decimal.Decimal `json:"predicted_net"`
}

// CashflowPrediction represents the AI cashflow forecast
type CashflowPrediction struct {
	Predictions     []PredictionPoint `json:"predictions"`
	ConfidenceScore float64           `json:"confidence_score"`
	Recommendation  string            `json:"recommendation"`
	PredictedStatus string            `json:"predicted_status"`
}

// Anomaly represents a single unusual transaction flagged by the AI service
type Anomaly struct {
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Severity    string          `json:"severity"`
	Label       string          `json:"label"`
}

// AnomalyReport represents the AI anomaly detection result
type AnomalyReport struct {
	Anomalies       []Anomaly `json:"anomalies"`
	ConfidenceScore float64   `json:"confidence_score"`
	TotalAnomalies  int       `json:"total_anomalies"`
	Recommendation  string    `json:"recommendation"`
}

// ReceiptCategorization represents the AI receipt categorization result
type ReceiptCategorization struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}
