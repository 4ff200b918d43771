package handler

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/flowiq/cashflow-service/internal/cashflow"
	"github.com/flowiq/cashflow-service/internal/models"
	"github.com/flowiq/cashflow-service/internal/service"
)

// AIClient is the surface of the AI microservice integration the
// handlers call
type AIClient interface {
	PredictCashflow(ctx context.Context, businessID int64, history []models.DailyDataPoint, predictionDays int) (*models.CashflowPrediction, error)
	DetectAnomalies(ctx context.Context, businessID int64, history []models.DailyDataPoint) (*models.AnomalyReport, error)
	CategorizeReceipt(ctx context.Context, text, imageBase64 string) (*models.ReceiptCategorization, error)
}

// RatesClient fetches the USD reference rate
type RatesClient interface {
	GetUSDRate() (decimal.Decimal, error)
}

// Handler wires HTTP requests to the service layer
type Handler struct {
	svc   *service.Service
	calc  *cashflow.Calculator
	ai    AIClient
	rates RatesClient
	log   *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, calc *cashflow.Calculator, ai AIClient, rates RatesClient, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, calc: calc, ai: ai, rates: rates, log: log}
}
