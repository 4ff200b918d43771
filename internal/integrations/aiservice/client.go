// Package aiservice integrates with the Python AI microservice that
// supplies cashflow predictions, anomaly detection and receipt
// categorization. The service is best-effort: any failure is logged and
// surfaced as a single opaque error so it never breaks core flows.
package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/flowiq/cashflow-service/internal/config"
	"github.com/flowiq/cashflow-service/internal/models"
)

// ErrUnavailable is returned for every failed AI call, whatever the cause
var ErrUnavailable = fmt.Errorf("AI service unavailable")

// Client handles integration with the AI microservice
type Client struct {
	baseURL             string
	client              *http.Client
	log                 *logrus.Logger
	confidenceThreshold float64
}

// NewClient initializes a new AI service client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.AIServiceURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log:                 log,
		confidenceThreshold: cfg.AIConfidenceThreshold,
	}
}

// transactionItem is the AI service's expected shape for one transaction
type transactionItem struct {
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Label    string  `json:"label"`
	Category *string `json:"category"`
}

// splitHistory translates daily buckets into the per-stream transaction
// lists the AI service expects, skipping zero days
func splitHistory(history []models.DailyDataPoint) (incomes, expenses []transactionItem) {
	incomes = []transactionItem{}
	expenses = []transactionItem{}
	for _, d := range history {
		if d.Income.IsPositive() {
			incomes = append(incomes, transactionItem{Amount: d.Income.InexactFloat64(), Date: d.Date})
		}
		if d.Expense.IsPositive() {
			expenses = append(expenses, transactionItem{Amount: d.Expense.InexactFloat64(), Date: d.Date})
		}
	}
	return incomes, expenses
}

// post sends a JSON payload and decodes the JSON response into out
func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("AI service %s response: %s", path, string(raw))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// PredictCashflow requests a cashflow forecast from daily history
func (c *Client) PredictCashflow(ctx context.Context, businessID int64, history []models.DailyDataPoint, predictionDays int) (*models.CashflowPrediction, error) {
	incomes, expenses := splitHistory(history)
	payload := struct {
		BusinessID     string            `json:"business_id"`
		Incomes        []transactionItem `json:"incomes"`
		Expenses       []transactionItem `json:"expenses"`
		PredictionDays int               `json:"prediction_days"`
	}{
		BusinessID:     fmt.Sprintf("%d", businessID),
		Incomes:        incomes,
		Expenses:       expenses,
		PredictionDays: predictionDays,
	}

	var parsed struct {
		Predictions     []models.PredictionPoint `json:"predictions"`
		Confidence      float64                  `json:"confidence"`
		Recommendation  string                   `json:"recommendation"`
		PredictedStatus string                   `json:"predicted_status"`
	}
	if err := c.post(ctx, "/predict/cashflow", payload, &parsed); err != nil {
		c.log.Warnf("AI prediction call failed: %v", err)
		return nil, ErrUnavailable
	}

	if parsed.PredictedStatus == "" {
		parsed.PredictedStatus = "Warning"
	}
	if parsed.Confidence < c.confidenceThreshold {
		c.log.Infof("AI prediction confidence %.2f below threshold %.2f", parsed.Confidence, c.confidenceThreshold)
	}

	result := &models.CashflowPrediction{
		Predictions:     parsed.Predictions,
		ConfidenceScore: parsed.Confidence,
		Recommendation:  parsed.Recommendation,
		PredictedStatus: parsed.PredictedStatus,
	}
	if result.Predictions == nil {
		result.Predictions = []models.PredictionPoint{}
	}
	return result, nil
}

// DetectAnomalies requests anomaly detection over daily history
func (c *Client) DetectAnomalies(ctx context.Context, businessID int64, history []models.DailyDataPoint) (*models.AnomalyReport, error) {
	incomes, expenses := splitHistory(history)
	payload := struct {
		BusinessID string            `json:"business_id"`
		Incomes    []transactionItem `json:"incomes"`
		Expenses   []transactionItem `json:"expenses"`
	}{
		BusinessID: fmt.Sprintf("%d", businessID),
		Incomes:    incomes,
		Expenses:   expenses,
	}

	var parsed struct {
		Anomalies []struct {
			Date     string  `json:"date"`
			Type     string  `json:"type"`
			Amount   float64 `json:"amount"`
			Reason   string  `json:"reason"`
			Severity string  `json:"severity"`
			Label    string  `json:"label"`
		} `json:"anomalies"`
		TotalAnomalies *int   `json:"total_anomalies"`
		Recommendation string `json:"recommendation"`
	}
	if err := c.post(ctx, "/detect/anomaly", payload, &parsed); err != nil {
		c.log.Warnf("AI anomaly call failed: %v", err)
		return nil, ErrUnavailable
	}

	anomalies := make([]models.Anomaly, 0, len(parsed.Anomalies))
	for _, a := range parsed.Anomalies {
		item := models.Anomaly{
			Date:        a.Date,
			Type:        a.Type,
			Amount:      decimal.NewFromFloat(a.Amount),
			Description: a.Reason,
			Severity:    a.Severity,
			Label:       a.Label,
		}
		if item.Type == "" {
			item.Type = "unknown"
		}
		if item.Severity == "" {
			item.Severity = "low"
		}
		anomalies = append(anomalies, item)
	}

	total := len(anomalies)
	if parsed.TotalAnomalies != nil {
		total = *parsed.TotalAnomalies
	}

	// The anomaly endpoint does not emit a confidence yet; infer one
	confidence := 0.75
	if len(anomalies) == 0 {
		confidence = 0.9
	}
	if confidence < c.confidenceThreshold {
		c.log.Infof("AI anomaly confidence %.2f below threshold %.2f", confidence, c.confidenceThreshold)
	}

	return &models.AnomalyReport{
		Anomalies:       anomalies,
		ConfidenceScore: confidence,
		TotalAnomalies:  total,
		Recommendation:  parsed.Recommendation,
	}, nil
}

// CategorizeReceipt asks the AI service to assign an expense category to
// receipt text and/or an image
func (c *Client) CategorizeReceipt(ctx context.Context, text, imageBase64 string) (*models.ReceiptCategorization, error) {
	payload := map[string]string{}
	if text != "" {
		payload["text"] = text
	}
	if imageBase64 != "" {
		payload["image_base64"] = imageBase64
	}

	var parsed struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
	}
	if err := c.post(ctx, "/categorize/receipt", payload, &parsed); err != nil {
		c.log.Warnf("AI categorize call failed: %v", err)
		return nil, ErrUnavailable
	}

	if parsed.Category == "" {
		parsed.Category = "Other"
	}
	return &models.ReceiptCategorization{
		Category:   parsed.Category,
		Confidence: parsed.Confidence,
	}, nil
}
