package aiservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowiq/cashflow-service/internal/config"
	"github.com/flowiq/cashflow-service/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cfg := &config.Config{AIServiceURL: srv.URL, AIConfidenceThreshold: 0.6}
	return NewClient(cfg, log), srv
}

func sampleHistory() []models.DailyDataPoint {
	return []models.DailyDataPoint{
		{Date: "2025-06-16", Income: decimal.RequireFromString("100"), Expense: decimal.RequireFromString("40")},
		{Date: "2025-06-17", Income: decimal.Zero, Expense: decimal.RequireFromString("25")},
		{Date: "2025-06-18", Income: decimal.Zero, Expense: decimal.Zero},
	}
}

func TestPredictCashflow(t *testing.T) {
	var gotPath string
	var gotPayload struct {
		BusinessID     string `json:"business_id"`
		PredictionDays int    `json:"prediction_days"`
		Incomes        []struct {
			Amount float64 `json:"amount"`
			Date   string  `json:"date"`
		} `json:"incomes"`
		Expenses []struct {
			Amount float64 `json:"amount"`
			Date   string  `json:"date"`
		} `json:"expenses"`
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"predictions": []map[string]interface{}{
				{"date": "2025-06-19", "predicted_income": "120", "predicted_expense": "30", "predicted_net": "90"},
			},
			"confidence":       0.82,
			"recommendation":   "Income is trending up.",
			"predicted_status": "Healthy",
		})
	})

	prediction, err := client.PredictCashflow(context.Background(), 7, sampleHistory(), 30)
	require.NoError(t, err)

	assert.Equal(t, "/predict/cashflow", gotPath)
	assert.Equal(t, "7", gotPayload.BusinessID)
	assert.Equal(t, 30, gotPayload.PredictionDays)
	// Zero days are dropped from the per-stream lists
	require.Len(t, gotPayload.Incomes, 1)
	assert.Equal(t, "2025-06-16", gotPayload.Incomes[0].Date)
	require.Len(t, gotPayload.Expenses, 2)

	assert.Equal(t, 0.82, prediction.ConfidenceScore)
	assert.Equal(t, "Healthy", prediction.PredictedStatus)
	require.Len(t, prediction.Predictions, 1)
	assert.Equal(t, "2025-06-19", prediction.Predictions[0].Date)
}

func TestPredictCashflow_DefaultsStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"confidence": 0.5})
	})

	prediction, err := client.PredictCashflow(context.Background(), 7, sampleHistory(), 30)
	require.NoError(t, err)
	assert.Equal(t, "Warning", prediction.PredictedStatus)
	assert.NotNil(t, prediction.Predictions)
	assert.Empty(t, prediction.Predictions)
}

func TestPredictCashflow_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.PredictCashflow(context.Background(), 7, sampleHistory(), 30)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPredictCashflow_Unreachable(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.PredictCashflow(context.Background(), 7, sampleHistory(), 30)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDetectAnomalies(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detect/anomaly", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"anomalies": []map[string]interface{}{
				{"date": "2025-06-17", "amount": 2500000.0, "reason": "Unusually large expense"},
			},
			"recommendation": "Review the flagged expense.",
		})
	})

	report, err := client.DetectAnomalies(context.Background(), 7, sampleHistory())
	require.NoError(t, err)

	require.Len(t, report.Anomalies, 1)
	anomaly := report.Anomalies[0]
	assert.Equal(t, "Unusually large expense", anomaly.Description)
	// Missing fields get conservative defaults
	assert.Equal(t, "unknown", anomaly.Type)
	assert.Equal(t, "low", anomaly.Severity)

	assert.Equal(t, 1, report.TotalAnomalies)
	assert.Equal(t, 0.75, report.ConfidenceScore)
}

func TestDetectAnomalies_CleanHistory(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"anomalies": []interface{}{}})
	})

	report, err := client.DetectAnomalies(context.Background(), 7, sampleHistory())
	require.NoError(t, err)
	assert.Empty(t, report.Anomalies)
	assert.Equal(t, 0, report.TotalAnomalies)
	assert.Equal(t, 0.9, report.ConfidenceScore)
}

func TestCategorizeReceipt(t *testing.T) {
	var gotPayload map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categorize/receipt", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"category":   "Supplies",
			"confidence": 0.88,
		})
	})

	result, err := client.CategorizeReceipt(context.Background(), "Toko Plastik Jaya 45.000", "")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"text": "Toko Plastik Jaya 45.000"}, gotPayload)
	assert.Equal(t, "Supplies", result.Category)
	assert.Equal(t, 0.88, result.Confidence)
}

func TestCategorizeReceipt_DefaultCategory(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"confidence": 0.2})
	})

	result, err := client.CategorizeReceipt(context.Background(), "illegible", "")
	require.NoError(t, err)
	assert.Equal(t, "Other", result.Category)
}

func TestCategorizeReceipt_MalformedResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.CategorizeReceipt(context.Background(), "text", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}
