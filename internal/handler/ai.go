package handler

import (
	"net/http"

	"github.com/flowiq/cashflow-service/internal/models"
)

type categorizeReceiptRequest struct {
	Text        string `json:"text"`
	ImageBase64 string `json:"image_base64"`
}

// Predict returns an AI cashflow forecast built from recent history
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	lookbackDays := intQuery(r, "lookback_days", 60)
	predictionDays := intQuery(r, "prediction_days", 30)
	if predictionDays < 7 {
		predictionDays = 7
	}
	if predictionDays > 90 {
		predictionDays = 90
	}

	history, err := h.calc.History(r.Context(), businessID, lookbackDays)
	if err != nil {
		h.respondError(w, err)
		return
	}

	prediction, err := h.ai.PredictCashflow(r.Context(), businessID, history, predictionDays)
	if err != nil {
		h.respondJSON(w, http.StatusOK, models.Fail("AI service unavailable"))
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(prediction))
}

// DetectAnomalies returns AI-flagged unusual transactions
func (h *Handler) DetectAnomalies(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	lookbackDays := intQuery(r, "lookback_days", 60)

	history, err := h.calc.History(r.Context(), businessID, lookbackDays)
	if err != nil {
		h.respondError(w, err)
		return
	}

	report, err := h.ai.DetectAnomalies(r.Context(), businessID, history)
	if err != nil {
		h.respondJSON(w, http.StatusOK, models.Fail("AI service unavailable"))
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(report))
}

// CategorizeReceipt asks the AI service to categorize a receipt
func (h *Handler) CategorizeReceipt(w http.ResponseWriter, r *http.Request) {
	var req categorizeReceiptRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if req.Text == "" && req.ImageBase64 == "" {
		h.respondJSON(w, http.StatusBadRequest, models.Fail("provide receipt text or an image"))
		return
	}

	result, err := h.ai.CategorizeReceipt(r.Context(), req.Text, req.ImageBase64)
	if err != nil {
		h.respondJSON(w, http.StatusOK, models.Fail("AI service unavailable"))
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(result))
}
