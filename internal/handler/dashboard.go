package handler

import (
	"net/http"
	"time"

	"github.com/flowiq/cashflow-service/internal/models"
)

type cashflowRequest struct {
	BusinessID int64     `json:"business_id"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
}

// GetDashboardSummary returns today/week/month figures for a business
func (h *Handler) GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	summary, err := h.calc.DashboardSummary(r.Context(), businessID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(summary))
}

// GetTrends returns the daily cashflow breakdown over a trailing window
func (h *Handler) GetTrends(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "weekly"
	}

	trends, err := h.calc.Trends(r.Context(), businessID, period)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(trends))
}

// GetHealth returns the month-to-date cashflow health report
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	health, err := h.calc.Health(r.Context(), businessID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(health))
}

// CalculateCashflow computes totals and status for a custom range
func (h *Handler) CalculateCashflow(w http.ResponseWriter, r *http.Request) {
	var req cashflowRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.calc.Calculate(r.Context(), req.BusinessID, req.From, req.To)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(result))
}
