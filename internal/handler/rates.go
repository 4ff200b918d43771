package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/flowiq/cashflow-service/internal/models"
)

// GetUSDRate returns the central-bank USD reference rate
func (h *Handler) GetUSDRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.rates.GetUSDRate()
	if err != nil {
		h.log.Errorf("Failed to get USD rate: %v", err)
		h.respondJSON(w, http.StatusServiceUnavailable, models.Fail("rates service unavailable"))
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(map[string]decimal.Decimal{
		"usd_rate": rate,
	}))
}
