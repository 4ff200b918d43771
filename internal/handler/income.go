package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flowiq/cashflow-service/internal/models"
)

type incomeRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Source          string          `json:"source"`
	TransactionDate time.Time       `json:"transaction_date"`
	Notes           string          `json:"notes"`
}

// CreateIncome records an income transaction
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	income, err := h.svc.CreateIncome(r.Context(), businessID, &models.Income{
		Amount:          req.Amount,
		Source:          req.Source,
		TransactionDate: req.TransactionDate,
		Notes:           req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, models.OK(income))
}

// GetIncome returns one income transaction
func (h *Handler) GetIncome(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}
	incomeID, err := pathID(r, "incomeID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	income, err := h.svc.GetIncome(r.Context(), incomeID, businessID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(income))
}

// UpdateIncome updates one income transaction
func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}
	incomeID, err := pathID(r, "incomeID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	income, err := h.svc.UpdateIncome(r.Context(), incomeID, businessID, &models.Income{
		Amount:          req.Amount,
		Source:          req.Source,
		TransactionDate: req.TransactionDate,
		Notes:           req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(income))
}

// DeleteIncome removes one income transaction
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}
	incomeID, err := pathID(r, "incomeID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.svc.DeleteIncome(r.Context(), incomeID, businessID); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OKMessage("Income deleted", nil))
}

// ListIncomes returns income transactions in a [from, to) range
func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}
	from, to, err := rangeParams(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	incomes, err := h.svc.ListIncomes(r.Context(), businessID, from, to)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(incomes))
}
