package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flowiq/cashflow-service/internal/models"
)

type expenseRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transaction_date"`
	Notes           string          `json:"notes"`
}

// CreateExpense records an expense transaction
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	expense, err := h.svc.CreateExpense(r.Context(), businessID, &models.Expense{
		Amount:          req.Amount,
		Category:        req.Category,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		Notes:           req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, models.OK(expense))
}

// GetExpense returns one expense transaction
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}
	expenseID, err := pathID(r, "expenseID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	expense, err := h.svc.GetExpense(r.Context(), expenseID, businessID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(expense))
}

// UpdateExpense updates one expense transaction
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}
	expenseID, err := pathID(r, "expenseID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	expense, err := h.svc.UpdateExpense(r.Context(), expenseID, businessID, &models.Expense{
		Amount:          req.Amount,
		Category:        req.Category,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		Notes:           req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(expense))
}

// DeleteExpense removes one expense transaction
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}
	expenseID, err := pathID(r, "expenseID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.svc.DeleteExpense(r.Context(), expenseID, businessID); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OKMessage("Expense deleted", nil))
}

// ListExpenses returns expense transactions in a [from, to) range, or by
// category when the category query parameter is present
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		expenses, err := h.svc.ListExpensesByCategory(r.Context(), businessID, category)
		if err != nil {
			h.respondError(w, err)
			return
		}
		h.respondJSON(w, http.StatusOK, models.OK(expenses))
		return
	}

	from, to, err := rangeParams(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	expenses, err := h.svc.ListExpenses(r.Context(), businessID, from, to)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(expenses))
}
