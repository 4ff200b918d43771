package handler

import (
	"net/http"

	"github.com/flowiq/cashflow-service/internal/models"
)

type businessRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Address     string `json:"address"`
}

// CreateBusiness registers a new business for the authenticated user
func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req businessRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	business, err := h.svc.CreateBusiness(r.Context(), userID, &models.Business{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Address:     req.Address,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, models.OK(business))
}

// ListBusinesses returns all businesses of the authenticated user
func (h *Handler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	businesses, err := h.svc.ListBusinesses(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(businesses))
}

// GetBusiness returns one business of the authenticated user
func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	business, err := h.svc.GetBusiness(r.Context(), businessID, userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(business))
}

// UpdateBusiness updates one business of the authenticated user
func (h *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	businessID, err := pathID(r, "businessID")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req businessRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	business, err := h.svc.UpdateBusiness(r.Context(), businessID, userID, &models.Business{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Address:     req.Address,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(business))
}
