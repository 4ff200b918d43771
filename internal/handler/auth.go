package handler

import (
	"net/http"

	"github.com/flowiq/cashflow-service/internal/models"
)

type registerRequest struct {
	PhoneNumber string `json:"phone_number"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
}

type otpRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	OTPCode     string `json:"otp_code"`
}

type updateProfileRequest struct {
	PhoneNumber string `json:"phone_number"`
	FullName    string `json:"full_name"`
}

// Register handles user registration and issues the first OTP
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	_, message, err := h.svc.Register(r.Context(), req.PhoneNumber, req.FullName, req.Email)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, models.OKMessage(message, map[string]string{
		"phone_number": req.PhoneNumber,
	}))
}

// RequestOTP issues a fresh OTP for an existing user
func (h *Handler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	message, err := h.svc.RequestOTP(r.Context(), req.PhoneNumber)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OKMessage(message, map[string]string{
		"phone_number": req.PhoneNumber,
	}))
}

// VerifyOTP checks the submitted code and returns a JWT
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.svc.VerifyOTP(r.Context(), req.PhoneNumber, req.OTPCode)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(result))
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	user, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(user))
}

// UpdateProfile changes the authenticated user's phone number and/or name
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), userID, req.PhoneNumber, req.FullName)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.OK(user))
}
