package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/flowiq/cashflow-service/internal/apperr"
	"github.com/flowiq/cashflow-service/internal/middleware"
	"github.com/flowiq/cashflow-service/internal/models"
)

// respondJSON writes an envelope with the given status code
func (h *Handler) respondJSON(w http.ResponseWriter, status int, resp models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

// respondError maps a service error to an HTTP status and failure envelope
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var (
		notFound     *apperr.NotFoundError
		unauthorized *apperr.UnauthorizedError
		badRequest   *apperr.BadRequestError
		conflict     *apperr.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		h.respondJSON(w, http.StatusNotFound, models.Fail(err.Error()))
	case errors.As(err, &unauthorized):
		h.respondJSON(w, http.StatusForbidden, models.Fail(err.Error()))
	case errors.As(err, &badRequest):
		h.respondJSON(w, http.StatusBadRequest, models.Fail(err.Error()))
	case errors.As(err, &conflict):
		h.respondJSON(w, http.StatusConflict, models.Fail(err.Error()))
	default:
		h.log.Errorf("Unhandled error: %v", err)
		h.respondJSON(w, http.StatusInternalServerError, models.Fail("an unexpected error occurred, please try again later"))
	}
}

// decodeJSON parses the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.BadRequest(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

// pathID extracts an int64 path variable
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest(fmt.Sprintf("invalid %s: %q", name, raw))
	}
	return id, nil
}

// authedUser extracts the user id the auth middleware stored in the context
func authedUser(r *http.Request) (int64, error) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		return 0, apperr.Unauthorized()
	}
	return userID, nil
}

// parseTimeParam parses a query timestamp, accepting RFC 3339 or a bare
// calendar date interpreted as UTC midnight
func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.BadRequest(fmt.Sprintf("invalid timestamp: %q", value))
}

// rangeParams extracts required from/to query parameters
func rangeParams(r *http.Request) (from, to time.Time, err error) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, apperr.BadRequest("from and to query parameters are required")
	}
	if from, err = parseTimeParam(fromStr); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to, err = parseTimeParam(toStr); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// intQuery reads an integer query parameter with a default
func intQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
