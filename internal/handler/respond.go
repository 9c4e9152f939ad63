package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apperrors "resonance-api/pkg/errors"
)

// Feed pagination bounds. Out-of-range query values are clamped rather than
// rejected.
const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
	// maxPage keeps (page-1)*limit well inside int range so the OFFSET
	// never overflows negative.
	maxPage = 1_000_000
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors onto HTTP responses. Anything that
// is not an AppError is treated as an internal failure without leaking its
// message.
func respondServiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		respondError(w, appErr.StatusCode, appErr.Message)
		return
	}
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// parsePagination reads page and limit query parameters with defaults and a
// hard cap on limit. Non-numeric and non-positive values fall back to the
// defaults.
func parsePagination(r *http.Request) (page, limit int) {
	page = defaultPage
	limit = defaultLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if page > maxPage {
		page = maxPage
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
