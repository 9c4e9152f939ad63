package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"resonance-api/internal/domain"
	"resonance-api/internal/middleware"
)

// SignalService covers the emotional signal operations the HTTP layer
// exposes. Signals have no fetch-by-id endpoint.
type SignalService interface {
	Create(ctx context.Context, userID string, req *domain.CreateSignalRequest) (*domain.EmotionalSignal, error)
	Feed(ctx context.Context, page, limit int) ([]domain.EmotionalSignal, error)
	History(ctx context.Context, userID string) ([]domain.EmotionalSignal, error)
	Delete(ctx context.Context, id, userID string) error
}

type SignalHandler struct {
	signals SignalService
}

func NewSignalHandler(signals SignalService) *SignalHandler {
	return &SignalHandler{
		signals: signals,
	}
}

// Create handles POST /api/signals
func (h *SignalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req domain.CreateSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	signal, err := h.signals.Create(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, signal)
}

// Feed handles GET /api/signals/feed
func (h *SignalHandler) Feed(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	signals, err := h.signals.Feed(r.Context(), page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, signals)
}

// History handles GET /api/signals/history
func (h *SignalHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	signals, err := h.signals.History(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, signals)
}

// Delete handles DELETE /api/signals/{id}
func (h *SignalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	id := chi.URLParam(r, "id")

	if err := h.signals.Delete(r.Context(), id, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Signal deleted successfully"})
}
