package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"resonance-api/internal/domain"
	"resonance-api/internal/middleware"
)

// EmotionService covers the emotion post operations the HTTP layer exposes.
type EmotionService interface {
	Create(ctx context.Context, userID string, req *domain.CreateEmotionRequest) (*domain.Emotion, error)
	Feed(ctx context.Context, page, limit int) ([]domain.Emotion, error)
	History(ctx context.Context, userID string) ([]domain.Emotion, error)
	Get(ctx context.Context, id string) (*domain.Emotion, error)
	Delete(ctx context.Context, id, userID string) error
}

type EmotionHandler struct {
	emotions EmotionService
}

func NewEmotionHandler(emotions EmotionService) *EmotionHandler {
	return &EmotionHandler{
		emotions: emotions,
	}
}

// Create handles POST /api/emotions
func (h *EmotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req domain.CreateEmotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	emotion, err := h.emotions.Create(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, emotion)
}

// Feed handles GET /api/emotions/feed
func (h *EmotionHandler) Feed(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	emotions, err := h.emotions.Feed(r.Context(), page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, emotions)
}

// History handles GET /api/emotions/history
func (h *EmotionHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	emotions, err := h.emotions.History(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, emotions)
}

// GetByID handles GET /api/emotions/{id}
func (h *EmotionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emotion, err := h.emotions.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, emotion)
}

// Delete handles DELETE /api/emotions/{id}
func (h *EmotionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	id := chi.URLParam(r, "id")

	if err := h.emotions.Delete(r.Context(), id, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Emotion deleted successfully"})
}
