package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resonance-api/internal/domain"
	"resonance-api/internal/middleware"
	"resonance-api/pkg/errors"
)

type fakeEmotionService struct {
	created   *domain.CreateEmotionRequest
	feedPage  int
	feedLimit int
	deleteErr error
}

func (s *fakeEmotionService) Create(_ context.Context, userID string, req *domain.CreateEmotionRequest) (*domain.Emotion, error) {
	s.created = req
	return &domain.Emotion{
		ID:              "e1",
		UserID:          userID,
		Color:           req.Color,
		Pattern:         req.Pattern,
		MotionIntensity: *req.MotionIntensity,
	}, nil
}

func (s *fakeEmotionService) Feed(_ context.Context, page, limit int) ([]domain.Emotion, error) {
	s.feedPage = page
	s.feedLimit = limit
	return []domain.Emotion{}, nil
}

func (s *fakeEmotionService) History(_ context.Context, userID string) ([]domain.Emotion, error) {
	return []domain.Emotion{{ID: "e1", UserID: userID}}, nil
}

func (s *fakeEmotionService) Get(_ context.Context, id string) (*domain.Emotion, error) {
	if id == "known" {
		return &domain.Emotion{ID: "known"}, nil
	}
	return nil, errors.NewNotFoundError("Emotion not found")
}

func (s *fakeEmotionService) Delete(_ context.Context, id, userID string) error {
	return s.deleteErr
}

func newEmotionRouter(svc *fakeEmotionService) http.Handler {
	h := NewEmotionHandler(svc)
	r := chi.NewRouter()
	r.Post("/emotions", h.Create)
	r.Get("/emotions/feed", h.Feed)
	r.Get("/emotions/history", h.History)
	r.Get("/emotions/{id}", h.GetByID)
	r.Delete("/emotions/{id}", h.Delete)
	return r
}

func asUser(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func TestEmotionHandler_Create(t *testing.T) {
	svc := &fakeEmotionService{}
	router := newEmotionRouter(svc)

	body := `{"color":"#4A90E2","pattern":"waves","motionIntensity":0.5}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/emotions", strings.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var emotion domain.Emotion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &emotion))
	assert.Equal(t, "user-1", emotion.UserID)
	assert.Equal(t, "waves", emotion.Pattern)
	assert.Equal(t, 0.5, emotion.MotionIntensity)
}

func TestEmotionHandler_CreateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"color":`},
		{"missing color", `{"pattern":"waves","motionIntensity":0.5}`},
		{"unknown pattern", `{"color":"#fff","pattern":"zigzag","motionIntensity":0.5}`},
		{"intensity above range", `{"color":"#fff","pattern":"waves","motionIntensity":1.5}`},
		{"missing intensity", `{"color":"#fff","pattern":"waves"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEmotionService{}
			router := newEmotionRouter(svc)

			req := asUser(httptest.NewRequest(http.MethodPost, "/emotions", strings.NewReader(tt.body)), "user-1")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.created)
		})
	}
}

func TestEmotionHandler_FeedPagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "?page=3&limit=50", 3, 50},
		{"limit capped", "?limit=500", 1, 100},
		{"page capped against offset overflow", "?page=4611686018427387904&limit=100", 1000000, 100},
		{"garbage falls back", "?page=abc&limit=-2", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEmotionService{}
			router := newEmotionRouter(svc)

			req := asUser(httptest.NewRequest(http.MethodGet, "/emotions/feed"+tt.query, nil), "user-1")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantPage, svc.feedPage)
			assert.Equal(t, tt.wantLimit, svc.feedLimit)
			// An empty page encodes as [] rather than null.
			assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestEmotionHandler_GetByID(t *testing.T) {
	svc := &fakeEmotionService{}
	router := newEmotionRouter(svc)

	req := asUser(httptest.NewRequest(http.MethodGet, "/emotions/known", nil), "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = asUser(httptest.NewRequest(http.MethodGet, "/emotions/unknown", nil), "user-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Emotion not found", resp["error"])
}

func TestEmotionHandler_Delete(t *testing.T) {
	svc := &fakeEmotionService{}
	router := newEmotionRouter(svc)

	req := asUser(httptest.NewRequest(http.MethodDelete, "/emotions/e1", nil), "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Emotion deleted successfully", resp["message"])

	svc.deleteErr = errors.NewNotFoundError("Emotion not found or unauthorized")
	req = asUser(httptest.NewRequest(http.MethodDelete, "/emotions/e1", nil), "user-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
