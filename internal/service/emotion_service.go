package service

import (
	"context"

	"github.com/google/uuid"

	"resonance-api/internal/domain"
	"resonance-api/pkg/errors"
	"resonance-api/pkg/logger"
)

// HistoryLimit caps the caller-scoped history listing. History takes no
// pagination parameters.
const HistoryLimit = 50

// emotionNotFoundMessage is shared by the missing-record and not-owned
// delete paths so the two stay indistinguishable.
const emotionNotFoundMessage = "Emotion not found or unauthorized"

// EmotionService implements the emotion post operations: create, global
// paginated feed, own history, fetch by id and owner-scoped delete.
type EmotionService struct {
	emotions EmotionStore
	users    ProfileStore
	cache    *FeedCache
	log      *logger.Logger
}

// NewEmotionService creates a new emotion service.
func NewEmotionService(emotions EmotionStore, users ProfileStore, cache *FeedCache, log *logger.Logger) *EmotionService {
	return &EmotionService{
		emotions: emotions,
		users:    users,
		cache:    cache,
		log:      log,
	}
}

// Create persists a validated emotion for userID and returns it with the
// owner's public fields attached.
func (s *EmotionService) Create(ctx context.Context, userID string, req *domain.CreateEmotionRequest) (*domain.Emotion, error) {
	emotion := &domain.Emotion{
		UserID:          userID,
		Color:           req.Color,
		Pattern:         req.Pattern,
		MotionIntensity: *req.MotionIntensity,
	}

	if err := s.emotions.Create(ctx, emotion); err != nil {
		return nil, errors.NewInternalError("Failed to create emotion", err)
	}

	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("Failed to expand owner on created emotion")
	} else if owner != nil {
		emotion.Owner = &domain.Owner{Name: owner.Name, Avatar: owner.Avatar}
	}

	s.cache.InvalidateEmotionFeed(ctx)

	s.log.WithFields(map[string]interface{}{
		"emotion_id": emotion.ID,
		"user_id":    userID,
		"pattern":    emotion.Pattern,
	}).Info("Emotion created")

	return emotion, nil
}

// Feed returns one page of the global feed, newest first. Callers infer the
// end of the feed from a short page; no total count is computed.
func (s *EmotionService) Feed(ctx context.Context, page, limit int) ([]domain.Emotion, error) {
	if cached, ok := s.cache.GetEmotionPage(ctx, page, limit); ok {
		return cached, nil
	}

	offset := (page - 1) * limit
	emotions, err := s.emotions.Feed(ctx, limit, offset)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load emotion feed", err)
	}
	if emotions == nil {
		emotions = []domain.Emotion{}
	}

	s.cache.StoreEmotionPage(ctx, page, limit, emotions)

	return emotions, nil
}

// History returns the caller's own posts, newest first, capped at
// HistoryLimit.
func (s *EmotionService) History(ctx context.Context, userID string) ([]domain.Emotion, error) {
	emotions, err := s.emotions.History(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load emotion history", err)
	}
	if emotions == nil {
		emotions = []domain.Emotion{}
	}
	return emotions, nil
}

// Get fetches one emotion by id with the owner profile attached. Any
// authenticated user may fetch any emotion.
func (s *EmotionService) Get(ctx context.Context, id string) (*domain.Emotion, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewNotFoundError("Emotion not found")
	}

	emotion, err := s.emotions.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get emotion", err)
	}
	if emotion == nil {
		return nil, errors.NewNotFoundError("Emotion not found")
	}

	return emotion, nil
}

// Delete removes an emotion owned by userID. A missing record and a record
// owned by someone else produce the same not-found error, so callers cannot
// probe which emotions exist.
func (s *EmotionService) Delete(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.NewNotFoundError(emotionNotFoundMessage)
	}

	deleted, err := s.emotions.Delete(ctx, id, userID)
	if err != nil {
		return errors.NewInternalError("Failed to delete emotion", err)
	}
	if !deleted {
		return errors.NewNotFoundError(emotionNotFoundMessage)
	}

	s.cache.InvalidateEmotionFeed(ctx)

	s.log.WithFields(map[string]interface{}{
		"emotion_id": id,
		"user_id":    userID,
	}).Info("Emotion deleted")

	return nil
}
