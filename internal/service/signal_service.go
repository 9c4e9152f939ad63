package service

import (
	"context"

	"github.com/google/uuid"

	"resonance-api/internal/domain"
	"resonance-api/pkg/errors"
	"resonance-api/pkg/logger"
)

const signalNotFoundMessage = "Signal not found or unauthorized"

// SignalService implements the emotional signal operations. Signals share
// the CRUD shape of emotions but live in their own collection with their own
// field ranges, and their feed exposes only the owner's avatar.
type SignalService struct {
	signals SignalStore
	cache   *FeedCache
	log     *logger.Logger
}

// NewSignalService creates a new signal service.
func NewSignalService(signals SignalStore, cache *FeedCache, log *logger.Logger) *SignalService {
	return &SignalService{
		signals: signals,
		cache:   cache,
		log:     log,
	}
}

// Create persists a validated signal for userID.
func (s *SignalService) Create(ctx context.Context, userID string, req *domain.CreateSignalRequest) (*domain.EmotionalSignal, error) {
	signal := &domain.EmotionalSignal{
		UserID:          userID,
		Color:           req.Color,
		Motion:          req.Motion,
		Intensity:       *req.Intensity,
		SilenceDuration: req.SilenceSeconds(),
	}

	if err := s.signals.Create(ctx, signal); err != nil {
		return nil, errors.NewInternalError("Failed to create signal", err)
	}

	s.cache.InvalidateSignalFeed(ctx)

	s.log.WithFields(map[string]interface{}{
		"signal_id": signal.ID,
		"user_id":   userID,
		"motion":    signal.Motion,
	}).Info("Signal created")

	return signal, nil
}

// Feed returns one page of the global signal feed, newest first.
func (s *SignalService) Feed(ctx context.Context, page, limit int) ([]domain.EmotionalSignal, error) {
	if cached, ok := s.cache.GetSignalPage(ctx, page, limit); ok {
		return cached, nil
	}

	offset := (page - 1) * limit
	signals, err := s.signals.Feed(ctx, limit, offset)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load signal feed", err)
	}
	if signals == nil {
		signals = []domain.EmotionalSignal{}
	}

	s.cache.StoreSignalPage(ctx, page, limit, signals)

	return signals, nil
}

// History returns the caller's own signals, newest first, capped at
// HistoryLimit.
func (s *SignalService) History(ctx context.Context, userID string) ([]domain.EmotionalSignal, error) {
	signals, err := s.signals.History(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load signal history", err)
	}
	if signals == nil {
		signals = []domain.EmotionalSignal{}
	}
	return signals, nil
}

// Delete removes a signal owned by userID, with the same non-disclosure
// behavior as emotion deletes.
func (s *SignalService) Delete(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.NewNotFoundError(signalNotFoundMessage)
	}

	deleted, err := s.signals.Delete(ctx, id, userID)
	if err != nil {
		return errors.NewInternalError("Failed to delete signal", err)
	}
	if !deleted {
		return errors.NewNotFoundError(signalNotFoundMessage)
	}

	s.cache.InvalidateSignalFeed(ctx)

	s.log.WithFields(map[string]interface{}{
		"signal_id": id,
		"user_id":   userID,
	}).Info("Signal deleted")

	return nil
}
