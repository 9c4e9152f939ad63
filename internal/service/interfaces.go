package service

import (
	"context"

	"resonance-api/internal/domain"
)

// EmotionStore is the persistence surface the emotion service needs.
type EmotionStore interface {
	Create(ctx context.Context, emotion *domain.Emotion) error
	Feed(ctx context.Context, limit, offset int) ([]domain.Emotion, error)
	History(ctx context.Context, userID string, limit int) ([]domain.Emotion, error)
	GetByID(ctx context.Context, id string) (*domain.Emotion, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// SignalStore is the persistence surface the signal service needs.
type SignalStore interface {
	Create(ctx context.Context, signal *domain.EmotionalSignal) error
	Feed(ctx context.Context, limit, offset int) ([]domain.EmotionalSignal, error)
	History(ctx context.Context, userID string, limit int) ([]domain.EmotionalSignal, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// ProfileStore is the persistence surface the user service needs.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name string, avatar *string) (*domain.User, error)
	Delete(ctx context.Context, userID string) (bool, error)
}
