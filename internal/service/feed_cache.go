package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"resonance-api/internal/domain"
	"resonance-api/pkg/redis"
)

// FeedCache keeps recently served feed pages in Redis with a short TTL.
// Pages are invalidated wholesale whenever any post is created or deleted,
// so a stale page can live at most one TTL. The cache is optional: a nil
// client turns every operation into a no-op and the feed is served straight
// from Postgres.
type FeedCache struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewFeedCache creates a feed cache. redisClient may be nil.
func NewFeedCache(redisClient *redis.Client, logger *zap.Logger) *FeedCache {
	return &FeedCache{
		redis:  redisClient,
		logger: logger,
	}
}

// GetEmotionPage returns a cached emotion feed page, if present and intact.
func (c *FeedCache) GetEmotionPage(ctx context.Context, page, limit int) ([]domain.Emotion, bool) {
	if c.redis == nil {
		return nil, false
	}

	key := c.redis.KeyBuilder.KeyEmotionFeedPage(page, limit)
	cached, err := c.redis.Get(ctx, key)
	if err != nil || cached == "" {
		return nil, false
	}

	var emotions []domain.Emotion
	if err := json.Unmarshal([]byte(cached), &emotions); err != nil {
		c.logger.Warn("Emotion feed cache corrupted, falling back to database",
			zap.Int("page", page),
			zap.Error(err))
		return nil, false
	}

	c.logger.Debug("Emotion feed cache hit", zap.Int("page", page), zap.Int("limit", limit))
	return emotions, true
}

// StoreEmotionPage caches an emotion feed page.
func (c *FeedCache) StoreEmotionPage(ctx context.Context, page, limit int, emotions []domain.Emotion) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(emotions)
	if err != nil {
		c.logger.Error("Failed to marshal emotion feed page for caching", zap.Error(err))
		return
	}

	key := c.redis.KeyBuilder.KeyEmotionFeedPage(page, limit)
	if err := c.redis.Set(ctx, key, string(data), redis.TTLFeedPage); err != nil {
		c.logger.Warn("Failed to cache emotion feed page", zap.Int("page", page), zap.Error(err))
	}
}

// InvalidateEmotionFeed drops every cached emotion feed page.
func (c *FeedCache) InvalidateEmotionFeed(ctx context.Context) {
	if c.redis == nil {
		return
	}

	if err := c.redis.InvalidatePattern(ctx, c.redis.KeyBuilder.PatternEmotionFeed()); err != nil {
		c.logger.Warn("Failed to invalidate emotion feed cache", zap.Error(err))
	}
}

// GetSignalPage returns a cached signal feed page, if present and intact.
func (c *FeedCache) GetSignalPage(ctx context.Context, page, limit int) ([]domain.EmotionalSignal, bool) {
	if c.redis == nil {
		return nil, false
	}

	key := c.redis.KeyBuilder.KeySignalFeedPage(page, limit)
	cached, err := c.redis.Get(ctx, key)
	if err != nil || cached == "" {
		return nil, false
	}

	var signals []domain.EmotionalSignal
	if err := json.Unmarshal([]byte(cached), &signals); err != nil {
		c.logger.Warn("Signal feed cache corrupted, falling back to database",
			zap.Int("page", page),
			zap.Error(err))
		return nil, false
	}

	c.logger.Debug("Signal feed cache hit", zap.Int("page", page), zap.Int("limit", limit))
	return signals, true
}

// StoreSignalPage caches a signal feed page.
func (c *FeedCache) StoreSignalPage(ctx context.Context, page, limit int, signals []domain.EmotionalSignal) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(signals)
	if err != nil {
		c.logger.Error("Failed to marshal signal feed page for caching", zap.Error(err))
		return
	}

	key := c.redis.KeyBuilder.KeySignalFeedPage(page, limit)
	if err := c.redis.Set(ctx, key, string(data), redis.TTLFeedPage); err != nil {
		c.logger.Warn("Failed to cache signal feed page", zap.Int("page", page), zap.Error(err))
	}
}

// InvalidateSignalFeed drops every cached signal feed page.
func (c *FeedCache) InvalidateSignalFeed(ctx context.Context) {
	if c.redis == nil {
		return
	}

	if err := c.redis.InvalidatePattern(ctx, c.redis.KeyBuilder.PatternSignalFeed()); err != nil {
		c.logger.Warn("Failed to invalidate signal feed cache", zap.Error(err))
	}
}
