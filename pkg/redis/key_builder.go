package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Feed key builders

func (kb *KeyBuilder) KeyEmotionFeedPage(page, limit int) string {
	return kb.BuildKey(fmt.Sprintf(KeyEmotionFeedPage, page, limit))
}

func (kb *KeyBuilder) KeySignalFeedPage(page, limit int) string {
	return kb.BuildKey(fmt.Sprintf(KeySignalFeedPage, page, limit))
}

func (kb *KeyBuilder) PatternEmotionFeed() string {
	return kb.BuildKey(PatternEmotionFeed)
}

func (kb *KeyBuilder) PatternSignalFeed() string {
	return kb.BuildKey(PatternSignalFeed)
}
