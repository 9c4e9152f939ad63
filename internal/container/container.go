package container

import (
	"time"

	"resonance-api/internal/config"
	"resonance-api/internal/repository"
	"resonance-api/internal/service"
	"resonance-api/internal/service/auth"
	"resonance-api/pkg/database"
	"resonance-api/pkg/logger"
	"resonance-api/pkg/redis"
)

// SessionTTL is how long an issued session token remains valid.
const SessionTTL = 7 * 24 * time.Hour

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.PostgresDB
	RedisClient *redis.Client

	TokenManager    *auth.TokenManager
	IdentityService *auth.IdentityService
	EmotionService  *service.EmotionService
	SignalService   *service.SignalService
	UserService     *service.UserService
}

// New creates a new dependency injection container. The database connection
// is required; Redis is optional and its absence only disables feed caching.
func New(cfg *config.Config, log *logger.Logger, db *database.PostgresDB) (*Container, error) {
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	userRepo := repository.NewUserRepository(db)
	emotionRepo := repository.NewEmotionRepository(db)
	signalRepo := repository.NewSignalRepository(db)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, SessionTTL)
	verifier := auth.NewGoogleVerifier(cfg.GoogleClientID)
	identityService := auth.NewIdentityService(userRepo, tokenManager, verifier, log)

	feedCache := service.NewFeedCache(redisClient, log.Logger)
	emotionService := service.NewEmotionService(emotionRepo, userRepo, feedCache, log)
	signalService := service.NewSignalService(signalRepo, feedCache, log)
	userService := service.NewUserService(userRepo, log)

	return &Container{
		Config:          cfg,
		Logger:          log,
		DB:              db,
		RedisClient:     redisClient,
		TokenManager:    tokenManager,
		IdentityService: identityService,
		EmotionService:  emotionService,
		SignalService:   signalService,
		UserService:     userService,
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}
