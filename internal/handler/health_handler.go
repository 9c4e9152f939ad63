package handler

import (
	"net/http"
	"time"

	"resonance-api/pkg/database"
	"resonance-api/pkg/redis"
)

type HealthHandler struct {
	db    *database.PostgresDB
	redis *redis.Client
}

// NewHealthHandler creates a health handler. redisClient may be nil when the
// cache is not configured.
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
	}
}

// Health handles GET /health. The database is required; Redis is reported
// but never fails the check because the API degrades gracefully without it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.Health(ctx); err != nil {
		status["status"] = "unhealthy"
		status["database"] = "down"
		respondJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	status["database"] = "up"

	switch {
	case h.redis == nil:
		status["cache"] = "disabled"
	case h.redis.Health(ctx) != nil:
		status["cache"] = "down"
	default:
		status["cache"] = "up"
	}

	respondJSON(w, http.StatusOK, status)
}
