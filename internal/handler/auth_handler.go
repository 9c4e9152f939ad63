package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"resonance-api/internal/domain"
	"resonance-api/internal/middleware"
)

// IdentityService exchanges a Google credential for a session.
type IdentityService interface {
	Exchange(ctx context.Context, credential string) (*domain.AuthResponse, error)
}

// ProfileReader loads the authenticated caller's public profile.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID string) (*domain.PublicUser, error)
}

type AuthHandler struct {
	identity IdentityService
	profiles ProfileReader
}

func NewAuthHandler(identity IdentityService, profiles ProfileReader) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		profiles: profiles,
	}
}

// GoogleExchange handles POST /api/auth/google. It accepts a Google ID token
// credential and returns a session token plus the resolved user.
func (h *AuthHandler) GoogleExchange(w http.ResponseWriter, r *http.Request) {
	var req domain.GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.identity.Exchange(r.Context(), req.Credential)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Verify handles GET /api/auth/verify. A request that reaches this handler
// already carries a valid session; it returns the caller's current profile.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	user, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
