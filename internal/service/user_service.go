package service

import (
	"context"

	"resonance-api/internal/domain"
	"resonance-api/pkg/errors"
	"resonance-api/pkg/logger"
)

// UserService implements the profile operations. Every operation is scoped
// to the authenticated caller; there is no endpoint to read another user's
// full profile.
type UserService struct {
	users ProfileStore
	log   *logger.Logger
}

// NewUserService creates a new user service.
func NewUserService(users ProfileStore, log *logger.Logger) *UserService {
	return &UserService{
		users: users,
		log:   log,
	}
}

// GetProfile returns the caller's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get profile", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}
	return user.Public(), nil
}

// UpdateProfile changes the caller's name and avatar. Email and provider are
// immutable after creation.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.PublicUser, error) {
	user, err := s.users.UpdateProfile(ctx, userID, req.Name, req.Avatar)
	if err != nil {
		return nil, errors.NewInternalError("Failed to update profile", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	s.log.WithField("user_id", userID).Info("Profile updated")
	return user.Public(), nil
}

// DeleteAccount hard-deletes the caller's user row. Owned emotions and
// signals are intentionally left in place and become orphaned; the feed
// still serves them without an owner projection.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	deleted, err := s.users.Delete(ctx, userID)
	if err != nil {
		return errors.NewInternalError("Failed to delete account", err)
	}
	if !deleted {
		return errors.NewNotFoundError("User not found")
	}

	s.log.WithField("user_id", userID).Warn("Account deleted; owned posts remain orphaned")
	return nil
}
