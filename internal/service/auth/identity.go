package auth

import (
	"context"

	"resonance-api/internal/domain"
	"resonance-api/pkg/errors"
	"resonance-api/pkg/logger"
)

// UserStore is the persistence surface the identity exchange needs.
type UserStore interface {
	FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	LinkGoogleID(ctx context.Context, userID, googleID string) error
	TouchLastLogin(ctx context.Context, userID string) error
}

// IdentityService bridges a verified Google credential to a local account and
// a session token.
type IdentityService struct {
	users    UserStore
	tokens   *TokenManager
	verifier GoogleVerifier
	log      *logger.Logger
}

// NewIdentityService creates a new identity service.
func NewIdentityService(users UserStore, tokens *TokenManager, verifier GoogleVerifier, log *logger.Logger) *IdentityService {
	return &IdentityService{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		log:      log,
	}
}

// Exchange verifies the credential, resolves the account and issues a session
// token. Resolution order: google_id, then email (back-filling google_id on
// the matched account), then a fresh account. last_login is stamped on every
// successful exchange, so repeating the call for the same subject is
// idempotent apart from the advancing login time.
func (s *IdentityService) Exchange(ctx context.Context, credential string) (*domain.AuthResponse, error) {
	if credential == "" {
		return nil, errors.NewValidationError("Credential is required", nil)
	}

	claims, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		s.log.WithError(err).Warn("Google credential verification failed")
		return nil, errors.NewValidationError("Invalid identity credential", nil)
	}
	if claims.Email == "" {
		return nil, errors.NewValidationError("Credential carries no email", nil)
	}

	user, err := s.users.FindByGoogleID(ctx, claims.Sub)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up account", err)
	}

	if user == nil {
		user, err = s.users.FindByEmail(ctx, claims.Email)
		if err != nil {
			return nil, errors.NewInternalError("Failed to look up account", err)
		}

		if user != nil {
			// Existing email-based account signing in with Google for the
			// first time: back-fill the subject id.
			if err := s.users.LinkGoogleID(ctx, user.ID, claims.Sub); err != nil {
				return nil, errors.NewInternalError("Failed to link account", err)
			}
			user.GoogleID = &claims.Sub
			s.log.WithField("user_id", user.ID).Info("Linked Google identity to existing account")
		}
	}

	if user == nil {
		name := claims.Name
		if name == "" {
			name = claims.Email
		}
		var avatar *string
		if claims.Picture != "" {
			avatar = &claims.Picture
		}
		user = &domain.User{
			GoogleID: &claims.Sub,
			Email:    claims.Email,
			Name:     name,
			Avatar:   avatar,
			Provider: "google",
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, errors.NewInternalError("Failed to create account", err)
		}
		s.log.WithField("user_id", user.ID).Info("Created account from Google identity")
	} else {
		if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
			return nil, errors.NewInternalError("Failed to update login time", err)
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to issue session token", err)
	}

	return &domain.AuthResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}
