package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resonance-api/internal/domain"
	"resonance-api/pkg/errors"
	"resonance-api/pkg/logger"
)

// fakeUserStore is an in-memory UserStore for exchange tests.
type fakeUserStore struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*domain.User{}}
}

func (s *fakeUserStore) FindByGoogleID(_ context.Context, googleID string) (*domain.User, error) {
	for _, u := range s.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	s.nextID++
	user.ID = fmt.Sprintf("user-%d", s.nextID)
	user.CreatedAt = time.Now()
	user.LastLogin = time.Now()
	copy := *user
	s.users[user.ID] = &copy
	return nil
}

func (s *fakeUserStore) LinkGoogleID(_ context.Context, userID, googleID string) error {
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	u.GoogleID = &googleID
	u.LastLogin = time.Now()
	return nil
}

func (s *fakeUserStore) TouchLastLogin(_ context.Context, userID string) error {
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	u.LastLogin = time.Now()
	return nil
}

// fakeVerifier returns canned claims without talking to Google.
type fakeVerifier struct {
	claims *GoogleClaims
	err    error
}

func (v *fakeVerifier) Verify(context.Context, string) (*GoogleClaims, error) {
	return v.claims, v.err
}

func newTestIdentityService(store *fakeUserStore, verifier GoogleVerifier) *IdentityService {
	log, _ := logger.New("error")
	tokens := NewTokenManager("test-secret", TokenTTL)
	return NewIdentityService(store, tokens, verifier, log)
}

func TestExchange_CreatesAccountOnFirstSignIn(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestIdentityService(store, &fakeVerifier{claims: &GoogleClaims{
		Sub:     "google-sub-1",
		Email:   "ana@example.com",
		Name:    "Ana",
		Picture: "https://example.com/ana.png",
	}})

	resp, err := svc.Exchange(context.Background(), "credential")
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ana", resp.User.Name)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, "google", resp.User.Provider)
	require.NotNil(t, resp.User.Avatar)
	assert.Equal(t, "https://example.com/ana.png", *resp.User.Avatar)

	// Token resolves back to the created user.
	tokens := NewTokenManager("test-secret", TokenTTL)
	userID, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
}

func TestExchange_IdempotentPerSubject(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestIdentityService(store, &fakeVerifier{claims: &GoogleClaims{
		Sub:   "google-sub-1",
		Email: "ana@example.com",
		Name:  "Ana",
	}})

	first, err := svc.Exchange(context.Background(), "credential")
	require.NoError(t, err)

	firstLogin := store.users[first.User.ID].LastLogin
	time.Sleep(2 * time.Millisecond)

	second, err := svc.Exchange(context.Background(), "credential")
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, store.users, 1)
	assert.True(t, store.users[first.User.ID].LastLogin.After(firstLogin),
		"last login should advance on repeat exchange")
}

func TestExchange_BackfillsGoogleIDOnEmailMatch(t *testing.T) {
	store := newFakeUserStore()
	existing := &domain.User{Email: "ana@example.com", Name: "Ana", Provider: "google"}
	require.NoError(t, store.Create(context.Background(), existing))

	svc := newTestIdentityService(store, &fakeVerifier{claims: &GoogleClaims{
		Sub:   "google-sub-9",
		Email: "ana@example.com",
		Name:  "Ana",
	}})

	resp, err := svc.Exchange(context.Background(), "credential")
	require.NoError(t, err)

	assert.Equal(t, existing.ID, resp.User.ID)
	stored := store.users[existing.ID]
	require.NotNil(t, stored.GoogleID)
	assert.Equal(t, "google-sub-9", *stored.GoogleID)
}

func TestExchange_InvalidCredential(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestIdentityService(store, &fakeVerifier{err: fmt.Errorf("signature mismatch")})

	_, err := svc.Exchange(context.Background(), "bad-credential")
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestExchange_EmptyCredential(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestIdentityService(store, &fakeVerifier{claims: &GoogleClaims{Sub: "s", Email: "e@example.com"}})

	_, err := svc.Exchange(context.Background(), "")
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestExchange_NameFallsBackToEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestIdentityService(store, &fakeVerifier{claims: &GoogleClaims{
		Sub:   "google-sub-2",
		Email: "noname@example.com",
	}})

	resp, err := svc.Exchange(context.Background(), "credential")
	require.NoError(t, err)
	assert.Equal(t, "noname@example.com", resp.User.Name)
}
