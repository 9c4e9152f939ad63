package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", TokenTTL)

	token, err := m.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	// Negative TTL produces a token that is already past expiry.
	expired := NewTokenManager("test-secret", -time.Hour)

	token, err := expired.Issue("user-123")
	require.NoError(t, err)

	verifier := NewTokenManager("test-secret", TokenTTL)
	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", TokenTTL)
	verifier := NewTokenManager("secret-b", TokenTTL)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_MalformedTokens(t *testing.T) {
	m := NewTokenManager("test-secret", TokenTTL)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"not a JWT", "just-a-random-string"},
		{"two segments", "header.payload"},
		{"garbage segments", "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestTokenManager_TokenValidWithinTTL(t *testing.T) {
	m := NewTokenManager("test-secret", TokenTTL)

	token, err := m.Issue("user-123")
	require.NoError(t, err)

	// A freshly issued token stays valid; expiry sits 7 days out.
	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}
