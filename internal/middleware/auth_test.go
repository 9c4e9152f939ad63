package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resonance-api/internal/service/auth"
	"resonance-api/pkg/errors"
	"resonance-api/pkg/logger"
)

func newAuthHandler(t *testing.T, tokens TokenVerifier) http.Handler {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)

	return Auth(tokens, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(GetUserID(r)))
	}))
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.Issue("user-42")
	require.NoError(t, err)

	handler := newAuthHandler(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/api/emotions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", rec.Body.String())
}

func TestAuth_Rejections(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	otherTokens := auth.NewTokenManager("other-secret", time.Hour)
	foreign, err := otherTokens.Issue("user-42")
	require.NoError(t, err)

	expiredTokens := auth.NewTokenManager("test-secret", -time.Hour)
	expired, err := expiredTokens.Issue("user-42")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Token abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + foreign},
		{"expired token", "Bearer " + expired},
	}

	handler := newAuthHandler(t, tokens)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/emotions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp errors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, errors.ErrorTypeAuthentication, resp.Error.Type)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestGetUserID_WithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetUserID(req))
}

func TestRequestID_ConcurrentRequests(t *testing.T) {
	log, err := logger.New("debug")
	require.NoError(t, err)

	handler := RequestID(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	const workers = 50
	ids := make(chan string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			ids <- rec.Header().Get("X-Request-ID")
		}()
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		assert.NotEmpty(t, id)
	}
}

func TestRequestID(t *testing.T) {
	log, err := logger.New("error")
	require.NoError(t, err)

	handler := RequestID(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := r.Context().Value(RequestIDContextKey).(string)
		assert.NotEmpty(t, id)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
