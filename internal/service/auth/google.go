package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleClaims are the identity claims extracted from a verified Google
// credential.
type GoogleClaims struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier verifies an opaque Google sign-in credential and returns the
// identity claims it asserts.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleClaims, error)
}

// googleVerifier validates Google ID tokens against Google's published keys
// and checks the audience against our OAuth client id.
type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a verifier for ID tokens issued to clientID.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, credential string) (*GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate Google credential: %w", err)
	}

	claims := &GoogleClaims{
		Sub:     getStringClaim(payload.Claims, "sub"),
		Email:   getStringClaim(payload.Claims, "email"),
		Name:    getStringClaim(payload.Claims, "name"),
		Picture: getStringClaim(payload.Claims, "picture"),
	}

	if claims.Sub == "" {
		return nil, fmt.Errorf("credential carries no subject identifier")
	}

	return claims, nil
}

// getStringClaim safely extracts a string value from a claims map
func getStringClaim(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
