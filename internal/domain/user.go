package domain

import "time"

// User represents a registered account. Accounts are created on first Google
// sign-in and only name, avatar, google_id and last_login ever change after
// creation.
type User struct {
	ID        string    `json:"id"`
	GoogleID  *string   `json:"googleId,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// PublicUser is the projection returned to the client after sign-in and from
// the profile endpoints. Email stays; google_id never leaves the server.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the client-facing projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
	}
}

// Owner is the partial profile attached to a post when it is expanded for
// display.
type Owner struct {
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// SignalOwner carries only the avatar. The signal feed deliberately omits the
// owner's name.
type SignalOwner struct {
	Avatar *string `json:"avatar"`
}

// GoogleAuthRequest is the body of POST /api/auth/google.
type GoogleAuthRequest struct {
	Credential string `json:"credential"`
}

// AuthResponse is returned from a successful identity exchange.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *PublicUser `json:"user"`
}

// UpdateProfileRequest is the body of PUT /api/users/profile. Email and
// provider are immutable after creation and are not accepted here.
type UpdateProfileRequest struct {
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// Validate checks the profile update payload.
func (r *UpdateProfileRequest) Validate() error {
	if r.Name == "" {
		return &FieldError{Field: "name", Reason: "name is required"}
	}
	if len(r.Name) > 255 {
		return &FieldError{Field: "name", Reason: "name must not exceed 255 characters"}
	}
	return nil
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Reason
}
