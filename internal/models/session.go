package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity-provider level record embedded in a session.
type User struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	FullName         string     `json:"full_name,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Session is the provider-issued proof of authentication. Tokens are
// opaque to everything except the gateway's claim decoding.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Expired reports whether the access token is past its expiry, with no
// grace margin.
func (s *Session) Expired() bool {
	return s != nil && !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
