package testutil

import (
	"time"

	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/google/uuid"
)

// NewTestUser returns a confirmed user with fresh ids.
func NewTestUser() models.User {
	now := time.Now()
	return models.User{
		ID:               uuid.New(),
		Email:            "test@example.com",
		EmailConfirmedAt: &now,
		FullName:         "Test User",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// NewTestSession returns a session for user expiring in an hour.
func NewTestSession(user models.User) *models.Session {
	return &models.Session{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         user,
	}
}

// NewTestProfile returns an onboarded profile for user with the given
// role.
func NewTestProfile(user models.User, role models.Role) *models.Profile {
	now := time.Now()
	return &models.Profile{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      role,
		Tier:      models.TierFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
