package handlers

import (
	"context"

	"github.com/MohamedO6/catalynk/internal/identity"
	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/MohamedO6/catalynk/internal/navigation"
	"github.com/MohamedO6/catalynk/internal/services"
	"github.com/MohamedO6/catalynk/internal/session"
	"github.com/google/uuid"
)

// GatewayInterface defines the methods handlers use from the identity
// gateway.
type GatewayInterface interface {
	SignUp(ctx context.Context, params identity.SignUpParams) (*identity.SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SetSession(ctx context.Context, accessToken, refreshToken string) (*models.Session, error)
	ResetPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, newPassword string) error
}

// StoreInterface defines the methods handlers use from the session store.
type StoreInterface interface {
	State() session.State
	SignOut(ctx context.Context) error
	RefreshProfile(ctx context.Context)
}

// ProfileServiceInterface defines the methods handlers use from the
// profile service.
type ProfileServiceInterface interface {
	Upsert(ctx context.Context, id uuid.UUID, email string, update services.ProfileUpdate) (*models.Profile, error)
}

// NavigatorInterface defines the methods handlers use from the
// navigation dispatcher.
type NavigatorInterface interface {
	Current() navigation.Destination
	ScheduleFallback()
}
