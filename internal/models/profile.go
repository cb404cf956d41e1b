package models

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which parts of the main app a user sees.
type Role string

const (
	RoleFounder    Role = "founder"
	RoleFreelancer Role = "freelancer"
	RoleInvestor   Role = "investor"
)

// Valid reports whether r is one of the known roles. The zero value is
// the "not chosen yet" variant.
func (r Role) Valid() bool {
	switch r {
	case RoleFounder, RoleFreelancer, RoleInvestor:
		return true
	}
	return false
}

// Tier is the subscription level.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Website   *string   `json:"website,omitempty"`
	Role      Role      `json:"role,omitempty"`
	Tier      Tier      `json:"tier"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Onboarded reports whether the profile has left the onboarding variant.
// A profile without a valid role is onboarding-incomplete regardless of
// any other field.
func (p *Profile) Onboarded() bool {
	return p != nil && p.Role.Valid()
}
