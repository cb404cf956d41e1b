package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/MohamedO6/catalynk/internal/database"
	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileService maps identity ids to application-level profile rows.
type ProfileService struct {
	db *database.DB
}

func NewProfileService(db *database.DB) *ProfileService {
	return &ProfileService{db: db}
}

// ProfileUpdate carries partial fields for Upsert. Nil pointers and the
// zero Role/Tier leave the stored value untouched.
type ProfileUpdate struct {
	FullName  string
	AvatarURL *string
	Bio       *string
	Location  *string
	Website   *string
	Role      models.Role
	Tier      models.Tier
}

// GetByID looks up a profile by identity id. A missing row is not an
// error: it returns (nil, nil), the expected state for a just-registered
// user who has not picked a role yet. Any other failure is returned as
// an error so callers can tell the two apart.
func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.scanOne(s.db.Pool.QueryRow(ctx, `
		SELECT id, email, full_name, avatar_url, bio, location, website, role, tier, verified, created_at, updated_at
		FROM profiles WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// Upsert creates or updates the profile keyed by identity id. Repeating
// the same (id, role) pair leaves a single row with that role.
func (s *ProfileService) Upsert(ctx context.Context, id uuid.UUID, email string, update ProfileUpdate) (*models.Profile, error) {
	profile, err := s.scanOne(s.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (id, email, full_name, avatar_url, bio, location, website, role, tier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE(NULLIF($9, ''), 'free'))
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = COALESCE(NULLIF(EXCLUDED.full_name, ''), profiles.full_name),
			avatar_url = COALESCE(EXCLUDED.avatar_url, profiles.avatar_url),
			bio = COALESCE(EXCLUDED.bio, profiles.bio),
			location = COALESCE(EXCLUDED.location, profiles.location),
			website = COALESCE(EXCLUDED.website, profiles.website),
			role = COALESCE(EXCLUDED.role, profiles.role),
			tier = COALESCE(NULLIF($9, ''), profiles.tier),
			updated_at = NOW()
		RETURNING id, email, full_name, avatar_url, bio, location, website, role, tier, verified, created_at, updated_at
	`, id, email, update.FullName, update.AvatarURL, update.Bio, update.Location, update.Website,
		nullableRole(update.Role), string(update.Tier)))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) scanOne(row pgx.Row) (*models.Profile, error) {
	var profile models.Profile
	var role *string
	err := row.Scan(
		&profile.ID, &profile.Email, &profile.FullName,
		&profile.AvatarURL, &profile.Bio, &profile.Location, &profile.Website,
		&role, &profile.Tier, &profile.Verified,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if role != nil {
		profile.Role = models.Role(*role)
	}
	return &profile, nil
}

func nullableRole(r models.Role) *string {
	if r == "" {
		return nil
	}
	s := string(r)
	return &s
}
