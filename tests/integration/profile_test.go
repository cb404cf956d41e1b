package integration

import (
	"context"
	"testing"

	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/MohamedO6/catalynk/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Integration_UpsertAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB)
	ctx := context.Background()

	userID := uuid.New()

	created, err := svc.Upsert(ctx, userID, "founder@example.com", services.ProfileUpdate{
		FullName: "Ada Lovelace",
		Role:     models.RoleFounder,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, created.ID)
	assert.Equal(t, models.RoleFounder, created.Role)
	assert.Equal(t, models.TierFree, created.Tier)
	assert.True(t, created.Onboarded())

	fetched, err := svc.GetByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Ada Lovelace", fetched.FullName)
	assert.Equal(t, models.RoleFounder, fetched.Role)
}

func TestProfileService_Integration_UpsertIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB)
	ctx := context.Background()

	userID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := svc.Upsert(ctx, userID, "repeat@example.com", services.ProfileUpdate{
			FullName: "Repeat User",
			Role:     models.RoleFreelancer,
		})
		require.NoError(t, err)
	}

	var count int
	err := tdb.DB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM profiles WHERE id = $1", userID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	profile, err := svc.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleFreelancer, profile.Role)
}

func TestProfileService_Integration_PartialUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB)
	ctx := context.Background()

	userID := uuid.New()

	_, err := svc.Upsert(ctx, userID, "partial@example.com", services.ProfileUpdate{
		FullName: "Original Name",
		Role:     models.RoleInvestor,
	})
	require.NoError(t, err)

	// An update that only sets bio leaves name and role alone.
	bio := "Early-stage angel"
	updated, err := svc.Upsert(ctx, userID, "partial@example.com", services.ProfileUpdate{
		Bio: &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, "Original Name", updated.FullName)
	assert.Equal(t, models.RoleInvestor, updated.Role)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
}

func TestProfileService_Integration_RoleChange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB)
	ctx := context.Background()

	userID := uuid.New()

	_, err := svc.Upsert(ctx, userID, "switch@example.com", services.ProfileUpdate{
		Role: models.RoleFounder,
	})
	require.NoError(t, err)

	changed, err := svc.Upsert(ctx, userID, "switch@example.com", services.ProfileUpdate{
		Role: models.RoleInvestor,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleInvestor, changed.Role)
}

func TestProfileService_Integration_GetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB)
	ctx := context.Background()

	profile, err := svc.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, profile)
}
