package navigation

import (
	"testing"

	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/MohamedO6/catalynk/internal/session"
	"github.com/MohamedO6/catalynk/tests/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	user := testutil.NewTestUser()
	onboarded := testutil.NewTestProfile(user, models.RoleFounder)
	roleless := testutil.NewTestProfile(user, models.RoleFounder)
	roleless.Role = ""

	tests := []struct {
		name string
		st   session.State
		want Destination
	}{
		{
			name: "loading wins over everything",
			st:   session.State{User: &user, Profile: onboarded, Loading: true},
			want: DestLoading,
		},
		{
			name: "no user",
			st:   session.State{},
			want: DestAuthEntry,
		},
		{
			name: "user without profile",
			st:   session.State{User: &user},
			want: DestRoleSelection,
		},
		{
			name: "user with roleless profile",
			st:   session.State{User: &user, Profile: roleless},
			want: DestRoleSelection,
		},
		{
			name: "user with onboarded profile",
			st:   session.State{User: &user, Profile: onboarded},
			want: DestMainApp,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.st))
		})
	}
}

func TestDestination_String(t *testing.T) {
	assert.Equal(t, "ONBOARDING", DestOnboarding.String())
	assert.Equal(t, "LOADING", DestLoading.String())
	assert.Equal(t, "AUTH_ENTRY", DestAuthEntry.String())
	assert.Equal(t, "ROLE_SELECTION", DestRoleSelection.String())
	assert.Equal(t, "MAIN_APP", DestMainApp.String())
	assert.Equal(t, "UNKNOWN", Destination(99).String())
}

func TestDestination_Route(t *testing.T) {
	assert.Equal(t, RouteOnboarding, DestOnboarding.Route())
	assert.Equal(t, RouteLoading, DestLoading.Route())
	assert.Equal(t, RouteWelcome, DestAuthEntry.Route())
	assert.Equal(t, RouteRoleSelection, DestRoleSelection.Route())
	assert.Equal(t, RouteMainApp, DestMainApp.Route())
}
