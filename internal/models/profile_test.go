package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	tests := []struct {
		role  Role
		valid bool
	}{
		{RoleFounder, true},
		{RoleFreelancer, true},
		{RoleInvestor, true},
		{Role(""), false},
		{Role("admin"), false},
		{Role("Founder"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.role.Valid(), "role %q", tt.role)
	}
}

func TestProfile_Onboarded(t *testing.T) {
	var nilProfile *Profile
	assert.False(t, nilProfile.Onboarded())

	assert.False(t, (&Profile{}).Onboarded())
	assert.False(t, (&Profile{Role: Role("moderator")}).Onboarded())
	assert.True(t, (&Profile{Role: RoleFreelancer}).Onboarded())
}
