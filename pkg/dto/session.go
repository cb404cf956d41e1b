package dto

import "github.com/MohamedO6/catalynk/internal/models"

type SessionResponse struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
	Loading bool            `json:"loading"`
}

type NavigationResponse struct {
	Destination string `json:"destination"`
	Route       string `json:"route"`
}

type RoleSelectionRequest struct {
	Role string `json:"role"`
}
