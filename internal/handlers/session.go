package handlers

import (
	"context"
	"time"

	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/MohamedO6/catalynk/internal/services"
	"github.com/MohamedO6/catalynk/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type SessionHandler struct {
	store     StoreInterface
	profiles  ProfileServiceInterface
	navigator NavigatorInterface
}

func NewSessionHandler(store StoreInterface, profiles ProfileServiceInterface, navigator NavigatorInterface) *SessionHandler {
	return &SessionHandler{
		store:     store,
		profiles:  profiles,
		navigator: navigator,
	}
}

func (h *SessionHandler) GetSession(c *drift.Context) {
	st := h.store.State()
	_ = c.JSON(200, dto.SessionResponse{
		User:    st.User,
		Profile: st.Profile,
		Loading: st.Loading,
	})
}

func (h *SessionHandler) GetNavigation(c *drift.Context) {
	dest := h.navigator.Current()
	_ = c.JSON(200, dto.NavigationResponse{
		Destination: dest.String(),
		Route:       dest.Route(),
	})
}

func (h *SessionHandler) SignOut(c *drift.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Local state is already cleared when the remote call fails; report
	// success either way, the user is signed out as far as this device
	// is concerned.
	_ = h.store.SignOut(ctx)
	_ = c.JSON(200, dto.MessageResponse{Message: "signed out"})
}

// SelectRole completes onboarding: upserts the profile with the chosen
// role and refreshes the store so the resolver moves to the main app.
func (h *SessionHandler) SelectRole(c *drift.Context) {
	var req dto.RoleSelectionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		c.BadRequest("unknown role: " + req.Role)
		return
	}

	st := h.store.State()
	if st.User == nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	profile, err := h.profiles.Upsert(ctx, st.User.ID, st.User.Email, services.ProfileUpdate{
		FullName: st.User.FullName,
		Role:     role,
	})
	if err != nil {
		c.InternalServerError("failed to save role")
		return
	}

	h.store.RefreshProfile(ctx)

	_ = c.JSON(200, profile)
}
