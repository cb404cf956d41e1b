package handlers

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/MohamedO6/catalynk/internal/config"
	"github.com/MohamedO6/catalynk/internal/identity"
	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/MohamedO6/catalynk/internal/oauth"
	"github.com/MohamedO6/catalynk/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuthHandler struct {
	cfg       *config.Config
	gateway   GatewayInterface
	navigator NavigatorInterface
	providers map[string]oauth.Provider
	states    sync.Map
}

type stateData struct {
	expiresAt time.Time
}

func NewAuthHandler(cfg *config.Config, gateway GatewayInterface, navigator NavigatorInterface) *AuthHandler {
	h := &AuthHandler{
		cfg:       cfg,
		gateway:   gateway,
		navigator: navigator,
		providers: map[string]oauth.Provider{
			"google": oauth.NewGoogleProvider(cfg.Provider.URL),
			"github": oauth.NewGitHubProvider(cfg.Provider.URL),
		},
	}

	go h.cleanupStates()

	return h
}

func (h *AuthHandler) cleanupStates() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		h.states.Range(func(key, value interface{}) bool {
			if sd, ok := value.(stateData); ok && now.After(sd.expiresAt) {
				h.states.Delete(key)
			}
			return true
		})
	}
}

func (h *AuthHandler) SignUp(c *drift.Context) {
	var req dto.SignUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	role := models.Role(req.Role)
	if req.Role != "" && !role.Valid() {
		c.BadRequest("unknown role: " + req.Role)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := h.gateway.SignUp(ctx, identity.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     role,
	})
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	_ = c.JSON(200, dto.SignUpResponse{
		UserID:           result.UserID.String(),
		ConfirmationSent: result.ConfirmationSent,
	})
}

func (h *AuthHandler) SignIn(c *drift.Context) {
	var req dto.SignInRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := h.gateway.SignIn(ctx, req.Email, req.Password); err != nil {
		c.Unauthorized(err.Error())
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "signed in"})
}

func (h *AuthHandler) Recover(c *drift.Context) {
	var req dto.RecoverRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.gateway.ResetPassword(ctx, req.Email); err != nil {
		c.BadRequest(err.Error())
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "recovery email sent"})
}

func (h *AuthHandler) UpdatePassword(c *drift.Context) {
	var req dto.UpdatePasswordRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.gateway.UpdatePassword(ctx, req.Password); err != nil {
		c.BadRequest(err.Error())
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "password updated"})
}

// GetConsentURL starts one OAuth attempt: mints CSRF state with a
// 10-minute window and hands back the provider consent URL. The state
// rides along in the redirect target so the callback sees it in the
// query even when tokens arrive in the fragment.
func (h *AuthHandler) GetConsentURL(c *drift.Context) {
	provider := c.Param("provider")

	p, ok := h.providers[provider]
	if !ok {
		c.BadRequest("unsupported provider: " + provider)
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}

	h.states.Store(state, stateData{expiresAt: time.Now().Add(10 * time.Minute)})

	redirectTo := h.cfg.OAuthRedirectURL + "?state=" + url.QueryEscape(state)

	_ = c.JSON(200, dto.ConsentURLResponse{
		URL: p.ConsentURL(state, redirectTo),
	})
}

// Callback is the OAuth redirect target. Implicit-flow tokens arrive in
// the URL fragment, invisible to the server, so the first hit serves a
// relay page that re-requests this route with the fragment folded into
// the query.
func (h *AuthHandler) Callback(c *drift.Context) {
	if c.QueryParam("relay") == "" {
		h.renderRelayPage(c)
		return
	}

	state := c.QueryParam("state")
	if state == "" {
		h.failCallback(c, "missing state parameter")
		return
	}

	sd, ok := h.states.LoadAndDelete(state)
	if !ok {
		h.failCallback(c, "invalid or expired state")
		return
	}
	if sdTyped, ok := sd.(stateData); !ok || time.Now().After(sdTyped.expiresAt) {
		h.failCallback(c, "state expired")
		return
	}

	params := url.Values{}
	for _, key := range []string{"access_token", "refresh_token", "error", "error_description"} {
		if value := c.QueryParam(key); value != "" {
			params.Set(key, value)
		}
	}

	tokens, err := oauth.ParseRedirectParams(params)
	if err != nil {
		h.failCallback(c, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := h.gateway.SetSession(ctx, tokens.AccessToken, tokens.RefreshToken); err != nil {
		h.failCallback(c, err.Error())
		return
	}

	h.renderCallbackPage(c, "You're signed in!", "Returning to Catalynk...", 200)
}

// failCallback shows the error inline and schedules the delayed
// fallback to the auth entry screen so the user is never stranded on a
// broken callback.
func (h *AuthHandler) failCallback(c *drift.Context, message string) {
	h.navigator.ScheduleFallback()
	h.renderCallbackPage(c, "Sign-in failed", message, 400)
}
