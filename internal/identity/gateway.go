package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MohamedO6/catalynk/internal/config"
	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Gateway wraps the remote identity provider's REST API. It is the only
// component that holds provider tokens; everything downstream consumes
// sessions through events and Session().
type Gateway struct {
	baseURL       string
	anonKey       string
	client        *http.Client
	refreshMargin time.Duration
	log           zerolog.Logger

	mu           sync.Mutex
	session      *models.Session
	refreshTimer *time.Timer
	listeners    map[int]Listener
	nextListener int
	closed       bool
}

func NewGateway(cfg config.ProviderConfig, refreshMargin time.Duration, log zerolog.Logger) *Gateway {
	return &Gateway{
		baseURL:       strings.TrimRight(cfg.URL, "/"),
		anonKey:       cfg.AnonKey,
		client:        &http.Client{Timeout: 30 * time.Second},
		refreshMargin: refreshMargin,
		log:           log,
		listeners:     make(map[int]Listener),
	}
}

type SignUpParams struct {
	Email    string
	Password string
	FullName string
	Role     models.Role
}

type SignUpResult struct {
	UserID uuid.UUID
	// Session is nil when the provider withholds tokens until the email
	// is confirmed.
	Session          *models.Session
	ConfirmationSent bool
}

// wire shapes for the provider's token and user endpoints.
type wireUser struct {
	ID               uuid.UUID      `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type wireSession struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         wireUser `json:"user"`
}

func (u wireUser) toModel() models.User {
	user := models.User{
		ID:               u.ID,
		Email:            u.Email,
		EmailConfirmedAt: u.EmailConfirmedAt,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	if name, ok := u.UserMetadata["full_name"].(string); ok {
		user.FullName = name
	}
	return user
}

func (w wireSession) toModel() *models.Session {
	return &models.Session{
		AccessToken:  w.AccessToken,
		RefreshToken: w.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(w.ExpiresIn) * time.Second),
		User:         w.User.toModel(),
	}
}

// NormalizeEmail applies the submission normalization every
// credentialed operation uses.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (g *Gateway) SignUp(ctx context.Context, params SignUpParams) (*SignUpResult, error) {
	email := NormalizeEmail(params.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	role := params.Role
	if role == "" {
		role = models.RoleFounder
	}

	body := map[string]any{
		"email":    email,
		"password": params.Password,
		"data": map[string]any{
			"full_name": params.FullName,
			"role":      string(role),
		},
	}

	// The signup response is session-shaped when email confirmation is
	// off and a bare user record when it is on.
	var raw struct {
		wireSession
		ID                 *uuid.UUID `json:"id"`
		Email              string     `json:"email"`
		ConfirmationSentAt *time.Time `json:"confirmation_sent_at"`
	}
	if err := g.do(ctx, http.MethodPost, "/auth/v1/signup", nil, body, "", &raw); err != nil {
		return nil, err
	}

	if raw.AccessToken != "" {
		session := raw.wireSession.toModel()
		g.adopt(session, EventSignedIn)
		return &SignUpResult{UserID: session.User.ID, Session: session}, nil
	}

	result := &SignUpResult{ConfirmationSent: true}
	if raw.ID != nil {
		result.UserID = *raw.ID
	} else {
		result.UserID = raw.wireSession.User.ID
	}
	return result, nil
}

func (g *Gateway) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	body := map[string]string{
		"email":    NormalizeEmail(email),
		"password": password,
	}

	var raw wireSession
	query := url.Values{"grant_type": {"password"}}
	if err := g.do(ctx, http.MethodPost, "/auth/v1/token", query, body, "", &raw); err != nil {
		return nil, err
	}

	session := raw.toModel()
	g.adopt(session, EventSignedIn)
	return session, nil
}

// SetSession promotes a token pair recovered from an OAuth redirect to
// the current session. The user record is fetched with the access token
// so the session carries a verified identity, not just decoded claims.
func (g *Gateway) SetSession(ctx context.Context, accessToken, refreshToken string) (*models.Session, error) {
	if accessToken == "" || refreshToken == "" {
		return nil, fmt.Errorf("both access and refresh tokens are required")
	}

	claims, err := DecodeAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	var raw wireUser
	if err := g.do(ctx, http.MethodGet, "/auth/v1/user", nil, nil, accessToken, &raw); err != nil {
		return nil, err
	}

	session := &models.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    claims.Expiry(),
		User:         raw.toModel(),
	}
	g.adopt(session, EventSignedIn)
	return session, nil
}

// Session returns a copy of the current session, or nil when signed out.
func (g *Gateway) Session() *models.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return nil
	}
	copied := *g.session
	return &copied
}

func (g *Gateway) GetUser(ctx context.Context) (*models.User, error) {
	session := g.Session()
	if session == nil {
		return nil, fmt.Errorf("not signed in")
	}

	var raw wireUser
	if err := g.do(ctx, http.MethodGet, "/auth/v1/user", nil, nil, session.AccessToken, &raw); err != nil {
		return nil, err
	}
	user := raw.toModel()
	return &user, nil
}

// SignOut invalidates the remote session and clears local state. Local
// state is cleared even when the remote call fails: a user who asked to
// sign out must not remain authenticated locally.
func (g *Gateway) SignOut(ctx context.Context) error {
	session := g.Session()

	var remoteErr error
	if session != nil {
		remoteErr = g.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, session.AccessToken, nil)
	}

	g.clearSession()
	g.emit(Event{Type: EventSignedOut})
	return remoteErr
}

func (g *Gateway) ResetPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": NormalizeEmail(email)}
	return g.do(ctx, http.MethodPost, "/auth/v1/recover", nil, body, "", nil)
}

func (g *Gateway) UpdatePassword(ctx context.Context, newPassword string) error {
	session := g.Session()
	if session == nil {
		return fmt.Errorf("not signed in")
	}

	body := map[string]string{"password": newPassword}
	if err := g.do(ctx, http.MethodPut, "/auth/v1/user", nil, body, session.AccessToken, nil); err != nil {
		return err
	}

	g.emit(Event{Type: EventUserUpdated, Session: g.Session()})
	return nil
}

// OnAuthStateChange registers a listener for the lifetime of the
// returned unsubscribe function.
func (g *Gateway) OnAuthStateChange(fn Listener) func() {
	g.mu.Lock()
	id := g.nextListener
	g.nextListener++
	g.listeners[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.listeners, id)
		g.mu.Unlock()
	}
}

// Close stops the background refresh. It does not sign the user out.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	if g.refreshTimer != nil {
		g.refreshTimer.Stop()
		g.refreshTimer = nil
	}
}

// refresh exchanges the refresh token for a new session. A failed
// refresh destroys the session: the tokens are no longer trustworthy.
func (g *Gateway) refresh(ctx context.Context) {
	session := g.Session()
	if session == nil {
		return
	}

	body := map[string]string{"refresh_token": session.RefreshToken}
	var raw wireSession
	query := url.Values{"grant_type": {"refresh_token"}}
	if err := g.do(ctx, http.MethodPost, "/auth/v1/token", query, body, "", &raw); err != nil {
		g.log.Warn().Err(err).Msg("token refresh failed, signing out")
		g.clearSession()
		g.emit(Event{Type: EventSignedOut})
		return
	}

	g.adopt(raw.toModel(), EventTokenRefreshed)
}

func (g *Gateway) adopt(session *models.Session, event EventType) {
	g.mu.Lock()
	g.session = session
	g.scheduleRefreshLocked(session)
	g.mu.Unlock()

	g.emit(Event{Type: event, Session: session})
}

func (g *Gateway) clearSession() {
	g.mu.Lock()
	g.session = nil
	if g.refreshTimer != nil {
		g.refreshTimer.Stop()
		g.refreshTimer = nil
	}
	g.mu.Unlock()
}

func (g *Gateway) scheduleRefreshLocked(session *models.Session) {
	if g.refreshTimer != nil {
		g.refreshTimer.Stop()
		g.refreshTimer = nil
	}
	if g.closed || session == nil || session.ExpiresAt.IsZero() {
		return
	}

	delay := time.Until(session.ExpiresAt) - g.refreshMargin
	if delay < time.Second {
		delay = time.Second
	}

	g.refreshTimer = time.AfterFunc(delay, func() {
		g.refresh(context.Background())
	})
}

// emit delivers to listeners in registration order, outside the lock so
// listeners can call back into the gateway.
func (g *Gateway) emit(event Event) {
	g.mu.Lock()
	ids := make([]int, 0, len(g.listeners))
	for id := range g.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, g.listeners[id])
	}
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}

// do issues one provider request. bearer overrides the anon key in the
// Authorization header when set.
func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, body any, bearer string, out any) error {
	endpoint := g.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("apikey", g.anonKey)
	if bearer == "" {
		bearer = g.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseProviderError(resp.StatusCode, payload)
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
