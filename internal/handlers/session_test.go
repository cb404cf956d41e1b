package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/MohamedO6/catalynk/internal/navigation"
	"github.com/MohamedO6/catalynk/internal/services"
	"github.com/MohamedO6/catalynk/internal/session"
	"github.com/MohamedO6/catalynk/pkg/dto"
	"github.com/MohamedO6/catalynk/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSessionTest(t *testing.T) (*MockSessionStore, *testutil.MockProfileService, *MockNavigator, *SessionHandler) {
	t.Helper()
	mockStore := new(MockSessionStore)
	mockProfiles := new(testutil.MockProfileService)
	mockNavigator := new(MockNavigator)

	handler := &SessionHandler{
		store:     mockStore,
		profiles:  mockProfiles,
		navigator: mockNavigator,
	}

	return mockStore, mockProfiles, mockNavigator, handler
}

func TestSessionHandler_GetSession(t *testing.T) {
	mockStore, _, _, handler := setupSessionTest(t)

	user := testutil.NewTestUser()
	profile := testutil.NewTestProfile(user, models.RoleFounder)
	mockStore.On("State").Return(session.State{User: &user, Profile: profile})

	app := drift.New()
	app.Get("/api/v1/session", handler.GetSession)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.User)
	assert.Equal(t, user.ID, response.User.ID)
	require.NotNil(t, response.Profile)
	assert.Equal(t, models.RoleFounder, response.Profile.Role)
	assert.False(t, response.Loading)
}

func TestSessionHandler_GetSession_SignedOut(t *testing.T) {
	mockStore, _, _, handler := setupSessionTest(t)

	mockStore.On("State").Return(session.State{})

	app := drift.New()
	app.Get("/api/v1/session", handler.GetSession)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Nil(t, response.User)
	assert.Nil(t, response.Profile)
}

func TestSessionHandler_GetNavigation(t *testing.T) {
	_, _, mockNavigator, handler := setupSessionTest(t)

	mockNavigator.On("Current").Return(navigation.DestMainApp)

	app := drift.New()
	app.Get("/api/v1/navigation", handler.GetNavigation)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/navigation", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.NavigationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "MAIN_APP", response.Destination)
	assert.Equal(t, "/(tabs)", response.Route)
}

func TestSessionHandler_SignOut(t *testing.T) {
	mockStore, _, _, handler := setupSessionTest(t)

	mockStore.On("SignOut", mock.Anything).Return(nil)

	app := drift.New()
	app.Post("/api/v1/auth/signout", handler.SignOut)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signout", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed out")
	mockStore.AssertExpectations(t)
}

func TestSessionHandler_SignOut_RemoteFailure(t *testing.T) {
	mockStore, _, _, handler := setupSessionTest(t)

	mockStore.On("SignOut", mock.Anything).Return(assert.AnError)

	app := drift.New()
	app.Post("/api/v1/auth/signout", handler.SignOut)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signout", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	// Local sign-out already happened; the device is signed out whatever
	// the provider said.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed out")
}

func TestSessionHandler_SelectRole_Success(t *testing.T) {
	mockStore, mockProfiles, _, handler := setupSessionTest(t)

	user := testutil.NewTestUser()
	profile := testutil.NewTestProfile(user, models.RoleInvestor)

	mockStore.On("State").Return(session.State{User: &user})
	mockStore.On("RefreshProfile", mock.Anything).Return()
	mockProfiles.On("Upsert", mock.Anything, user.ID, user.Email, services.ProfileUpdate{
		FullName: user.FullName,
		Role:     models.RoleInvestor,
	}).Return(profile, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/api/v1/profile/role", handler.SelectRole)

	rec := postJSON(t, app, "/api/v1/profile/role", dto.RoleSelectionRequest{Role: "investor"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, models.RoleInvestor, response.Role)

	mockStore.AssertExpectations(t)
	mockProfiles.AssertExpectations(t)
}

func TestSessionHandler_SelectRole_UnknownRole(t *testing.T) {
	mockStore, mockProfiles, _, handler := setupSessionTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/api/v1/profile/role", handler.SelectRole)

	rec := postJSON(t, app, "/api/v1/profile/role", dto.RoleSelectionRequest{Role: "astronaut"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown role: astronaut")
	mockStore.AssertNotCalled(t, "State")
	mockProfiles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_SelectRole_NotAuthenticated(t *testing.T) {
	mockStore, mockProfiles, _, handler := setupSessionTest(t)

	mockStore.On("State").Return(session.State{})

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/api/v1/profile/role", handler.SelectRole)

	rec := postJSON(t, app, "/api/v1/profile/role", dto.RoleSelectionRequest{Role: "founder"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not authenticated")
	mockProfiles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_SelectRole_UpsertFailure(t *testing.T) {
	mockStore, mockProfiles, _, handler := setupSessionTest(t)

	user := testutil.NewTestUser()
	mockStore.On("State").Return(session.State{User: &user})
	mockProfiles.On("Upsert", mock.Anything, user.ID, user.Email, mock.Anything).
		Return(nil, assert.AnError)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/api/v1/profile/role", handler.SelectRole)

	rec := postJSON(t, app, "/api/v1/profile/role", dto.RoleSelectionRequest{Role: "founder"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to save role")
	mockStore.AssertNotCalled(t, "RefreshProfile", mock.Anything)
}
