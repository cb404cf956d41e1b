package testutil

import (
	"context"
	"sync"

	"github.com/MohamedO6/catalynk/internal/identity"
	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/MohamedO6/catalynk/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProfileService mocks the profile service for store and handler
// tests.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) Upsert(ctx context.Context, id uuid.UUID, email string, update services.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(ctx, id, email, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockIdentityGateway mocks the handler-facing gateway surface.
type MockIdentityGateway struct {
	mock.Mock
}

func (m *MockIdentityGateway) SignUp(ctx context.Context, params identity.SignUpParams) (*identity.SignUpResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.SignUpResult), args.Error(1)
}

func (m *MockIdentityGateway) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockIdentityGateway) SetSession(ctx context.Context, accessToken, refreshToken string) (*models.Session, error) {
	args := m.Called(ctx, accessToken, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockIdentityGateway) ResetPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockIdentityGateway) UpdatePassword(ctx context.Context, newPassword string) error {
	args := m.Called(ctx, newPassword)
	return args.Error(0)
}

// FakeGateway is a controllable stand-in for the store-facing gateway
// slice: tests set the current session and push auth-state events by
// hand.
type FakeGateway struct {
	mu         sync.Mutex
	session    *models.Session
	signOutErr error
	listeners  []fakeListener
	nextID     int
}

type fakeListener struct {
	id int
	fn identity.Listener
}

func NewFakeGateway(session *models.Session) *FakeGateway {
	return &FakeGateway{session: session}
}

func (f *FakeGateway) SetSignOutErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOutErr = err
}

func (f *FakeGateway) Session() *models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil
	}
	copied := *f.session
	return &copied
}

// SignOut mirrors the real gateway: local state is cleared and the
// SIGNED_OUT event emitted even when the remote call fails.
func (f *FakeGateway) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.session = nil
	err := f.signOutErr
	f.mu.Unlock()

	f.Emit(identity.Event{Type: identity.EventSignedOut})
	return err
}

func (f *FakeGateway) OnAuthStateChange(fn identity.Listener) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.listeners = append(f.listeners, fakeListener{id: id, fn: fn})

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, l := range f.listeners {
			if l.id == id {
				f.listeners = append(f.listeners[:i], f.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount reports how many listeners are currently registered.
func (f *FakeGateway) ListenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

// Emit delivers an event to every listener, sequentially like the real
// provider stream.
func (f *FakeGateway) Emit(event identity.Event) {
	f.mu.Lock()
	if event.Session != nil {
		copied := *event.Session
		f.session = &copied
	}
	listeners := make([]identity.Listener, 0, len(f.listeners))
	for _, l := range f.listeners {
		listeners = append(listeners, l.fn)
	}
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}

// RecordingRouter captures Replace calls for navigation tests.
type RecordingRouter struct {
	mu     sync.Mutex
	Routes []string
}

func (r *RecordingRouter) Replace(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Routes = append(r.Routes, path)
}

func (r *RecordingRouter) Back() {}

func (r *RecordingRouter) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Routes))
	copy(out, r.Routes)
	return out
}

func (r *RecordingRouter) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Routes) == 0 {
		return ""
	}
	return r.Routes[len(r.Routes)-1]
}
