package session

import (
	"context"
	"sync"

	"github.com/MohamedO6/catalynk/internal/identity"
	"github.com/MohamedO6/catalynk/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is one observable snapshot of "who is signed in right now".
type State struct {
	User    *models.User
	Profile *models.Profile
	Loading bool
}

// Gateway is the slice of the identity gateway the store consumes.
type Gateway interface {
	Session() *models.Session
	SignOut(ctx context.Context) error
	OnAuthStateChange(fn identity.Listener) func()
}

// ProfileResolver is the slice of the profile service the store consumes.
type ProfileResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// Store is the single source of truth for the session state. It is the
// only writer; screens read via State/Subscribe and act via the exposed
// methods.
type Store struct {
	gateway  Gateway
	profiles ProfileResolver
	log      zerolog.Logger

	mu      sync.RWMutex
	state   State
	gen     uint64
	subs    map[int]chan State
	nextSub int
	started bool
	closed  bool

	unsubscribe func()
}

func NewStore(gateway Gateway, profiles ProfileResolver, log zerolog.Logger) *Store {
	return &Store{
		gateway:  gateway,
		profiles: profiles,
		log:      log,
		state:    State{Loading: true},
		subs:     make(map[int]chan State),
	}
}

// Start performs the one initial session fetch and subscribes to
// auth-state changes for the store's lifetime. Loading drops to false
// only after the initial fetch and, when a session exists, one profile
// fetch attempt.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	unsubscribe := s.gateway.OnAuthStateChange(s.handleAuthEvent)

	s.mu.Lock()
	if s.closed {
		// Close raced in between the started check and the registration.
		s.mu.Unlock()
		unsubscribe()
		return
	}
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	if session := s.gateway.Session(); session != nil {
		user := session.User
		s.setUser(&user)
		s.fetchProfile(ctx, user.ID)
	}
	s.setLoading(false)
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a channel of snapshots and an unsubscribe function.
// Slow consumers lose intermediate snapshots rather than blocking the
// writer.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 8)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

// SignOut clears local state regardless of the remote result; the
// remote error is still reported so callers can surface it.
func (s *Store) SignOut(ctx context.Context) error {
	err := s.gateway.SignOut(ctx)
	s.setUser(nil)
	return err
}

// RefreshProfile re-resolves the profile for the current user, used
// after role selection and profile edits.
func (s *Store) RefreshProfile(ctx context.Context) {
	st := s.State()
	if st.User == nil {
		return
	}
	s.fetchProfile(ctx, st.User.ID)
}

// Close stops event handling and suppresses any late-arriving async
// writes. In-flight requests are not cancelled, only their results are
// dropped.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (s *Store) handleAuthEvent(event identity.Event) {
	if event.Session == nil {
		s.setUser(nil)
		return
	}

	user := event.Session.User
	s.setUser(&user)
	s.fetchProfile(context.Background(), user.ID)
}

// fetchProfile resolves the profile for userID and applies the result
// unless a newer fetch has been issued meanwhile. A missing profile and
// a failed fetch both apply nil; only the latter is logged.
func (s *Store) fetchProfile(ctx context.Context, userID uuid.UUID) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Stringer("user_id", userID).Msg("profile fetch failed")
		profile = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return
	}
	if s.state.User == nil || s.state.User.ID != userID {
		return
	}
	s.state.Profile = profile
	s.broadcastLocked()
}

func (s *Store) setUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state.User = user
	if user == nil {
		s.state.Profile = nil
	}
	s.broadcastLocked()
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state.Loading = loading
	s.broadcastLocked()
}

func (s *Store) broadcastLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- s.state:
		default:
			// Subscriber buffer full, skip
		}
	}
}
