package navigation

import (
	"context"
	"sync"
	"time"

	"github.com/MohamedO6/catalynk/internal/session"
	"github.com/rs/zerolog"
)

// Router is the external navigation surface, keyed by route paths.
type Router interface {
	Replace(path string)
	Back()
}

// Source is the slice of the session store the dispatcher consumes.
type Source interface {
	State() session.State
	Subscribe() (<-chan session.State, func())
}

// Dispatcher re-evaluates the resolver on every store change and fires
// a navigation side effect only when the computed destination actually
// changes. It also owns the single delayed-fallback timer used when an
// OAuth callback fails.
type Dispatcher struct {
	store         Source
	router        Router
	fallbackDelay time.Duration
	log           zerolog.Logger

	mu       sync.Mutex
	current  Destination
	fallback *time.Timer
}

func NewDispatcher(store Source, router Router, fallbackDelay time.Duration, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		store:         store,
		router:        router,
		fallbackDelay: fallbackDelay,
		log:           log,
		current:       DestOnboarding,
	}
}

// Run drives the dispatcher until ctx is cancelled. The cold-start
// destination is Onboarding; the first snapshot, whether already
// available or delivered later, leaves it for good.
func (d *Dispatcher) Run(ctx context.Context) {
	snapshots, cancel := d.store.Subscribe()
	defer cancel()

	d.router.Replace(RouteOnboarding)

	// The store may have finished its bootstrap before we subscribed.
	if st := d.store.State(); !st.Loading {
		d.Apply(st)
	}

	for {
		select {
		case <-ctx.Done():
			d.CancelFallback()
			return
		case st, ok := <-snapshots:
			if !ok {
				d.CancelFallback()
				return
			}
			d.Apply(st)
		}
	}
}

// Apply resolves one snapshot and navigates on a destination edge. Any
// applied navigation cancels a pending fallback.
func (d *Dispatcher) Apply(st session.State) {
	dest := Resolve(st)

	d.mu.Lock()
	if dest == d.current {
		d.mu.Unlock()
		return
	}
	d.cancelFallbackLocked()
	d.current = dest
	d.mu.Unlock()

	d.log.Debug().Stringer("destination", dest).Str("route", dest.Route()).Msg("navigating")
	d.router.Replace(dest.Route())
}

// Current returns the last computed destination.
func (d *Dispatcher) Current() Destination {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// ScheduleFallback arms a one-shot redirect to the auth entry screen,
// used after a broken OAuth callback so the user is never stranded.
// Re-arming replaces the previous timer.
func (d *Dispatcher) ScheduleFallback() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelFallbackLocked()

	// The timer callback can start between a cancel and its lock
	// acquisition; Stop does not help then. Only the timer still held in
	// d.fallback may navigate.
	var timer *time.Timer
	timer = time.AfterFunc(d.fallbackDelay, func() {
		d.mu.Lock()
		if d.fallback != timer || d.current == DestAuthEntry {
			d.mu.Unlock()
			return
		}
		d.fallback = nil
		d.current = DestAuthEntry
		d.mu.Unlock()

		d.log.Debug().Msg("fallback redirect to auth entry")
		d.router.Replace(RouteWelcome)
	})
	d.fallback = timer
}

// CancelFallback disarms a pending fallback, e.g. when the user
// navigated away manually before it fired.
func (d *Dispatcher) CancelFallback() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelFallbackLocked()
}

func (d *Dispatcher) cancelFallbackLocked() {
	if d.fallback != nil {
		d.fallback.Stop()
		d.fallback = nil
	}
}
