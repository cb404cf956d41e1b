package identity

import "github.com/MohamedO6/catalynk/internal/models"

// EventType identifies a change in the provider-level auth state.
type EventType string

const (
	EventSignedIn         EventType = "SIGNED_IN"
	EventSignedOut        EventType = "SIGNED_OUT"
	EventTokenRefreshed   EventType = "TOKEN_REFRESHED"
	EventUserUpdated      EventType = "USER_UPDATED"
	EventPasswordRecovery EventType = "PASSWORD_RECOVERY"
)

// Event is delivered to listeners registered with OnAuthStateChange.
// Session is nil for EventSignedOut.
type Event struct {
	Type    EventType
	Session *models.Session
}

// Listener receives auth-state-change events. Listeners are invoked
// sequentially in registration order, matching the provider's
// chronological delivery guarantee.
type Listener func(Event)
