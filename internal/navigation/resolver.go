package navigation

import "github.com/MohamedO6/catalynk/internal/session"

// Destination is where the app shell should land for a given session
// snapshot.
type Destination int

const (
	// DestOnboarding is the cold-start state, held only until the first
	// snapshot arrives. Never re-entered for the life of the process.
	DestOnboarding Destination = iota
	// DestLoading covers an in-flight session bootstrap.
	DestLoading
	DestAuthEntry
	DestRoleSelection
	DestMainApp
)

func (d Destination) String() string {
	switch d {
	case DestOnboarding:
		return "ONBOARDING"
	case DestLoading:
		return "LOADING"
	case DestAuthEntry:
		return "AUTH_ENTRY"
	case DestRoleSelection:
		return "ROLE_SELECTION"
	case DestMainApp:
		return "MAIN_APP"
	}
	return "UNKNOWN"
}

// Route paths understood by the external router.
const (
	RouteOnboarding    = "/onboarding"
	RouteLoading       = "/loading"
	RouteWelcome       = "/(auth)/welcome"
	RouteRoleSelection = "/(auth)/role-selection"
	RouteMainApp       = "/(tabs)"
)

func (d Destination) Route() string {
	switch d {
	case DestOnboarding:
		return RouteOnboarding
	case DestLoading:
		return RouteLoading
	case DestRoleSelection:
		return RouteRoleSelection
	case DestMainApp:
		return RouteMainApp
	}
	return RouteWelcome
}

// Resolve is the pure decision function from a session snapshot to a
// destination. A profile that exists but has no valid role resolves the
// same as no profile at all.
func Resolve(st session.State) Destination {
	switch {
	case st.Loading:
		return DestLoading
	case st.User == nil:
		return DestAuthEntry
	case !st.Profile.Onboarded():
		return DestRoleSelection
	default:
		return DestMainApp
	}
}
