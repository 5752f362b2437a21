// Package guard gates access to protected routes based on the session store.
// It is a three-state machine evaluated synchronously: while a sign-in attempt
// is loading it shows a placeholder and never redirects, so the sign-in page
// cannot flash during the initial check.
package guard

// State is the guard's view of the session.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Outcome is what the shell should do for a route resolution.
type Outcome int

const (
	// ShowPlaceholder renders a neutral placeholder: no page content, no
	// redirect.
	ShowPlaceholder Outcome = iota
	// RenderProtected admits the user to the requested protected content.
	RenderProtected
	// RedirectToLogin sends the user to the sign-in entry point. The
	// originally requested route is discarded, not preserved.
	RedirectToLogin
)

// Route surface.
const (
	LoginRoute   = "/login"
	HomeRoute    = "/"
	MastersRoute = "/masters"
)

// Session is the read surface the guard needs from the session store.
type Session interface {
	IsLoading() bool
	IsAuthenticated() bool
}

// Guard evaluates the session on each call; it holds no state of its own, so
// re-evaluating after a store mutation observes the transition immediately.
type Guard struct {
	session Session
}

func New(session Session) *Guard {
	return &Guard{session: session}
}

// State derives the current guard state synchronously from the session store.
func (g *Guard) State() State {
	if g.session.IsLoading() {
		return StateLoading
	}
	if g.session.IsAuthenticated() {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// Resolve decides the outcome for a protected route.
func (g *Guard) Resolve() Outcome {
	switch g.State() {
	case StateLoading:
		return ShowPlaceholder
	case StateAuthenticated:
		return RenderProtected
	default:
		return RedirectToLogin
	}
}

// NormalizeRoute maps a requested path onto the route surface: known routes
// pass through, anything unmatched lands on the home route.
func NormalizeRoute(path string) string {
	switch path {
	case LoginRoute, HomeRoute, MastersRoute:
		return path
	default:
		return HomeRoute
	}
}

// IsProtected reports whether a route requires authentication. Only the
// sign-in entry point is public.
func IsProtected(path string) bool {
	return NormalizeRoute(path) != LoginRoute
}

// ResolveRoute combines normalization and guarding: public routes always
// render, protected routes go through the state machine.
func (g *Guard) ResolveRoute(path string) (string, Outcome) {
	route := NormalizeRoute(path)
	if !IsProtected(route) {
		return route, RenderProtected
	}
	outcome := g.Resolve()
	if outcome == RedirectToLogin {
		return LoginRoute, outcome
	}
	return route, outcome
}
