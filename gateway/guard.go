package gateway

import (
	"net/http"
	"sync"

	"github.com/R-Theory/core-engine-client/session"
)

// GuardState is the route guard's view of the session.
type GuardState int

const (
	// GuardLoading means the persisted session has not been restored yet.
	// Guarded routes serve a placeholder and never redirect in this state,
	// so a slow restore cannot bounce a logged-in user to the login page.
	GuardLoading GuardState = iota
	GuardAuthenticated
	GuardUnauthenticated
)

func (s GuardState) String() string {
	switch s {
	case GuardLoading:
		return "loading"
	case GuardAuthenticated:
		return "authenticated"
	case GuardUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Guard gates handlers on session state. It starts in GuardLoading and is
// resolved explicitly once session rehydration has completed; from then on
// it tracks every session mutation through the manager's subscription, so a
// 401-triggered clear flips guarded routes without a restart.
type Guard struct {
	mu          sync.RWMutex
	sessions    *session.Manager
	state       GuardState
	loginPath   string
	landingPath string
}

// GuardOption defines a function type to modify the Guard instance.
type GuardOption func(*Guard)

// WithLoginPath sets where unauthenticated requests to protected routes are
// redirected.
func WithLoginPath(path string) GuardOption {
	return func(g *Guard) {
		g.loginPath = path
	}
}

// WithLandingPath sets where authenticated requests to guest-only routes are
// redirected.
func WithLandingPath(path string) GuardOption {
	return func(g *Guard) {
		g.landingPath = path
	}
}

func NewGuard(sessions *session.Manager, options ...GuardOption) *Guard {
	g := &Guard{
		sessions:    sessions,
		state:       GuardLoading,
		loginPath:   RouteLogin,
		landingPath: RouteDashboard,
	}
	for _, opt := range options {
		opt(g)
	}
	sessions.Subscribe(func(s session.Session) {
		g.apply(s)
	})
	return g
}

// Resolve leaves the loading state using the current session contents. Call
// it once rehydration from durable storage is done; no network round trip is
// involved.
func (g *Guard) Resolve() {
	g.apply(g.sessions.State())
}

// State returns the guard's current view.
func (g *Guard) State() GuardState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *Guard) apply(s session.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s.IsAuthenticated {
		g.state = GuardAuthenticated
	} else {
		g.state = GuardUnauthenticated
	}
}

// RequireAuth protects a route: loading serves the placeholder,
// unauthenticated issues a single redirect to the login path, authenticated
// passes through.
func (g *Guard) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch g.State() {
		case GuardLoading:
			g.placeholder(w)
		case GuardUnauthenticated:
			http.Redirect(w, r, g.loginPath, http.StatusSeeOther)
		default:
			next(w, r)
		}
	}
}

// RequireAnon protects a guest-only route (login, signup): an authenticated
// session is redirected to the landing path instead of seeing the page.
func (g *Guard) RequireAnon(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch g.State() {
		case GuardLoading:
			g.placeholder(w)
		case GuardAuthenticated:
			http.Redirect(w, r, g.landingPath, http.StatusSeeOther)
		default:
			next(w, r)
		}
	}
}

func (g *Guard) placeholder(w http.ResponseWriter) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte("<!DOCTYPE html><html><body><p>Loading…</p></body></html>"))
}
