package gateway

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/R-Theory/core-engine-client/api"
	"github.com/R-Theory/core-engine-client/internal/config"
	"github.com/R-Theory/core-engine-client/session"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// Server is the client-side gateway: it serves the guarded UI routes, the
// auth form handlers and the backend proxy endpoint.
type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	sessions *session.Manager
	backend  *api.Client
	guard    *Guard
}

func New(cfg config.Config, sessions *session.Manager, backend *api.Client) (*Server, error) {
	if sessions == nil {
		return nil, fmt.Errorf("[gateway.New] session manager is required")
	}
	if backend == nil {
		return nil, fmt.Errorf("[gateway.New] backend client is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		sessions: sessions,
		backend:  backend,
		guard:    NewGuard(sessions),
	}
	s.env = cfg.GetEnv()

	// The session manager rehydrated before we got here, so the guard can
	// leave its loading state immediately.
	s.guard.Resolve()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Guard exposes the route guard, primarily for wiring and tests.
func (s *Server) Guard() *Guard {
	return s.guard
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
