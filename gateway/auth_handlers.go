package gateway

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/R-Theory/core-engine-client/api"
	"github.com/R-Theory/core-engine-client/internal/errors"
)

// LoginSubmissionHandler exchanges the submitted credentials with the
// backend and populates the session on success.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")
		if username == "" || password == "" {
			s.redirectLoginError(w, r, "Username and password are required", username)
			return
		}

		var tokens api.TokenResponse
		if err := s.backend.DoJSON(r.Context(), api.Login(username, password), &tokens); err != nil {
			var statusErr *api.StatusError
			if errors.As(err, &statusErr) || errors.Is(err, errors.ErrUnauthorized) {
				s.redirectLoginError(w, r, "Invalid username or password", username)
				return
			}
			log.Err(err).Msg("Login exchange failed")
			s.redirectLoginError(w, r, "Sign-in is temporarily unavailable", username)
			return
		}

		if err := s.sessions.SetAuth(r.Context(), tokens.User, tokens.AccessToken, tokens.RefreshToken); err != nil {
			log.Err(err).Msg("Failed to persist session after login")
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}

// RegisterSubmissionHandler creates an account and signs the new user in.
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		req := api.RegisterRequest{
			Email:     r.FormValue("email"),
			Username:  r.FormValue("username"),
			Password:  r.FormValue("password"),
			FirstName: r.FormValue("first_name"),
			LastName:  r.FormValue("last_name"),
		}
		if req.Email == "" || req.Username == "" || req.Password == "" {
			s.redirectRegisterError(w, r, "Email, username and password are required", req)
			return
		}

		var tokens api.TokenResponse
		if err := s.backend.DoJSON(r.Context(), api.Register(req), &tokens); err != nil {
			var statusErr *api.StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusBadRequest {
				s.redirectRegisterError(w, r, "Email or username already taken", req)
				return
			}
			log.Err(err).Msg("Registration failed")
			s.redirectRegisterError(w, r, "Registration is temporarily unavailable", req)
			return
		}

		if err := s.sessions.SetAuth(r.Context(), tokens.User, tokens.AccessToken, tokens.RefreshToken); err != nil {
			log.Err(err).Msg("Failed to persist session after registration")
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}

// LogoutHandler wipes the session. Clearing an already-empty session is a
// no-op, so hitting logout twice is harmless.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.sessions.ClearAuth(r.Context()); err != nil {
			log.Err(err).Msg("Logout: failed to clear session")
		}
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

func (s *Server) redirectLoginError(w http.ResponseWriter, r *http.Request, message, username string) {
	q := url.Values{"error": []string{message}}
	if username != "" {
		q.Set("username", username)
	}
	http.Redirect(w, r, RouteLogin+"?"+q.Encode(), http.StatusSeeOther)
}

func (s *Server) redirectRegisterError(w http.ResponseWriter, r *http.Request, message string, req api.RegisterRequest) {
	q := url.Values{"error": []string{message}}
	if req.Email != "" {
		q.Set("email", req.Email)
	}
	if req.Username != "" {
		q.Set("username", req.Username)
	}
	http.Redirect(w, r, RouteRegister+"?"+q.Encode(), http.StatusSeeOther)
}
