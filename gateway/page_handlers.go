package gateway

import (
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><body>
<h1>Core Engine</h1>
<p><a href="/dashboard">Dashboard</a> · <a href="/auth/login">Sign in</a></p>
</body></html>`))

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html><body>
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/auth/login">
<input name="username" placeholder="Username or email" value="{{.Username}}">
<input name="password" type="password" placeholder="Password">
<button type="submit">Sign in</button>
</form>
<p><a href="/auth/register">Create an account</a></p>
</body></html>`))

var registerTmpl = template.Must(template.New("register").Parse(`<!DOCTYPE html>
<html><body>
<h1>Create account</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/auth/register">
<input name="email" placeholder="Email" value="{{.Email}}">
<input name="username" placeholder="Username" value="{{.Username}}">
<input name="password" type="password" placeholder="Password">
<input name="first_name" placeholder="First name">
<input name="last_name" placeholder="Last name">
<button type="submit">Create account</button>
</form>
</body></html>`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html><body>
<h1>Dashboard</h1>
<p>Signed in as {{.Name}} ({{.Email}})</p>
{{if .TokenExpiry}}<p>Session credential expires {{.TokenExpiry}}</p>{{end}}
<p><a href="/auth/logout">Sign out</a></p>
</body></html>`))

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Error    string
	Username string // Preserve input on error
}

// RegisterPageData contains data for rendering the signup page
type RegisterPageData struct {
	Error    string
	Email    string
	Username string
}

type dashboardData struct {
	Name        string
	Email       string
	TokenExpiry string
}

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := indexTmpl.Execute(w, nil); err != nil {
			log.Err(err).Msg("Failed to render index page")
		}
	}
}

// LoginPageHandler displays the login form (GET /auth/login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			Error:    r.URL.Query().Get("error"),
			Username: r.URL.Query().Get("username"),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login page")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// RegisterPageHandler displays the signup form (GET /auth/register)
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := RegisterPageData{
			Error:    r.URL.Query().Get("error"),
			Email:    r.URL.Query().Get("email"),
			Username: r.URL.Query().Get("username"),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := registerTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render register page")
			http.Error(w, "Failed to render register page", http.StatusInternalServerError)
		}
	}
}

// DashboardHandler renders the protected landing page. The route guard has
// already established an authenticated session by the time it runs.
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := s.sessions.State()
		if state.User == nil {
			// Session cleared between the guard check and here
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		data := dashboardData{
			Name:  state.User.FirstName + " " + state.User.LastName,
			Email: state.User.Email,
		}
		if exp, ok := state.TokenExpiry(); ok {
			data.TokenExpiry = exp.Format(time.RFC1123)
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := dashboardTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render dashboard")
		}
	}
}
