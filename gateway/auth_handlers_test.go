package gateway_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/R-Theory/core-engine-client/gateway"
)

func postForm(gw *gateway.Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)
	return rec
}

const tokenResponseBody = `{
	"access_token": "tok1",
	"refresh_token": "ref1",
	"token_type": "bearer",
	"user": {"id":"1","email":"a@b.com","username":"ab","first_name":"A","last_name":"B","is_active":true}
}`

func TestLoginSubmissionEstablishesSession(t *testing.T) {
	gw := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "a@b.com", r.PostForm.Get("username"))
		require.Equal(t, "p", r.PostForm.Get("password"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(tokenResponseBody))
	})

	rec := postForm(gw, "/auth/login", url.Values{"username": {"a@b.com"}, "password": {"p"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))
	require.Equal(t, gateway.GuardAuthenticated, gw.Guard().State())
}

func TestLoginSubmissionRejectedCredentials(t *testing.T) {
	gw := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Incorrect username or password"}`, http.StatusUnauthorized)
	})

	rec := postForm(gw, "/auth/login", url.Values{"username": {"a@b.com"}, "password": {"wrong"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/auth/login", location.Path)
	require.NotEmpty(t, location.Query().Get("error"))
	require.Equal(t, gateway.GuardUnauthenticated, gw.Guard().State())
}

func TestLoginSubmissionMissingFields(t *testing.T) {
	gw := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called without credentials")
	})

	rec := postForm(gw, "/auth/login", url.Values{"username": {"a@b.com"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/auth/login", location.Path)
}

func TestRegisterSubmissionEstablishesSession(t *testing.T) {
	gw := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/register", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(tokenResponseBody))
	})

	rec := postForm(gw, "/auth/register", url.Values{
		"email":    {"a@b.com"},
		"username": {"ab"},
		"password": {"p"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))
	require.Equal(t, gateway.GuardAuthenticated, gw.Guard().State())
}

func TestLogoutClearsSessionAndRedirects(t *testing.T) {
	gw := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(tokenResponseBody))
	})
	postForm(gw, "/auth/login", url.Values{"username": {"a@b.com"}, "password": {"p"}})
	require.Equal(t, gateway.GuardAuthenticated, gw.Guard().State())

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest("GET", "/auth/logout", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/auth/login", rec.Header().Get("Location"))
	require.Equal(t, gateway.GuardUnauthenticated, gw.Guard().State())
}

func TestDashboardRequiresAuthentication(t *testing.T) {
	gw := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/auth/login", rec.Header().Get("Location"))
}

func TestDashboardRendersForAuthenticatedSession(t *testing.T) {
	gw := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(tokenResponseBody))
	})
	postForm(gw, "/auth/login", url.Values{"username": {"a@b.com"}, "password": {"p"}})

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "a@b.com")
}

func TestLoginPageRedirectsAuthenticatedUsers(t *testing.T) {
	gw := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(tokenResponseBody))
	})
	postForm(gw, "/auth/login", url.Values{"username": {"a@b.com"}, "password": {"p"}})

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest("GET", "/auth/login", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))
}
