package api

import (
	"net/url"

	"github.com/R-Theory/core-engine-client/users"
)

// RegisterRequest is the JSON payload for account creation.
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// TokenResponse is returned by login and registration.
type TokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	User         users.User `json:"user"`
}

// Login builds the credential exchange. The backend's token endpoint is an
// OAuth2 password form: the body is form-urlencoded with the fields named
// username and password, and username accepts either a username or an email
// address. Encoded by hand to keep the username field first.
func Login(username, password string) *Request {
	body := "username=" + url.QueryEscape(username) + "&password=" + url.QueryEscape(password)
	return &Request{
		Method:      "POST",
		Path:        "/auth/login",
		Body:        []byte(body),
		ContentType: contentTypeForm,
	}
}

// Register builds the account creation call (JSON, unlike login).
func Register(req RegisterRequest) *Request {
	return jsonRequest("POST", "/auth/register", req)
}

// CurrentUser fetches the identity record for the presented credential.
func CurrentUser() *Request {
	return getRequest("/auth/me")
}
