package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/R-Theory/core-engine-client/users"
)

// Session is the client-held record of the current authenticated user and
// credential pair. The zero value is the unauthenticated session.
//
// IsAuthenticated is true exactly when the last successful authentication
// set the user and both tokens together and nothing has cleared them since.
// Partial states (token without user) never escape the Manager.
type Session struct {
	User            *users.User `json:"user"`
	AccessToken     string      `json:"access_token"`  // Opaque bearer credential
	RefreshToken    string      `json:"refresh_token"` // Opaque renewal credential
	IsAuthenticated bool        `json:"is_authenticated"`
}

// TokenExpiry peeks at the access token's exp claim without verifying the
// signature. The backend issues JWTs, but the client treats them as opaque
// credentials; this is display/bookkeeping information only, never an
// authorization decision. Returns false when there is no token, the token is
// not a JWT, or it carries no expiry.
func (s Session) TokenExpiry() (time.Time, bool) {
	if s.AccessToken == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
