package model

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// SessionData is the authenticated browser session carried in a signed cookie.
// The server keeps no separate session table; tokens needed by the cron path
// are persisted per user when a schedule is started.
type SessionData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at"` // epoch millis
	Scope        string `json:"scope,omitempty"`
	UserID       string `json:"user_id,omitempty"`
}

// SessionClaims wraps SessionData into JWT claims
type SessionClaims struct {
	SessionData
	jwt.StandardClaims
}

// Valid reports whether the access token itself is still usable
func (s SessionData) IsValid(now time.Time) bool {
	return now.UnixMilli() < s.ExpiresAt
}

// NeedsRefresh reports whether the token expires within the next hour
func (s SessionData) NeedsRefresh(now time.Time) bool {
	return s.ExpiresAt <= now.Add(time.Hour).UnixMilli()
}
