package session

import (
	"fmt"
	"net/http"
	"time"

	"ttphotos/domain/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// CookieName is the signed session cookie issued after the OAuth callback.
const CookieName = "ttphotos_session"

const sessionTTL = 7 * 24 * time.Hour

// Manager signs and verifies browser session cookies. Sessions live entirely
// in the cookie; there is no server-side session store.
type Manager struct {
	secret []byte
	secure bool
}

func NewManager(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure}
}

// CreateToken signs the session data into a JWT valid for seven days.
func (m *Manager) CreateToken(data model.SessionData, now time.Time) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("session secret not configured")
	}
	claims := model.SessionClaims{
		SessionData: data,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(sessionTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a signed session token and returns the embedded data.
func (m *Manager) Verify(tokenString string) (*model.SessionData, error) {
	claims := &model.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return &claims.SessionData, nil
}

// FromRequest reads and verifies the session cookie.
func (m *Manager) FromRequest(c *gin.Context) (*model.SessionData, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return nil, fmt.Errorf("no session cookie")
	}
	return m.Verify(cookie)
}

// SetCookie installs the session cookie. HttpOnly keeps it away from page
// scripts; SameSite=Lax still allows the OAuth redirect flow.
func (m *Manager) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(sessionTTL.Seconds()), "/", "", m.secure, true)
}

// ClearCookie expires the session cookie immediately.
func (m *Manager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}
