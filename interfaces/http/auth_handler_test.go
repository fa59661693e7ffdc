package http

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ttphotos/domain/dto"
	"ttphotos/domain/model"
	tiktokclient "ttphotos/infrastructure/clients/tiktok"
	"ttphotos/infrastructure/content"
	"ttphotos/infrastructure/photos"
	"ttphotos/infrastructure/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTikTok struct {
	exchangeErr error
	refreshErr  error
	fetchStatus string
	fetchErr    error
}

func (s *stubTikTok) AuthorizeURL(state string) string {
	return "https://www.tiktok.com/v2/auth/authorize/?state=" + state
}
func (s *stubTikTok) ExchangeCode(ctx context.Context, code string) (*dto.TokenResponse, error) {
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return &dto.TokenResponse{
		AccessToken:  "act-1",
		RefreshToken: "rft-1",
		ExpiresIn:    86400,
		OpenID:       "open-1",
		Scope:        "video.publish",
	}, nil
}
func (s *stubTikTok) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return s.ExchangeCode(ctx, "")
}
func (s *stubTikTok) PublishCarousel(ctx context.Context, accessToken string, post *dto.CarouselPost) (*dto.PublishResponse, error) {
	return nil, nil
}
func (s *stubTikTok) FetchPublishStatus(ctx context.Context, accessToken, publishID string) (string, error) {
	if s.fetchErr != nil {
		return "", s.fetchErr
	}
	if s.fetchStatus != "" {
		return s.fetchStatus, nil
	}
	return dto.PublishStatusPublished, nil
}
func (s *stubTikTok) PollPublishStatus(ctx context.Context, accessToken, publishID string) (string, error) {
	return s.FetchPublishStatus(ctx, accessToken, publishID)
}

func authRouter(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	return authRouterWith(t, &stubTikTok{})
}

func authRouterWith(t *testing.T, tiktok *stubTikTok) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644))
	}

	sessions := session.NewManager("test-secret", false)
	h := NewAuthHandler(tiktok, sessions,
		content.NewLibraryWithSource(rand.NewSource(1)),
		photos.NewStoreWithSource(dir, rand.NewSource(1)),
		"http://localhost:10080")

	r := gin.New()
	r.GET("/login", h.Login)
	r.GET("/auth/callback", h.Callback)
	r.GET("/success", h.Success)
	r.GET("/auth/session", h.SessionStatus)
	r.POST("/auth/refresh", h.Refresh)
	r.DELETE("/auth/session", h.Logout)
	return r, sessions
}

// expiringSessionCookie signs a session whose access token runs out inside the
// refresh window.
func expiringSessionCookie(t *testing.T, sessions *session.Manager) *http.Cookie {
	t.Helper()
	now := time.Now()
	signed, err := sessions.CreateToken(model.SessionData{
		AccessToken:  "act-old",
		RefreshToken: "rft-old",
		ExpiresAt:    now.Add(30 * time.Minute).UnixMilli(),
		Scope:        "video.publish",
		UserID:       "open-1",
	}, now)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: signed}
}

func TestLoginRedirectsWithState(t *testing.T) {
	r, _ := authRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "tiktok.com/v2/auth/authorize/")

	var state string
	for _, c := range w.Result().Cookies() {
		if c.Name == stateCookie {
			state = c.Value
		}
	}
	require.NotEmpty(t, state)
	assert.Contains(t, location, "state="+state)
}

func TestCallbackIssuesSessionAndPreview(t *testing.T) {
	r, sessions := authRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=c1&state=s1", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "s1"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "/success?")
	assert.Contains(t, location, "open_id=open-1")
	assert.Contains(t, location, "slide=")

	var sessionValue string
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			sessionValue = c.Value
		}
	}
	require.NotEmpty(t, sessionValue)
	data, err := sessions.Verify(sessionValue)
	require.NoError(t, err)
	assert.Equal(t, "open-1", data.UserID)
	assert.Equal(t, "act-1", data.AccessToken)
}

func TestCallbackRejectsStateMismatch(t *testing.T) {
	r, _ := authRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=c1&state=evil", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "s1"})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionStatusWithoutCookie(t *testing.T) {
	r, _ := authRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestRefreshRejectedGrantEndsSession(t *testing.T) {
	stub := &stubTikTok{refreshErr: &tiktokclient.APIError{
		StatusCode: http.StatusBadRequest,
		Vendor:     dto.VendorError{Code: "invalid_grant", Message: "refresh token revoked"},
	}}
	r, sessions := authRouterWith(t, stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(expiringSessionCookie(t, sessions))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie should be expired")
}

func TestRefreshVendorOutageKeepsSession(t *testing.T) {
	stub := &stubTikTok{refreshErr: &tiktokclient.APIError{
		StatusCode: http.StatusBadGateway,
	}}
	r, sessions := authRouterWith(t, stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(expiringSessionCookie(t, sessions))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, session.CookieName, c.Name, "session cookie must be left alone")
	}
}

func TestRefreshRotatesExpiringSession(t *testing.T) {
	r, sessions := authRouterWith(t, &stubTikTok{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(expiringSessionCookie(t, sessions))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"refreshed":true`)

	var rotated string
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			rotated = c.Value
		}
	}
	require.NotEmpty(t, rotated)
	data, err := sessions.Verify(rotated)
	require.NoError(t, err)
	assert.Equal(t, "act-1", data.AccessToken)
	assert.Equal(t, "open-1", data.UserID)
}
