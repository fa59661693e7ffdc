package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ttphotos/domain/dto"
	"ttphotos/infrastructure/session"
	"ttphotos/interfaces/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishStatusRouter(t *testing.T, tiktok *stubTikTok) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager("test-secret", false)
	h := NewPublishStatusHandler(tiktok)

	r := gin.New()
	posts := r.Group("/posts", middleware.Session(sessions))
	posts.GET("/publish-status", h.Status)
	return r, sessions
}

func TestPublishStatusLookup(t *testing.T) {
	r, sessions := publishStatusRouter(t, &stubTikTok{fetchStatus: dto.PublishStatusProcessing})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/publish-status?publish_id=pub-1", nil)
	req.AddCookie(expiringSessionCookie(t, sessions))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"publish_id":"pub-1"`)
	assert.Contains(t, w.Body.String(), `"status":"PROCESSING"`)
}

func TestPublishStatusRequiresSession(t *testing.T) {
	r, _ := publishStatusRouter(t, &stubTikTok{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/publish-status?publish_id=pub-1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublishStatusRequiresPublishID(t *testing.T) {
	r, sessions := publishStatusRouter(t, &stubTikTok{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/publish-status", nil)
	req.AddCookie(expiringSessionCookie(t, sessions))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublishStatusVendorFailure(t *testing.T) {
	r, sessions := publishStatusRouter(t, &stubTikTok{fetchErr: errors.New("vendor unreachable")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/publish-status?publish_id=pub-1", nil)
	req.AddCookie(expiringSessionCookie(t, sessions))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
