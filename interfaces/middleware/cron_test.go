package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func cronRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/cron/upload-posts", Cron(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestCronAcceptsBearerSecret(t *testing.T) {
	r := cronRouter("topsecret")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cron/upload-posts", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCronRejectsBadOrMissingSecret(t *testing.T) {
	r := cronRouter("topsecret")

	for _, auth := range []string{"", "Bearer wrong", "topsecret"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/cron/upload-posts", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "auth %q", auth)
	}
}

func TestCronUnconfiguredSecret(t *testing.T) {
	r := cronRouter("")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cron/upload-posts", nil)
	req.Header.Set("Authorization", "Bearer anything")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
