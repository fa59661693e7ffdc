package middleware

import (
	"net/http"

	"ttphotos/infrastructure/session"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the verified *model.SessionData.
const SessionKey = "session"

// Session rejects requests without a valid session cookie.
func Session(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := mgr.FromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Set(SessionKey, data)
		c.Next()
	}
}
