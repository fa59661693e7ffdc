package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ttphotos/infrastructure/session"
	handlers "ttphotos/interfaces/http"
	"ttphotos/interfaces/middleware"
)

// NewRouter wires every route. The slide and check endpoints are public, the
// schedule endpoints need a session cookie and the cron endpoints a bearer
// secret.
func NewRouter(
	sessions *session.Manager,
	cronSecret string,
	auth handlers.IAuthHandler,
	slide handlers.ISlideHandler,
	schedule handlers.IScheduleHandler,
	trigger handlers.ITriggerHandler,
	publishStatus handlers.IPublishStatusHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/login", auth.Login)
	r.GET("/auth/callback", auth.Callback)
	r.GET("/success", auth.Success)
	r.GET("/auth/session", auth.SessionStatus)
	r.POST("/auth/refresh", auth.Refresh)
	r.DELETE("/auth/session", auth.Logout)

	r.GET("/slide", slide.Slide)

	posts := r.Group("/posts", middleware.Session(sessions))
	{
		posts.GET("/schedule", schedule.Get)
		posts.POST("/schedule", schedule.Update)
		posts.GET("/publish-status", publishStatus.Status)
	}

	r.GET("/check-posts", trigger.Trigger)

	cron := r.Group("/", middleware.Cron(cronSecret))
	{
		cron.GET("/cron/upload-posts", trigger.Trigger)
		cron.POST("/update-schedule", schedule.ResetTimes)
	}

	return r
}
