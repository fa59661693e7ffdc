package http

import (
	"net/http"
	"time"

	"ttphotos/infrastructure/logger"
	"ttphotos/usecase"

	"github.com/gin-gonic/gin"
)

type ITriggerHandler interface {
	Trigger(c *gin.Context)
}

// TriggerHandler runs one posting pass over all active schedules. The same
// handler backs the open check endpoint and the cron-guarded one; the slot
// claim makes the open endpoint safe to hit repeatedly.
type TriggerHandler struct {
	poster usecase.IPosterUsecase
}

func NewTriggerHandler(poster usecase.IPosterUsecase) ITriggerHandler {
	return &TriggerHandler{poster: poster}
}

func (h *TriggerHandler) Trigger(c *gin.Context) {
	summary, err := h.poster.RunDuePosts(c.Request.Context(), time.Now())
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Trigger run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "trigger run failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
