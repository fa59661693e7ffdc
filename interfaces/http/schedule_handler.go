package http

import (
	"net/http"

	"ttphotos/domain/model"
	"ttphotos/infrastructure/logger"
	"ttphotos/interfaces/middleware"
	"ttphotos/usecase"

	"github.com/gin-gonic/gin"
)

type IScheduleHandler interface {
	Get(c *gin.Context)
	Update(c *gin.Context)
	ResetTimes(c *gin.Context)
}

// ScheduleHandler exposes the per-user posting schedule.
type ScheduleHandler struct {
	schedules usecase.IScheduleUsecase
}

func NewScheduleHandler(schedules usecase.IScheduleUsecase) IScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

type updateScheduleRequest struct {
	Action string `json:"action" binding:"required"`
}

func sessionFrom(c *gin.Context) *model.SessionData {
	v, ok := c.Get(middleware.SessionKey)
	if !ok {
		return nil
	}
	data, _ := v.(*model.SessionData)
	return data
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	rec, err := h.schedules.Get(c.Request.Context(), sess.UserID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Schedule lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "schedule lookup failed"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": true, "schedule": rec})
}

// Update starts or stops the schedule. Starting snapshots the session tokens
// for the cron path.
func (h *ScheduleHandler) Update(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}
	switch req.Action {
	case "start":
		rec, err := h.schedules.Start(c.Request.Context(), sess)
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Schedule start failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start schedule"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"active": true, "schedule": rec})
	case "stop":
		if err := h.schedules.Stop(c.Request.Context(), sess.UserID); err != nil {
			logger.GetLogger().WithField("error", err).Error("Schedule stop failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stop schedule"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"active": false})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be start or stop"})
	}
}

// ResetTimes rewrites posting times on all active schedules to the configured
// slots. Cron-guarded; used after slot configuration changes.
func (h *ScheduleHandler) ResetTimes(c *gin.Context) {
	updated, err := h.schedules.ResetTimes(c.Request.Context())
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Schedule time reset failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update schedules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
