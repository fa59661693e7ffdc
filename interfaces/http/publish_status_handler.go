package http

import (
	"net/http"

	"ttphotos/domain/repository"
	"ttphotos/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

type IPublishStatusHandler interface {
	Status(c *gin.Context)
}

// PublishStatusHandler lets a logged-in user look up the vendor status of a
// publish id on demand, without waiting for the next trigger run.
type PublishStatusHandler struct {
	tiktok repository.ITikTok
}

func NewPublishStatusHandler(tiktok repository.ITikTok) IPublishStatusHandler {
	return &PublishStatusHandler{tiktok: tiktok}
}

func (h *PublishStatusHandler) Status(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	publishID := c.Query("publish_id")
	if publishID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publish_id is required"})
		return
	}
	status, err := h.tiktok.FetchPublishStatus(c.Request.Context(), sess.AccessToken, publishID)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("publish_id", publishID).Error("Publish status lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "status lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"publish_id": publishID, "status": status})
}
