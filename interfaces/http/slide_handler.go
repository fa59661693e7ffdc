package http

import (
	"net/http"

	"ttphotos/infrastructure/logger"
	"ttphotos/infrastructure/render"

	"github.com/gin-gonic/gin"
)

type ISlideHandler interface {
	Slide(c *gin.Context)
}

// SlideHandler serves procedurally rendered carousel slides. The vendor
// fetches these URLs while importing a post, so the endpoint is public.
type SlideHandler struct {
	renderer *render.Renderer
}

func NewSlideHandler(renderer *render.Renderer) ISlideHandler {
	return &SlideHandler{renderer: renderer}
}

func (h *SlideHandler) Slide(c *gin.Context) {
	req := render.SlideRequest{
		Variant:    c.Query("variant"),
		Background: c.Query("bg"),
		Song:       c.Query("song"),
		Lyrics:     c.Query("lyrics"),
	}
	if !render.ValidVariant(req.Variant) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variant must be intro, song or lyrics"})
		return
	}

	data, err := h.renderer.Render(req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Slide render failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}

	// Every render is unique per request; caching would pin one random layout.
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Data(http.StatusOK, "image/jpeg", data)
}
