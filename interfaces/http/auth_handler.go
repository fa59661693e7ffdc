package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ttphotos/domain/model"
	"ttphotos/domain/repository"
	tiktokclient "ttphotos/infrastructure/clients/tiktok"
	"ttphotos/infrastructure/logger"
	"ttphotos/infrastructure/session"
	"ttphotos/usecase"

	"github.com/gin-gonic/gin"
)

const stateCookie = "ttphotos_oauth_state"

type IAuthHandler interface {
	Login(c *gin.Context)
	Callback(c *gin.Context)
	Success(c *gin.Context)
	SessionStatus(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
}

// AuthHandler drives the OAuth dance and the cookie session lifecycle.
type AuthHandler struct {
	tiktok   repository.ITikTok
	sessions *session.Manager
	library  repository.ISongLibrary
	photos   repository.IPhotoStore
	baseURL  string
}

func NewAuthHandler(tiktok repository.ITikTok, sessions *session.Manager,
	library repository.ISongLibrary, photos repository.IPhotoStore, baseURL string) IAuthHandler {
	return &AuthHandler{tiktok: tiktok, sessions: sessions, library: library, photos: photos, baseURL: baseURL}
}

// Login issues a CSRF state cookie and redirects the browser to the vendor
// authorization page.
func (h *AuthHandler) Login(c *gin.Context) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start login"})
		return
	}
	state := hex.EncodeToString(buf)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.tiktok.AuthorizeURL(state))
}

// Callback validates the state, exchanges the code and installs the session
// cookie before redirecting to the success page.
func (h *AuthHandler) Callback(c *gin.Context) {
	if errMsg := c.Query("error"); errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization denied", "detail": errMsg})
		return
	}
	state := c.Query("state")
	saved, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != saved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}
	tok, err := h.tiktok.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Code exchange failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "code exchange failed"})
		return
	}

	now := time.Now()
	data := model.SessionData{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    now.Add(time.Duration(tok.ExpiresIn) * time.Second).UnixMilli(),
		Scope:        tok.Scope,
		UserID:       tok.OpenID,
	}
	signed, err := h.sessions.CreateToken(data, now)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Session token signing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	h.sessions.SetCookie(c, signed)
	c.Redirect(http.StatusFound, h.successURL(tok.OpenID))
}

// successURL carries a preview carousel (random song, title and slide links)
// to the landing page as query parameters.
func (h *AuthHandler) successURL(openID string) string {
	v := url.Values{}
	v.Set("open_id", openID)

	backgrounds, err := h.photos.RandomDistinct(3)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Preview backgrounds unavailable")
		return "/success?" + v.Encode()
	}
	song := h.library.RandomSong()
	v.Set("song", song.Name)
	v.Set("title", h.library.RandomTitle())
	for _, slide := range usecase.BuildSlideURLs(h.baseURL, song, backgrounds) {
		v.Add("slide", slide)
	}
	return "/success?" + v.Encode()
}

// Success is the post-login landing page. It shows the preview slides passed
// by the callback redirect.
func (h *AuthHandler) Success(c *gin.Context) {
	var slides strings.Builder
	for _, slide := range c.QueryArray("slide") {
		fmt.Fprintf(&slides, `<img src=%q width="270" height="480" alt="slide">`, slide)
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK,
		`<html><body><h1>Connected</h1><p>TikTok account %s is linked.</p><p>%s - %s</p>%s</body></html>`,
		template.HTMLEscapeString(c.Query("open_id")),
		template.HTMLEscapeString(c.Query("title")),
		template.HTMLEscapeString(c.Query("song")),
		slides.String())
}

// SessionStatus reports whether the browser holds a usable session.
func (h *AuthHandler) SessionStatus(c *gin.Context) {
	data, err := h.sessions.FromRequest(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"authenticated": data.IsValid(now),
		"user_id":       data.UserID,
		"expires_at":    data.ExpiresAt,
		"needs_refresh": data.NeedsRefresh(now),
	})
}

// Refresh runs the refresh grant when the access token expires within an
// hour. A fresher token is left alone; a vendor rejection ends the session.
func (h *AuthHandler) Refresh(c *gin.Context) {
	data, err := h.sessions.FromRequest(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	now := time.Now()
	if !data.NeedsRefresh(now) {
		c.JSON(http.StatusOK, gin.H{"refreshed": false, "expires_at": data.ExpiresAt})
		return
	}
	tok, err := h.tiktok.RefreshToken(c.Request.Context(), data.RefreshToken)
	if err != nil {
		// Only a vendor rejection of the grant ends the session; transient
		// vendor failures keep the cookie so the client can retry.
		var apiErr *tiktokclient.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			h.sessions.ClearCookie(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, log in again"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "token refresh failed"})
		return
	}

	next := model.SessionData{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    now.Add(time.Duration(tok.ExpiresIn) * time.Second).UnixMilli(),
		Scope:        tok.Scope,
		UserID:       data.UserID,
	}
	if next.ExpiresAt <= data.ExpiresAt {
		// The grant succeeded but did not extend the lifetime; keep the old
		// session rather than shortening it.
		c.JSON(http.StatusOK, gin.H{"refreshed": false, "expires_at": data.ExpiresAt})
		return
	}
	signed, err := h.sessions.CreateToken(next, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	h.sessions.SetCookie(c, signed)
	c.JSON(http.StatusOK, gin.H{"refreshed": true, "expires_at": next.ExpiresAt})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}
