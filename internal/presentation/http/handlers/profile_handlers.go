package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/application/services"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/user"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// ProfileHandlers contains profile and theme HTTP handlers
type ProfileHandlers struct {
	sessionService *services.SessionService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewProfileHandlers creates profile handlers with injected dependencies
func NewProfileHandlers(sessionService *services.SessionService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ProfileHandlers {
	return &ProfileHandlers{
		sessionService: sessionService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetProfile handles GET /api/v1/profile - returns the profile for form pre-fill
func (h *ProfileHandlers) GetProfile(c *gin.Context) {
	sess, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.LoginRequiredNotice, "redirect": string(session.ScreenLogin)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": sess.Profile, "theme": sess.Theme})
}

// PostProfile handles POST /api/v1/profile - overwrites the profile with the submitted fields
func (h *ProfileHandlers) PostProfile(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_profile_request")
	defer marker.Complete()
	h.logger.Session().Debug("Received profile update request", "method", c.Request.Method, "path", c.Request.URL.Path)

	sess, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.LoginRequiredNotice, "redirect": string(session.ScreenLogin)})
		return
	}

	var fields user.Profile
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := h.sessionService.UpdateProfile(sess.ID, fields)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	h.logger.Session().Info("Profile updated", "name", updated.Profile.Name, "sessionId", updated.ID, "duration", time.Since(start))
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile Updated!",
		"session": updated,
		"screen":  session.ScreenHome,
	})
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// PostTheme handles POST /api/v1/theme - switches between the two dark themes
func (h *ProfileHandlers) PostTheme(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_theme_request")
	defer marker.Complete()

	sess, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.LoginRequiredNotice, "redirect": string(session.ScreenLogin)})
		return
	}

	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Theme is required"})
		return
	}

	updated, err := h.sessionService.SetTheme(sess.ID, req.Theme)
	if err != nil {
		if errors.Is(err, services.ErrUnknownTheme) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown theme"})
			return
		}
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set theme"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"success": true, "theme": updated.Theme})
}
