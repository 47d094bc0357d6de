// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/application/services"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// LoginValidationMessage is shown when either required login field is blank.
const LoginValidationMessage = "Please provide both Name and Location to continue."

// AuthHandlers contains login and logout HTTP handlers
type AuthHandlers struct {
	sessionService  *services.SessionService
	progressService *services.ProgressService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(sessionService *services.SessionService, progressService *services.ProgressService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		sessionService:  sessionService,
		progressService: progressService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

type loginRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// PostLogin handles POST /api/v1/auth/login - creates a session from name and location
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_login_request")
	defer marker.Complete()
	h.logger.Session().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sess, token, err := h.sessionService.Login(req.Name, req.Location, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, services.ErrNameAndLocationRequired) {
			h.logger.Session().Debug("Login rejected on validation", "duration", time.Since(start))
			c.JSON(http.StatusBadRequest, gin.H{"error": LoginValidationMessage})
			return
		}
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	progress, err := h.progressService.CategoryProgress()
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}
	dashboard, err := h.progressService.UserDashboard(sess.Profile.Name, sess.Profile.Email)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	h.logger.Session().Info("User logged in", "name", sess.Profile.Name, "sessionId", sess.ID, "duration", time.Since(start))
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"session":   sess,
		"screen":    session.ScreenHome,
		"progress":  progress,
		"dashboard": dashboard,
	})
}

// PostLogout handles POST /api/v1/auth/logout - discards the active session
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_logout_request")
	defer marker.Complete()

	sess, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.LoginRequiredNotice, "redirect": string(session.ScreenLogin)})
		return
	}

	h.sessionService.Logout(sess.ID)

	h.logger.Session().Info("User logged out", "name", sess.Profile.Name, "sessionId", sess.ID, "duration", time.Since(start))
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"screen":  session.ScreenLogin,
	})
}
