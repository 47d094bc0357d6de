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

// NavigationHandlers contains screen navigation HTTP handlers
type NavigationHandlers struct {
	screenService   *services.ScreenService
	progressService *services.ProgressService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewNavigationHandlers creates navigation handlers with injected dependencies
func NewNavigationHandlers(screenService *services.ScreenService, progressService *services.ProgressService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *NavigationHandlers {
	return &NavigationHandlers{
		screenService:   screenService,
		progressService: progressService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

type navigateRequest struct {
	Screen string `json:"screen" binding:"required"`
}

// PostNavigate handles POST /api/v1/navigate - resolves the requested screen,
// redirecting logged-out users to login for every gated screen
func (h *NavigationHandlers) PostNavigate(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_navigate_request")
	defer marker.Complete()

	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Screen is required"})
		return
	}

	sess, _ := middleware.GetSession(c)
	resolution, err := h.screenService.NavigateTo(sess, req.Screen)
	if err != nil {
		if errors.Is(err, services.ErrUnknownScreen) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown screen"})
			return
		}
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to navigate"})
		return
	}

	response := gin.H{
		"screen":     resolution.Screen,
		"redirected": resolution.Redirected,
	}
	if resolution.Notice != "" {
		response["notice"] = resolution.Notice
	}

	// Entering home re-renders the dashboard; entering profile pre-fills the form.
	if sess != nil {
		switch resolution.Screen {
		case session.ScreenHome:
			if progress, err := h.progressService.CategoryProgress(); err == nil {
				response["progress"] = progress
			}
			if dashboard, err := h.progressService.UserDashboard(sess.Profile.Name, sess.Profile.Email); err == nil {
				response["dashboard"] = dashboard
			}
		case session.ScreenProfile:
			response["profile"] = sess.Profile
		}
	}

	h.logger.Session().Debug("Screen resolved", "requested", req.Screen, "resolved", string(resolution.Screen), "redirected", resolution.Redirected, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, response)
}
