package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/application/services"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/messaging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var progressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressHandlers contains progress and dashboard HTTP handlers
type ProgressHandlers struct {
	progressService *services.ProgressService
	broadcaster     *messaging.ProgressBroadcaster
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewProgressHandlers creates progress handlers with injected dependencies
func NewProgressHandlers(progressService *services.ProgressService, broadcaster *messaging.ProgressBroadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ProgressHandlers {
	return &ProgressHandlers{
		progressService: progressService,
		broadcaster:     broadcaster,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// GetProgress handles GET /api/v1/progress - community-wide category progress
func (h *ProgressHandlers) GetProgress(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_progress_request")
	defer marker.Complete()

	progress, err := h.progressService.CategoryProgress()
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}

	h.logger.Progress().Debug("Progress computed", "categories", len(progress), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// GetDashboard handles GET /api/v1/dashboard - per-user report and campaign counts
func (h *ProgressHandlers) GetDashboard(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_dashboard_request")
	defer marker.Complete()

	sess, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.LoginRequiredNotice, "redirect": string(session.ScreenLogin)})
		return
	}

	dashboard, err := h.progressService.UserDashboard(sess.Profile.Name, sess.Profile.Email)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}

// StreamProgress handles GET /ws/progress - pushes progress snapshots over a websocket
func (h *ProgressHandlers) StreamProgress(c *gin.Context) {
	conn, err := progressUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Progress().Error("Websocket upgrade failed", "error", err.Error())
		return
	}
	defer conn.Close()

	updates := h.broadcaster.AddClient()
	defer h.broadcaster.RemoveClient(updates)

	h.logger.Progress().Debug("Progress stream client connected", "clients", h.broadcaster.ClientCount())

	// Initial snapshot so the client renders without waiting for a change.
	if progress, err := h.progressService.CategoryProgress(); err == nil {
		if payload, err := json.Marshal(progress); err == nil {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}

	// Reader loop detects client disconnects; nothing inbound is expected.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
