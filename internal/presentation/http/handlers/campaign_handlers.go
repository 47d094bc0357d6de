package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/application/services"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// CampaignHandlers contains campaign membership HTTP handlers
type CampaignHandlers struct {
	campaignService *services.CampaignService
	progressService *services.ProgressService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewCampaignHandlers creates campaign handlers with injected dependencies
func NewCampaignHandlers(campaignService *services.CampaignService, progressService *services.ProgressService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CampaignHandlers {
	return &CampaignHandlers{
		campaignService: campaignService,
		progressService: progressService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

type joinCampaignRequest struct {
	CampaignName string `json:"campaignName"`
}

// PostJoin handles POST /api/v1/campaigns/join - records a campaign membership
func (h *CampaignHandlers) PostJoin(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_campaign_join_request")
	defer marker.Complete()
	h.logger.Campaigns().Debug("Received campaign join request", "method", c.Request.Method, "path", c.Request.URL.Path)

	sess, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.LoginRequiredNotice, "redirect": string(session.ScreenLogin)})
		return
	}

	var req joinCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	joined, err := h.campaignService.Join(sess, req.CampaignName)
	if err != nil {
		if errors.Is(err, services.ErrCampaignRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign name is required"})
			return
		}
		marker.SetError(err)
		h.logger.Campaigns().Error("Campaign join failed", "name", sess.Profile.Name, "error", err, "duration", time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join campaign"})
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

	h.logger.Campaigns().Info("Campaign joined", "name", sess.Profile.Name, "campaign", req.CampaignName, "newMembership", joined, "duration", time.Since(start))
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   fmt.Sprintf("You have joined the %q campaign!", req.CampaignName),
		"joined":    joined,
		"progress":  progress,
		"dashboard": dashboard,
	})
}
