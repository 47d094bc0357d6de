package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/application/services"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// maxPhotoBytes bounds how much of an uploaded photo is read into memory.
const maxPhotoBytes = 5 << 20

// ReportHandlers contains issue report HTTP handlers
type ReportHandlers struct {
	reportService   *services.ReportService
	progressService *services.ProgressService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewReportHandlers creates report handlers with injected dependencies
func NewReportHandlers(reportService *services.ReportService, progressService *services.ProgressService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ReportHandlers {
	return &ReportHandlers{
		reportService:   reportService,
		progressService: progressService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// PostReport handles POST /api/v1/reports - multipart issue report submission
func (h *ReportHandlers) PostReport(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_report_request")
	defer marker.Complete()
	h.logger.Reports().Debug("Received report submission", "method", c.Request.Method, "path", c.Request.URL.Path)

	sess, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.LoginRequiredNotice, "redirect": string(session.ScreenLogin)})
		return
	}

	input := services.SubmitReportInput{
		Email:       c.PostForm("email"),
		Type:        c.PostForm("type"),
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
		Priority:    c.PostForm("priority"),
	}

	if fileHeader, err := c.FormFile("photo"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read photo"})
			return
		}
		content, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read photo"})
			return
		}
		input.PhotoName = fileHeader.Filename
		input.PhotoContent = base64.StdEncoding.EncodeToString(content)
	}

	report, err := h.reportService.Submit(sess, input)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid issue type"})
			return
		}
		marker.SetError(err)
		h.logger.Reports().Error("Report submission failed", "name", sess.Profile.Name, "error", err, "duration", time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report"})
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

	h.logger.Reports().Info("Report submitted", "name", report.Name, "type", report.Type, "duration", time.Since(start))
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Report Submitted Successfully!",
		"report":    report,
		"progress":  progress,
		"dashboard": dashboard,
	})
}

// GetReports handles GET /api/v1/reports - lists the reports submitted by the current user
func (h *ReportHandlers) GetReports(c *gin.Context) {
	sess, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.LoginRequiredNotice, "redirect": string(session.ScreenLogin)})
		return
	}

	reports, err := h.reportService.ListForUser(sess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
