// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/Engnr-Qasim/dreamers-app/internal/application/container"
	"github.com/Engnr-Qasim/dreamers-app/internal/presentation/http/handlers"
	"github.com/Engnr-Qasim/dreamers-app/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.SessionService, container.ProgressService, container.Logger, container.PerfTracker)
	profileHandlers := handlers.NewProfileHandlers(container.SessionService, container.Logger, container.PerfTracker)
	reportHandlers := handlers.NewReportHandlers(container.ReportService, container.ProgressService, container.Logger, container.PerfTracker)
	campaignHandlers := handlers.NewCampaignHandlers(container.CampaignService, container.ProgressService, container.Logger, container.PerfTracker)
	progressHandlers := handlers.NewProgressHandlers(container.ProgressService, container.Broadcaster, container.Logger, container.PerfTracker)
	navigationHandlers := handlers.NewNavigationHandlers(container.ScreenService, container.ProgressService, container.Logger, container.PerfTracker)
	locationHandlers := handlers.NewLocationHandlers(container.Locator, container.Logger, container.PerfTracker)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": container.Sessions.Count()})
	})

	// Live progress push for the home dashboard
	r.GET("/ws/progress", progressHandlers.StreamProgress)

	api := r.Group("/api/v1")
	{
		// Public endpoints: login, screen resolution, and location detection
		// (the login form offers detection before any session exists)
		api.POST("/auth/login", authHandlers.PostLogin)
		api.POST("/navigate", middleware.OptionalSessionMiddleware(container.Sessions), navigationHandlers.PostNavigate)
		api.GET("/location/detect", locationHandlers.GetDetect)
		api.GET("/progress", progressHandlers.GetProgress)

		// Session-gated endpoints
		gated := api.Group("")
		gated.Use(middleware.SessionMiddleware(container.Sessions))
		{
			gated.POST("/auth/logout", authHandlers.PostLogout)
			gated.GET("/profile", profileHandlers.GetProfile)
			gated.POST("/profile", profileHandlers.PostProfile)
			gated.POST("/theme", profileHandlers.PostTheme)
			gated.POST("/reports", reportHandlers.PostReport)
			gated.GET("/reports", reportHandlers.GetReports)
			gated.POST("/campaigns/join", campaignHandlers.PostJoin)
			gated.GET("/dashboard", progressHandlers.GetDashboard)
		}
	}

	return r
}
