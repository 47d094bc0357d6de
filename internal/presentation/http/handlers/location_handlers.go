package handlers

import (
	"net/http"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/geo"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// LocationDeniedMessage is shown when coordinates cannot be determined.
// The client leaves its location field untouched in that case.
const LocationDeniedMessage = "Location access denied or unavailable."

// LocationHandlers contains geolocation HTTP handlers
type LocationHandlers struct {
	locator     geo.Locator
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewLocationHandlers creates location handlers with injected dependencies
func NewLocationHandlers(locator geo.Locator, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *LocationHandlers {
	return &LocationHandlers{
		locator:     locator,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetDetect handles GET /api/v1/location/detect - resolves coordinates into
// the "Lat: x, Lon: y" string used to fill location fields
func (h *LocationHandlers) GetDetect(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_location_detect_request")
	defer marker.Complete()

	position, err := h.locator.Current(c.Request.Context())
	if err != nil {
		h.logger.System().Debug("Location detection failed", "error", err.Error(), "duration", time.Since(start))
		c.JSON(http.StatusOK, gin.H{
			"detected": false,
			"message":  LocationDeniedMessage,
		})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"detected": true,
		"location": position.Format(),
	})
}
