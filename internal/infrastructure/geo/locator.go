// Package geo provides the location-detection capability. The platform may
// deny or lack geolocation; that outcome is a normal, user-visible condition
// rather than a system failure.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/pkg/config"
)

// ErrUnavailable is returned when the location cannot be determined. The
// caller shows a message and leaves the location field unchanged; there is
// no retry.
var ErrUnavailable = errors.New("location access denied or unavailable")

// Position is a detected latitude/longitude pair.
type Position struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Format renders the position the way the location field expects it.
func (p Position) Format() string {
	return fmt.Sprintf("Lat: %.6f, Lon: %.6f", p.Lat, p.Lon)
}

// Locator resolves the current position, or reports that it cannot.
type Locator interface {
	Current(ctx context.Context) (Position, error)
}

// HTTPLocator looks the position up from an IP geolocation endpoint.
type HTTPLocator struct {
	url    string
	client *http.Client
	logger *logging.ChanneledLogger
}

// NewHTTPLocator creates a locator against the configured lookup endpoint.
func NewHTTPLocator(logger *logging.ChanneledLogger) *HTTPLocator {
	return &HTTPLocator{
		url:    config.GeoLookupURL,
		client: &http.Client{Timeout: config.GeoLookupTimeout},
		logger: logger,
	}
}

// Current queries the lookup endpoint for the caller's position.
func (l *HTTPLocator) Current(ctx context.Context) (Position, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Position{}, ErrUnavailable
	}

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.System().Debug("Geolocation lookup failed", "error", err.Error(), "duration", time.Since(start))
		return Position{}, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.System().Debug("Geolocation lookup rejected", "status", resp.StatusCode, "duration", time.Since(start))
		return Position{}, ErrUnavailable
	}

	var pos Position
	if err := json.NewDecoder(resp.Body).Decode(&pos); err != nil {
		return Position{}, ErrUnavailable
	}

	l.logger.System().Debug("Geolocation resolved", "duration", time.Since(start))
	return pos, nil
}
