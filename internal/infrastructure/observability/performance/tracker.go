// Package performance provides performance tracking for Dreamers operations.
package performance

import (
	"fmt"
	"sync"
	"time"
)

// Marker represents a single performance measurement for an operation
type Marker struct {
	Operation string         `json:"operation"` // e.g., "login_request", "submit_report"
	StartTime time.Time      `json:"startTime"` // When the operation started
	EndTime   time.Time      `json:"endTime"`   // When the operation completed
	Duration  time.Duration  `json:"duration"`  // Total operation duration
	Success   bool           `json:"success"`   // Whether the operation completed successfully
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Completed bool           `json:"completed"` // Whether Complete() has been called
}

// Complete marks the operation as finished and calculates final metrics
func (m *Marker) Complete() {
	if m.Completed {
		return // Prevent double completion
	}
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.Completed = true
}

// SetSuccess marks the operation as successful or failed
func (m *Marker) SetSuccess(success bool) {
	m.Success = success
}

// SetError sets an error message and marks the operation as failed
func (m *Marker) SetError(err error) {
	if err != nil {
		m.Error = err.Error()
		m.Success = false
	}
}

// AddMetadata adds key-value metadata to the marker
func (m *Marker) AddMetadata(key string, value any) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = value
}

// Tracker manages performance markers and provides metrics aggregation
type Tracker struct {
	markers    map[string]*Marker
	maxMarkers int
	counter    uint64
	mu         sync.RWMutex
	started    time.Time
}

// NewTracker creates a new performance tracker
func NewTracker() *Tracker {
	return &Tracker{
		markers:    make(map[string]*Marker),
		maxMarkers: 10000,
		started:    time.Now(),
	}
}

// StartOperation begins tracking a new operation and returns its marker
func (t *Tracker) StartOperation(operation string) *Marker {
	t.mu.Lock()
	defer t.mu.Unlock()

	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
	}

	t.counter++
	id := fmt.Sprintf("%s-%d", operation, t.counter)

	// Bounded retention: drop the oldest marker once the cap is reached
	if len(t.markers) >= t.maxMarkers {
		var oldestID string
		var oldestTime time.Time
		for markerID, m := range t.markers {
			if oldestID == "" || m.StartTime.Before(oldestTime) {
				oldestID = markerID
				oldestTime = m.StartTime
			}
		}
		delete(t.markers, oldestID)
	}

	t.markers[id] = marker
	return marker
}

// CompletedCount returns how many tracked operations have completed
func (t *Tracker) CompletedCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, m := range t.markers {
		if m.Completed {
			count++
		}
	}
	return count
}

// Uptime returns how long the tracker has been running
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
