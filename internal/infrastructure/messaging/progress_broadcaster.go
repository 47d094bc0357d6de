// Package messaging provides the broadcaster that pushes recomputed progress
// to connected clients after every report submission or campaign join.
package messaging

import (
	"encoding/json"
	"sync"

	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
)

// ProgressBroadcaster fans progress payloads out to subscriber channels.
// Delivery is best-effort: a slow subscriber drops messages instead of
// blocking the mutation that triggered the broadcast.
type ProgressBroadcaster struct {
	clients map[chan []byte]struct{}
	mu      sync.Mutex
	logger  *logging.ChanneledLogger
}

// NewProgressBroadcaster creates an empty broadcaster.
func NewProgressBroadcaster(logger *logging.ChanneledLogger) *ProgressBroadcaster {
	return &ProgressBroadcaster{
		clients: make(map[chan []byte]struct{}),
		logger:  logger,
	}
}

// AddClient registers a subscriber and returns its delivery channel.
func (b *ProgressBroadcaster) AddClient() chan []byte {
	ch := make(chan []byte, 8)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[ch] = struct{}{}

	b.logger.Progress().Debug("Progress subscriber registered", "subscribers", len(b.clients))
	return ch
}

// RemoveClient unregisters a subscriber and closes its channel.
func (b *ProgressBroadcaster) RemoveClient(ch chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.clients[ch]; exists {
		delete(b.clients, ch)
		close(ch)
	}

	b.logger.Progress().Debug("Progress subscriber unregistered", "subscribers", len(b.clients))
}

// Broadcast sends the JSON encoding of payload to every subscriber.
func (b *ProgressBroadcaster) Broadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Progress().Error("Failed to encode progress broadcast", "error", err.Error())
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.clients {
		select {
		case ch <- data:
		default:
			// Subscriber is not keeping up; drop this update for it.
		}
	}

	b.logger.Progress().Debug("Progress broadcast sent", "subscribers", len(b.clients), "bytes", len(data))
}

// ClientCount returns the number of connected subscribers.
func (b *ProgressBroadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
