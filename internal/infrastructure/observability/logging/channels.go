// Package logging provides structured logging channels for Dreamers operations.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Channel represents a logical logging channel for different system components
type Channel string

const (
	// System channels
	ChannelSystem   Channel = "system"   // General system operations
	ChannelStartup  Channel = "startup"  // Application startup and initialization
	ChannelShutdown Channel = "shutdown" // Application shutdown and cleanup

	// Business logic channels
	ChannelSession   Channel = "session"   // Login, logout and profile operations
	ChannelReports   Channel = "reports"   // Issue report submissions
	ChannelCampaigns Channel = "campaigns" // Campaign membership operations
	ChannelProgress  Channel = "progress"  // Progress and dashboard computation

	// Infrastructure channels
	ChannelStore Channel = "store" // Persisted store reads and writes
	ChannelEmail Channel = "email" // Outbound notification dispatch

	// Performance channels
	ChannelPerf Channel = "performance" // Performance monitoring and metrics
)

// allChannels lists every channel a logger instance carries.
var allChannels = []Channel{
	ChannelSystem, ChannelStartup, ChannelShutdown,
	ChannelSession, ChannelReports, ChannelCampaigns, ChannelProgress,
	ChannelStore, ChannelEmail, ChannelPerf,
}

// ChanneledLogger provides structured logging with multiple channels
type ChanneledLogger struct {
	channels map[Channel]*slog.Logger
	config   *LoggerConfig
	files    []*os.File
	mu       sync.Mutex
}

// LoggerConfig contains configuration options for the channeled logger
type LoggerConfig struct {
	OutputToFile    bool       `json:"outputToFile"`    // Whether to write logs to files
	OutputToConsole bool       `json:"outputToConsole"` // Whether to write logs to console
	LogDirectory    string     `json:"logDirectory"`    // Directory for log files
	JSONFormat      bool       `json:"jsonFormat"`      // Use JSON format for structured logging
	Level           slog.Level `json:"level"`           // Minimum level for all channels
}

// DefaultLoggerConfig returns a sensible default configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: true,
		LogDirectory:    "logs",
		JSONFormat:      false,
		Level:           slog.LevelInfo,
	}
}

// New creates a channeled logger with one slog.Logger per channel
func New(config *LoggerConfig) (*ChanneledLogger, error) {
	if config == nil {
		config = DefaultLoggerConfig()
	}

	cl := &ChanneledLogger{
		channels: make(map[Channel]*slog.Logger),
		config:   config,
	}

	for _, channel := range allChannels {
		logger, err := cl.createChannelLogger(channel)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger for channel %s: %w", channel, err)
		}
		cl.channels[channel] = logger
	}

	return cl, nil
}

func (cl *ChanneledLogger) createChannelLogger(channel Channel) (*slog.Logger, error) {
	var writers []io.Writer

	if cl.config.OutputToConsole {
		writers = append(writers, os.Stdout)
	}

	if cl.config.OutputToFile {
		if err := os.MkdirAll(cl.config.LogDirectory, 0o755); err != nil {
			return nil, err
		}
		path := filepath.Join(cl.config.LogDirectory, string(channel)+".log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		cl.files = append(cl.files, file)
		writers = append(writers, file)
	}

	var out io.Writer = io.Discard
	if len(writers) == 1 {
		out = writers[0]
	} else if len(writers) > 1 {
		out = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{Level: cl.config.Level}
	var handler slog.Handler
	if cl.config.JSONFormat {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler).With("channel", string(channel)), nil
}

// Channel accessor methods for clean API
func (cl *ChanneledLogger) System() *slog.Logger    { return cl.channels[ChannelSystem] }
func (cl *ChanneledLogger) Startup() *slog.Logger   { return cl.channels[ChannelStartup] }
func (cl *ChanneledLogger) Shutdown() *slog.Logger  { return cl.channels[ChannelShutdown] }
func (cl *ChanneledLogger) Session() *slog.Logger   { return cl.channels[ChannelSession] }
func (cl *ChanneledLogger) Reports() *slog.Logger   { return cl.channels[ChannelReports] }
func (cl *ChanneledLogger) Campaigns() *slog.Logger { return cl.channels[ChannelCampaigns] }
func (cl *ChanneledLogger) Progress() *slog.Logger  { return cl.channels[ChannelProgress] }
func (cl *ChanneledLogger) Store() *slog.Logger     { return cl.channels[ChannelStore] }
func (cl *ChanneledLogger) Email() *slog.Logger     { return cl.channels[ChannelEmail] }
func (cl *ChanneledLogger) Perf() *slog.Logger      { return cl.channels[ChannelPerf] }

// GetChannel returns a specific channel logger
func (cl *ChanneledLogger) GetChannel(channel Channel) *slog.Logger {
	if logger, exists := cl.channels[channel]; exists {
		return logger
	}
	return cl.channels[ChannelSystem]
}

// WithOperation returns a logger with operation context pre-populated
func (cl *ChanneledLogger) WithOperation(channel Channel, operation string) *slog.Logger {
	return cl.GetChannel(channel).With("operation", operation)
}

// LogError logs an error with full context to the given channel
func (cl *ChanneledLogger) LogError(channel Channel, operation string, err error, metadata map[string]any) {
	logger := cl.GetChannel(channel)
	args := []any{"operation", operation, "error", err.Error()}
	for key, value := range metadata {
		args = append(args, key, value)
	}
	logger.Error("Operation failed", args...)
}

// Close releases any file handles the logger owns
func (cl *ChanneledLogger) Close() error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	var firstErr error
	for _, file := range cl.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	cl.files = nil
	return firstErr
}
