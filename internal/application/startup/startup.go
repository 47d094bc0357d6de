// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/application/container"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/email"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/geo"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/database"
	persistence "github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/engagement"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/store"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/state"
	"github.com/Engnr-Qasim/dreamers-app/internal/presentation/http/server"
	"github.com/Engnr-Qasim/dreamers-app/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete startup sequence and blocks until shutdown.
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	log.Println("Initializing...")

	logger, err := logging.New(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	perfTracker := performance.NewTracker()

	// Step 1: Open the persisted store
	logger.Startup().Info("Opening persisted store", "driver", config.StoreDriver, "path", config.StorePath)
	db, err := database.NewConnectionWithLogger(config.StoreDriver, config.StorePath, logger)
	if err != nil {
		return fmt.Errorf("failed to open store database: %w", err)
	}
	defer db.Close()

	kv, err := store.New(db, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize key-value store: %w", err)
	}

	reports := persistence.NewStoreReportRepository(kv, logger)
	campaigns := persistence.NewStoreCampaignRepository(kv, logger)

	// Step 2: Initialize the notification sender
	sender, err := email.NewService()
	if err != nil {
		logger.Startup().Warn("Email notifications disabled", "reason", err.Error())
		sender = email.Disabled{}
	}

	// Step 3: Session store and geolocation
	sessions := state.NewSessionStore(config.SessionTTL, logger)
	locator := geo.NewHTTPLocator(logger)

	// Step 4: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container")
	appContainer := container.NewContainer(container.Deps{
		Reports:     reports,
		Campaigns:   campaigns,
		Sessions:    sessions,
		Sender:      sender,
		Locator:     locator,
		Logger:      logger,
		PerfTracker: perfTracker,
	})
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 5: Start the HTTP server
	httpServer := server.New(config.Port, appContainer)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.Start()
	}()

	logger.Startup().Info("Startup complete", "port", config.Port, "duration", time.Since(start))

	// Block until a shutdown signal or a server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		logger.Shutdown().Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Graceful shutdown failed", "error", err.Error())
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Shutdown().Info("Server stopped", "uptime", perfTracker.Uptime().String())
	return nil
}

func setupLogging() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
