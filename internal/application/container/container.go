// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/Engnr-Qasim/dreamers-app/internal/application/services"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/engagement"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/email"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/geo"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/messaging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/state"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (singletons)
	SessionService      *services.SessionService
	ScreenService       *services.ScreenService
	ReportService       *services.ReportService
	CampaignService     *services.CampaignService
	ProgressService     *services.ProgressService
	NotificationService *services.NotificationService

	// Infrastructure dependencies
	Sessions    *state.SessionStore
	Broadcaster *messaging.ProgressBroadcaster
	Locator     geo.Locator
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
}

// Deps are the infrastructure inputs the container wires services around.
type Deps struct {
	Reports     engagement.ReportRepository
	Campaigns   engagement.CampaignRepository
	Sessions    *state.SessionStore
	Sender      email.Service
	Locator     geo.Locator
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(deps Deps) *Container {
	broadcaster := messaging.NewProgressBroadcaster(deps.Logger)
	notifier := services.NewNotificationService(deps.Sender, deps.Logger)
	progress := services.NewProgressService(deps.Reports, deps.Campaigns, deps.Logger, deps.PerfTracker)

	return &Container{
		SessionService:      services.NewSessionService(deps.Sessions, notifier, deps.Logger, deps.PerfTracker),
		ScreenService:       services.NewScreenService(deps.Sessions, deps.Logger, deps.PerfTracker),
		ReportService:       services.NewReportService(deps.Reports, progress, notifier, broadcaster, deps.Logger, deps.PerfTracker),
		CampaignService:     services.NewCampaignService(deps.Campaigns, progress, notifier, broadcaster, deps.Logger, deps.PerfTracker),
		ProgressService:     progress,
		NotificationService: notifier,

		Sessions:    deps.Sessions,
		Broadcaster: broadcaster,
		Locator:     deps.Locator,
		Logger:      deps.Logger,
		PerfTracker: deps.PerfTracker,
	}
}
