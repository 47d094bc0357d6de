package services

import (
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/email"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
)

// Result is the observable outcome of one notification dispatch. Callers may
// read it or ignore it; ignoring failures is the deliberate policy for every
// primary action, which commits before the dispatch even starts.
type Result struct {
	Kind string
	Err  error
}

// NotificationService dispatches best-effort notification emails. Each
// dispatch runs on its own goroutine, never blocks the caller, and reports
// its outcome on a buffered channel.
type NotificationService struct {
	sender email.Service
	logger *logging.ChanneledLogger
}

// NewNotificationService creates the notification service around a sender.
func NewNotificationService(sender email.Service, logger *logging.ChanneledLogger) *NotificationService {
	return &NotificationService{
		sender: sender,
		logger: logger,
	}
}

// DispatchLogin sends the login notification.
func (s *NotificationService) DispatchLogin(params email.LoginParams) <-chan Result {
	return s.dispatch("login", func() error {
		return s.sender.SendLoginNotification(params)
	})
}

// DispatchReport sends the report notification with its optional attachment.
func (s *NotificationService) DispatchReport(params email.ReportParams) <-chan Result {
	return s.dispatch("report", func() error {
		return s.sender.SendReportNotification(params)
	})
}

// DispatchCampaignJoin sends the campaign-join notification.
func (s *NotificationService) DispatchCampaignJoin(params email.CampaignJoinParams) <-chan Result {
	return s.dispatch("campaign_join", func() error {
		return s.sender.SendCampaignJoinNotification(params)
	})
}

func (s *NotificationService) dispatch(kind string, send func() error) <-chan Result {
	results := make(chan Result, 1)

	go func() {
		defer close(results)
		start := time.Now()

		err := send()
		if err != nil {
			s.logger.Email().Error("Notification dispatch failed", "kind", kind, "error", err.Error(), "duration", time.Since(start))
		} else {
			s.logger.Email().Info("Notification sent", "kind", kind, "duration", time.Since(start))
		}

		results <- Result{Kind: kind, Err: err}
	}()

	return results
}
