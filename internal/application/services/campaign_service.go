package services

import (
	"strings"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/engagement"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/email"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/messaging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
)

// CampaignService handles joining campaigns: an idempotent set add keyed by
// the session user's email, followed by a notification and a progress
// broadcast.
type CampaignService struct {
	campaigns   engagement.CampaignRepository
	progress    *ProgressService
	notifier    *NotificationService
	broadcaster *messaging.ProgressBroadcaster
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewCampaignService creates the campaign service with injected dependencies.
func NewCampaignService(campaigns engagement.CampaignRepository, progress *ProgressService, notifier *NotificationService, broadcaster *messaging.ProgressBroadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CampaignService {
	return &CampaignService{
		campaigns:   campaigns,
		progress:    progress,
		notifier:    notifier,
		broadcaster: broadcaster,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Join adds the campaign to the session user's membership set. Joining a
// campaign twice leaves the set unchanged but still notifies: each join
// attempt is its own user action.
func (s *CampaignService) Join(sess *session.Session, campaignName string) (bool, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("join_campaign")
	defer marker.Complete()

	if sess == nil {
		marker.SetError(ErrLoginRequired)
		return false, ErrLoginRequired
	}

	campaignName = strings.TrimSpace(campaignName)
	if campaignName == "" {
		marker.SetError(ErrCampaignRequired)
		return false, ErrCampaignRequired
	}

	joined, err := s.campaigns.AddMembership(sess.Profile.Email, campaignName)
	if err != nil {
		s.logger.Campaigns().Error("Failed to persist membership", "error", err.Error())
		marker.SetError(err)
		return false, err
	}

	s.notifier.DispatchCampaignJoin(email.CampaignJoinParams{
		FromName:     sess.Profile.Name,
		FromEmail:    sess.Profile.Email,
		CampaignName: campaignName,
		Location:     sess.Profile.Location,
	})

	s.broadcastProgress()

	s.logger.Campaigns().Info("Campaign joined", "campaign", campaignName, "name", sess.Profile.Name, "changed", joined, "duration", time.Since(start))
	marker.SetSuccess(true)
	return joined, nil
}

func (s *CampaignService) broadcastProgress() {
	progress, err := s.progress.CategoryProgress()
	if err != nil {
		s.logger.Progress().Error("Failed to compute progress for broadcast", "error", err.Error())
		return
	}
	s.broadcaster.Broadcast(progress)
}
