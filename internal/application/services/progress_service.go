package services

import (
	"fmt"
	"math"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/engagement"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/pkg/config"
)

// CategoryProgress is one category's weighted completion state. Each matching
// report contributes 1.0 and each matching campaign membership entry 0.5; the
// percentage is clamped at 100 once the count reaches the fixed capacity.
type CategoryProgress struct {
	Category engagement.Category `json:"category"`
	Count    float64             `json:"count"`
	Percent  int                 `json:"percent"`
	Label    string              `json:"label"`
}

// Dashboard is the per-user view: plain counts, no weighting.
type Dashboard struct {
	ReportCount int `json:"reportCount"`
	JoinedCount int `json:"joinedCount"`
}

// ProgressService derives progress and dashboard figures by scanning the
// full persisted collections.
type ProgressService struct {
	reports     engagement.ReportRepository
	campaigns   engagement.CampaignRepository
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewProgressService creates the progress service with injected dependencies.
func NewProgressService(reports engagement.ReportRepository, campaigns engagement.CampaignRepository, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ProgressService {
	return &ProgressService{
		reports:     reports,
		campaigns:   campaigns,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// CategoryProgress computes the weighted completion of every fixed category
// across all users' reports and memberships.
func (s *ProgressService) CategoryProgress() ([]CategoryProgress, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("category_progress")
	defer marker.Complete()

	reports, err := s.reports.All()
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	memberships, err := s.campaigns.All()
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	counts := make(map[engagement.Category]float64, len(engagement.Categories()))
	for _, report := range reports {
		if _, known := engagement.ParseCategory(string(report.Type)); known {
			counts[report.Type]++
		}
	}
	for _, joined := range memberships {
		for _, campaign := range joined {
			if category, known := engagement.ParseCategory(campaign); known {
				counts[category] += config.MembershipWeight
			}
		}
	}

	capacity := float64(config.CategoryCapacity)
	if capacity < 1 {
		capacity = 1
	}
	progress := make([]CategoryProgress, 0, len(engagement.Categories()))
	for _, category := range engagement.Categories() {
		count := counts[category]
		percent := int(math.Round(count / capacity * 100))
		if percent > 100 {
			percent = 100
		}
		progress = append(progress, CategoryProgress{
			Category: category,
			Count:    count,
			Percent:  percent,
			Label:    fmt.Sprintf("%d%% completed", percent),
		})
	}

	s.logger.Progress().Debug("Category progress computed", "reports", len(reports), "duration", time.Since(start))
	marker.SetSuccess(true)
	return progress, nil
}

// UserDashboard counts the current user's own reports and joined campaigns.
// Matching is by name and email strings; users carry no stable identifier.
func (s *ProgressService) UserDashboard(name, emailAddr string) (Dashboard, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("user_dashboard")
	defer marker.Complete()

	userReports, err := s.reports.ListByName(name)
	if err != nil {
		marker.SetError(err)
		return Dashboard{}, err
	}

	joined, err := s.campaigns.ListForEmail(emailAddr)
	if err != nil {
		marker.SetError(err)
		return Dashboard{}, err
	}

	s.logger.Progress().Debug("User dashboard computed", "name", name, "duration", time.Since(start))
	marker.SetSuccess(true)
	return Dashboard{
		ReportCount: len(userReports),
		JoinedCount: len(joined),
	}, nil
}
