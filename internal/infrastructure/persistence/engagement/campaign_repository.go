package engagement

import (
	"fmt"
	"sync"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/engagement"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/store"
)

// StoreCampaignRepository persists the email -> campaigns mapping as one JSON blob.
type StoreCampaignRepository struct {
	store  *store.Store
	logger *logging.ChanneledLogger
	mu     sync.Mutex
}

// NewStoreCampaignRepository creates a new instance of the repository.
func NewStoreCampaignRepository(st *store.Store, logger *logging.ChanneledLogger) *StoreCampaignRepository {
	return &StoreCampaignRepository{store: st, logger: logger}
}

// AddMembership joins an email to a campaign. Joining the same campaign twice
// leaves the membership set unchanged; the persisted mapping is only rewritten
// when the set actually changed.
func (r *StoreCampaignRepository) AddMembership(email, campaign string) (bool, error) {
	start := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()

	memberships := engagement.Memberships{}
	if err := r.store.Get(store.CampaignsKey, &memberships); err != nil {
		return false, fmt.Errorf("failed to load campaign memberships: %w", err)
	}

	changed := memberships.Add(email, campaign)
	if !changed {
		r.logger.Store().Debug("Membership already present", "email", email, "campaign", campaign)
		return false, nil
	}

	if err := r.store.Set(store.CampaignsKey, memberships); err != nil {
		return false, fmt.Errorf("failed to persist campaign memberships: %w", err)
	}

	r.logger.Store().Info("Membership added", "email", email, "campaign", campaign, "total", memberships.CountFor(email), "duration", time.Since(start))
	return true, nil
}

// All returns the full membership mapping.
func (r *StoreCampaignRepository) All() (engagement.Memberships, error) {
	memberships := engagement.Memberships{}
	if err := r.store.Get(store.CampaignsKey, &memberships); err != nil {
		return nil, fmt.Errorf("failed to load campaign memberships: %w", err)
	}
	return memberships, nil
}

// ListForEmail returns the campaigns an email has joined, in join order.
func (r *StoreCampaignRepository) ListForEmail(email string) ([]string, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	if all[email] == nil {
		return []string{}, nil
	}
	return all[email], nil
}
