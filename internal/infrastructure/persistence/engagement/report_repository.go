// Package engagement provides the store-backed implementations of the
// engagement domain repositories (Report, Campaign).
package engagement

import (
	"fmt"
	"sync"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/engagement"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/store"
)

// StoreReportRepository persists the report sequence as one JSON blob.
// The read-modify-write under the mutex keeps each append atomic with respect
// to other handlers in this process; writes from other processes sharing the
// store still follow last-writer-wins.
type StoreReportRepository struct {
	store  *store.Store
	logger *logging.ChanneledLogger
	mu     sync.Mutex
}

// NewStoreReportRepository creates a new instance of the repository.
func NewStoreReportRepository(st *store.Store, logger *logging.ChanneledLogger) *StoreReportRepository {
	return &StoreReportRepository{store: st, logger: logger}
}

// Append adds a report to the end of the persisted sequence.
func (r *StoreReportRepository) Append(report engagement.Report) error {
	start := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()

	reports := []engagement.Report{}
	if err := r.store.Get(store.ReportsKey, &reports); err != nil {
		return fmt.Errorf("failed to load report sequence: %w", err)
	}

	reports = append(reports, report)
	if err := r.store.Set(store.ReportsKey, reports); err != nil {
		return fmt.Errorf("failed to persist report sequence: %w", err)
	}

	r.logger.Store().Info("Report appended", "reportId", report.ID, "type", string(report.Type), "total", len(reports), "duration", time.Since(start))
	return nil
}

// All returns the full report sequence in insertion order.
func (r *StoreReportRepository) All() ([]engagement.Report, error) {
	reports := []engagement.Report{}
	if err := r.store.Get(store.ReportsKey, &reports); err != nil {
		return nil, fmt.Errorf("failed to load report sequence: %w", err)
	}
	return reports, nil
}

// ListByName returns the reports submitted under the given user name.
func (r *StoreReportRepository) ListByName(name string) ([]engagement.Report, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}

	matched := []engagement.Report{}
	for _, report := range all {
		if report.Name == name {
			matched = append(matched, report)
		}
	}
	return matched, nil
}
