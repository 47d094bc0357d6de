package services

import (
	"sync"
	"testing"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/email"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/messaging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/database"
	persistence "github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/engagement"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/store"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/state"
	"github.com/stretchr/testify/require"
)

// recordingSender captures every notification instead of sending it, and can
// be told to fail so callers can prove notification failures stay non-fatal.
type recordingSender struct {
	mu      sync.Mutex
	logins  []email.LoginParams
	reports []email.ReportParams
	joins   []email.CampaignJoinParams
	err     error
}

func (r *recordingSender) SendLoginNotification(params email.LoginParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins = append(r.logins, params)
	return r.err
}

func (r *recordingSender) SendReportNotification(params email.ReportParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, params)
	return r.err
}

func (r *recordingSender) SendCampaignJoinNotification(params email.CampaignJoinParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.joins = append(r.joins, params)
	return r.err
}

func (r *recordingSender) counts() (logins, reports, joins int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logins), len(r.reports), len(r.joins)
}

func (r *recordingSender) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

type testEnv struct {
	Sessions    *state.SessionStore
	Sender      *recordingSender
	Broadcaster *messaging.ProgressBroadcaster

	SessionService  *SessionService
	ScreenService   *ScreenService
	ReportService   *ReportService
	CampaignService *CampaignService
	ProgressService *ProgressService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger, err := logging.New(&logging.LoggerConfig{})
	require.NoError(t, err)
	tracker := performance.NewTracker()

	db, err := database.NewConnection("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st, err := store.New(db, logger)
	require.NoError(t, err)

	reports := persistence.NewStoreReportRepository(st, logger)
	campaigns := persistence.NewStoreCampaignRepository(st, logger)
	sessions := state.NewSessionStore(time.Hour, logger)
	sender := &recordingSender{}
	broadcaster := messaging.NewProgressBroadcaster(logger)

	notifier := NewNotificationService(sender, logger)
	progress := NewProgressService(reports, campaigns, logger, tracker)

	return &testEnv{
		Sessions:    sessions,
		Sender:      sender,
		Broadcaster: broadcaster,

		SessionService:  NewSessionService(sessions, notifier, logger, tracker),
		ScreenService:   NewScreenService(sessions, logger, tracker),
		ReportService:   NewReportService(reports, progress, notifier, broadcaster, logger, tracker),
		CampaignService: NewCampaignService(campaigns, progress, notifier, broadcaster, logger, tracker),
		ProgressService: progress,
	}
}

func (env *testEnv) login(t *testing.T, name, location, emailAddr string) *session.Session {
	t.Helper()

	sess, token, err := env.SessionService.Login(name, location, emailAddr, "")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return sess
}
