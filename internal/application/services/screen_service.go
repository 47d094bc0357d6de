package services

import (
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/state"
)

// LoginRequiredNotice is the user-visible message shown when a logged-out
// navigation is redirected to the login screen.
const LoginRequiredNotice = "Please login first to access this section."

// Resolution is the outcome of a navigation request: the screen that actually
// became active, and whether the request was redirected to login.
type Resolution struct {
	Screen     session.Screen `json:"screen"`
	Redirected bool           `json:"redirected"`
	Notice     string         `json:"notice,omitempty"`
}

// ScreenService is the screen router: it tracks the single active screen per
// session and gates every screen except login behind a live session.
type ScreenService struct {
	sessions    *state.SessionStore
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewScreenService creates the screen router with injected dependencies.
func NewScreenService(sessions *state.SessionStore, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ScreenService {
	return &ScreenService{
		sessions:    sessions,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// NavigateTo resolves a navigation request. A logged-out request for any
// screen but login is forcibly redirected to login with the login-required
// notice; the requested screen is never activated. Activating a screen
// deactivates all others: the session holds exactly one active screen.
func (s *ScreenService) NavigateTo(sess *session.Session, screenID string) (Resolution, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("navigate")
	defer marker.Complete()

	screen, ok := session.ParseScreen(screenID)
	if !ok {
		marker.SetError(ErrUnknownScreen)
		return Resolution{}, ErrUnknownScreen
	}

	if sess == nil && screen != session.ScreenLogin {
		s.logger.Session().Debug("Navigation redirected to login", "requested", screenID)
		marker.SetSuccess(true)
		return Resolution{
			Screen:     session.ScreenLogin,
			Redirected: true,
			Notice:     LoginRequiredNotice,
		}, nil
	}

	if sess != nil {
		sess.ActiveScreen = screen
		s.sessions.Update(sess.ID, func(live *session.Session) {
			live.ActiveScreen = screen
		})
	}

	s.logger.Session().Debug("Screen activated", "screen", string(screen), "duration", time.Since(start))
	marker.SetSuccess(true)
	return Resolution{Screen: screen}, nil
}
