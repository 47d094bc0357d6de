package services

import (
	"strings"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/user"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/email"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/security"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/state"
	"github.com/Engnr-Qasim/dreamers-app/pkg/config"
)

// SessionService owns the session lifecycle: created at login, destroyed at
// logout. A session holds at most one user profile plus the active theme and
// screen.
type SessionService struct {
	sessions    *state.SessionStore
	notifier    *NotificationService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewSessionService creates the session service with injected dependencies.
func NewSessionService(sessions *state.SessionStore, notifier *NotificationService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SessionService {
	return &SessionService{
		sessions:    sessions,
		notifier:    notifier,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Login validates the two required fields and, on success, creates a fresh
// session and fires the login notification. A rejected login leaves no state
// behind.
func (s *SessionService) Login(name, location, emailAddr, phone string) (*session.Session, string, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("login")
	defer marker.Complete()

	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" || location == "" {
		s.logger.Session().Debug("Login rejected: missing required fields", "hasName", name != "", "hasLocation", location != "")
		marker.SetError(ErrNameAndLocationRequired)
		return nil, "", ErrNameAndLocationRequired
	}

	sess := &session.Session{
		ID: security.GenerateULID(),
		Profile: user.Profile{
			Name:     name,
			Email:    strings.TrimSpace(emailAddr),
			Phone:    strings.TrimSpace(phone),
			Location: location,
			Desc:     "",
		},
		Theme:        session.ThemeDark1,
		ActiveScreen: session.ScreenHome,
		CreatedAt:    time.Now().UTC(),
	}
	s.sessions.Put(sess)

	token, err := security.GenerateSessionToken(sess.ID, config.JWTSecret, config.SessionTTL)
	if err != nil {
		s.sessions.Delete(sess.ID)
		s.logger.Session().Error("Failed to sign session token", "error", err.Error())
		marker.SetError(err)
		return nil, "", err
	}

	// Fire-and-forget; the session is already live.
	s.notifier.DispatchLogin(email.LoginParams{
		FromName:  sess.Profile.Name,
		FromEmail: sess.Profile.Email,
		Phone:     sess.Profile.Phone,
		Location:  sess.Profile.Location,
	})

	s.logger.Session().Info("Login successful", "sessionId", sess.ID, "name", sess.Profile.Name, "duration", time.Since(start))
	marker.SetSuccess(true)
	return sess, token, nil
}

// Logout destroys the session unconditionally.
func (s *SessionService) Logout(sessionID string) {
	marker := s.perfTracker.StartOperation("logout")
	defer marker.Complete()

	s.sessions.Delete(sessionID)
	s.logger.Session().Info("Logout complete", "sessionId", sessionID)
	marker.SetSuccess(true)
}

// Get returns the live session for an ID, if any.
func (s *SessionService) Get(sessionID string) (*session.Session, bool) {
	return s.sessions.Get(sessionID)
}

// UpdateProfile overwrites every profile field with the trimmed supplied
// values. Unlike login, this path performs no validation; that asymmetry is
// part of the documented contract.
func (s *SessionService) UpdateProfile(sessionID string, fields user.Profile) (*session.Session, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("update_profile")
	defer marker.Complete()

	sess, exists := s.sessions.Update(sessionID, func(live *session.Session) {
		live.Profile = fields.Trimmed()
	})
	if !exists {
		marker.SetError(ErrLoginRequired)
		return nil, ErrLoginRequired
	}

	s.logger.Session().Info("Profile updated", "sessionId", sess.ID, "name", sess.Profile.Name, "duration", time.Since(start))
	marker.SetSuccess(true)
	return sess, nil
}

// SetTheme switches the session's visual theme.
func (s *SessionService) SetTheme(sessionID, theme string) (*session.Session, error) {
	if !session.ValidTheme(theme) {
		return nil, ErrUnknownTheme
	}

	sess, exists := s.sessions.Update(sessionID, func(live *session.Session) {
		live.Theme = theme
	})
	if !exists {
		return nil, ErrLoginRequired
	}

	s.logger.Session().Debug("Theme switched", "sessionId", sess.ID, "theme", theme)
	return sess, nil
}
