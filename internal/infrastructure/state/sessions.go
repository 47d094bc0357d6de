// Package state provides the in-memory session store. Sessions live only in
// process memory: a restart logs every user out, matching the contract that
// session state never survives a reload.
package state

import (
	"sync"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
)

// SessionStore holds all live sessions keyed by session ID.
type SessionStore struct {
	sessions map[string]*session.Session
	ttl      time.Duration
	mu       sync.RWMutex
	logger   *logging.ChanneledLogger
}

// NewSessionStore creates a new session store with the given idle TTL.
func NewSessionStore(ttl time.Duration, logger *logging.ChanneledLogger) *SessionStore {
	if logger != nil {
		logger.Session().Info("Initializing session store", "ttl", ttl)
	}
	return &SessionStore{
		sessions: make(map[string]*session.Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Put stores a copy of the session, replacing any previous session under the
// same ID. The caller keeps its own copy; all shared state stays behind the
// store's lock.
func (ss *SessionStore) Put(sess *session.Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	sess.LastActivity = time.Now().UTC()
	stored := *sess
	ss.sessions[sess.ID] = &stored

	if ss.logger != nil {
		ss.logger.Session().Debug("Session stored", "sessionId", sess.ID, "name", sess.Profile.Name)
	}
}

// Get retrieves a copy of a live session by ID. Expired sessions are evicted
// and reported as absent; a hit refreshes the activity timestamp. Mutating the
// returned copy has no effect on the stored session; writes go through Update.
func (ss *SessionStore) Get(sessionID string) (*session.Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	sess, exists := ss.live(sessionID)
	if !exists {
		return nil, false
	}

	sess.LastActivity = time.Now().UTC()
	copied := *sess
	return &copied, true
}

// Update applies fn to the stored session under the store's lock and returns
// a copy of the result. This is the only way to mutate a live session.
func (ss *SessionStore) Update(sessionID string, fn func(*session.Session)) (*session.Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	sess, exists := ss.live(sessionID)
	if !exists {
		return nil, false
	}

	fn(sess)
	sess.LastActivity = time.Now().UTC()

	if ss.logger != nil {
		ss.logger.Session().Debug("Session updated", "sessionId", sessionID)
	}

	copied := *sess
	return &copied, true
}

// live returns the stored session, evicting it when expired. Callers hold the lock.
func (ss *SessionStore) live(sessionID string) (*session.Session, bool) {
	sess, exists := ss.sessions[sessionID]
	if !exists {
		return nil, false
	}

	if ss.ttl > 0 && time.Since(sess.LastActivity) > ss.ttl {
		delete(ss.sessions, sessionID)
		if ss.logger != nil {
			ss.logger.Session().Debug("Session expired", "sessionId", sessionID)
		}
		return nil, false
	}

	return sess, true
}

// Delete removes a session unconditionally. Deleting an absent session is a no-op.
func (ss *SessionStore) Delete(sessionID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	delete(ss.sessions, sessionID)
	if ss.logger != nil {
		ss.logger.Session().Debug("Session deleted", "sessionId", sessionID)
	}
}

// Count returns the number of live sessions.
func (ss *SessionStore) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}
