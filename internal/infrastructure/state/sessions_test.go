package state

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(id, name string) *session.Session {
	return &session.Session{
		ID:           id,
		Profile:      user.Profile{Name: name, Location: "Pune"},
		Theme:        session.ThemeDark1,
		ActiveScreen: session.ScreenHome,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestSessionStorePutGetDelete(t *testing.T) {
	ss := NewSessionStore(time.Hour, nil)

	ss.Put(newSession("s1", "Asha"))
	assert.Equal(t, 1, ss.Count())

	got, exists := ss.Get("s1")
	require.True(t, exists)
	assert.Equal(t, "Asha", got.Profile.Name)

	_, exists = ss.Get("unknown")
	assert.False(t, exists)

	ss.Delete("s1")
	_, exists = ss.Get("s1")
	assert.False(t, exists)
	assert.Equal(t, 0, ss.Count())

	// Deleting an absent session is a no-op.
	ss.Delete("s1")
}

func TestSessionStoreExpiry(t *testing.T) {
	ss := NewSessionStore(10*time.Millisecond, nil)

	ss.Put(newSession("s1", "Asha"))
	time.Sleep(25 * time.Millisecond)

	_, exists := ss.Get("s1")
	assert.False(t, exists, "expired session should be evicted")
	assert.Equal(t, 0, ss.Count())
}

func TestSessionStoreGetReturnsIndependentCopy(t *testing.T) {
	ss := NewSessionStore(time.Hour, nil)
	ss.Put(newSession("s1", "Asha"))

	got, exists := ss.Get("s1")
	require.True(t, exists)
	got.Profile.Name = "Mallory"
	got.ActiveScreen = session.ScreenReport

	again, exists := ss.Get("s1")
	require.True(t, exists)
	assert.Equal(t, "Asha", again.Profile.Name)
	assert.Equal(t, session.ScreenHome, again.ActiveScreen)
}

func TestSessionStoreUpdate(t *testing.T) {
	ss := NewSessionStore(time.Hour, nil)
	ss.Put(newSession("s1", "Asha"))

	updated, exists := ss.Update("s1", func(live *session.Session) {
		live.Profile.Name = "Asha Patil"
	})
	require.True(t, exists)
	assert.Equal(t, "Asha Patil", updated.Profile.Name)

	got, exists := ss.Get("s1")
	require.True(t, exists)
	assert.Equal(t, "Asha Patil", got.Profile.Name)

	_, exists = ss.Update("missing", func(live *session.Session) {
		live.Profile.Name = "ignored"
	})
	assert.False(t, exists)
}

func TestSessionStoreConcurrentUpdatesAndReads(t *testing.T) {
	ss := NewSessionStore(time.Hour, nil)
	ss.Put(newSession("s1", "Asha"))

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			ss.Update("s1", func(live *session.Session) {
				live.Profile.Name = fmt.Sprintf("Asha %d", i)
				live.ActiveScreen = session.ScreenProfile
			})
		}(i)
		go func() {
			defer wg.Done()
			if sess, exists := ss.Get("s1"); exists {
				_ = sess.Profile.Name
				_ = sess.ActiveScreen
			}
		}()
	}
	wg.Wait()

	got, exists := ss.Get("s1")
	require.True(t, exists)
	assert.Equal(t, session.ScreenProfile, got.ActiveScreen)
}

func TestSessionStoreGetRefreshesActivity(t *testing.T) {
	ss := NewSessionStore(40*time.Millisecond, nil)

	ss.Put(newSession("s1", "Asha"))
	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		_, exists := ss.Get("s1")
		require.True(t, exists, "active session should stay alive across refreshes")
	}
}
