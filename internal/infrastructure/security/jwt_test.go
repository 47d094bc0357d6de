package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	sessionID := GenerateULID()

	token, err := GenerateSessionToken(sessionID, "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := SessionIDFromToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("abc", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = SessionIDFromToken(token, "other-secret")
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := GenerateSessionToken("abc", "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = SessionIDFromToken(token, "test-secret")
	assert.Error(t, err)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := SessionIDFromToken("not-a-token", "test-secret")
	assert.Error(t, err)
}

func TestGenerateULIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateULID()
		require.Len(t, id, 26)
		require.False(t, seen[id], "ULIDs must not repeat")
		seen[id] = true
	}
}
