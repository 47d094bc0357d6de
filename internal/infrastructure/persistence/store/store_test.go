package store

import (
	"testing"

	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.NewConnection("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st, err := New(db, nil)
	require.NoError(t, err)
	return st
}

func TestStoreGetAbsentKeyLeavesDefault(t *testing.T) {
	st := newTestStore(t)

	out := []string{}
	require.NoError(t, st.Get("missing", &out))
	assert.Empty(t, out)

	seeded := []string{"already", "here"}
	require.NoError(t, st.Get("missing", &seeded))
	assert.Equal(t, []string{"already", "here"}, seeded)
}

func TestStoreRoundTrip(t *testing.T) {
	st := newTestStore(t)

	in := map[string][]string{
		"asha@example.com": {"Tree Plantation", "Cleanliness Drives"},
	}
	require.NoError(t, st.Set(CampaignsKey, in))

	out := map[string][]string{}
	require.NoError(t, st.Get(CampaignsKey, &out))
	assert.Equal(t, in, out)
}

func TestStoreSetReplacesWholeValue(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Set(ReportsKey, []string{"one", "two"}))
	require.NoError(t, st.Set(ReportsKey, []string{"three"}))

	out := []string{}
	require.NoError(t, st.Get(ReportsKey, &out))
	assert.Equal(t, []string{"three"}, out)
}
