package engagement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	t.Run("accepts every fixed category", func(t *testing.T) {
		for _, category := range Categories() {
			parsed, ok := ParseCategory(string(category))
			assert.True(t, ok)
			assert.Equal(t, category, parsed)
		}
	})

	t.Run("rejects names outside the fixed set", func(t *testing.T) {
		for _, name := range []string{"", "tree plantation", "Pothole Repair", "Tree Plantation "} {
			_, ok := ParseCategory(name)
			assert.False(t, ok, "expected %q to be rejected", name)
		}
	})
}

func TestMembershipsAdd(t *testing.T) {
	m := Memberships{}

	assert.True(t, m.Add("asha@example.com", "Tree Plantation"))
	assert.True(t, m.Add("asha@example.com", "Cleanliness Drives"))
	assert.Equal(t, 2, m.CountFor("asha@example.com"))

	t.Run("duplicate add leaves the set unchanged", func(t *testing.T) {
		assert.False(t, m.Add("asha@example.com", "Tree Plantation"))
		assert.Equal(t, 2, m.CountFor("asha@example.com"))
		assert.Equal(t, []string{"Tree Plantation", "Cleanliness Drives"}, m["asha@example.com"])
	})

	t.Run("memberships are keyed per email", func(t *testing.T) {
		assert.True(t, m.Add("ravi@example.com", "Tree Plantation"))
		assert.Equal(t, 1, m.CountFor("ravi@example.com"))
		assert.Equal(t, 0, m.CountFor("unknown@example.com"))
	})
}
