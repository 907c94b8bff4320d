package ticketing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomEvents_StablePerSeed(t *testing.T) {
	t.Parallel()

	first := RandomEvents(5, 7)
	second := RandomEvents(5, 7)
	assert.Equal(t, first, second, "same seed yields the same catalog")

	other := RandomEvents(5, 8)
	assert.NotEqual(t, first, other)
}

func TestRandomEvents_WellFormed(t *testing.T) {
	t.Parallel()

	events := RandomEvents(10, 3)
	require.Len(t, events, 10)

	seen := make(map[string]bool, len(events))
	for _, e := range events {
		assert.False(t, seen[e.ID], "duplicate event id %s", e.ID)
		seen[e.ID] = true
		assert.Regexp(t, `^evt_\d{3}$`, e.ID)
		assert.NotEmpty(t, e.Title)
		assert.Contains(t, categories, e.Category)
		assert.GreaterOrEqual(t, e.FromPrice, 25.0)
		assert.LessOrEqual(t, e.FromPrice, 150.0)
		assert.InDelta(t, 4.0, e.Rating, 1.0)
		assert.True(t, e.Date.After(time.Now().Add(-time.Hour)))
	}

	// Filler ids start above the fixed demo set, so the two never collide.
	for _, fixed := range MockEvents() {
		assert.False(t, seen[fixed.ID])
	}
}

func TestRandomEvents_NonPositiveCountIsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RandomEvents(0, 1))
	assert.Empty(t, RandomEvents(-3, 1))
}
