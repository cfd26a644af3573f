package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClock struct{ at time.Time }

func (c *stubClock) Now() time.Time { return c.at }

func TestQuotaTrackerCharges(t *testing.T) {
	t.Parallel()

	clock := &stubClock{at: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}
	q := NewQuotaTracker(2, clock)

	require.NoError(t, q.Charge())
	require.NoError(t, q.Charge())
	assert.ErrorIs(t, q.Charge(), ErrQuotaExhausted)
	assert.Equal(t, 2, q.Used())
	assert.Equal(t, 0, q.Remaining())
}

func TestQuotaTrackerResetsAtUTCMidnight(t *testing.T) {
	t.Parallel()

	clock := &stubClock{at: time.Date(2026, 8, 1, 23, 59, 0, 0, time.UTC)}
	q := NewQuotaTracker(1, clock)

	require.NoError(t, q.Charge())
	assert.ErrorIs(t, q.Charge(), ErrQuotaExhausted)

	clock.at = time.Date(2026, 8, 2, 0, 1, 0, 0, time.UTC)
	require.NoError(t, q.Charge())
	assert.Equal(t, 1, q.Used())
}

func TestQuotaTrackerDisabled(t *testing.T) {
	t.Parallel()

	q := NewQuotaTracker(0, &stubClock{at: time.Now()})
	for i := 0; i < 100; i++ {
		require.NoError(t, q.Charge())
	}
	assert.Equal(t, -1, q.Remaining())
	assert.Equal(t, 0, q.Used())

	var nilTracker *QuotaTracker
	require.NoError(t, nilTracker.Charge())
	assert.Equal(t, -1, nilTracker.Remaining())
}
