//go:build unit

package booking_test

import (
	"testing"
	"time"

	"spotstay/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, from, to time.Time) booking.DateRange {
	t.Helper()
	r, err := booking.NewDateRange(from, to)
	require.NoError(t, err)
	return r
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := booking.NewDateRange(date(2026, 6, 15), date(2026, 6, 18))
		require.NoError(t, err)
		assert.Equal(t, date(2026, 6, 15), r.From())
		assert.Equal(t, date(2026, 6, 18), r.To())
		assert.Equal(t, 3, r.Nights())
	})

	t.Run("normalizes time-of-day and zone to UTC midnight", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*60*60)
		from := time.Date(2026, 6, 15, 23, 45, 0, 0, time.UTC)
		to := time.Date(2026, 6, 18, 10, 30, 0, 0, jst)

		r, err := booking.NewDateRange(from, to)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 6, 15), r.From())
		// 2026-06-18 10:30 JST is 01:30 UTC on the 18th
		assert.Equal(t, date(2026, 6, 18), r.To())
	})

	t.Run("rejects empty range", func(t *testing.T) {
		_, err := booking.NewDateRange(date(2026, 6, 15), date(2026, 6, 15))
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := booking.NewDateRange(date(2026, 6, 18), date(2026, 6, 15))
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("same calendar day with different times is still empty", func(t *testing.T) {
		from := time.Date(2026, 6, 15, 1, 0, 0, 0, time.UTC)
		to := time.Date(2026, 6, 15, 23, 0, 0, 0, time.UTC)
		_, err := booking.NewDateRange(from, to)
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})
}

func TestDateRangeOverlaps(t *testing.T) {
	base := mustRange(t, date(2026, 6, 10), date(2026, 6, 15))

	cases := []struct {
		name    string
		other   booking.DateRange
		overlap bool
	}{
		{"identical", mustRange(t, date(2026, 6, 10), date(2026, 6, 15)), true},
		{"contained inside", mustRange(t, date(2026, 6, 11), date(2026, 6, 14)), true},
		{"containing", mustRange(t, date(2026, 6, 8), date(2026, 6, 20)), true},
		{"overlapping start", mustRange(t, date(2026, 6, 8), date(2026, 6, 11)), true},
		{"overlapping end", mustRange(t, date(2026, 6, 14), date(2026, 6, 18)), true},
		{"single shared night", mustRange(t, date(2026, 6, 14), date(2026, 6, 15)), true},
		{"back-to-back after", mustRange(t, date(2026, 6, 15), date(2026, 6, 18)), false},
		{"back-to-back before", mustRange(t, date(2026, 6, 8), date(2026, 6, 10)), false},
		{"disjoint after", mustRange(t, date(2026, 6, 20), date(2026, 6, 22)), false},
		{"disjoint before", mustRange(t, date(2026, 6, 1), date(2026, 6, 5)), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, base.Overlaps(tc.other))
			// overlap is symmetric
			assert.Equal(t, tc.overlap, tc.other.Overlaps(base))
		})
	}
}

func TestDateRangeString(t *testing.T) {
	r := mustRange(t, date(2026, 6, 15), date(2026, 6, 18))
	assert.Equal(t, "[2026-06-15,2026-06-18)", r.String())
}

func TestStartOfDay(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)

	assert.Equal(t, date(2026, 3, 1), booking.StartOfDay(time.Date(2026, 3, 1, 17, 59, 59, 1e8, time.UTC)))
	// 2026-03-01 05:00 JST is 2026-02-28 20:00 UTC
	assert.Equal(t, date(2026, 2, 28), booking.StartOfDay(time.Date(2026, 3, 1, 5, 0, 0, 0, jst)))
}
