//go:build unit

package booking_test

import (
	"testing"
	"time"

	"spotstay/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestFutureOrToday(t *testing.T) {
	now := time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"tomorrow", date(2026, 6, 16), true},
		{"far future", date(2027, 1, 1), true},
		{"today at midnight", date(2026, 6, 15), true},
		{"today earlier than now", time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC), true},
		{"yesterday", date(2026, 6, 14), false},
		{"far past", date(2020, 1, 1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.FutureOrToday(tc.date, now))
		})
	}
}

func TestCancellable(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		dateFrom time.Time
		want     bool
	}{
		{"check-in in three days", date(2026, 6, 18), true},
		{"check-in day after tomorrow", date(2026, 6, 17), true},
		{"check-in tomorrow, less than 24h away", date(2026, 6, 16), false},
		{"check-in today", date(2026, 6, 15), false},
		{"check-in already passed", date(2026, 6, 10), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.Cancellable(tc.dateFrom, now))
		})
	}

	t.Run("exact 24h boundary is too late", func(t *testing.T) {
		// now + 24h lands exactly on the check-in midnight; the policy
		// requires strictly more than 24 hours of lead time.
		atBoundary := time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)
		assert.False(t, booking.Cancellable(date(2026, 6, 17), atBoundary))

		justBefore := atBoundary.Add(-time.Second)
		assert.True(t, booking.Cancellable(date(2026, 6, 17), justBefore))
	})
}

func TestValidRange(t *testing.T) {
	assert.True(t, booking.ValidRange(date(2026, 6, 15), date(2026, 6, 16)))
	assert.False(t, booking.ValidRange(date(2026, 6, 15), date(2026, 6, 15)))
	assert.False(t, booking.ValidRange(date(2026, 6, 16), date(2026, 6, 15)))
}
