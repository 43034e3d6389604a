//go:build unit

package booking_test

import (
	"testing"
	"time"

	"spotstay/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	spotID := uuid.New()
	guestID := uuid.New()
	now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		b, err := booking.New(spotID, guestID, date(2026, 6, 20), date(2026, 6, 23), now)
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, spotID, b.SpotID())
		assert.Equal(t, guestID, b.GuestID())
		assert.Equal(t, date(2026, 6, 20), b.Dates().From())
		assert.Equal(t, date(2026, 6, 23), b.Dates().To())
		assert.True(t, b.IsHeldBy(guestID))
		assert.False(t, b.IsHeldBy(uuid.New()))
	})

	t.Run("check-in today is allowed", func(t *testing.T) {
		b, err := booking.New(spotID, guestID, date(2026, 6, 15), date(2026, 6, 16), now)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 6, 15), b.Dates().From())
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := booking.New(spotID, guestID, date(2026, 6, 23), date(2026, 6, 20), now)
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("past check-in", func(t *testing.T) {
		_, err := booking.New(spotID, guestID, date(2026, 6, 14), date(2026, 6, 16), now)
		assert.ErrorIs(t, err, booking.ErrPastCheckIn)
	})

	t.Run("distinct IDs per booking", func(t *testing.T) {
		a, err := booking.New(spotID, guestID, date(2026, 6, 20), date(2026, 6, 21), now)
		require.NoError(t, err)
		b, err := booking.New(spotID, guestID, date(2026, 6, 21), date(2026, 6, 22), now)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID(), b.ID())
	})
}

func TestBookingCancellableAt(t *testing.T) {
	spotID := uuid.New()
	guestID := uuid.New()
	now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

	t.Run("well before check-in", func(t *testing.T) {
		b, err := booking.New(spotID, guestID, date(2026, 6, 20), date(2026, 6, 23), now)
		require.NoError(t, err)
		assert.NoError(t, b.CancellableAt(now))
	})

	t.Run("within the lead-time window", func(t *testing.T) {
		b, err := booking.New(spotID, guestID, date(2026, 6, 16), date(2026, 6, 18), now)
		require.NoError(t, err)
		assert.ErrorIs(t, b.CancellableAt(now), booking.ErrTooLateToCancel)
	})
}

func TestReconstruct(t *testing.T) {
	id := uuid.New()
	spotID := uuid.New()
	guestID := uuid.New()
	createdAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	dates := booking.ReconstructDateRange(date(2026, 6, 20), date(2026, 6, 23))

	b := booking.Reconstruct(id, spotID, guestID, dates, createdAt)

	assert.Equal(t, id, b.ID())
	assert.Equal(t, spotID, b.SpotID())
	assert.Equal(t, guestID, b.GuestID())
	assert.Equal(t, dates, b.Dates())
	assert.Equal(t, createdAt, b.CreatedAt())
}
