package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPastCheckIn     = errors.New("check-in date cannot be in the past")
	ErrTooLateToCancel = errors.New("bookings can only be cancelled at least 24 hours before check-in")
)

// Booking is a guest's claim on a spot for a half-open date range. It
// is immutable once created: moving a stay is modeled as cancel plus
// re-create so the overlap invariant is always re-checked from scratch.
type Booking struct {
	id        uuid.UUID
	spotID    uuid.UUID
	guestID   uuid.UUID
	dates     DateRange
	createdAt time.Time
}

// New validates the request-shape rules (range validity, no past
// check-in) and mints a new booking. Availability against other
// bookings is the store's concern, checked in the same transaction as
// the insert.
func New(spotID, guestID uuid.UUID, from, to time.Time, now time.Time) (*Booking, error) {
	dates, err := NewDateRange(from, to)
	if err != nil {
		return nil, err
	}

	if !FutureOrToday(dates.From(), now) {
		return nil, ErrPastCheckIn
	}

	return &Booking{
		id:      uuid.New(),
		spotID:  spotID,
		guestID: guestID,
		dates:   dates,
	}, nil
}

func Reconstruct(id, spotID, guestID uuid.UUID, dates DateRange, createdAt time.Time) *Booking {
	return &Booking{
		id:        id,
		spotID:    spotID,
		guestID:   guestID,
		dates:     dates,
		createdAt: createdAt,
	}
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) SpotID() uuid.UUID    { return b.spotID }
func (b *Booking) GuestID() uuid.UUID   { return b.guestID }
func (b *Booking) Dates() DateRange     { return b.dates }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

func (b *Booking) IsHeldBy(userID uuid.UUID) bool {
	return b.guestID == userID
}

// CancellableAt applies the cancellation-window policy to this booking.
func (b *Booking) CancellableAt(now time.Time) error {
	if !Cancellable(b.dates.From(), now) {
		return ErrTooLateToCancel
	}
	return nil
}
