package queries

import (
	"context"
	"time"

	"spotstay/internal/infra"
	"spotstay/internal/pkg/clock"
	"spotstay/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrSpotNotFound    = errs.New("spot not found")
	ErrAccessDenied    = errs.New("access denied")
	ErrReadFailed      = errs.New("read operation failed")
)

type BookingReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error)
	ListBySpot(ctx context.Context, spotID uuid.UUID) ([]*BookingListItem, error)
	StatsBySpot(ctx context.Context, spotID uuid.UUID, now time.Time) (*SpotBookingStats, error)
}

type BookingQueries interface {
	// GetBooking enforces that only the guest who booked or the owner
	// of the spot may see a booking.
	GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingView, error)
	ListGuestBookings(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error)
	ListSpotBookings(ctx context.Context, actorID, spotID uuid.UUID) ([]*BookingListItem, error)
	SpotStats(ctx context.Context, actorID, spotID uuid.UUID) (*SpotBookingStats, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	spots    SpotReadStore
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, spots SpotReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		spots:    spots,
		clock:    clk,
	}
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindViewByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrReadFailed)
	}

	if view.GuestID != actorID && view.SpotOwnerID != actorID {
		return nil, ErrAccessDenied
	}

	return view, nil
}

func (q *bookingQueriesImpl) ListGuestBookings(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error) {
	items, err := q.bookings.ListByGuest(ctx, guestID)
	if err != nil {
		return nil, errs.Mark(err, ErrReadFailed)
	}
	return items, nil
}

func (q *bookingQueriesImpl) ListSpotBookings(ctx context.Context, actorID, spotID uuid.UUID) ([]*BookingListItem, error) {
	if err := q.ensureSpotOwner(ctx, actorID, spotID); err != nil {
		return nil, err
	}

	items, err := q.bookings.ListBySpot(ctx, spotID)
	if err != nil {
		return nil, errs.Mark(err, ErrReadFailed)
	}
	return items, nil
}

func (q *bookingQueriesImpl) SpotStats(ctx context.Context, actorID, spotID uuid.UUID) (*SpotBookingStats, error) {
	if err := q.ensureSpotOwner(ctx, actorID, spotID); err != nil {
		return nil, err
	}

	stats, err := q.bookings.StatsBySpot(ctx, spotID, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrReadFailed)
	}
	return stats, nil
}

func (q *bookingQueriesImpl) ensureSpotOwner(ctx context.Context, actorID, spotID uuid.UUID) error {
	spot, err := q.spots.FindViewByID(ctx, spotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrSpotNotFound
		}
		return errs.Mark(err, ErrReadFailed)
	}

	if spot.OwnerID != actorID {
		return ErrAccessDenied
	}
	return nil
}
