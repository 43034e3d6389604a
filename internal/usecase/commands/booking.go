package commands

import (
	"context"
	"errors"
	"time"

	"spotstay/internal/domain/booking"
	"spotstay/internal/infra"
	"spotstay/internal/infra/uow"
	"spotstay/internal/pkg/clock"
	"spotstay/internal/pkg/errs"
	"spotstay/internal/usecase/queries"
	"spotstay/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange = errs.New("invalid date range")
	ErrPastCheckIn      = errs.New("check-in date is in the past")
	ErrSpotNotFound     = errs.New("spot not found")
	ErrGuestNotFound    = errs.New("guest account not found or inactive")
	ErrDateConflict     = errs.New("spot is already booked for the selected dates")
	ErrBookingNotFound  = errs.New("booking not found")
	ErrNotBookingGuest  = errs.New("booking belongs to another guest")
	ErrCancelTooLate    = errs.New("bookings can only be cancelled at least 24 hours before check-in")

	// ErrStoreUnavailable is the only retryable failure: the store kept
	// timing out or losing serialization races. Everything else is
	// terminal for the request.
	ErrStoreUnavailable = errs.New("store temporarily unavailable")
	ErrStoreFailure     = errs.New("store operation failed")
)

type CreateBookingParams struct {
	SpotID   uuid.UUID
	GuestID  uuid.UUID
	DateFrom time.Time
	DateTo   time.Time
}

type CancelBookingParams struct {
	BookingID   uuid.UUID
	RequesterID uuid.UUID
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, params CancelBookingParams) error
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	spots shared.SpotReadStore
	users shared.UserDirectory
	clock clock.Clock
}

func NewBookingCommands(
	unitOfWork shared.UnitOfWork,
	spots shared.SpotReadStore,
	users shared.UserDirectory,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:   unitOfWork,
		spots: spots,
		users: users,
		clock: clk,
	}
}

// CreateBooking validates request shape, then runs the availability
// check and insert as one atomic unit. Two concurrent requests for
// overlapping dates on the same spot can never both commit: the losing
// transaction either retries and sees the winner's row (Conflict) or
// trips the store's overlap constraint (also Conflict).
func (u *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error) {
	if err := u.ensureGuest(ctx, params.GuestID); err != nil {
		return nil, err
	}

	if _, err := u.spots.FindByID(ctx, params.SpotID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	entity, err := booking.New(params.SpotID, params.GuestID, params.DateFrom, params.DateTo, u.clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidDateRange):
			return nil, errs.Mark(err, ErrInvalidDateRange)
		case errors.Is(err, booking.ErrPastCheckIn):
			return nil, errs.Mark(err, ErrPastCheckIn)
		default:
			return nil, errs.Mark(err, ErrStoreFailure)
		}
	}

	var view *queries.BookingView
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Bookings().FindOverlapping(ctx, tx.DB(), entity.SpotID(), entity.Dates())
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDateConflict
		}

		if err := tx.Bookings().Insert(ctx, tx.DB(), entity); err != nil {
			return err
		}

		// Read-after-write inside the same transaction so the response
		// reflects exactly what was committed.
		view, err = tx.Bookings().ViewByID(ctx, tx.DB(), entity.ID())
		return err
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	return view, nil
}

// CancelBooking hard-deletes the reservation, fully freeing the range.
// The ownership and lead-time checks run in the same transaction as the
// delete so they cannot race a concurrent create on the spot.
func (u *bookingCommandsImpl) CancelBooking(ctx context.Context, params CancelBookingParams) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Bookings().FindByID(ctx, tx.DB(), params.BookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if snap.GuestID != params.RequesterID {
			return ErrNotBookingGuest
		}

		if !booking.Cancellable(snap.DateFrom, u.clock.Now()) {
			return ErrCancelTooLate
		}

		return tx.Bookings().DeleteByID(ctx, tx.DB(), params.BookingID)
	})
	if err != nil {
		return mapStoreErr(err)
	}

	return nil
}

func (u *bookingCommandsImpl) ensureGuest(ctx context.Context, guestID uuid.UUID) error {
	exists, err := u.users.Exists(ctx, guestID)
	if err != nil {
		return errs.Mark(err, ErrStoreFailure)
	}
	if !exists {
		return ErrGuestNotFound
	}
	return nil
}

// mapStoreErr translates unit-of-work outcomes into the command error
// taxonomy. Command sentinels pass through unchanged.
func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, ErrDateConflict),
		errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrNotBookingGuest),
		errors.Is(err, ErrCancelTooLate):
		return err
	case infra.IsKind(err, infra.KindConflict):
		// Exclusion constraint backstop fired.
		return errs.Mark(err, ErrDateConflict)
	case errors.Is(err, uow.ErrRetriesExhausted), infra.IsKind(err, infra.KindSerialization):
		return errs.Mark(err, ErrStoreUnavailable)
	default:
		return errs.Mark(err, ErrStoreFailure)
	}
}
