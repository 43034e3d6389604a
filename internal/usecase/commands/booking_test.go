//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"spotstay/internal/domain/booking"
	"spotstay/internal/infra"
	"spotstay/internal/infra/db"
	"spotstay/internal/infra/uow"
	"spotstay/internal/pkg/clock"
	"spotstay/internal/usecase/commands"
	"spotstay/internal/usecase/queries"
	"spotstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------
// In-memory fakes
// ---------------------------------------------------------------------

type fakeBookingRepo struct {
	rows map[uuid.UUID]shared.BookingSnapshot

	insertErr      error
	overlapErr     error
	overlapCalled  int
	conflictOnSave bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{rows: make(map[uuid.UUID]shared.BookingSnapshot)}
}

func (f *fakeBookingRepo) Insert(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.conflictOnSave {
		// Mimics the overlap constraint firing after the in-transaction
		// check missed a concurrent writer.
		return infra.WrapRepoErr("insert booking", errors.New("exclusion violation"), infra.KindConflict)
	}
	f.rows[b.ID()] = shared.BookingSnapshot{
		ID:       b.ID(),
		SpotID:   b.SpotID(),
		GuestID:  b.GuestID(),
		DateFrom: b.Dates().From(),
		DateTo:   b.Dates().To(),
	}
	return nil
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, _ db.DBTX, spotID uuid.UUID, dates booking.DateRange) (*shared.BookingSnapshot, error) {
	f.overlapCalled++
	if f.overlapErr != nil {
		return nil, f.overlapErr
	}
	for _, row := range f.rows {
		if row.SpotID != spotID {
			continue
		}
		existing := booking.ReconstructDateRange(row.DateFrom, row.DateTo)
		if existing.Overlaps(dates) {
			snap := row
			return &snap, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errors.New("no rows"), infra.KindNotFound)
	}
	return &row, nil
}

func (f *fakeBookingRepo) DeleteByID(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return infra.WrapRepoErr("booking not found", errors.New("no rows"), infra.KindNotFound)
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeBookingRepo) ViewByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*queries.BookingView, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errors.New("no rows"), infra.KindNotFound)
	}
	nights := int32(booking.ReconstructDateRange(row.DateFrom, row.DateTo).Nights())
	return &queries.BookingView{
		ID:         row.ID,
		SpotID:     row.SpotID,
		GuestID:    row.GuestID,
		DateFrom:   row.DateFrom,
		DateTo:     row.DateTo,
		Nights:     nights,
		PriceCents: 10000,
		TotalCents: int64(nights) * 10000,
	}, nil
}

type fakeTx struct {
	bookings *fakeBookingRepo
}

func (f *fakeTx) Bookings() shared.BookingRepository { return f.bookings }
func (f *fakeTx) DB() db.DBTX                        { return nil }

type fakeUoW struct {
	tx        *fakeTx
	withinErr error
}

func (f *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if f.withinErr != nil {
		return f.withinErr
	}
	return fn(ctx, f.tx)
}

type fakeSpots struct {
	spots map[uuid.UUID]shared.SpotSnapshot
}

func (f *fakeSpots) FindByID(_ context.Context, id uuid.UUID) (*shared.SpotSnapshot, error) {
	spot, ok := f.spots[id]
	if !ok {
		return nil, infra.WrapRepoErr("spot not found", errors.New("no rows"), infra.KindNotFound)
	}
	return &spot, nil
}

type fakeUsers struct {
	active map[uuid.UUID]bool
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	if !f.active[id] {
		return nil, infra.WrapRepoErr("user not found", errors.New("no rows"), infra.KindNotFound)
	}
	return &queries.UserView{ID: id, IsActive: true}, nil
}

func (f *fakeUsers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.active[id], nil
}

// ---------------------------------------------------------------------

type bookingFixture struct {
	repo    *fakeBookingRepo
	uow     *fakeUoW
	spots   *fakeSpots
	users   *fakeUsers
	clock   *clock.MockClock
	spotID  uuid.UUID
	guestID uuid.UUID
	svc     commands.BookingCommands
}

func newBookingFixture() *bookingFixture {
	repo := newFakeBookingRepo()
	unitOfWork := &fakeUoW{tx: &fakeTx{bookings: repo}}
	spotID := uuid.New()
	guestID := uuid.New()
	spots := &fakeSpots{spots: map[uuid.UUID]shared.SpotSnapshot{
		spotID: {ID: spotID, OwnerID: uuid.New(), PriceCents: 10000},
	}}
	users := &fakeUsers{active: map[uuid.UUID]bool{guestID: true}}
	clk := clock.NewMockClock(time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC))

	return &bookingFixture{
		repo:    repo,
		uow:     unitOfWork,
		spots:   spots,
		users:   users,
		clock:   clk,
		spotID:  spotID,
		guestID: guestID,
		svc:     commands.NewBookingCommands(unitOfWork, spots, users, clk),
	}
}

func (f *bookingFixture) create(t *testing.T, from, to time.Time) *queries.BookingView {
	t.Helper()
	view, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
		SpotID:   f.spotID,
		GuestID:  f.guestID,
		DateFrom: from,
		DateTo:   to,
	})
	require.NoError(t, err)
	require.NotNil(t, view)
	return view
}

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newBookingFixture()
		view := f.create(t, day(20), day(23))

		assert.Equal(t, f.spotID, view.SpotID)
		assert.Equal(t, f.guestID, view.GuestID)
		assert.Equal(t, int32(3), view.Nights)
		assert.Equal(t, int64(30000), view.TotalCents)
		assert.Equal(t, 1, f.repo.overlapCalled)
	})

	t.Run("check-in today succeeds", func(t *testing.T) {
		f := newBookingFixture()
		view := f.create(t, day(15), day(16))
		assert.Equal(t, day(15), view.DateFrom)
	})

	t.Run("invalid range", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
			SpotID: f.spotID, GuestID: f.guestID, DateFrom: day(23), DateTo: day(20),
		})
		assert.ErrorIs(t, err, commands.ErrInvalidDateRange)
	})

	t.Run("empty range", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
			SpotID: f.spotID, GuestID: f.guestID, DateFrom: day(20), DateTo: day(20),
		})
		assert.ErrorIs(t, err, commands.ErrInvalidDateRange)
	})

	t.Run("past check-in", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
			SpotID: f.spotID, GuestID: f.guestID, DateFrom: day(14), DateTo: day(16),
		})
		assert.ErrorIs(t, err, commands.ErrPastCheckIn)
	})

	t.Run("unknown spot", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
			SpotID: uuid.New(), GuestID: f.guestID, DateFrom: day(20), DateTo: day(23),
		})
		assert.ErrorIs(t, err, commands.ErrSpotNotFound)
	})

	t.Run("unknown guest", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
			SpotID: f.spotID, GuestID: uuid.New(), DateFrom: day(20), DateTo: day(23),
		})
		assert.ErrorIs(t, err, commands.ErrGuestNotFound)
	})

	t.Run("overlapping dates conflict", func(t *testing.T) {
		f := newBookingFixture()
		f.create(t, day(20), day(23))

		_, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
			SpotID: f.spotID, GuestID: f.guestID, DateFrom: day(22), DateTo: day(25),
		})
		assert.ErrorIs(t, err, commands.ErrDateConflict)
		assert.Len(t, f.repo.rows, 1)
	})

	t.Run("back-to-back is not a conflict", func(t *testing.T) {
		f := newBookingFixture()
		f.create(t, day(20), day(23))
		f.create(t, day(23), day(26))
		f.create(t, day(18), day(20))

		assert.Len(t, f.repo.rows, 3)
	})

	t.Run("same dates on another spot are independent", func(t *testing.T) {
		f := newBookingFixture()
		otherSpot := uuid.New()
		f.spots.spots[otherSpot] = shared.SpotSnapshot{ID: otherSpot, OwnerID: uuid.New(), PriceCents: 5000}

		f.create(t, day(20), day(23))
		_, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
			SpotID: otherSpot, GuestID: f.guestID, DateFrom: day(20), DateTo: day(23),
		})
		assert.NoError(t, err)
	})

	t.Run("constraint conflict surfaced as date conflict", func(t *testing.T) {
		f := newBookingFixture()
		f.repo.conflictOnSave = true

		_, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
			SpotID: f.spotID, GuestID: f.guestID, DateFrom: day(20), DateTo: day(23),
		})
		assert.ErrorIs(t, err, commands.ErrDateConflict)
	})

	t.Run("retries exhausted maps to store unavailable", func(t *testing.T) {
		f := newBookingFixture()
		f.uow.withinErr = uow.ErrRetriesExhausted

		_, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
			SpotID: f.spotID, GuestID: f.guestID, DateFrom: day(20), DateTo: day(23),
		})
		assert.ErrorIs(t, err, commands.ErrStoreUnavailable)
	})

	t.Run("plain store failure is not retryable", func(t *testing.T) {
		f := newBookingFixture()
		f.repo.overlapErr = infra.WrapRepoErr("query failed", errors.New("connection reset"))

		_, err := f.svc.CreateBooking(context.Background(), commands.CreateBookingParams{
			SpotID: f.spotID, GuestID: f.guestID, DateFrom: day(20), DateTo: day(23),
		})
		assert.ErrorIs(t, err, commands.ErrStoreFailure)
		assert.NotErrorIs(t, err, commands.ErrStoreUnavailable)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newBookingFixture()
		view := f.create(t, day(20), day(23))

		err := f.svc.CancelBooking(context.Background(), commands.CancelBookingParams{
			BookingID:   view.ID,
			RequesterID: f.guestID,
		})
		require.NoError(t, err)
		assert.Empty(t, f.repo.rows)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture()
		err := f.svc.CancelBooking(context.Background(), commands.CancelBookingParams{
			BookingID:   uuid.New(),
			RequesterID: f.guestID,
		})
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("requester is not the booking guest", func(t *testing.T) {
		f := newBookingFixture()
		view := f.create(t, day(20), day(23))

		err := f.svc.CancelBooking(context.Background(), commands.CancelBookingParams{
			BookingID:   view.ID,
			RequesterID: uuid.New(),
		})
		assert.ErrorIs(t, err, commands.ErrNotBookingGuest)
		assert.Len(t, f.repo.rows, 1)
	})

	t.Run("too late to cancel", func(t *testing.T) {
		f := newBookingFixture()
		view := f.create(t, day(20), day(23))

		// Move to the evening before check-in: less than 24h remain.
		f.clock.Set(time.Date(2026, 6, 19, 18, 0, 0, 0, time.UTC))

		err := f.svc.CancelBooking(context.Background(), commands.CancelBookingParams{
			BookingID:   view.ID,
			RequesterID: f.guestID,
		})
		assert.ErrorIs(t, err, commands.ErrCancelTooLate)
		assert.Len(t, f.repo.rows, 1)
	})

	t.Run("48h before check-in still cancellable", func(t *testing.T) {
		f := newBookingFixture()
		view := f.create(t, day(20), day(23))

		f.clock.Set(time.Date(2026, 6, 18, 0, 0, 0, 0, time.UTC))

		err := f.svc.CancelBooking(context.Background(), commands.CancelBookingParams{
			BookingID:   view.ID,
			RequesterID: f.guestID,
		})
		assert.NoError(t, err)
	})

	t.Run("cancelled dates can be rebooked", func(t *testing.T) {
		f := newBookingFixture()
		view := f.create(t, day(20), day(23))

		err := f.svc.CancelBooking(context.Background(), commands.CancelBookingParams{
			BookingID:   view.ID,
			RequesterID: f.guestID,
		})
		require.NoError(t, err)

		rebooked := f.create(t, day(20), day(23))
		assert.NotEqual(t, view.ID, rebooked.ID)
	})
}
