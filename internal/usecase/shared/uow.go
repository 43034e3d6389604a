package shared

import (
	"context"
	"time"

	"spotstay/internal/domain/booking"
	"spotstay/internal/infra/db"
	"spotstay/internal/usecase/queries"

	"github.com/google/uuid"
)

// UnitOfWork serializes check-then-write sequences. Within runs fn in a
// SERIALIZABLE transaction and retries serialization failures, so an
// availability check and the insert it guards always observe a
// consistent set of bookings.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	DB() db.DBTX
}

// Minimal snapshot for command-side checks; the full joined view is the
// query side's concern.
type BookingSnapshot struct {
	ID       uuid.UUID
	SpotID   uuid.UUID
	GuestID  uuid.UUID
	DateFrom time.Time
	DateTo   time.Time
}

type SpotSnapshot struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	PriceCents int64
}

type BookingRepository interface {
	Insert(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	// FindOverlapping returns nil when no existing booking on the spot
	// shares a night with dates.
	FindOverlapping(ctx context.Context, dbtx db.DBTX, spotID uuid.UUID, dates booking.DateRange) (*BookingSnapshot, error)
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*BookingSnapshot, error)
	DeleteByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	ViewByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.BookingView, error)
}

// SpotReadStore is the spot catalog as the booking engine sees it.
type SpotReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SpotSnapshot, error)
}

// UserDirectory is the identity collaborator: just enough to confirm a
// booking actor still exists and is active.
type UserDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
