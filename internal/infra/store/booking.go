package store

import (
	"context"
	"errors"
	"time"

	"spotstay/internal/domain/booking"
	"spotstay/internal/infra"
	"spotstay/internal/infra/db"
	"spotstay/internal/usecase/queries"
	"spotstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingViewQuery = `
SELECT b.id, b.spot_id, s.title, s.location, s.owner_id,
       b.guest_id, u.name, u.email,
       b.date_from, b.date_to,
       (b.date_to - b.date_from) AS nights,
       s.price_cents,
       (b.date_to - b.date_from) * s.price_cents AS total_cents,
       b.created_at
FROM bookings b
JOIN spots s ON s.id = b.spot_id
JOIN users u ON u.id = b.guest_id
`

// BookingStore is the write side of the store adapter. Every method
// takes an explicit DBTX so the unit-of-work decides the transaction
// boundary; the store itself never begins one.
type BookingStore struct{}

func NewBookingStore() *BookingStore {
	return &BookingStore{}
}

func (s *BookingStore) Insert(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (id, spot_id, guest_id, date_from, date_to)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := dbtx.Exec(ctx, query,
		b.ID(), b.SpotID(), b.GuestID(), b.Dates().From(), b.Dates().To())
	if err != nil {
		return wrapPgErr("failed to insert booking", err)
	}

	return nil
}

func (s *BookingStore) FindOverlapping(ctx context.Context, dbtx db.DBTX, spotID uuid.UUID, dates booking.DateRange) (*shared.BookingSnapshot, error) {
	// Half-open overlap predicate: touching endpoints do not conflict.
	const query = `
		SELECT id, spot_id, guest_id, date_from, date_to
		FROM bookings
		WHERE spot_id = $1 AND date_from < $3 AND date_to > $2
		LIMIT 1`

	var snap shared.BookingSnapshot
	err := dbtx.QueryRow(ctx, query, spotID, dates.From(), dates.To()).Scan(
		&snap.ID, &snap.SpotID, &snap.GuestID, &snap.DateFrom, &snap.DateTo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapPgErr("failed to query overlapping bookings", err)
	}

	return &snap, nil
}

func (s *BookingStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const query = `
		SELECT id, spot_id, guest_id, date_from, date_to
		FROM bookings
		WHERE id = $1`

	var snap shared.BookingSnapshot
	err := dbtx.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.SpotID, &snap.GuestID, &snap.DateFrom, &snap.DateTo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to find booking by ID", err)
	}

	return &snap, nil
}

func (s *BookingStore) DeleteByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return wrapPgErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

func (s *BookingStore) ViewByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.BookingView, error) {
	return scanBookingView(dbtx.QueryRow(ctx, bookingViewQuery+`WHERE b.id = $1`, id))
}

// BookingReadStore serves the query side from the pool outside any
// explicit transaction.
type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return scanBookingView(r.db.QueryRow(ctx, bookingViewQuery+`WHERE b.id = $1`, id))
}

func (r *BookingReadStore) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.spot_id, s.title, b.date_from, b.date_to,
		       (b.date_to - b.date_from) AS nights,
		       (b.date_to - b.date_from) * s.price_cents AS total_cents,
		       b.created_at
		FROM bookings b
		JOIN spots s ON s.id = b.spot_id
		WHERE b.guest_id = $1
		ORDER BY b.date_from DESC, b.created_at DESC`

	rows, err := r.db.Query(ctx, query, guestID)
	if err != nil {
		return nil, wrapPgErr("failed to list bookings by guest", err)
	}
	defer rows.Close()

	return collectBookingListItems(rows)
}

func (r *BookingReadStore) ListBySpot(ctx context.Context, spotID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.spot_id, s.title, b.date_from, b.date_to,
		       (b.date_to - b.date_from) AS nights,
		       (b.date_to - b.date_from) * s.price_cents AS total_cents,
		       b.created_at
		FROM bookings b
		JOIN spots s ON s.id = b.spot_id
		WHERE b.spot_id = $1
		ORDER BY b.date_from ASC`

	rows, err := r.db.Query(ctx, query, spotID)
	if err != nil {
		return nil, wrapPgErr("failed to list bookings by spot", err)
	}
	defer rows.Close()

	return collectBookingListItems(rows)
}

func (r *BookingReadStore) StatsBySpot(ctx context.Context, spotID uuid.UUID, now time.Time) (*queries.SpotBookingStats, error) {
	const query = `
		SELECT count(*),
		       count(*) FILTER (WHERE date_from >= $2),
		       min(date_from) FILTER (WHERE date_from >= $2)
		FROM bookings
		WHERE spot_id = $1`

	stats := queries.SpotBookingStats{SpotID: spotID}
	err := r.db.QueryRow(ctx, query, spotID, booking.StartOfDay(now)).Scan(
		&stats.TotalBookings, &stats.UpcomingBookings, &stats.NextCheckIn)
	if err != nil {
		return nil, wrapPgErr("failed to load booking stats", err)
	}

	return &stats, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.SpotID, &v.SpotTitle, &v.SpotLocation, &v.SpotOwnerID,
		&v.GuestID, &v.GuestName, &v.GuestEmail,
		&v.DateFrom, &v.DateTo, &v.Nights,
		&v.PriceCents, &v.TotalCents, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to load booking view", err)
	}

	return &v, nil
}

func collectBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	result := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		err := rows.Scan(
			&item.ID, &item.SpotID, &item.SpotTitle,
			&item.DateFrom, &item.DateTo, &item.Nights,
			&item.TotalCents, &item.CreatedAt)
		if err != nil {
			return nil, wrapPgErr("failed to scan booking row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate booking rows", err)
	}

	return result, nil
}
