package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID           uuid.UUID `json:"id"`
	SpotID       uuid.UUID `json:"spot_id"`
	SpotTitle    string    `json:"spot_title"`
	SpotLocation string    `json:"spot_location"`
	SpotOwnerID  uuid.UUID `json:"spot_owner_id"`
	GuestID      uuid.UUID `json:"guest_id"`
	GuestName    string    `json:"guest_name"`
	GuestEmail   string    `json:"guest_email"`
	DateFrom     time.Time `json:"date_from"`
	DateTo       time.Time `json:"date_to"`
	Nights       int32     `json:"nights"`
	PriceCents   int64     `json:"price_cents"`
	TotalCents   int64     `json:"total_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

type BookingListItem struct {
	ID         uuid.UUID `json:"id"`
	SpotID     uuid.UUID `json:"spot_id"`
	SpotTitle  string    `json:"spot_title"`
	DateFrom   time.Time `json:"date_from"`
	DateTo     time.Time `json:"date_to"`
	Nights     int32     `json:"nights"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

type SpotView struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	PriceCents  int64     `json:"price_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

// SpotBookingStats feeds host dashboards: how booked a spot is and when
// the next guest arrives.
type SpotBookingStats struct {
	SpotID           uuid.UUID  `json:"spot_id"`
	TotalBookings    int64      `json:"total_bookings"`
	UpcomingBookings int64      `json:"upcoming_bookings"`
	NextCheckIn      *time.Time `json:"next_check_in,omitempty"`
}

type UserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
