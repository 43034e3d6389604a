package response

import (
	"time"

	"spotstay/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	SpotID       uuid.UUID `json:"spotId"`
	SpotTitle    string    `json:"spotTitle"`
	SpotLocation string    `json:"spotLocation"`
	GuestID      uuid.UUID `json:"guestId"`
	GuestName    string    `json:"guestName"`
	DateFrom     string    `json:"dateFrom"`
	DateTo       string    `json:"dateTo"`
	Nights       int32     `json:"nights"`
	PriceCents   int64     `json:"priceCents"`
	TotalCents   int64     `json:"totalCents"`
	CreatedAt    time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	ID         uuid.UUID `json:"id"`
	SpotID     uuid.UUID `json:"spotId"`
	SpotTitle  string    `json:"spotTitle"`
	DateFrom   string    `json:"dateFrom"`
	DateTo     string    `json:"dateTo"`
	Nights     int32     `json:"nights"`
	TotalCents int64     `json:"totalCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SpotStatsResponse struct {
	SpotID           uuid.UUID `json:"spotId"`
	TotalBookings    int64     `json:"totalBookings"`
	UpcomingBookings int64     `json:"upcomingBookings"`
	NextCheckIn      *string   `json:"nextCheckIn,omitempty"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:           rm.ID,
		SpotID:       rm.SpotID,
		SpotTitle:    rm.SpotTitle,
		SpotLocation: rm.SpotLocation,
		GuestID:      rm.GuestID,
		GuestName:    rm.GuestName,
		DateFrom:     rm.DateFrom.Format(dateLayout),
		DateTo:       rm.DateTo.Format(dateLayout),
		Nights:       rm.Nights,
		PriceCents:   rm.PriceCents,
		TotalCents:   rm.TotalCents,
		CreatedAt:    rm.CreatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:         rm.ID,
		SpotID:     rm.SpotID,
		SpotTitle:  rm.SpotTitle,
		DateFrom:   rm.DateFrom.Format(dateLayout),
		DateTo:     rm.DateTo.Format(dateLayout),
		Nights:     rm.Nights,
		TotalCents: rm.TotalCents,
		CreatedAt:  rm.CreatedAt,
	}
}

func FromBookingListItems(rms []*queries.BookingListItem) []*BookingListResponse {
	out := make([]*BookingListResponse, 0, len(rms))
	for _, rm := range rms {
		out = append(out, FromBookingListItem(rm))
	}
	return out
}

func FromSpotStats(rm *queries.SpotBookingStats) *SpotStatsResponse {
	resp := &SpotStatsResponse{
		SpotID:           rm.SpotID,
		TotalBookings:    rm.TotalBookings,
		UpcomingBookings: rm.UpcomingBookings,
	}
	if rm.NextCheckIn != nil {
		s := rm.NextCheckIn.Format(dateLayout)
		resp.NextCheckIn = &s
	}
	return resp
}
