package response

import (
	"time"

	"spotstay/internal/usecase/queries"

	"github.com/google/uuid"
)

type SpotResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerName   string    `json:"ownerName"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	PriceCents  int64     `json:"priceCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromSpotView(rm *queries.SpotView) *SpotResponse {
	return &SpotResponse{
		ID:          rm.ID,
		OwnerName:   rm.OwnerName,
		Title:       rm.Title,
		Description: rm.Description,
		Location:    rm.Location,
		PriceCents:  rm.PriceCents,
		CreatedAt:   rm.CreatedAt,
	}
}

func FromSpotViews(rms []*queries.SpotView) []*SpotResponse {
	out := make([]*SpotResponse, 0, len(rms))
	for _, rm := range rms {
		out = append(out, FromSpotView(rm))
	}
	return out
}
