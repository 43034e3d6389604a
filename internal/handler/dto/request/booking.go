package request

import (
	"time"

	"spotstay/internal/pkg/errs"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var errBadDateFormat = errs.New("dates must use the YYYY-MM-DD format")

// Booking dates travel as calendar-date strings, not timestamps. The
// range is half-open: date_to is the check-out day and stays free for
// the next guest's check-in.
type CreateBookingRequest struct {
	SpotID   uuid.UUID `json:"spot_id" binding:"required"`
	DateFrom string    `json:"date_from" binding:"required"`
	DateTo   string    `json:"date_to" binding:"required"`
}

func (r CreateBookingRequest) ParseDates() (dateFrom, dateTo time.Time, err error) {
	dateFrom, err = parseDate(r.DateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	dateTo, err = parseDate(r.DateTo)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return dateFrom, dateTo, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errs.Mark(err, errBadDateFormat)
	}
	return t, nil
}
