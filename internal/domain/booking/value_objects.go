package booking

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDateRange = errors.New("check-out date must be after check-in date")

// DateRange is a half-open range of calendar dates [from, to).
// Both endpoints are normalized to UTC midnight; time-of-day on the
// inputs is discarded.
type DateRange struct {
	from time.Time
	to   time.Time
}

func NewDateRange(from, to time.Time) (DateRange, error) {
	from = StartOfDay(from)
	to = StartOfDay(to)

	if !from.Before(to) {
		return DateRange{}, ErrInvalidDateRange
	}

	return DateRange{from: from, to: to}, nil
}

// ReconstructDateRange rebuilds a range from stored dates, which have
// already passed validation on the way in.
func ReconstructDateRange(from, to time.Time) DateRange {
	return DateRange{from: StartOfDay(from), to: StartOfDay(to)}
}

func (r DateRange) From() time.Time {
	return r.from
}

func (r DateRange) To() time.Time {
	return r.to
}

func (r DateRange) Nights() int {
	return int(r.to.Sub(r.from) / (24 * time.Hour))
}

// Overlaps reports whether two ranges share at least one night. A
// check-out equal to another booking's check-in is not an overlap, so
// back-to-back stays are permitted.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.from.Before(other.to) && other.from.Before(r.to)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.from.Format(time.DateOnly), r.to.Format(time.DateOnly))
}

// StartOfDay truncates t to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
