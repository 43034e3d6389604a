package booking

import "time"

// Stateless date policies. All take the current time explicitly so the
// caller decides what "now" is.

const cancellationLeadTime = 24 * time.Hour

// ValidRange reports whether from/to form a bookable half-open range.
func ValidRange(from, to time.Time) bool {
	return StartOfDay(from).Before(StartOfDay(to))
}

// FutureOrToday reports whether date is today or later. The comparison
// is date-only: a check-in later today is still valid.
func FutureOrToday(date, now time.Time) bool {
	return !StartOfDay(date).Before(StartOfDay(now))
}

// Cancellable reports whether a booking starting at dateFrom may still
// be cancelled: strictly more than 24 hours of lead time must remain
// before the check-in day begins.
func Cancellable(dateFrom, now time.Time) bool {
	return StartOfDay(dateFrom).After(now.Add(cancellationLeadTime))
}
