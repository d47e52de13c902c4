package leave

import (
	"errors"
	"math"
	"time"
)

// CalculateDays returns the inclusive day count between start and end: the
// calendar-day difference is rounded up, then both endpoints are counted.
// A same-day request is 1 day. The ceiling rule is kept for compatibility
// with existing stored requests.
func CalculateDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1, nil
}

// ParseDate accepts the date-only form used by the intake forms, falling
// back to RFC 3339.
func ParseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
