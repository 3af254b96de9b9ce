// Package hours converts a (date, start, end) triple into an elapsed-hours
// value. All persisted total_hours values flow through Compute so the
// fallback policy lives in exactly one place.
package hours

import (
	"math"
	"time"
)

const (
	// DateLayout is the calendar-day format used everywhere (ISO 8601).
	DateLayout = "2006-01-02"
	// ClockLayout is the 24-hour wall-clock format for start/end times.
	ClockLayout = "15:04"

	stampLayout = DateLayout + " " + ClockLayout
)

// Compute returns the elapsed hours between start and end on the given
// calendar day, rounded to two decimals with minute granularity.
//
// Malformed date or time text, and spans where end is not after start,
// yield (0, false). Callers persist the zero rather than rejecting the
// write; use ok to surface a warning. There is no cross-midnight
// support: a shift never spans two calendar days.
func Compute(date, start, end string) (float64, bool) {
	startAt, err := time.Parse(stampLayout, date+" "+start)
	if err != nil {
		return 0, false
	}
	endAt, err := time.Parse(stampLayout, date+" "+end)
	if err != nil {
		return 0, false
	}

	secs := int64(endAt.Sub(startAt) / time.Second)
	if secs <= 0 {
		return 0, false
	}

	// Floor to whole minutes before converting. Inputs are HH:MM so the
	// span is already minute-granular; the floor keeps that a guarantee
	// rather than an accident of the input format.
	secs -= secs % 60

	// Round half away from zero.
	return math.Round(float64(secs)/3600*100) / 100, true
}

// ValidDate reports whether s is a well-formed zero-padded YYYY-MM-DD day.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidClock reports whether s is a well-formed 24-hour HH:MM time.
func ValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// Today returns the current calendar day in DateLayout. The log form
// treats a blank date field as today.
func Today() string {
	return time.Now().Format(DateLayout)
}
