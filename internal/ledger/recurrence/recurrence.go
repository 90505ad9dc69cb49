// Package recurrence computes due dates for recurring expense templates.
//
// All calculations are pure calendar arithmetic on day-granular UTC dates.
package recurrence

import (
	"errors"
	"fmt"
	"time"
)

// Cycle is the repeat frequency of a recurring template.
type Cycle string

const (
	Daily   Cycle = "daily"
	Weekly  Cycle = "weekly"
	Monthly Cycle = "monthly"
	Yearly  Cycle = "yearly"
)

// ErrUnknownCycle is returned for repeat cycles outside the supported set.
var ErrUnknownCycle = errors.New("unknown repeat cycle")

// ParseCycle validates a raw cycle string.
func ParseCycle(s string) (Cycle, error) {
	switch c := Cycle(s); c {
	case Daily, Weekly, Monthly, Yearly:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCycle, s)
	}
}

// NextDueDate computes the next occurrence of a recurring template strictly
// after referenceDate. If startDate has not been reached yet, the first
// occurrence is startDate itself.
//
// Rules per cycle:
//   - daily: the day after referenceDate.
//   - weekly: referenceDate + ((7 - weekday) % 7 + 1) days, where weekday
//     counts Sunday as 0. The rule is deterministic but does not anchor to
//     startDate's weekday.
//   - monthly: the next occurrence of startDate's day-of-month, clamped to
//     the last valid day of months that are too short (Jan 31 -> Feb 29 in
//     leap years, Feb 28 otherwise).
//   - yearly: the next occurrence of startDate's month and day, with
//     Feb 29 clamped to Feb 28 in non-leap years.
func NextDueDate(startDate time.Time, cycle Cycle, referenceDate time.Time) (time.Time, error) {
	start := dateOnly(startDate)
	ref := dateOnly(referenceDate)

	if start.After(ref) {
		return start, nil
	}

	switch cycle {
	case Daily:
		return ref.AddDate(0, 0, 1), nil
	case Weekly:
		days := (7-int(ref.Weekday()))%7 + 1
		return ref.AddDate(0, 0, days), nil
	case Monthly:
		candidate := clampedDate(ref.Year(), ref.Month(), start.Day())
		if !candidate.After(ref) {
			candidate = clampedDate(ref.Year(), ref.Month()+1, start.Day())
		}
		return candidate, nil
	case Yearly:
		candidate := clampedDate(ref.Year(), start.Month(), start.Day())
		if !candidate.After(ref) {
			candidate = clampedDate(ref.Year()+1, start.Month(), start.Day())
		}
		return candidate, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnknownCycle, cycle)
	}
}

// clampedDate builds a date from year/month/day, clamping day to the last
// valid day of the target month instead of letting time.Date roll over.
func clampedDate(year int, month time.Month, day int) time.Time {
	// Normalize month overflow first (month+1 in December).
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
