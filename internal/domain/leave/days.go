package leave

import (
	"math"
	"time"
)

// InclusiveDays counts the calendar days from start to end, both included.
// It is zero or negative when end is before start.
func InclusiveDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// ClippedDays counts the inclusive days of [start, end] that fall inside
// [windowStart, windowEnd]. Non-overlapping ranges yield 0.
func ClippedDays(start, end, windowStart, windowEnd time.Time) int {
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}
	if end.Before(start) {
		return 0
	}
	return InclusiveDays(start, end)
}

// YearBounds returns Jan 1 and Dec 31 of year as UTC calendar days.
func YearBounds(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and last calendar day of month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// RemainingBalance is the entitlement left after usedDays approved days.
func RemainingBalance(policy LeavePolicy, usedDays int) int {
	return policy.MaxDaysPerYear - usedDays
}
