package attendance

import (
	"fmt"
	"time"
)

// Cutoff is the local wall-clock time after which a check-in counts as late.
type Cutoff struct {
	Hour   int
	Minute int
}

var DefaultCutoff = Cutoff{Hour: 9, Minute: 30}

// ParseCutoff parses an "HH:MM" value.
func ParseCutoff(s string) (Cutoff, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Cutoff{}, fmt.Errorf("invalid late cutoff %q: %w", s, err)
	}
	return Cutoff{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Cutoff) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the cutoff instant for the given calendar day in loc.
func (c Cutoff) On(day time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// DeriveStatus returns LATE when checkIn is strictly after the cutoff of day.
func DeriveStatus(checkIn time.Time, day time.Time, cutoff Cutoff, loc *time.Location) Status {
	if checkIn.After(cutoff.On(day, loc)) {
		return StatusLate
	}
	return StatusPresent
}

// DayOf returns the calendar day of t as observed in loc, normalized to UTC midnight.
func DayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
