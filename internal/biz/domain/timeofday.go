package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock send time without a timezone. It is
// interpreted in the user's configured timezone at send time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:mm" or "HH:mm:ss". Seconds are accepted on
// the wire but discarded; the service schedules at minute granularity.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return TimeOfDay{}, fmt.Errorf("invalid time of day %q: want HH:mm or HH:mm:ss", s)
		}
	}
	t := TimeOfDay{Hour: h, Minute: m}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// TimeOfDayOf extracts the wall-clock time from an absolute timestamp.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// String formats as "HH:mm", zero-padded.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Validate checks the 24-hour range.
func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("time of day %d:%d out of range", t.Hour, t.Minute)
	}
	return nil
}

// OnDay anchors the time of day onto a reference date. Pickers edit the
// time through a Date value, so decode needs an arbitrary anchor day.
func (t TimeOfDay) OnDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}
