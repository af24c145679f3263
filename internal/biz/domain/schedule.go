package domain

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TriggerType discriminates the schedule union.
type TriggerType string

const (
	TriggerEveryNDays      TriggerType = "every_n_days"
	TriggerDayOfWeek       TriggerType = "day_of_week"
	TriggerDateOfMonth     TriggerType = "date_of_month"
	TriggerDateOfYear      TriggerType = "date_of_year"
	TriggerLunarDateOfYear TriggerType = "lunar_date_of_year"
	TriggerSpecificDate    TriggerType = "specific_date"
	TriggerDaysAfterAnchor TriggerType = "days_after_anchor"
)

// ScheduleMode selects between recurring (loop) and one-time (unloop)
// schedules.
type ScheduleMode string

const (
	ModeLoop   ScheduleMode = "loop"
	ModeUnloop ScheduleMode = "unloop"
)

// ScheduleFamily identifies which message family a schedule belongs to.
// Each family accepts a different subset of triggers and a different
// wire format.
type ScheduleFamily string

const (
	FamilyIM  ScheduleFamily = "im"
	FamilyFM  ScheduleFamily = "fm"
	FamilySCM ScheduleFamily = "scm"
)

// AllowedIn reports whether a trigger is valid for a family.
func (t TriggerType) AllowedIn(f ScheduleFamily) bool {
	switch t {
	case TriggerEveryNDays, TriggerDayOfWeek, TriggerDateOfMonth, TriggerDateOfYear:
		return true
	case TriggerLunarDateOfYear:
		return f == FamilyIM || f == FamilySCM
	case TriggerSpecificDate:
		return f == FamilyIM || f == FamilySCM
	case TriggerDaysAfterAnchor:
		return f == FamilyFM
	}
	return false
}

// ScheduleSpec is an explicit tagged union over the trigger types.
// Only the fields of the active variant are populated; everything else
// stays at its zero value. The wire layer constructs optional payload
// fields from the tag, and decoding branches on the tag alone.
type ScheduleSpec struct {
	Trigger     TriggerType
	SendTime    TimeOfDay
	RepeatCount int

	// Variant fields. Exactly one group is meaningful per Trigger.
	IntervalDays int           // every_n_days
	Weekday      time.Weekday  // day_of_week
	DayOfMonth   int           // date_of_month
	YearDate     MonthDay      // date_of_year
	LunarDate    LunarMonthDay // lunar_date_of_year
	SpecificAt   time.Time     // specific_date
	DaysAfter    int           // days_after_anchor; 0 means same day as anchor
}

// normalizeRepeat lifts absent or invalid repeat counts to the default.
func normalizeRepeat(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// EveryNDays builds an interval schedule.
func EveryNDays(interval int, at TimeOfDay, repeat int) ScheduleSpec {
	return ScheduleSpec{
		Trigger:      TriggerEveryNDays,
		SendTime:     at,
		RepeatCount:  normalizeRepeat(repeat),
		IntervalDays: interval,
	}
}

// OnWeekday builds a weekly schedule.
func OnWeekday(wd time.Weekday, at TimeOfDay, repeat int) ScheduleSpec {
	return ScheduleSpec{
		Trigger:     TriggerDayOfWeek,
		SendTime:    at,
		RepeatCount: normalizeRepeat(repeat),
		Weekday:     wd,
	}
}

// OnDayOfMonth builds a monthly schedule. Days above 28 are accepted;
// they carry a skip warning for short months.
func OnDayOfMonth(day int, at TimeOfDay, repeat int) ScheduleSpec {
	return ScheduleSpec{
		Trigger:     TriggerDateOfMonth,
		SendTime:    at,
		RepeatCount: normalizeRepeat(repeat),
		DayOfMonth:  day,
	}
}

// OnDateOfYear builds a yearly schedule.
func OnDateOfYear(md MonthDay, at TimeOfDay, repeat int) ScheduleSpec {
	return ScheduleSpec{
		Trigger:     TriggerDateOfYear,
		SendTime:    at,
		RepeatCount: normalizeRepeat(repeat),
		YearDate:    md,
	}
}

// OnLunarDate builds a yearly schedule on the lunar calendar.
func OnLunarDate(ld LunarMonthDay, at TimeOfDay, repeat int) ScheduleSpec {
	return ScheduleSpec{
		Trigger:     TriggerLunarDateOfYear,
		SendTime:    at,
		RepeatCount: normalizeRepeat(repeat),
		LunarDate:   ld,
	}
}

// OneTimeAt builds a one-time (unloop) schedule. The send time is
// derived from the same timestamp the date picker edits, and the repeat
// count is always 1.
func OneTimeAt(at time.Time) ScheduleSpec {
	return ScheduleSpec{
		Trigger:     TriggerSpecificDate,
		SendTime:    TimeOfDayOf(at),
		RepeatCount: 1,
		SpecificAt:  at,
	}
}

// DaysAfterAnchor builds a follow-up trigger relative to the anchor
// event (the IM release). days == 0 means "same calendar day as the
// anchor", which forces a single send.
func DaysAfterAnchor(days int, at TimeOfDay, repeat int) ScheduleSpec {
	if days == 0 {
		repeat = 1
	}
	return ScheduleSpec{
		Trigger:     TriggerDaysAfterAnchor,
		SendTime:    at,
		RepeatCount: normalizeRepeat(repeat),
		DaysAfter:   days,
	}
}

// canonical returns a copy holding only the common fields plus the
// active variant's fields. A spec that differs from its canonical form
// carries stale leftovers from a previous variant selection.
func (s ScheduleSpec) canonical() ScheduleSpec {
	c := ScheduleSpec{
		Trigger:     s.Trigger,
		SendTime:    s.SendTime,
		RepeatCount: s.RepeatCount,
	}
	switch s.Trigger {
	case TriggerEveryNDays:
		c.IntervalDays = s.IntervalDays
	case TriggerDayOfWeek:
		c.Weekday = s.Weekday
	case TriggerDateOfMonth:
		c.DayOfMonth = s.DayOfMonth
	case TriggerDateOfYear:
		c.YearDate = s.YearDate
	case TriggerLunarDateOfYear:
		c.LunarDate = s.LunarDate
	case TriggerSpecificDate:
		c.SpecificAt = s.SpecificAt
	case TriggerDaysAfterAnchor:
		c.DaysAfter = s.DaysAfter
	}
	return c
}

// Validate checks the active variant's field ranges and that no other
// variant's fields are populated. The delivery engine keys behavior off
// field presence as well as the tag, so leftovers are a real hazard.
func (s ScheduleSpec) Validate() error {
	if err := s.SendTime.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(s.RepeatCount, validation.Required, validation.Min(1)); err != nil {
		return fmt.Errorf("repeat count: %w", err)
	}

	switch s.Trigger {
	case TriggerEveryNDays:
		if err := validation.Validate(s.IntervalDays, validation.Required, validation.Min(1)); err != nil {
			return fmt.Errorf("interval days: %w", err)
		}
	case TriggerDayOfWeek:
		if s.Weekday < time.Sunday || s.Weekday > time.Saturday {
			return fmt.Errorf("weekday %d out of range", s.Weekday)
		}
	case TriggerDateOfMonth:
		if err := validation.Validate(s.DayOfMonth, validation.Required, validation.Min(1), validation.Max(31)); err != nil {
			return fmt.Errorf("day of month: %w", err)
		}
	case TriggerDateOfYear:
		if err := s.YearDate.Validate(); err != nil {
			return err
		}
	case TriggerLunarDateOfYear:
		if err := s.LunarDate.Validate(); err != nil {
			return err
		}
	case TriggerSpecificDate:
		if s.SpecificAt.IsZero() {
			return fmt.Errorf("specific date not set")
		}
		if s.RepeatCount != 1 {
			return fmt.Errorf("one-time schedule must have repeat count 1, got %d", s.RepeatCount)
		}
	case TriggerDaysAfterAnchor:
		if err := validation.Validate(s.DaysAfter, validation.Min(0)); err != nil {
			return fmt.Errorf("days after anchor: %w", err)
		}
		if s.DaysAfter == 0 && s.RepeatCount != 1 {
			return fmt.Errorf("same-day follow-up must have repeat count 1, got %d", s.RepeatCount)
		}
	default:
		return fmt.Errorf("unknown trigger type %q", s.Trigger)
	}

	if s != s.canonical() {
		return fmt.Errorf("schedule carries stale fields from another trigger variant")
	}
	return nil
}
