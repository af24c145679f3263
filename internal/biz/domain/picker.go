package domain

import (
	"fmt"
	"time"
)

// PickerState mirrors the schedule editor's picker selections. The
// editor keeps every picker's last value around while the user flips
// between trigger options; only the fields belonging to the selected
// trigger make it into the encoded schedule.
type PickerState struct {
	Trigger     TriggerType
	Interval    int
	Weekday     time.Weekday
	Month       int
	Day         int
	LunarMonth  int
	LunarDay    int
	IsLeapMonth bool
	DaysAfter   int
	SendTime    TimeOfDay
	SpecificAt  time.Time
	RepeatCount int
}

// SetMonth changes the month selection and clamps the day selection
// down when the new month has fewer days, so the picker never holds an
// invalid (month, day) pair.
func (p *PickerState) SetMonth(month int) {
	p.Month = month
	p.Day = ClampDay(month, p.Day)
}

// Encode produces exactly one schedule variant from the current picker
// selections. For unloop mode the variant is always specific_date with
// the send time derived from the same timestamp the date picker edits;
// for loop mode the selected trigger option picks the variant. Fields
// of other variants are never carried over.
func (p PickerState) Encode(mode ScheduleMode) (ScheduleSpec, error) {
	if mode == ModeUnloop {
		if p.SpecificAt.IsZero() {
			return ScheduleSpec{}, fmt.Errorf("one-time schedule needs a date")
		}
		return OneTimeAt(p.SpecificAt), nil
	}

	switch p.Trigger {
	case TriggerEveryNDays:
		return EveryNDays(p.Interval, p.SendTime, p.RepeatCount), nil
	case TriggerDayOfWeek:
		return OnWeekday(p.Weekday, p.SendTime, p.RepeatCount), nil
	case TriggerDateOfMonth:
		return OnDayOfMonth(p.Day, p.SendTime, p.RepeatCount), nil
	case TriggerDateOfYear:
		return OnDateOfYear(MonthDay{Month: p.Month, Day: p.Day}, p.SendTime, p.RepeatCount), nil
	case TriggerLunarDateOfYear:
		return OnLunarDate(LunarMonthDay{Month: p.LunarMonth, Day: p.LunarDay, IsLeapMonth: p.IsLeapMonth}, p.SendTime, p.RepeatCount), nil
	case TriggerSpecificDate:
		if p.SpecificAt.IsZero() {
			return ScheduleSpec{}, fmt.Errorf("one-time schedule needs a date")
		}
		return OneTimeAt(p.SpecificAt), nil
	case TriggerDaysAfterAnchor:
		return DaysAfterAnchor(p.DaysAfter, p.SendTime, p.RepeatCount), nil
	}
	return ScheduleSpec{}, fmt.Errorf("unknown trigger type %q", p.Trigger)
}

// DecodeToPicker reconstructs picker selections from an encoded
// schedule, for opening an existing schedule in the editor. A decoded
// day that exceeds the decoded month's maximum is clamped down rather
// than left as an invalid selection.
func DecodeToPicker(s ScheduleSpec) PickerState {
	p := PickerState{
		Trigger:     s.Trigger,
		SendTime:    s.SendTime,
		RepeatCount: s.RepeatCount,
	}
	switch s.Trigger {
	case TriggerEveryNDays:
		p.Interval = s.IntervalDays
	case TriggerDayOfWeek:
		p.Weekday = s.Weekday
	case TriggerDateOfMonth:
		p.Day = s.DayOfMonth
	case TriggerDateOfYear:
		p.Month = s.YearDate.Month
		p.Day = ClampDay(s.YearDate.Month, s.YearDate.Day)
	case TriggerLunarDateOfYear:
		p.LunarMonth = s.LunarDate.Month
		p.LunarDay = s.LunarDate.Day
		p.IsLeapMonth = s.LunarDate.IsLeapMonth
	case TriggerSpecificDate:
		p.SpecificAt = s.SpecificAt
	case TriggerDaysAfterAnchor:
		p.DaysAfter = s.DaysAfter
	}
	return p
}
