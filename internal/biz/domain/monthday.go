package domain

import (
	"fmt"
	"time"
)

// MonthDay is a calendar (month, day) pair without a year.
//
// It has two wire encodings that must never be unified: the IM/FM
// family sends day-first "DD/MM", the SCM family sends month-first
// "MM-DD". The remote API expects the format per endpoint family.
type MonthDay struct {
	Month int // 1..12
	Day   int // 1..31, bounded by the month's maximum
}

// maxDayByMonth uses the leap-year maximum for February: Feb 29 is a
// selectable date, it just carries a skip warning on non-leap years.
var maxDayByMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the maximum selectable day for a month.
func DaysInMonth(month int) int {
	if month < 1 || month > 12 {
		return 31
	}
	return maxDayByMonth[month]
}

// ClampDay bounds day to the month's maximum. Used when a month change
// invalidates the current day selection.
func ClampDay(month, day int) int {
	if max := DaysInMonth(month); day > max {
		return max
	}
	return day
}

// FormatDayFirst renders "DD/MM" (IM/FM wire format).
func (md MonthDay) FormatDayFirst() string {
	return fmt.Sprintf("%02d/%02d", md.Day, md.Month)
}

// FormatMonthFirst renders "MM-DD" (SCM wire format).
func (md MonthDay) FormatMonthFirst() string {
	return fmt.Sprintf("%02d-%02d", md.Month, md.Day)
}

// ParseDayFirst parses "DD/MM" (IM/FM wire format).
func ParseDayFirst(s string) (MonthDay, error) {
	var d, m int
	if _, err := fmt.Sscanf(s, "%d/%d", &d, &m); err != nil {
		return MonthDay{}, fmt.Errorf("invalid day-first date %q: want DD/MM", s)
	}
	md := MonthDay{Month: m, Day: d}
	if err := md.Validate(); err != nil {
		return MonthDay{}, err
	}
	return md, nil
}

// ParseMonthFirst parses "MM-DD" (SCM wire format).
func ParseMonthFirst(s string) (MonthDay, error) {
	var m, d int
	if _, err := fmt.Sscanf(s, "%d-%d", &m, &d); err != nil {
		return MonthDay{}, fmt.Errorf("invalid month-first date %q: want MM-DD", s)
	}
	md := MonthDay{Month: m, Day: d}
	if err := md.Validate(); err != nil {
		return MonthDay{}, err
	}
	return md, nil
}

// Validate checks month and day ranges. Feb 29 is valid here; whether
// it recurs every year is the calendar policy's concern, not a hard error.
func (md MonthDay) Validate() error {
	if md.Month < 1 || md.Month > 12 {
		return fmt.Errorf("month %d out of range", md.Month)
	}
	if md.Day < 1 || md.Day > DaysInMonth(md.Month) {
		return fmt.Errorf("day %d out of range for month %d", md.Day, md.Month)
	}
	return nil
}

// MonthName returns the English month name, for schedule summaries.
func (md MonthDay) MonthName() string {
	return time.Month(md.Month).String()
}

// LunarMonthDay is a (month, day) pair on the lunar calendar. A leap
// lunar month does not occur every year, so IsLeapMonth selections
// carry a skip warning.
type LunarMonthDay struct {
	Month       int // 1..12
	Day         int // 1..30
	IsLeapMonth bool
}

// Validate checks lunar month and day ranges.
func (ld LunarMonthDay) Validate() error {
	if ld.Month < 1 || ld.Month > 12 {
		return fmt.Errorf("lunar month %d out of range", ld.Month)
	}
	if ld.Day < 1 || ld.Day > 30 {
		return fmt.Errorf("lunar day %d out of range", ld.Day)
	}
	return nil
}

// MonthDay returns the pair stripped of the leap flag, for wire encoding.
func (ld LunarMonthDay) MonthDay() MonthDay {
	return MonthDay{Month: ld.Month, Day: ld.Day}
}
