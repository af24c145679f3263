package domain

// WarningKind names a calendar edge case that prevents a schedule from
// recurring exactly every period. Warnings are advisory: the server is
// the authority on whether and how an impossible occurrence is skipped,
// so the client surfaces them inline but never blocks submission.
type WarningKind string

const (
	// WarningShortMonth: a day-of-month above 28 does not exist in
	// every month. One generic message covers 29, 30 and 31.
	WarningShortMonth WarningKind = "short_month_skip"

	// WarningNonLeapYear: Feb 29 only exists on leap years.
	WarningNonLeapYear WarningKind = "non_leap_year_skip"

	// WarningLunarLeapMonth: a leap lunar month does not occur every year.
	WarningLunarLeapMonth WarningKind = "lunar_leap_month_skip"
)

// CheckSkipWarning reports whether a schedule's date selection may be
// skipped in some periods. Pure function of its input; evaluated
// reactively whenever a date-affecting field changes.
func CheckSkipWarning(s ScheduleSpec) (WarningKind, bool) {
	switch s.Trigger {
	case TriggerDateOfMonth:
		if s.DayOfMonth > 28 {
			return WarningShortMonth, true
		}
	case TriggerDateOfYear:
		if s.YearDate.Month == 2 && s.YearDate.Day == 29 {
			return WarningNonLeapYear, true
		}
	case TriggerLunarDateOfYear:
		if s.LunarDate.IsLeapMonth {
			return WarningLunarLeapMonth, true
		}
	}
	return "", false
}
