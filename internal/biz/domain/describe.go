package domain

import "fmt"

// Catalog holds the localized format strings for schedule summaries and
// warnings. The zero value is unusable; start from DefaultCatalog and
// override fields per locale.
type Catalog struct {
	EveryNDays      string // every %d days
	EveryDay        string // every day
	OnWeekday       string // every %s
	OnDayOfMonth    string // on day %d of every month
	OnDateOfYear    string // every year on %s %d
	OnLunarDate     string // every year on lunar %d/%d
	OnLunarLeapDate string // every year on leap lunar %d/%d
	OneTimeOn       string // once on %s
	SameDayAsAnchor string // on the day the initial message is sent
	DaysAfterAnchor string // %d days after the initial message
	AtTime          string // at %s
	RepeatSuffix    string // , %d times
	WeekdayNames    [7]string

	WarningShortMonth     string
	WarningNonLeapYear    string
	WarningLunarLeapMonth string
}

// DefaultCatalog is the English catalog.
var DefaultCatalog = Catalog{
	EveryNDays:      "every %d days",
	EveryDay:        "every day",
	OnWeekday:       "every %s",
	OnDayOfMonth:    "on day %d of every month",
	OnDateOfYear:    "every year on %s %d",
	OnLunarDate:     "every year on lunar %d/%d",
	OnLunarLeapDate: "every year on leap lunar month %d/%d",
	OneTimeOn:       "once on %s",
	SameDayAsAnchor: "on the day the initial message is sent",
	DaysAfterAnchor: "%d days after the initial message",
	AtTime:          " at %s",
	RepeatSuffix:    ", %d times",
	WeekdayNames:    [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},

	WarningShortMonth:     "This date may be skipped in short months.",
	WarningNonLeapYear:    "This date is skipped on non-leap years.",
	WarningLunarLeapMonth: "This date is skipped in years without this leap month.",
}

// Describe renders a schedule into a one-line summary for list views.
// The repeat suffix is appended only for repeat counts above 1.
func Describe(s ScheduleSpec, c *Catalog) string {
	if c == nil {
		c = &DefaultCatalog
	}

	var base string
	switch s.Trigger {
	case TriggerEveryNDays:
		if s.IntervalDays == 1 {
			base = c.EveryDay
		} else {
			base = fmt.Sprintf(c.EveryNDays, s.IntervalDays)
		}
	case TriggerDayOfWeek:
		base = fmt.Sprintf(c.OnWeekday, c.WeekdayNames[int(s.Weekday)%7])
	case TriggerDateOfMonth:
		base = fmt.Sprintf(c.OnDayOfMonth, s.DayOfMonth)
	case TriggerDateOfYear:
		base = fmt.Sprintf(c.OnDateOfYear, s.YearDate.MonthName(), s.YearDate.Day)
	case TriggerLunarDateOfYear:
		if s.LunarDate.IsLeapMonth {
			base = fmt.Sprintf(c.OnLunarLeapDate, s.LunarDate.Month, s.LunarDate.Day)
		} else {
			base = fmt.Sprintf(c.OnLunarDate, s.LunarDate.Month, s.LunarDate.Day)
		}
	case TriggerSpecificDate:
		base = fmt.Sprintf(c.OneTimeOn, s.SpecificAt.Format("2006-01-02"))
	case TriggerDaysAfterAnchor:
		if s.DaysAfter == 0 {
			base = c.SameDayAsAnchor
		} else {
			base = fmt.Sprintf(c.DaysAfterAnchor, s.DaysAfter)
		}
	default:
		return string(s.Trigger)
	}

	base += fmt.Sprintf(c.AtTime, s.SendTime)
	if s.RepeatCount > 1 {
		base += fmt.Sprintf(c.RepeatSuffix, s.RepeatCount)
	}
	return base
}

// WarningText renders a skip warning in the catalog's locale.
func WarningText(k WarningKind, c *Catalog) string {
	if c == nil {
		c = &DefaultCatalog
	}
	switch k {
	case WarningShortMonth:
		return c.WarningShortMonth
	case WarningNonLeapYear:
		return c.WarningNonLeapYear
	case WarningLunarLeapMonth:
		return c.WarningLunarLeapMonth
	}
	return ""
}
