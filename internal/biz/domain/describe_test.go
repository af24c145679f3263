package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	at := TimeOfDay{9, 0}
	tests := []struct {
		name string
		spec ScheduleSpec
		want string
	}{
		{name: "daily", spec: EveryNDays(1, at, 1), want: "every day at 09:00"},
		{name: "interval", spec: EveryNDays(3, at, 1), want: "every 3 days at 09:00"},
		{name: "interval repeated", spec: EveryNDays(3, at, 2), want: "every 3 days at 09:00, 2 times"},
		{name: "weekday", spec: OnWeekday(time.Monday, at, 1), want: "every Monday at 09:00"},
		{name: "day of month", spec: OnDayOfMonth(15, at, 1), want: "on day 15 of every month at 09:00"},
		{name: "date of year", spec: OnDateOfYear(MonthDay{2, 29}, at, 1), want: "every year on February 29 at 09:00"},
		{name: "lunar", spec: OnLunarDate(LunarMonthDay{8, 15, false}, at, 1), want: "every year on lunar 8/15 at 09:00"},
		{name: "lunar leap", spec: OnLunarDate(LunarMonthDay{6, 15, true}, at, 1), want: "every year on leap lunar month 6/15 at 09:00"},
		{name: "one-time", spec: OneTimeAt(time.Date(2025, 12, 25, 9, 0, 0, 0, time.UTC)), want: "once on 2025-12-25 at 09:00"},
		{name: "same day as anchor", spec: DaysAfterAnchor(0, at, 1), want: "on the day the initial message is sent at 09:00"},
		{name: "days after anchor", spec: DaysAfterAnchor(7, at, 3), want: "7 days after the initial message at 09:00, 3 times"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.spec, nil))
		})
	}
}

// The repeat suffix appears only above 1.
func TestDescribeRepeatSuffix(t *testing.T) {
	one := Describe(OnDayOfMonth(5, TimeOfDay{8, 0}, 1), nil)
	assert.NotContains(t, one, "times")

	three := Describe(OnDayOfMonth(5, TimeOfDay{8, 0}, 3), nil)
	assert.Contains(t, three, ", 3 times")
}

func TestDescribeCustomCatalog(t *testing.T) {
	c := DefaultCatalog
	c.EveryDay = "cada dia"
	c.AtTime = " a las %s"
	got := Describe(EveryNDays(1, TimeOfDay{9, 0}, 1), &c)
	assert.Equal(t, "cada dia a las 09:00", got)
}
