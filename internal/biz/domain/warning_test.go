package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckSkipWarning(t *testing.T) {
	at := TimeOfDay{9, 0}
	tests := []struct {
		name string
		spec ScheduleSpec
		want WarningKind
		ok   bool
	}{
		{name: "day 29 of month", spec: OnDayOfMonth(29, at, 1), want: WarningShortMonth, ok: true},
		{name: "day 30 of month", spec: OnDayOfMonth(30, at, 1), want: WarningShortMonth, ok: true},
		{name: "day 31 of month", spec: OnDayOfMonth(31, at, 1), want: WarningShortMonth, ok: true},
		{name: "day 28 of month", spec: OnDayOfMonth(28, at, 1)},
		{name: "feb 29", spec: OnDateOfYear(MonthDay{2, 29}, at, 1), want: WarningNonLeapYear, ok: true},
		{name: "feb 28", spec: OnDateOfYear(MonthDay{2, 28}, at, 1)},
		{name: "mar 31", spec: OnDateOfYear(MonthDay{3, 31}, at, 1)},
		{name: "lunar leap month", spec: OnLunarDate(LunarMonthDay{6, 15, true}, at, 1), want: WarningLunarLeapMonth, ok: true},
		{name: "lunar regular month", spec: OnLunarDate(LunarMonthDay{6, 15, false}, at, 1)},
		{name: "interval", spec: EveryNDays(30, at, 1)},
		{name: "weekday", spec: OnWeekday(time.Monday, at, 1)},
		{name: "one-time", spec: OneTimeAt(time.Now())},
		{name: "days after anchor", spec: DaysAfterAnchor(3, at, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CheckSkipWarning(tt.spec)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)

			// Pure: the same input yields the same output on repeat calls.
			again, okAgain := CheckSkipWarning(tt.spec)
			assert.Equal(t, got, again)
			assert.Equal(t, ok, okAgain)
		})
	}
}

func TestWarningText(t *testing.T) {
	assert.NotEmpty(t, WarningText(WarningShortMonth, nil))
	assert.NotEmpty(t, WarningText(WarningNonLeapYear, nil))
	assert.NotEmpty(t, WarningText(WarningLunarLeapMonth, nil))
	assert.Empty(t, WarningText("", nil))
}
