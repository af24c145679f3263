package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "09:00", want: TimeOfDay{9, 0}},
		{in: "23:59", want: TimeOfDay{23, 59}},
		{in: "09:00:30", want: TimeOfDay{9, 0}}, // seconds accepted, discarded
		{in: "00:00", want: TimeOfDay{0, 0}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay{9, 5}.String())
	assert.Equal(t, "00:00", TimeOfDay{}.String())
}

func TestMonthDayFormats(t *testing.T) {
	md := MonthDay{Month: 2, Day: 29}
	assert.Equal(t, "29/02", md.FormatDayFirst())
	assert.Equal(t, "02-29", md.FormatMonthFirst())
}

// Splitting "DD/MM" and rejoining must reproduce the original string
// for every valid pair, Feb 29 included.
func TestDayFirstSplitJoinSymmetry(t *testing.T) {
	for month := 1; month <= 12; month++ {
		for day := 1; day <= DaysInMonth(month); day++ {
			s := MonthDay{Month: month, Day: day}.FormatDayFirst()
			got, err := ParseDayFirst(s)
			require.NoError(t, err, s)
			assert.Equal(t, s, got.FormatDayFirst())
		}
	}
}

func TestMonthFirstSplitJoinSymmetry(t *testing.T) {
	for month := 1; month <= 12; month++ {
		for day := 1; day <= DaysInMonth(month); day++ {
			s := MonthDay{Month: month, Day: day}.FormatMonthFirst()
			got, err := ParseMonthFirst(s)
			require.NoError(t, err, s)
			assert.Equal(t, s, got.FormatMonthFirst())
		}
	}
}

func TestParseMonthDayRejectsWrongFormat(t *testing.T) {
	// The two family formats must not be accidentally unified: each
	// parser owns exactly one shape.
	_, err := ParseDayFirst("02-29")
	assert.Error(t, err)
	_, err = ParseMonthFirst("29/02")
	assert.Error(t, err)
	_, err = ParseDayFirst("32/01")
	assert.Error(t, err)
	_, err = ParseMonthFirst("02-30")
	assert.Error(t, err)
}

func TestClampDay(t *testing.T) {
	assert.Equal(t, 30, ClampDay(4, 31))
	assert.Equal(t, 29, ClampDay(2, 31))
	assert.Equal(t, 15, ClampDay(2, 15))
	assert.Equal(t, 31, ClampDay(1, 31))
}

func TestOneTimeAtForcesSingleSend(t *testing.T) {
	at := time.Date(2025, 12, 25, 9, 0, 0, 0, time.UTC)
	s := OneTimeAt(at)
	assert.Equal(t, TriggerSpecificDate, s.Trigger)
	assert.Equal(t, 1, s.RepeatCount)
	assert.Equal(t, TimeOfDay{9, 0}, s.SendTime)
	require.NoError(t, s.Validate())
}

func TestDaysAfterAnchorZeroForcesSingleSend(t *testing.T) {
	s := DaysAfterAnchor(0, TimeOfDay{8, 30}, 5)
	assert.Equal(t, 1, s.RepeatCount)
	require.NoError(t, s.Validate())

	s = DaysAfterAnchor(3, TimeOfDay{8, 30}, 5)
	assert.Equal(t, 5, s.RepeatCount)
	require.NoError(t, s.Validate())
}

func TestRepeatCountDefaultsToOne(t *testing.T) {
	s := EveryNDays(7, TimeOfDay{12, 0}, 0)
	assert.Equal(t, 1, s.RepeatCount)
}

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ScheduleSpec
		wantErr bool
	}{
		{name: "valid interval", spec: EveryNDays(3, TimeOfDay{9, 0}, 2)},
		{name: "zero interval", spec: ScheduleSpec{Trigger: TriggerEveryNDays, SendTime: TimeOfDay{9, 0}, RepeatCount: 1}, wantErr: true},
		{name: "valid weekday", spec: OnWeekday(time.Monday, TimeOfDay{9, 0}, 1)},
		{name: "valid day of month 31", spec: OnDayOfMonth(31, TimeOfDay{9, 0}, 1)},
		{name: "day of month 32", spec: ScheduleSpec{Trigger: TriggerDateOfMonth, SendTime: TimeOfDay{9, 0}, RepeatCount: 1, DayOfMonth: 32}, wantErr: true},
		{name: "valid feb 29", spec: OnDateOfYear(MonthDay{2, 29}, TimeOfDay{9, 0}, 1)},
		{name: "feb 30", spec: ScheduleSpec{Trigger: TriggerDateOfYear, SendTime: TimeOfDay{9, 0}, RepeatCount: 1, YearDate: MonthDay{2, 30}}, wantErr: true},
		{name: "valid lunar leap", spec: OnLunarDate(LunarMonthDay{6, 15, true}, TimeOfDay{9, 0}, 1)},
		{name: "lunar day 31", spec: ScheduleSpec{Trigger: TriggerLunarDateOfYear, SendTime: TimeOfDay{9, 0}, RepeatCount: 1, LunarDate: LunarMonthDay{6, 31, false}}, wantErr: true},
		{name: "one-time repeat>1", spec: ScheduleSpec{Trigger: TriggerSpecificDate, SendTime: TimeOfDay{9, 0}, RepeatCount: 2, SpecificAt: time.Now()}, wantErr: true},
		{name: "unknown trigger", spec: ScheduleSpec{Trigger: "fortnightly", SendTime: TimeOfDay{9, 0}, RepeatCount: 1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// A spec carrying leftovers from a previously selected variant must be
// rejected: the delivery engine keys behavior off field presence.
func TestScheduleValidateRejectsStaleFields(t *testing.T) {
	s := EveryNDays(3, TimeOfDay{9, 0}, 1)
	s.DayOfMonth = 15 // leftover from a prior date_of_month selection
	assert.Error(t, s.Validate())
}

func TestTriggerFamilyRestrictions(t *testing.T) {
	assert.True(t, TriggerLunarDateOfYear.AllowedIn(FamilyIM))
	assert.True(t, TriggerLunarDateOfYear.AllowedIn(FamilySCM))
	assert.False(t, TriggerLunarDateOfYear.AllowedIn(FamilyFM))

	assert.True(t, TriggerDaysAfterAnchor.AllowedIn(FamilyFM))
	assert.False(t, TriggerDaysAfterAnchor.AllowedIn(FamilyIM))
	assert.False(t, TriggerDaysAfterAnchor.AllowedIn(FamilySCM))

	assert.True(t, TriggerEveryNDays.AllowedIn(FamilyIM))
	assert.True(t, TriggerEveryNDays.AllowedIn(FamilyFM))
	assert.True(t, TriggerEveryNDays.AllowedIn(FamilySCM))

	assert.False(t, TriggerType("fortnightly").AllowedIn(FamilyIM))
}
