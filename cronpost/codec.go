package cronpost

import (
	"fmt"
	"time"

	"github.com/cronpost/cronpost-go/internal/biz/domain"
)

// DateTimeLayout is the wire layout for absolute date-times. No zone:
// the user's configured timezone applies server-side.
const DateTimeLayout = "2006-01-02T15:04:05"

// Wire trigger labels per family.
const (
	typeEveryNDays      = "every_n_days"
	typeDayOfWeek       = "day_of_week"
	typeDateOfMonth     = "date_of_month"
	typeDateOfYear      = "date_of_year"
	typeLunarDateOfYear = "lunar_date_of_year"
	typeSpecificDate    = "specific_date"
	typeDaysAfterAnchor = "days_after_im"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

// Weekdays travel as ISO numbers, 1=Monday .. 7=Sunday.
func weekdayToWire(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

func weekdayFromWire(n int) (time.Weekday, error) {
	switch {
	case n >= 1 && n <= 6:
		return time.Weekday(n), nil
	case n == 7:
		return time.Sunday, nil
	}
	return 0, fmt.Errorf("weekday %d out of range", n)
}

func triggerFromWire(label string) (domain.TriggerType, error) {
	switch label {
	case typeEveryNDays:
		return domain.TriggerEveryNDays, nil
	case typeDayOfWeek:
		return domain.TriggerDayOfWeek, nil
	case typeDateOfMonth:
		return domain.TriggerDateOfMonth, nil
	case typeDateOfYear:
		return domain.TriggerDateOfYear, nil
	case typeLunarDateOfYear:
		return domain.TriggerLunarDateOfYear, nil
	case typeSpecificDate:
		return domain.TriggerSpecificDate, nil
	case typeDaysAfterAnchor:
		return domain.TriggerDaysAfterAnchor, nil
	}
	return "", fmt.Errorf("unknown trigger type %q", label)
}

func triggerToWire(t domain.TriggerType) (string, error) {
	switch t {
	case domain.TriggerEveryNDays:
		return typeEveryNDays, nil
	case domain.TriggerDayOfWeek:
		return typeDayOfWeek, nil
	case domain.TriggerDateOfMonth:
		return typeDateOfMonth, nil
	case domain.TriggerDateOfYear:
		return typeDateOfYear, nil
	case domain.TriggerLunarDateOfYear:
		return typeLunarDateOfYear, nil
	case domain.TriggerSpecificDate:
		return typeSpecificDate, nil
	case domain.TriggerDaysAfterAnchor:
		return typeDaysAfterAnchor, nil
	}
	return "", fmt.Errorf("unknown trigger type %q", t)
}

// EncodeIMSchedule builds the clc_* wire object from a schedule and the
// check-in window. Only the active variant's fields are emitted; the
// delivery engine keys behavior off field presence as well as clc_type.
func EncodeIMSchedule(spec domain.ScheduleSpec, wct domain.WCTDuration) (*IMSchedule, error) {
	if !spec.Trigger.AllowedIn(domain.FamilyIM) {
		return nil, fmt.Errorf("trigger %q not allowed for the initial message", spec.Trigger)
	}
	label, err := triggerToWire(spec.Trigger)
	if err != nil {
		return nil, err
	}

	w := &IMSchedule{
		CLCType:       label,
		CLCPromptTime: spec.SendTime.String(),
		WCTValue:      wct.Value,
		WCTUnit:       string(wct.Unit),
	}
	switch spec.Trigger {
	case domain.TriggerEveryNDays:
		w.CLCIntervalDays = intPtr(spec.IntervalDays)
	case domain.TriggerDayOfWeek:
		w.CLCDayOfWeek = intPtr(weekdayToWire(spec.Weekday))
	case domain.TriggerDateOfMonth:
		w.CLCDateOfMonth = intPtr(spec.DayOfMonth)
	case domain.TriggerDateOfYear:
		w.CLCDateOfYear = strPtr(spec.YearDate.FormatDayFirst())
	case domain.TriggerLunarDateOfYear:
		w.CLCLunarDateOfYear = strPtr(spec.LunarDate.MonthDay().FormatDayFirst())
		w.CLCIsLeapMonth = boolPtr(spec.LunarDate.IsLeapMonth)
	case domain.TriggerSpecificDate:
		// For one-time schedules clc_specific_date doubles as the
		// prompt time: clc_prompt_time restates the timestamp's
		// wall-clock time. Observed server contract, kept as is.
		w.CLCSpecificDate = strPtr(spec.SpecificAt.Format(DateTimeLayout))
	}
	return w, nil
}

// DecodeIMSchedule is the inverse, run when opening a stored schedule
// for editing. It branches on clc_type first; the lunar and solar
// date-of-year strings share the "DD/MM" shape and are never told apart
// by inspection.
func DecodeIMSchedule(w *IMSchedule, repeat int) (domain.ScheduleSpec, domain.WCTDuration, error) {
	wct := domain.WCTDuration{Value: w.WCTValue, Unit: domain.WCTUnit(w.WCTUnit)}

	trigger, err := triggerFromWire(w.CLCType)
	if err != nil {
		return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: %w", err)
	}

	var at domain.TimeOfDay
	if w.CLCPromptTime != "" {
		if at, err = domain.ParseTimeOfDay(w.CLCPromptTime); err != nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: %w", err)
		}
	}

	switch trigger {
	case domain.TriggerEveryNDays:
		if w.CLCIntervalDays == nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: clc_interval_days missing")
		}
		return domain.EveryNDays(*w.CLCIntervalDays, at, repeat), wct, nil
	case domain.TriggerDayOfWeek:
		if w.CLCDayOfWeek == nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: clc_day_of_week missing")
		}
		wd, err := weekdayFromWire(*w.CLCDayOfWeek)
		if err != nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: %w", err)
		}
		return domain.OnWeekday(wd, at, repeat), wct, nil
	case domain.TriggerDateOfMonth:
		if w.CLCDateOfMonth == nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: clc_date_of_month missing")
		}
		return domain.OnDayOfMonth(*w.CLCDateOfMonth, at, repeat), wct, nil
	case domain.TriggerDateOfYear:
		if w.CLCDateOfYear == nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: clc_date_of_year missing")
		}
		md, err := domain.ParseDayFirst(*w.CLCDateOfYear)
		if err != nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: %w", err)
		}
		return domain.OnDateOfYear(md, at, repeat), wct, nil
	case domain.TriggerLunarDateOfYear:
		if w.CLCLunarDateOfYear == nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: clc_lunar_date_of_year missing")
		}
		md, err := domain.ParseDayFirst(*w.CLCLunarDateOfYear)
		if err != nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: %w", err)
		}
		leap := w.CLCIsLeapMonth != nil && *w.CLCIsLeapMonth
		return domain.OnLunarDate(domain.LunarMonthDay{Month: md.Month, Day: md.Day, IsLeapMonth: leap}, at, repeat), wct, nil
	case domain.TriggerSpecificDate:
		if w.CLCSpecificDate == nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: clc_specific_date missing")
		}
		t, err := time.Parse(DateTimeLayout, *w.CLCSpecificDate)
		if err != nil {
			return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: %w", err)
		}
		return domain.OneTimeAt(t), wct, nil
	}
	return domain.ScheduleSpec{}, wct, fmt.Errorf("decode im schedule: trigger %q not allowed for the initial message", trigger)
}

// EncodeFMSchedule builds the fm_* wire object for a follow-up trigger.
func EncodeFMSchedule(spec domain.ScheduleSpec) (*FMSchedule, error) {
	if !spec.Trigger.AllowedIn(domain.FamilyFM) {
		return nil, fmt.Errorf("trigger %q not allowed for follow-up messages", spec.Trigger)
	}
	label, err := triggerToWire(spec.Trigger)
	if err != nil {
		return nil, err
	}

	w := &FMSchedule{
		FMType:     label,
		FMSendTime: spec.SendTime.String(),
	}
	switch spec.Trigger {
	case domain.TriggerEveryNDays:
		w.FMIntervalDays = intPtr(spec.IntervalDays)
	case domain.TriggerDayOfWeek:
		w.FMDayOfWeek = intPtr(weekdayToWire(spec.Weekday))
	case domain.TriggerDateOfMonth:
		w.FMDateOfMonth = intPtr(spec.DayOfMonth)
	case domain.TriggerDateOfYear:
		w.FMDateOfYear = strPtr(spec.YearDate.FormatDayFirst())
	case domain.TriggerDaysAfterAnchor:
		w.FMDaysAfter = intPtr(spec.DaysAfter)
	}
	return w, nil
}

// DecodeFMSchedule reconstructs a follow-up trigger from the wire.
func DecodeFMSchedule(w *FMSchedule, repeat int) (domain.ScheduleSpec, error) {
	trigger, err := triggerFromWire(w.FMType)
	if err != nil {
		return domain.ScheduleSpec{}, fmt.Errorf("decode fm schedule: %w", err)
	}

	var at domain.TimeOfDay
	if w.FMSendTime != "" {
		if at, err = domain.ParseTimeOfDay(w.FMSendTime); err != nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode fm schedule: %w", err)
		}
	}

	switch trigger {
	case domain.TriggerEveryNDays:
		if w.FMIntervalDays == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode fm schedule: fm_interval_days missing")
		}
		return domain.EveryNDays(*w.FMIntervalDays, at, repeat), nil
	case domain.TriggerDayOfWeek:
		if w.FMDayOfWeek == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode fm schedule: fm_day_of_week missing")
		}
		wd, err := weekdayFromWire(*w.FMDayOfWeek)
		if err != nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode fm schedule: %w", err)
		}
		return domain.OnWeekday(wd, at, repeat), nil
	case domain.TriggerDateOfMonth:
		if w.FMDateOfMonth == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode fm schedule: fm_date_of_month missing")
		}
		return domain.OnDayOfMonth(*w.FMDateOfMonth, at, repeat), nil
	case domain.TriggerDateOfYear:
		if w.FMDateOfYear == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode fm schedule: fm_date_of_year missing")
		}
		md, err := domain.ParseDayFirst(*w.FMDateOfYear)
		if err != nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode fm schedule: %w", err)
		}
		return domain.OnDateOfYear(md, at, repeat), nil
	case domain.TriggerDaysAfterAnchor:
		if w.FMDaysAfter == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode fm schedule: fm_days_after missing")
		}
		return domain.DaysAfterAnchor(*w.FMDaysAfter, at, repeat), nil
	}
	return domain.ScheduleSpec{}, fmt.Errorf("decode fm schedule: trigger %q not allowed for follow-up messages", trigger)
}

// EncodeSCMSchedule builds the SCM wire object. Loop mode emits loop_*
// fields with month-first dates; unloop mode emits only unloop_send_at.
func EncodeSCMSchedule(spec domain.ScheduleSpec, mode domain.ScheduleMode) (*SCMSchedule, error) {
	if mode == domain.ModeUnloop {
		if spec.Trigger != domain.TriggerSpecificDate {
			return nil, fmt.Errorf("unloop schedule requires a specific date, got %q", spec.Trigger)
		}
		return &SCMSchedule{
			UnloopSendAt: strPtr(spec.SpecificAt.Format(DateTimeLayout)),
		}, nil
	}

	if !spec.Trigger.AllowedIn(domain.FamilySCM) || spec.Trigger == domain.TriggerSpecificDate {
		return nil, fmt.Errorf("trigger %q not allowed for a loop cron message", spec.Trigger)
	}
	label, err := triggerToWire(spec.Trigger)
	if err != nil {
		return nil, err
	}

	w := &SCMSchedule{
		LoopType:     label,
		LoopSendTime: spec.SendTime.String(),
	}
	switch spec.Trigger {
	case domain.TriggerEveryNDays:
		w.LoopIntervalDays = intPtr(spec.IntervalDays)
	case domain.TriggerDayOfWeek:
		w.LoopDayOfWeek = intPtr(weekdayToWire(spec.Weekday))
	case domain.TriggerDateOfMonth:
		w.LoopDateOfMonth = intPtr(spec.DayOfMonth)
	case domain.TriggerDateOfYear:
		w.LoopDateOfYear = strPtr(spec.YearDate.FormatMonthFirst())
	case domain.TriggerLunarDateOfYear:
		w.LoopLunarDateOfYear = strPtr(spec.LunarDate.MonthDay().FormatMonthFirst())
		w.LoopIsLeapMonth = boolPtr(spec.LunarDate.IsLeapMonth)
	}
	return w, nil
}

// DecodeSCMSchedule reconstructs an SCM schedule and its mode. The mode
// comes from the entry's schedule_type, never inferred from payload
// shape.
func DecodeSCMSchedule(w *SCMSchedule, mode domain.ScheduleMode, repeat int) (domain.ScheduleSpec, error) {
	if mode == domain.ModeUnloop {
		if w.UnloopSendAt == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: unloop_send_at missing")
		}
		t, err := time.Parse(DateTimeLayout, *w.UnloopSendAt)
		if err != nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: %w", err)
		}
		return domain.OneTimeAt(t), nil
	}

	trigger, err := triggerFromWire(w.LoopType)
	if err != nil {
		return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: %w", err)
	}

	var at domain.TimeOfDay
	if w.LoopSendTime != "" {
		if at, err = domain.ParseTimeOfDay(w.LoopSendTime); err != nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: %w", err)
		}
	}

	switch trigger {
	case domain.TriggerEveryNDays:
		if w.LoopIntervalDays == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: loop_interval_days missing")
		}
		return domain.EveryNDays(*w.LoopIntervalDays, at, repeat), nil
	case domain.TriggerDayOfWeek:
		if w.LoopDayOfWeek == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: loop_day_of_week missing")
		}
		wd, err := weekdayFromWire(*w.LoopDayOfWeek)
		if err != nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: %w", err)
		}
		return domain.OnWeekday(wd, at, repeat), nil
	case domain.TriggerDateOfMonth:
		if w.LoopDateOfMonth == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: loop_date_of_month missing")
		}
		return domain.OnDayOfMonth(*w.LoopDateOfMonth, at, repeat), nil
	case domain.TriggerDateOfYear:
		if w.LoopDateOfYear == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: loop_date_of_year missing")
		}
		md, err := domain.ParseMonthFirst(*w.LoopDateOfYear)
		if err != nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: %w", err)
		}
		return domain.OnDateOfYear(md, at, repeat), nil
	case domain.TriggerLunarDateOfYear:
		if w.LoopLunarDateOfYear == nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: loop_lunar_date_of_year missing")
		}
		md, err := domain.ParseMonthFirst(*w.LoopLunarDateOfYear)
		if err != nil {
			return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: %w", err)
		}
		leap := w.LoopIsLeapMonth != nil && *w.LoopIsLeapMonth
		return domain.OnLunarDate(domain.LunarMonthDay{Month: md.Month, Day: md.Day, IsLeapMonth: leap}, at, repeat), nil
	}
	return domain.ScheduleSpec{}, fmt.Errorf("decode scm schedule: trigger %q not allowed for a loop cron message", trigger)
}

// EncodeMessage converts a message core into the wire body.
func EncodeMessage(m domain.MessageCore) MessageBody {
	ids := make([]string, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		ids = append(ids, a.ID)
	}
	return MessageBody{
		Recipients:    m.Recipients,
		Subject:       m.Subject,
		Content:       m.Content,
		AttachmentIDs: ids,
	}
}

// DecodeMessage converts a stored message back into the domain shape.
func DecodeMessage(w MessageResponse) domain.MessageCore {
	atts := make([]domain.Attachment, 0, len(w.Attachments))
	for _, a := range w.Attachments {
		atts = append(atts, domain.Attachment{ID: a.ID, Name: a.Name, Size: a.Size})
	}
	return domain.MessageCore{
		Recipients:    w.Recipients,
		Subject:       w.Subject,
		Content:       w.Content,
		Attachments:   atts,
		SendingMethod: domain.SendingMethod(w.SendingMethod),
	}
}
