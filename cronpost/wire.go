// Package cronpost is the HTTP client for the CronPost API: wire
// payload types, the per-family schedule codecs, and the REST calls the
// client core depends on. It never delivers messages itself; delivery
// and the authoritative timers live server-side.
package cronpost

// Wire dates: the IM/FM family sends date-of-year as day-first "DD/MM",
// the SCM family as month-first "MM-DD". The asymmetry is per-endpoint
// API contract and must not be unified. Times are "HH:mm" (seconds
// tolerated on read), local to the user's configured timezone.

// IMSchedule is the check-in loop condition (CLC) on the wire. Which
// clc_* fields are present follows from clc_type; the codec constructs
// them from the schedule tag and decoding branches on clc_type alone.
type IMSchedule struct {
	CLCType            string  `json:"clc_type"`
	CLCIntervalDays    *int    `json:"clc_interval_days,omitempty"`
	CLCDayOfWeek       *int    `json:"clc_day_of_week,omitempty"` // 1=Mon .. 7=Sun
	CLCDateOfMonth     *int    `json:"clc_date_of_month,omitempty"`
	CLCDateOfYear      *string `json:"clc_date_of_year,omitempty"`       // "DD/MM"
	CLCLunarDateOfYear *string `json:"clc_lunar_date_of_year,omitempty"` // "DD/MM", same shape as clc_date_of_year
	CLCIsLeapMonth     *bool   `json:"clc_is_leap_month,omitempty"`
	CLCSpecificDate    *string `json:"clc_specific_date,omitempty"` // "2006-01-02T15:04:05"
	CLCPromptTime      string  `json:"clc_prompt_time"`             // "HH:mm"
	WCTValue           int     `json:"wct_value"`
	WCTUnit            string  `json:"wct_unit"`
}

// FMSchedule is a follow-up trigger on the wire, anchored to the IM
// release.
type FMSchedule struct {
	FMType         string  `json:"fm_type"`
	FMIntervalDays *int    `json:"fm_interval_days,omitempty"`
	FMDayOfWeek    *int    `json:"fm_day_of_week,omitempty"`
	FMDateOfMonth  *int    `json:"fm_date_of_month,omitempty"`
	FMDateOfYear   *string `json:"fm_date_of_year,omitempty"` // "DD/MM"
	FMDaysAfter    *int    `json:"fm_days_after,omitempty"`
	FMSendTime     string  `json:"fm_send_time"` // "HH:mm"
}

// SCMSchedule is a cron message schedule on the wire. Loop schedules
// populate loop_* fields; unloop schedules carry only unloop_send_at.
type SCMSchedule struct {
	LoopType            string  `json:"loop_type,omitempty"`
	LoopIntervalDays    *int    `json:"loop_interval_days,omitempty"`
	LoopDayOfWeek       *int    `json:"loop_day_of_week,omitempty"`
	LoopDateOfMonth     *int    `json:"loop_date_of_month,omitempty"`
	LoopDateOfYear      *string `json:"loop_date_of_year,omitempty"`       // "MM-DD"
	LoopLunarDateOfYear *string `json:"loop_lunar_date_of_year,omitempty"` // "MM-DD"
	LoopIsLeapMonth     *bool   `json:"loop_is_leap_month,omitempty"`
	LoopSendTime        string  `json:"loop_send_time,omitempty"` // "HH:mm"
	UnloopSendAt        *string `json:"unloop_send_at,omitempty"` // "2006-01-02T15:04:05"
}

// MessageBody is the deliverable content of a create/update request.
type MessageBody struct {
	Recipients    []string `json:"recipients"`
	Subject       string   `json:"subject,omitempty"`
	Content       string   `json:"content"`
	AttachmentIDs []string `json:"attachment_ids,omitempty"`
}

// IMRequest is the create/update body for the initial message.
// SendingMethod and IsDraft are create-only: the update endpoint treats
// the method as immutable and method changes go through PUT /im/method.
type IMRequest struct {
	Message       MessageBody `json:"message"`
	Schedule      *IMSchedule `json:"schedule"`
	RepeatNumber  int         `json:"repeat_number"`
	IsDraft       *bool       `json:"is_draft,omitempty"`
	SendingMethod *string     `json:"sending_method,omitempty"`
}

// FMRequest is the create/update body for a follow-up message.
type FMRequest struct {
	Message       MessageBody `json:"message"`
	Schedule      *FMSchedule `json:"schedule"`
	RepeatNumber  int         `json:"repeat_number"`
	IsDraft       *bool       `json:"is_draft,omitempty"`
	SendingMethod *string     `json:"sending_method,omitempty"`
}

// SCMRequest is the create/update body for a scheduled cron message.
type SCMRequest struct {
	Message       MessageBody  `json:"message"`
	Schedule      *SCMSchedule `json:"schedule"`
	ScheduleType  string       `json:"schedule_type"` // loop | unloop
	RepeatNumber  int          `json:"repeat_number"`
	IsDraft       *bool        `json:"is_draft,omitempty"`
	SendingMethod *string      `json:"sending_method,omitempty"`
}

// IMStateResponse is the lifecycle snapshot inside the full state.
type IMStateResponse struct {
	Status         string      `json:"status"` // INS | ANS_CLC | ANS_WCT | FNS
	CountdownUntil *string     `json:"countdown_until,omitempty"`
	Schedule       *IMSchedule `json:"schedule,omitempty"`
	RepeatNumber   int         `json:"repeat_number"`
}

// MessageResponse is a stored message as the server reports it.
type MessageResponse struct {
	Recipients    []string             `json:"recipients"`
	Subject       string               `json:"subject,omitempty"`
	Content       string               `json:"content"`
	Attachments   []AttachmentResponse `json:"attachments,omitempty"`
	SendingMethod string               `json:"sending_method"`
}

// AttachmentResponse is a stored attachment reference.
type AttachmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// FMEntryResponse is a stored follow-up message.
type FMEntryResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Schedule     *FMSchedule     `json:"schedule"`
	RepeatNumber int             `json:"repeat_number"`
	Message      MessageResponse `json:"message"`
}

// SCMEntryResponse is a stored cron message.
type SCMEntryResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	ScheduleType string          `json:"schedule_type"`
	Schedule     *SCMSchedule    `json:"schedule"`
	RepeatNumber int             `json:"repeat_number"`
	Message      MessageResponse `json:"message"`
}

// PreferencesResponse carries the user settings the client guards on.
type PreferencesResponse struct {
	UsePinForAllActions bool   `json:"use_pin_for_all_actions"`
	Timezone            string `json:"timezone"`
}

// FullStateResponse is GET /full-state: the single source of truth the
// client re-fetches on every screen focus.
type FullStateResponse struct {
	IMState        IMStateResponse     `json:"im_state"`
	InitialMessage MessageResponse     `json:"initial_message"`
	FollowMessages []FMEntryResponse   `json:"follow_messages"`
	Preferences    PreferencesResponse `json:"preferences"`
}

// CreatedResponse carries the id assigned by a create call.
type CreatedResponse struct {
	ID string `json:"id"`
}

// errorResponse is the error envelope on non-2xx responses.
type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}
