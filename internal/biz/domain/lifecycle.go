package domain

import (
	"fmt"
	"time"
)

// IMStatus is the check-in lifecycle state of the initial message.
// The wire labels are the source of truth; the server drives the
// time-based transitions.
type IMStatus string

const (
	// IMStatusInactive: no loop running; schedule editable, IM deletable.
	IMStatusInactive IMStatus = "INS"

	// IMStatusAwaitingWindow: active, counting down to the next
	// check-in window (the check-in loop condition has not fired yet).
	IMStatusAwaitingWindow IMStatus = "ANS_CLC"

	// IMStatusWithinWindow: active, the check-in window is open and
	// counting down. Check in or the IM is released.
	IMStatusWithinWindow IMStatus = "ANS_WCT"

	// IMStatusFinalNotSent: the window expired without a check-in and
	// the final message was released (or is being released).
	IMStatusFinalNotSent IMStatus = "FNS"
)

// IMAction is an input to the lifecycle state machine. User actions
// come from the client; window actions are server-side timer results
// that the client only learns by re-fetching state.
type IMAction string

const (
	ActionActivate     IMAction = "activate"
	ActionCheckIn      IMAction = "check_in"
	ActionStop         IMAction = "stop"
	ActionWindowOpen   IMAction = "window_open"   // CLC timer fired
	ActionWindowExpire IMAction = "window_expire" // WCT expired, no check-in
)

// ErrInvalidTransition is wrapped by Transition for rejected actions.
var ErrInvalidTransition = fmt.Errorf("invalid lifecycle transition")

// transitions is the guarded transition table.
var transitions = map[IMStatus]map[IMAction]IMStatus{
	IMStatusInactive: {
		ActionActivate: IMStatusAwaitingWindow,
	},
	IMStatusAwaitingWindow: {
		ActionWindowOpen: IMStatusWithinWindow,
		ActionStop:       IMStatusInactive,
	},
	IMStatusWithinWindow: {
		ActionCheckIn:      IMStatusAwaitingWindow, // cycle restarts from the check-in moment
		ActionWindowExpire: IMStatusFinalNotSent,
		ActionStop:         IMStatusInactive,
	},
	IMStatusFinalNotSent: {},
}

// Transition returns the next status for an action, or an error wrapping
// ErrInvalidTransition when the action is not allowed in the current
// status. Unknown statuses are rejected, never defaulted.
func Transition(cur IMStatus, act IMAction) (IMStatus, error) {
	allowed, ok := transitions[cur]
	if !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, cur)
	}
	next, ok := allowed[act]
	if !ok {
		return "", fmt.Errorf("%w: %s not allowed in %s", ErrInvalidTransition, act, cur)
	}
	return next, nil
}

// WCTUnit is the unit of the window-to-check-in duration.
type WCTUnit string

const (
	WCTMinutes WCTUnit = "minutes"
	WCTHours   WCTUnit = "hours"
)

// WCTDuration is how long the check-in window stays open once the loop
// condition fires.
type WCTDuration struct {
	Value int
	Unit  WCTUnit
}

// Duration converts to a time.Duration.
func (d WCTDuration) Duration() time.Duration {
	switch d.Unit {
	case WCTHours:
		return time.Duration(d.Value) * time.Hour
	default:
		return time.Duration(d.Value) * time.Minute
	}
}

// Validate checks the window duration.
func (d WCTDuration) Validate() error {
	if d.Value < 1 {
		return fmt.Errorf("window duration must be positive, got %d", d.Value)
	}
	if d.Unit != WCTMinutes && d.Unit != WCTHours {
		return fmt.Errorf("unknown window unit %q", d.Unit)
	}
	return nil
}

// IMState is the server-reported lifecycle snapshot the client renders
// and guards actions against.
type IMState struct {
	Status IMStatus

	// CountdownUntil is present only in the two active states: the next
	// window opening (ANS_CLC) or the window closing (ANS_WCT).
	CountdownUntil *time.Time

	// CLC is the check-in loop condition schedule.
	CLC ScheduleSpec

	// WCT governs how long the window stays open once CLC fires.
	WCT WCTDuration
}

// IsActive reports whether a loop is running.
func (s IMState) IsActive() bool {
	return s.Status == IMStatusAwaitingWindow || s.Status == IMStatusWithinWindow
}

// CanCheckIn: checking in is only possible while the window is open.
func (s IMState) CanCheckIn() bool {
	return s.Status == IMStatusWithinWindow
}

// CanStop: stopping is allowed from either active state.
func (s IMState) CanStop() bool {
	return s.IsActive()
}

// CanDelete: only an inactive IM may be deleted.
func (s IMState) CanDelete() bool {
	return s.Status == IMStatusInactive
}

// CanEditSchedule: while the window is open the user must check in or
// let it expire before editing the schedule or the sending method. The
// server re-validates this guard.
func (s IMState) CanEditSchedule() bool {
	return s.Status != IMStatusWithinWindow
}

// Validate checks the countdown-presence invariant against the status.
func (s IMState) Validate() error {
	if s.IsActive() && s.CountdownUntil == nil {
		return fmt.Errorf("active status %s without countdown", s.Status)
	}
	if !s.IsActive() && s.CountdownUntil != nil {
		return fmt.Errorf("status %s must not carry a countdown", s.Status)
	}
	return nil
}
