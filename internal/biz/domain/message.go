package domain

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// SendingMethod is how a message is delivered once released.
type SendingMethod string

const (
	SendingInApp         SendingMethod = "in_app_messaging"
	SendingCronpostEmail SendingMethod = "cronpost_email"
	SendingUserEmail     SendingMethod = "user_email"
)

// FMStatus is the lifecycle of a follow-up message.
type FMStatus string

const (
	FMStatusDraft     FMStatus = "draft"
	FMStatusPending   FMStatus = "pending"
	FMStatusCompleted FMStatus = "completed"
	FMStatusCanceled  FMStatus = "canceled"
	FMStatusFailed    FMStatus = "failed"
)

// ScmStatus is the lifecycle of a scheduled cron message. It is
// independent of the IM check-in state machine.
type ScmStatus string

const (
	ScmStatusActive    ScmStatus = "active"
	ScmStatusInactive  ScmStatus = "inactive"
	ScmStatusPaused    ScmStatus = "paused"
	ScmStatusCompleted ScmStatus = "completed"
	ScmStatusCanceled  ScmStatus = "canceled"
	ScmStatusFailed    ScmStatus = "failed"
)

// Attachment is a reference to an uploaded file. Upload itself is the
// remote API's concern; the client only carries the reference.
type Attachment struct {
	ID   string
	Name string
	Size int64
}

// MessageCore is the deliverable part of any message: who gets what,
// and through which method.
type MessageCore struct {
	Recipients    []string
	Subject       string
	Content       string
	Attachments   []Attachment
	SendingMethod SendingMethod
}

// Validate blocks submission of an incomplete message client-side.
// These never reach the network.
func (m MessageCore) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Recipients, validation.Required),
		validation.Field(&m.Content, validation.Required),
	)
}

// FollowUpMessage fires on its own schedule after the IM is released.
type FollowUpMessage struct {
	ID       string
	Status   FMStatus
	Schedule ScheduleSpec
	Message  MessageCore
}

// ScmEntry is a directly scheduled recurring or one-time message with
// no check-in gate.
type ScmEntry struct {
	ID       string
	Status   ScmStatus
	Mode     ScheduleMode
	Schedule ScheduleSpec
	Message  MessageCore
}

// Preferences are the user settings the client's guards depend on.
type Preferences struct {
	// UsePinForAllActions requires the 4-digit PIN on check-in and
	// other lifecycle actions.
	UsePinForAllActions bool

	// Timezone is the IANA zone send times are interpreted in. It is
	// resolved from the profile, not carried on the wire per call.
	Timezone string
}

// FullState is the single source of truth fetched on every screen
// focus. Server-side timers can move the lifecycle between fetches, so
// the client re-fetches rather than caching.
type FullState struct {
	IM             IMState
	InitialMessage MessageCore
	FollowUps      []FollowUpMessage
	Preferences    Preferences
}

// MessageDraft is an in-progress message held locally until submitted.
// RemoteID is empty until the first successful create; its presence is
// the only thing that decides create vs update.
type MessageDraft struct {
	LocalID   string
	RemoteID  string
	Family    ScheduleFamily
	Mode      ScheduleMode
	Message   MessageCore
	Schedule  ScheduleSpec
	WCT       WCTDuration // IM family only
	IsDraft   bool
	UpdatedAt time.Time
}

// Validate runs the client-side pre-submit checks: message completeness,
// schedule well-formedness, and trigger/family compatibility.
func (d MessageDraft) Validate() error {
	if err := d.Message.Validate(); err != nil {
		return err
	}
	if err := d.Schedule.Validate(); err != nil {
		return err
	}
	if !d.Schedule.Trigger.AllowedIn(d.Family) {
		return validation.NewError("schedule_trigger", "trigger not allowed for this message family")
	}
	if d.Family == FamilyIM {
		return d.WCT.Validate()
	}
	return nil
}

// ValidatePIN checks the 4-digit second factor shape.
func ValidatePIN(pin string) error {
	return validation.Validate(pin,
		validation.Required,
		validation.Length(4, 4),
		validation.Match(pinPattern),
	)
}
