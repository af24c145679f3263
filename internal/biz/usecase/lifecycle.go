package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cronpost/cronpost-go/cronpost"
	"github.com/cronpost/cronpost-go/internal/biz/domain"
	"github.com/cronpost/cronpost-go/internal/biz/repo"
)

// Guard errors surfaced before any request is made. The server enforces
// the same rules; failing locally just saves the round trip.
var (
	ErrCheckInNotAllowed = errors.New("check-in is only possible while the reply window is open")
	ErrStopNotAllowed    = errors.New("the check-in loop is not running")
	ErrDeleteNotAllowed  = errors.New("stop the check-in loop before deleting")
	ErrEditNotAllowed    = errors.New("check in or let the window expire before editing")
	ErrPinRequired       = errors.New("this account requires a PIN for lifecycle actions")
	ErrNotReactivatable  = errors.New("only a finished one-time message can be reactivated")
)

// LifecycleUsecase drives the check-in state machine. Every action
// fetches fresh state first; server-side timers move the lifecycle
// between calls, so a cached snapshot is never trusted.
type LifecycleUsecase struct {
	stateRepo repo.StateRepo
	imRepo    repo.IMRepo
	log       *logrus.Entry
}

// NewLifecycleUsecase creates a new lifecycle usecase
func NewLifecycleUsecase(stateRepo repo.StateRepo, imRepo repo.IMRepo, log *logrus.Entry) *LifecycleUsecase {
	return &LifecycleUsecase{
		stateRepo: stateRepo,
		imRepo:    imRepo,
		log:       log,
	}
}

// Refresh fetches the authoritative snapshot.
func (uc *LifecycleUsecase) Refresh(ctx context.Context) (*domain.FullState, error) {
	state, err := uc.stateRepo.FullState(ctx)
	if err != nil {
		return nil, err
	}
	if err := state.IM.Validate(); err != nil {
		// The snapshot is still usable; log the inconsistency and move on.
		uc.log.WithError(err).Warn("inconsistent lifecycle snapshot")
	}
	return state, nil
}

// Activate starts the check-in loop from an inactive state.
func (uc *LifecycleUsecase) Activate(ctx context.Context) error {
	state, err := uc.Refresh(ctx)
	if err != nil {
		return err
	}
	if _, err := domain.Transition(state.IM.Status, domain.ActionActivate); err != nil {
		return err
	}
	return uc.imRepo.Activate(ctx)
}

// Reactivate restarts a finished one-time message at a new moment. The
// schedule's date doubles as the prompt time, so one update call moves
// both, then a normal activate starts the loop.
func (uc *LifecycleUsecase) Reactivate(ctx context.Context, at time.Time) error {
	state, err := uc.Refresh(ctx)
	if err != nil {
		return err
	}
	if state.IM.Status != domain.IMStatusFinalNotSent || state.IM.CLC.Trigger != domain.TriggerSpecificDate {
		return ErrNotReactivatable
	}

	schedule, err := cronpost.EncodeIMSchedule(domain.OneTimeAt(at), state.IM.WCT)
	if err != nil {
		return err
	}
	req := &cronpost.IMRequest{
		Message:      cronpost.EncodeMessage(state.InitialMessage),
		Schedule:     schedule,
		RepeatNumber: 1,
	}
	if err := uc.imRepo.Update(ctx, req); err != nil {
		return fmt.Errorf("reschedule one-time message: %w", err)
	}
	return uc.imRepo.Activate(ctx)
}

// CheckIn confirms presence during an open reply window. When the
// account requires a PIN, the PIN is validated locally before the call.
func (uc *LifecycleUsecase) CheckIn(ctx context.Context, pin string) error {
	state, err := uc.Refresh(ctx)
	if err != nil {
		return err
	}
	if !state.IM.CanCheckIn() {
		return ErrCheckInNotAllowed
	}
	if state.Preferences.UsePinForAllActions {
		if pin == "" {
			return ErrPinRequired
		}
		if err := domain.ValidatePIN(pin); err != nil {
			return err
		}
	}
	return uc.imRepo.CheckIn(ctx, pin)
}

// EnsureEditable rejects schedule and sending-method edits while the
// reply window is open. Callers run it before opening an edit flow.
func (uc *LifecycleUsecase) EnsureEditable(ctx context.Context) error {
	state, err := uc.Refresh(ctx)
	if err != nil {
		return err
	}
	if !state.IM.CanEditSchedule() {
		return ErrEditNotAllowed
	}
	return nil
}

// Stop halts an active loop.
func (uc *LifecycleUsecase) Stop(ctx context.Context) error {
	state, err := uc.Refresh(ctx)
	if err != nil {
		return err
	}
	if !state.IM.CanStop() {
		return ErrStopNotAllowed
	}
	return uc.imRepo.Stop(ctx)
}

// Delete removes the initial message. Only an inactive one may go.
func (uc *LifecycleUsecase) Delete(ctx context.Context) error {
	state, err := uc.Refresh(ctx)
	if err != nil {
		return err
	}
	if !state.IM.CanDelete() {
		return ErrDeleteNotAllowed
	}
	return uc.imRepo.Delete(ctx)
}
