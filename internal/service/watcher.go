package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cronpost/cronpost-go/internal/biz/domain"
	"github.com/cronpost/cronpost-go/internal/biz/usecase"
)

// StateWatcher keeps the local view aligned with the server-side
// lifecycle. Server timers move the state between fetches, so on every
// countdown expiry it re-fetches the snapshot and re-arms. Callbacks
// receive the fresh state; rendering stays with the caller.
type StateWatcher struct {
	lifecycle *usecase.LifecycleUsecase
	countdown *Countdown
	onState   func(*domain.FullState)
	log       *logrus.Entry
}

// NewStateWatcher creates a state watcher over an existing countdown.
// onState fires after every refresh, including the initial one.
func NewStateWatcher(lifecycle *usecase.LifecycleUsecase, countdown *Countdown, onState func(*domain.FullState), log *logrus.Entry) *StateWatcher {
	return &StateWatcher{
		lifecycle: lifecycle,
		countdown: countdown,
		onState:   onState,
		log:       log,
	}
}

// Refresh fetches the snapshot, arms or disarms the countdown to match
// the lifecycle, and hands the state to the callback.
func (w *StateWatcher) Refresh(ctx context.Context) (*domain.FullState, error) {
	state, err := w.lifecycle.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	if state.IM.IsActive() && state.IM.CountdownUntil != nil {
		w.countdown.Arm(*state.IM.CountdownUntil)
	} else {
		w.countdown.Disarm()
	}

	if w.onState != nil {
		w.onState(state)
	}
	return state, nil
}

// OnExpire is wired as the countdown's expiry callback. The local timer
// reaching zero means the server has moved the lifecycle; only a fresh
// fetch can say where it landed.
func (w *StateWatcher) OnExpire() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := w.Refresh(ctx); err != nil {
		w.log.WithError(err).Warn("refresh after countdown expiry failed")
	}
}
