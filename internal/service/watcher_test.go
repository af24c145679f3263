package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronpost/cronpost-go/internal/biz/domain"
	"github.com/cronpost/cronpost-go/internal/biz/usecase"
)

type stubStateRepo struct {
	state *domain.FullState
	calls int
}

func (s *stubStateRepo) FullState(ctx context.Context) (*domain.FullState, error) {
	s.calls++
	return s.state, nil
}

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func activeState(until time.Time) *domain.FullState {
	state := &domain.FullState{}
	state.IM.Status = domain.IMStatusAwaitingWindow
	state.IM.CountdownUntil = &until
	state.IM.CLC = domain.EveryNDays(3, domain.TimeOfDay{Hour: 9}, 0)
	state.IM.WCT = domain.WCTDuration{Value: 24, Unit: domain.WCTHours}
	return state
}

func TestWatcherArmsCountdownFromActiveState(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(time.Hour)

	repo := &stubStateRepo{state: activeState(until)}
	lifecycle := usecase.NewLifecycleUsecase(repo, nil, testLog())

	var ticks []Tick
	countdown := NewCountdown(time.Second,
		func(tk Tick) { ticks = append(ticks, tk) },
		nil,
		WithClock(func() time.Time { return now }),
	)

	var seen *domain.FullState
	w := NewStateWatcher(lifecycle, countdown, func(s *domain.FullState) { seen = s }, testLog())

	_, err := w.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, seen)

	countdown.Step()
	require.Len(t, ticks, 1)
	assert.Equal(t, time.Hour, ticks[0].Remaining)
}

func TestWatcherDisarmsWhenInactive(t *testing.T) {
	state := &domain.FullState{}
	state.IM.Status = domain.IMStatusInactive
	repo := &stubStateRepo{state: state}
	lifecycle := usecase.NewLifecycleUsecase(repo, nil, testLog())

	ticks := 0
	countdown := NewCountdown(time.Second, func(Tick) { ticks++ }, nil)
	countdown.Arm(time.Now().Add(time.Hour))

	w := NewStateWatcher(lifecycle, countdown, nil, testLog())
	_, err := w.Refresh(context.Background())
	require.NoError(t, err)

	countdown.Step()
	assert.Zero(t, ticks, "inactive lifecycle must not tick")
}

func TestWatcherExpiryTriggersRefetch(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubStateRepo{state: activeState(now.Add(time.Second))}
	lifecycle := usecase.NewLifecycleUsecase(repo, nil, testLog())

	countdown := NewCountdown(time.Second, nil, nil, WithClock(func() time.Time { return now }))
	w := NewStateWatcher(lifecycle, countdown, nil, testLog())

	_, err := w.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)

	// The server has moved on; expiry must re-fetch, not guess.
	repo.state = activeState(now.Add(2 * time.Hour))
	w.OnExpire()
	assert.Equal(t, 2, repo.calls)
}
