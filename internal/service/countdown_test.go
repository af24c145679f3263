package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrecise(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-5 * time.Second, "00:00:00"},
		{7 * time.Second, "00:00:07"},
		{3*time.Hour + 14*time.Minute + 7*time.Second, "03:14:07"},
		{51*time.Hour + 14*time.Minute + 7*time.Second, "2d 03:14:07"},
		{24 * time.Hour, "1d 00:00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrecise(tc.d), "duration %v", tc.d)
	}
}

func TestFormatRelative(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "now"},
		{30 * time.Second, "in under a minute"},
		{5 * time.Minute, "in 5 minutes"},
		{3 * time.Hour, "in 3 hours"},
		{72 * time.Hour, "in 3 days"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRelative(tc.d), "duration %v", tc.d)
	}
}

func TestCountdownTicksDown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	var ticks []Tick
	c := NewCountdown(time.Second,
		func(tk Tick) { ticks = append(ticks, tk) },
		nil,
		WithClock(clock),
	)

	c.Arm(now.Add(10 * time.Second))
	c.Step()
	now = now.Add(3 * time.Second)
	c.Step()

	require.Len(t, ticks, 2)
	assert.Equal(t, 10*time.Second, ticks[0].Remaining)
	assert.Equal(t, 7*time.Second, ticks[1].Remaining)
	assert.Equal(t, "00:00:07", ticks[1].Precise)
}

func TestCountdownExpiresExactlyOnce(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	expires := 0
	var ticks []Tick
	c := NewCountdown(time.Second,
		func(tk Tick) { ticks = append(ticks, tk) },
		func() { expires++ },
		WithClock(clock),
	)

	c.Arm(now.Add(2 * time.Second))
	c.Step()
	assert.Zero(t, expires)

	now = now.Add(5 * time.Second)
	c.Step()
	assert.Equal(t, 1, expires)
	require.Len(t, ticks, 2)
	assert.Equal(t, time.Duration(0), ticks[1].Remaining, "remaining never goes negative")

	// Further steps past the deadline emit nothing at all: the
	// zero-remaining frame above was the last tick.
	now = now.Add(time.Minute)
	c.Step()
	c.Step()
	c.Step()
	assert.Equal(t, 1, expires)
	assert.Len(t, ticks, 2, "ticks after expiry")
}

func TestCountdownRearmResetsExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	expires := 0
	c := NewCountdown(time.Second, nil, func() { expires++ }, WithClock(clock))

	c.Arm(now.Add(time.Second))
	now = now.Add(2 * time.Second)
	c.Step()
	require.Equal(t, 1, expires)

	c.Arm(now.Add(time.Second))
	now = now.Add(2 * time.Second)
	c.Step()
	assert.Equal(t, 2, expires)
}

func TestCountdownDisarmedIsSilent(t *testing.T) {
	ticks := 0
	c := NewCountdown(time.Second, func(Tick) { ticks++ }, nil)

	c.Step()
	assert.Zero(t, ticks)

	c.Arm(time.Now().Add(time.Hour))
	c.Step()
	assert.Equal(t, 1, ticks)

	c.Disarm()
	c.Step()
	assert.Equal(t, 1, ticks)
}

func TestCountdownRestartsAfterStop(t *testing.T) {
	tickCh := make(chan Tick, 16)
	c := NewCountdown(5*time.Millisecond, func(tk Tick) {
		select {
		case tickCh <- tk:
		default:
		}
	}, nil)
	c.Arm(time.Now().Add(time.Hour))

	c.Start()
	waitTick(t, tickCh)
	c.Stop()

	for len(tickCh) > 0 {
		<-tickCh
	}

	// A stopped countdown must come back up and keep ticking.
	c.Start()
	waitTick(t, tickCh)
	waitTick(t, tickCh)
	c.Stop()

	// Stopping twice is a no-op, not a panic.
	c.Stop()
}

func waitTick(t *testing.T, ch <-chan Tick) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no tick within a second")
	}
}

func TestCountdownStartStop(t *testing.T) {
	done := make(chan struct{})
	var once bool
	c := NewCountdown(5*time.Millisecond, func(Tick) {
		if !once {
			once = true
			close(done)
		}
	}, nil)
	c.Arm(time.Now().Add(time.Hour))

	c.Start()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("no tick within a second")
	}
	c.Stop()
}
