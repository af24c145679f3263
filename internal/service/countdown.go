package service

import (
	"fmt"
	"sync"
	"time"
)

// Tick is one countdown frame. Relative is the coarse phrasing for
// list rows; Precise is the running clock for the focused view.
type Tick struct {
	Remaining time.Duration
	Relative  string
	Precise   string
}

// Countdown emits a tick per interval toward an armed deadline and
// fires the expiry callback exactly once when it passes. The remaining
// time never goes negative; the zero-remaining frame is the final tick,
// and emission stays silent until the next Arm.
type Countdown struct {
	interval time.Duration
	now      func() time.Time
	onTick   func(Tick)
	onExpire func()

	mu      sync.Mutex
	until   *time.Time
	expired bool

	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// CountdownOption configures the countdown service
type CountdownOption func(*Countdown)

// WithClock replaces the time source
func WithClock(now func() time.Time) CountdownOption {
	return func(c *Countdown) { c.now = now }
}

// NewCountdown creates a countdown service. Both callbacks are fixed at
// construction; onTick fires every interval while armed, onExpire once
// per armed deadline.
func NewCountdown(interval time.Duration, onTick func(Tick), onExpire func(), opts ...CountdownOption) *Countdown {
	c := &Countdown{
		interval: interval,
		now:      time.Now,
		onTick:   onTick,
		onExpire: onExpire,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Arm points the countdown at a new deadline and resets the expiry latch.
func (c *Countdown) Arm(until time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.until = &until
	c.expired = false
}

// Disarm clears the deadline; ticks stop until the next Arm.
func (c *Countdown) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.until = nil
	c.expired = false
}

// Start starts the tick loop. A stopped countdown may be started again.
func (c *Countdown) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.stopCh = make(chan struct{})
	stopCh := c.stopCh
	c.mu.Unlock()

	c.wg.Add(1)
	go c.loop(stopCh)
}

// Stop stops the tick loop and waits for it to exit. Stopping an
// already stopped countdown is a no-op.
func (c *Countdown) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stopCh)
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Countdown) loop(stopCh <-chan struct{}) {
	defer c.wg.Done()

	c.Step()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Step()
		case <-stopCh:
			return
		}
	}
}

// Step evaluates the deadline once. The loop calls it per interval;
// tests call it directly with a fake clock. Once the deadline has
// passed, the zero-remaining frame is the last one emitted; nothing
// more comes out until the next Arm.
func (c *Countdown) Step() {
	c.mu.Lock()
	if c.until == nil || c.expired {
		c.mu.Unlock()
		return
	}
	remaining := c.until.Sub(c.now())
	fireExpire := false
	if remaining <= 0 {
		remaining = 0
		c.expired = true
		fireExpire = true
	}
	c.mu.Unlock()

	if c.onTick != nil {
		c.onTick(Tick{
			Remaining: remaining,
			Relative:  FormatRelative(remaining),
			Precise:   FormatPrecise(remaining),
		})
	}
	if fireExpire && c.onExpire != nil {
		c.onExpire()
	}
}

// FormatPrecise renders a running clock, with a day prefix when the
// remaining time spans days: "2d 03:14:07", otherwise "03:14:07".
func FormatPrecise(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatRelative renders the coarse phrasing for list rows.
func FormatRelative(d time.Duration) string {
	switch {
	case d >= 48*time.Hour:
		return fmt.Sprintf("in %d days", int64(d/(24*time.Hour)))
	case d >= 2*time.Hour:
		return fmt.Sprintf("in %d hours", int64(d/time.Hour))
	case d >= 2*time.Minute:
		return fmt.Sprintf("in %d minutes", int64(d/time.Minute))
	case d > 0:
		return "in under a minute"
	}
	return "now"
}
