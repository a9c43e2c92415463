package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultMaxDelta caps a single frame's delta so a stalled host (suspended
// terminal, slow client) does not teleport entities across the field.
const DefaultMaxDelta = 0.1

// TimeProvider supplies wall-clock time to a session.
type TimeProvider interface {
	Now() time.Time
}

// SystemTime is the real clock.
type SystemTime struct{}

// Now returns time.Now.
func (SystemTime) Now() time.Time { return time.Now() }

// ManualTime is a TimeProvider moved by hand. Tests use it to step sessions
// frame by frame.
type ManualTime struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualTime creates a manual clock reading start.
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{now: start}
}

// Now returns the current manual time.
func (m *ManualTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the clock to t.
func (m *ManualTime) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Clock turns host frame timestamps into per-frame deltas.
//
// The first tick after construction (or Rebase) returns a zero delta. After
// Stop every tick is refused, so a frame that was already queued by the host
// is dropped instead of running an update.
type Clock struct {
	last    float64
	primed  bool
	maxDt   float64
	stopped atomic.Bool
}

// NewClock creates a clock with the default delta cap.
func NewClock() *Clock {
	return &Clock{maxDt: DefaultMaxDelta}
}

// Tick records tsMs and returns the seconds elapsed since the previous tick.
// ok is false once the clock has been stopped.
func (c *Clock) Tick(tsMs float64) (dt float64, ok bool) {
	if c.stopped.Load() {
		return 0, false
	}
	if !c.primed {
		c.primed = true
		c.last = tsMs
		return 0, true
	}

	dt = (tsMs - c.last) / 1000
	c.last = tsMs
	if dt < 0 {
		dt = 0
	}
	if c.maxDt > 0 && dt > c.maxDt {
		dt = c.maxDt
	}
	return dt, true
}

// Rebase forgets the previous timestamp. Used when resuming from pause.
func (c *Clock) Rebase() {
	c.primed = false
}

// Stop cancels the clock. It reports true only for the call that stopped it.
func (c *Clock) Stop() bool {
	return c.stopped.CompareAndSwap(false, true)
}

// Stopped reports whether Stop has been called.
func (c *Clock) Stopped() bool {
	return c.stopped.Load()
}

// Loop drives frames at a fixed rate for hosts that have no render callback
// of their own (the websocket server, the tcell backend).
type Loop struct {
	Rate int // frames per second
	Time TimeProvider
}

// Run calls frame on every tick until ctx is done or frame returns false.
// It returns ctx.Err() when cancelled and nil when the frame ended the loop.
func (l Loop) Run(ctx context.Context, frame func(now time.Time) bool) error {
	rate := l.Rate
	if rate <= 0 {
		rate = 60
	}
	tp := l.Time
	if tp == nil {
		tp = SystemTime{}
	}

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !frame(tp.Now()) {
				return nil
			}
		}
	}
}
