package sim

import (
	"sync/atomic"
	"time"
)

// Loop is the frame driver. It owns the running flag and the clock; the
// scheduling primitive that calls Tick (a bubbletea tick or a time.Ticker)
// lives with the front end.
type Loop struct {
	running atomic.Bool
	clock   *Clock
	fps     FPSMeter
}

// NewLoop creates a stopped loop.
func NewLoop(maxStep float64) *Loop {
	return &Loop{clock: NewClock(maxStep)}
}

// Start begins ticking from now. Starting a running loop is a no-op and
// reports false.
func (l *Loop) Start(now time.Time) bool {
	if !l.running.CompareAndSwap(false, true) {
		return false
	}
	l.clock.Reset(now)
	l.fps.Reset(now)
	return true
}

// Stop halts ticking. Stopping a stopped loop is a no-op and reports false.
func (l *Loop) Stop() bool {
	return l.running.CompareAndSwap(true, false)
}

// Running reports whether the loop is active.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Tick advances the clock and returns the bounded step in seconds.
// ok is false when the loop is stopped.
func (l *Loop) Tick(now time.Time) (dt float64, ok bool) {
	if !l.Running() {
		return 0, false
	}
	l.fps.Frame(now)
	return l.clock.Advance(now), true
}

// FPS returns the frame rate measured over the last full second.
func (l *Loop) FPS() int {
	return l.fps.Value()
}

// FPSMeter counts frames and publishes a rate once per second.
type FPSMeter struct {
	frames int
	since  time.Time
	value  int
}

// Reset restarts counting at now.
func (m *FPSMeter) Reset(now time.Time) {
	m.frames = 0
	m.since = now
}

// Frame records one frame at now.
func (m *FPSMeter) Frame(now time.Time) {
	if m.since.IsZero() {
		m.since = now
	}
	m.frames++
	if d := now.Sub(m.since); d >= time.Second {
		m.value = int(float64(m.frames)/d.Seconds() + 0.5)
		m.frames = 0
		m.since = now
	}
}

// Value returns the last published rate.
func (m *FPSMeter) Value() int {
	return m.value
}
