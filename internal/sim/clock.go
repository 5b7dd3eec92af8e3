package sim

import (
	"time"

	"github.com/vovakirdan/spacewar/internal/core"
)

// Clock turns wall-clock timestamps into bounded time steps.
type Clock struct {
	last    time.Time
	maxStep float64
}

// NewClock creates a clock whose steps never exceed maxStep seconds.
func NewClock(maxStep float64) *Clock {
	return &Clock{maxStep: maxStep}
}

// Reset makes now the reference point of the next Advance.
func (c *Clock) Reset(now time.Time) {
	c.last = now
}

// Advance returns the seconds since the previous call, clamped to
// [0, maxStep], and records now. A stall yields at most maxStep; a clock
// going backwards yields zero.
func (c *Clock) Advance(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return core.ClampF(dt, 0, c.maxStep)
}
