package sim

import (
	"time"

	"github.com/vovakirdan/spacewar/internal/core"
)

// Autopilot is an input source that sweeps the ship left and right and
// fires continuously. It drives headless runs.
type Autopilot struct {
	Sweep time.Duration // Time spent moving in one direction

	start time.Time
}

// NewAutopilot creates an autopilot that reverses every sweep.
func NewAutopilot(sweep time.Duration) *Autopilot {
	return &Autopilot{Sweep: sweep}
}

// Sample returns the intent for now.
func (a *Autopilot) Sample(now time.Time) core.Intent {
	if a.start.IsZero() {
		a.start = now
	}
	if a.Sweep <= 0 {
		return core.Intent{Fire: true}
	}
	leg := int(now.Sub(a.start) / a.Sweep)
	return core.Intent{
		Left:  leg%2 == 0,
		Right: leg%2 == 1,
		Fire:  true,
	}
}

// Clear restarts the sweep at the next sample.
func (a *Autopilot) Clear() {
	a.start = time.Time{}
}
