package spawn

import "github.com/vovakirdan/spacewar/internal/config"

// Scheduler decides when the next enemy is due.
type Scheduler struct {
	Timer float64 // ms accumulated since the last spawn, remainder carried

	baseInterval float64
	minInterval  float64
}

// NewScheduler creates a scheduler with an empty timer.
func NewScheduler(cfg config.SpawnConfig) *Scheduler {
	return &Scheduler{baseInterval: cfg.BaseInterval, minInterval: cfg.MinInterval}
}

// EffectiveInterval returns the spawn interval in ms at the given difficulty
// factor: base/factor, floored at the minimum interval.
func (s *Scheduler) EffectiveInterval(factor float64) float64 {
	if factor <= 0 {
		return s.baseInterval
	}
	return max(s.minInterval, s.baseInterval/factor)
}

// Update advances the timer by dt seconds and reports whether an enemy is
// due. At most one spawn fires per call; the overshoot is kept so the
// average cadence does not drift with frame timing.
func (s *Scheduler) Update(dt, factor float64) bool {
	if dt > 0 {
		s.Timer += dt * 1000
	}
	interval := s.EffectiveInterval(factor)
	if s.Timer < interval {
		return false
	}
	s.Timer -= interval
	return true
}

// Reset empties the timer.
func (s *Scheduler) Reset() {
	s.Timer = 0
}
