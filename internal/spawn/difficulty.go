// Package spawn holds the difficulty curve and the enemy spawn cadence.
//
// All durations here are milliseconds, fed from tick time steps given in
// seconds.
package spawn

import "github.com/vovakirdan/spacewar/internal/config"

// Difficulty tracks the difficulty factor of a run. The factor starts at 1
// and never decreases until Reset.
type Difficulty struct {
	Elapsed float64 // ms accumulated toward the next escalation
	Factor  float64

	enabled  bool
	rate     float64
	interval float64
}

// NewDifficulty creates a difficulty model at factor 1.
func NewDifficulty(cfg config.DifficultyConfig) *Difficulty {
	d := &Difficulty{
		enabled:  cfg.Enabled,
		rate:     cfg.IncreaseRate,
		interval: cfg.IncreaseInterval,
	}
	d.Reset()
	return d
}

// Reset returns the model to the start of a run.
func (d *Difficulty) Reset() {
	d.Elapsed = 0
	d.Factor = 1
}

// Update advances play time by dt seconds and returns how many escalation
// boundaries were crossed. A single long step can cross several.
func (d *Difficulty) Update(dt float64) int {
	if !d.enabled || d.interval <= 0 || dt <= 0 {
		return 0
	}
	d.Elapsed += dt * 1000

	n := 0
	for d.Elapsed >= d.interval {
		d.Factor += d.rate
		d.Elapsed -= d.interval
		n++
	}
	return n
}
