package sim

import (
	"time"

	"github.com/vovakirdan/spacewar/internal/config"
)

type flashPhase int

const (
	flashIdle flashPhase = iota
	flashRising
	flashFalling
)

// Backdrop is the background flash effect. It cycles through a list of
// patterns, switching pattern every RotateEvery. Within a pattern the
// opacity jumps to the threshold once per interval, ramps up to 1 and back
// down to the threshold by Speed per frame.
type Backdrop struct {
	patterns    []config.FlashPattern
	rotateEvery time.Duration

	index      int
	phase      flashPhase
	opacity    float64
	lastRotate time.Time
	lastFlash  time.Time
}

// NewBackdrop creates a backdrop from configuration.
func NewBackdrop(cfg config.BackdropConfig) *Backdrop {
	return &Backdrop{
		patterns:    cfg.Patterns,
		rotateEvery: ms(cfg.RotateEvery),
		opacity:     1,
	}
}

// Reset starts the effect over at full opacity with the first pattern.
func (b *Backdrop) Reset(now time.Time) {
	b.index = 0
	b.phase = flashIdle
	b.opacity = 1
	b.lastRotate = now
	b.lastFlash = now
}

// Update advances the effect by one frame.
func (b *Backdrop) Update(now time.Time) {
	if len(b.patterns) == 0 {
		return
	}
	if b.lastRotate.IsZero() {
		b.Reset(now)
	}

	if now.Sub(b.lastRotate) > b.rotateEvery {
		b.index = (b.index + 1) % len(b.patterns)
		b.lastRotate = now
		b.phase = flashIdle
	}

	p := b.patterns[b.index]
	switch b.phase {
	case flashIdle:
		if now.Sub(b.lastFlash) > ms(p.Interval) {
			b.phase = flashRising
			b.opacity = p.Threshold
			b.lastFlash = now
		}
	case flashRising:
		b.opacity += p.Speed
		if b.opacity >= 1 {
			b.opacity = 1
			b.phase = flashFalling
		}
	case flashFalling:
		b.opacity -= p.Speed
		if b.opacity <= p.Threshold {
			b.opacity = p.Threshold
			b.phase = flashIdle
		}
	}
}

// Opacity returns the current opacity in [0, 1].
func (b *Backdrop) Opacity() float64 {
	return b.opacity
}

// Pattern returns the index of the active pattern.
func (b *Backdrop) Pattern() int {
	return b.index
}

func ms(v float64) time.Duration {
	return time.Duration(v * float64(time.Millisecond))
}
