package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/spacewar/internal/core"
)

// ErrUnknownSound is returned by Render for names it has no recipe for.
var ErrUnknownSound = errors.New("unknown sound")

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave of fixed duration. The frequency glides
// linearly from freq to slide over the duration.
type oscillator struct {
	freq     float64
	slide    float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from one frequency to another.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		slide:    to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.slide-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. Zero or negative volume is silent since
// the underlying effect works in log2 steps.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func shootSound(rate beep.SampleRate) beep.Streamer {
	d := 90 * time.Millisecond
	osc := NewSweep(1400, 500, d, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, d, 2*time.Millisecond, 60*time.Millisecond, rate), 0.35)
}

func hitSound(rate beep.SampleRate) beep.Streamer {
	d := 160 * time.Millisecond
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, time.Millisecond, 140*time.Millisecond, rate)
	thump := NewEnvelope(NewSweep(180, 60, d, WaveSine, rate), d, time.Millisecond, 120*time.Millisecond, rate)
	return beep.Mix(newVolume(noise, 0.4), newVolume(thump, 0.6))
}

func gameOverSound(rate beep.SampleRate) beep.Streamer {
	notes := []float64{392.00, 329.63, 261.63, 196.00}
	parts := make([]beep.Streamer, 0, len(notes))
	for i, f := range notes {
		d := 220 * time.Millisecond
		if i == len(notes)-1 {
			d = 600 * time.Millisecond
		}
		osc := NewOscillator(f, d, WaveSaw, rate)
		parts = append(parts, NewEnvelope(osc, d, 5*time.Millisecond, d/2, rate))
	}
	return newVolume(beep.Seq(parts...), 0.4)
}

// menuTheme is a short arpeggio that loops while the menu is shown.
func menuTheme(rate beep.SampleRate) (beep.Streamer, error) {
	notes := []float64{220.00, 277.18, 329.63, 440.00, 329.63, 277.18}
	step := 180 * time.Millisecond
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			return nil, fmt.Errorf("audio: menu tone %v Hz: %w", f, err)
		}
		shaped := NewEnvelope(beep.Take(rate.N(step), tone), step, 10*time.Millisecond, 120*time.Millisecond, rate)
		parts = append(parts, shaped)
	}
	return newVolume(beep.Seq(parts...), 0.25), nil
}

// Render synthesizes the named sound into a seekable buffer.
func Render(name string, rate beep.SampleRate) (*beep.Buffer, error) {
	var s beep.Streamer
	switch name {
	case core.SoundShoot:
		s = shootSound(rate)
	case core.SoundHit:
		s = hitSound(rate)
	case core.SoundGameOver:
		s = gameOverSound(rate)
	case core.SoundMenu:
		var err error
		if s, err = menuTheme(rate); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("audio: %q: %w", name, ErrUnknownSound)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf, nil
}

// Names lists every sound Render knows.
func Names() []string {
	return []string{core.SoundShoot, core.SoundHit, core.SoundGameOver, core.SoundMenu}
}
