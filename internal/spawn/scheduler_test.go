package spawn

import (
	"math"
	"testing"

	"github.com/vovakirdan/spacewar/internal/config"
)

func newScheduler() *Scheduler {
	return NewScheduler(config.Default().Spawn)
}

func TestEffectiveInterval(t *testing.T) {
	s := newScheduler()

	tests := []struct {
		factor   float64
		expected float64
	}{
		{1.0, 500},
		{1.25, 400},
		{2.0, 250},
		{2.5, 200},
		{3.0, 200},
		{100, 200},
	}

	for _, tc := range tests {
		if got := s.EffectiveInterval(tc.factor); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("EffectiveInterval(%v) = %v, expected %v", tc.factor, got, tc.expected)
		}
	}
}

func TestEffectiveIntervalMonotonic(t *testing.T) {
	s := newScheduler()
	prev := s.EffectiveInterval(1)

	for f := 1.0; f <= 10; f += 0.15 {
		got := s.EffectiveInterval(f)
		if got > prev {
			t.Fatalf("EffectiveInterval(%v) = %v rose above %v", f, got, prev)
		}
		if got < 200 {
			t.Fatalf("EffectiveInterval(%v) = %v fell below the 200ms floor", f, got)
		}
		prev = got
	}
}

func TestSchedulerCarriesRemainder(t *testing.T) {
	s := newScheduler()

	if s.Update(0.3, 1) {
		t.Fatal("spawned before the interval elapsed")
	}
	if !s.Update(0.3, 1) {
		t.Fatal("expected a spawn at 600ms")
	}
	// 100ms overshoot is kept, not discarded
	if math.Abs(s.Timer-100) > 1e-6 {
		t.Errorf("Timer = %v, expected 100 carried forward", s.Timer)
	}
	if !s.Update(0.4, 1) {
		t.Error("expected a spawn once the carried remainder reaches 500ms")
	}
}

func TestSchedulerOneSpawnPerUpdate(t *testing.T) {
	s := newScheduler()

	if !s.Update(1.2, 1) {
		t.Fatal("expected a spawn after 1200ms")
	}
	if math.Abs(s.Timer-700) > 1e-6 {
		t.Errorf("Timer = %v, expected 700", s.Timer)
	}
	// The backlog drains on following ticks
	if !s.Update(0, 1) {
		t.Error("expected the backlog to spawn on the next tick")
	}
}

func TestSchedulerAverageCadence(t *testing.T) {
	s := newScheduler()
	spawns := 0
	// 10 seconds of uneven frames
	frames := []float64{0.016, 0.017, 0.033, 0.008, 0.026}
	elapsed := 0.0
	for i := 0; elapsed < 10; i++ {
		dt := frames[i%len(frames)]
		elapsed += dt
		if s.Update(dt, 1) {
			spawns++
		}
	}

	if spawns < 19 || spawns > 20 {
		t.Errorf("spawns over 10s = %d, expected 20 at 500ms", spawns)
	}
}

func TestSchedulerReset(t *testing.T) {
	s := newScheduler()
	s.Update(0.45, 1)
	s.Reset()
	if s.Timer != 0 {
		t.Errorf("Timer after Reset = %v, expected 0", s.Timer)
	}
}
