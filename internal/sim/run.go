package sim

import (
	"context"
	"time"
)

// Run drives frames from ticks until the run reaches GameOver, the tick
// channel closes, or ctx is cancelled. The simulation must already be
// Playing.
func Run(ctx context.Context, s *Simulation, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			s.Frame(now)
			if s.State() == StateGameOver {
				return nil
			}
		}
	}
}

// VirtualTicks produces timestamps step apart starting at start, as fast as
// they are consumed. The channel closes when ctx is done.
func VirtualTicks(ctx context.Context, start time.Time, step time.Duration) <-chan time.Time {
	ch := make(chan time.Time)
	go func() {
		defer close(ch)
		for now := start; ; now = now.Add(step) {
			select {
			case <-ctx.Done():
				return
			case ch <- now:
			}
		}
	}()
	return ch
}
