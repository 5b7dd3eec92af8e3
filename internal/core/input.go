package core

import (
	"sync"
	"time"
)

// Intent is the sampled input record the simulation reads once per tick.
type Intent struct {
	Left  bool
	Right bool
	Fire  bool
}

// Control identifies one of the held inputs that make up an Intent.
type Control int

const (
	ControlLeft Control = iota
	ControlRight
	ControlFire
	controlCount
)

// String returns a human-readable name for the control.
func (c Control) String() string {
	switch c {
	case ControlLeft:
		return "Left"
	case ControlRight:
		return "Right"
	case ControlFire:
		return "Fire"
	default:
		return "Unknown"
	}
}

// InputState is the shared input record. Device handlers write it at any
// time from their own goroutine; the simulation samples it once per tick.
//
// Terminals deliver key repeats but no key-up events, so a press holds its
// control until a deadline. Each repeat extends the deadline, and releasing
// the key lets it lapse.
type InputState struct {
	mu    sync.Mutex
	until [controlCount]time.Time
	held  [controlCount]bool
}

// NewInputState creates an empty input record.
func NewInputState() *InputState {
	return &InputState{}
}

// Press holds a control until the given deadline.
func (s *InputState) Press(c Control, until time.Time) {
	if c < 0 || c >= controlCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if until.After(s.until[c]) {
		s.until[c] = until
	}
}

// Release drops a control immediately, along with any latched hold.
func (s *InputState) Release(c Control) {
	if c < 0 || c >= controlCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until[c] = time.Time{}
	s.held[c] = false
}

// Set latches the controls of in until they are released or cleared.
// Used by input sources that do report key-up, such as the autopilot.
func (s *InputState) Set(in Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[ControlLeft] = in.Left
	s.held[ControlRight] = in.Right
	s.held[ControlFire] = in.Fire
}

// Sample returns the intent active at now.
func (s *InputState) Sample(now time.Time) Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Intent{
		Left:  s.active(ControlLeft, now),
		Right: s.active(ControlRight, now),
		Fire:  s.active(ControlFire, now),
	}
}

func (s *InputState) active(c Control, now time.Time) bool {
	return s.held[c] || now.Before(s.until[c])
}

// Clear drops every held control. Called on each state transition so no
// action carries across it.
func (s *InputState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until = [controlCount]time.Time{}
	s.held = [controlCount]bool{}
}
