// Package audio plays the game's procedurally generated sounds through the
// system speaker. Playback failures never reach the simulation: a manager
// without a working device silently drops every request.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/spacewar/internal/config"
)

// Manager owns the speaker and the rendered sound buffers.
type Manager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	master      *effects.Volume
	buffers     map[string]*beep.Buffer
	initialized bool
	muted       bool
	inaudible   bool // Configured volume is zero
}

// NewManager creates a manager. No device is opened until Init.
func NewManager(cfg config.AudioConfig) *Manager {
	m := &Manager{
		rate:    beep.SampleRate(cfg.SampleRate),
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer),
		muted:   cfg.Muted,
	}
	m.inaudible = cfg.Volume <= 0
	m.master = &effects.Volume{Streamer: m.mixer, Base: 2, Silent: cfg.Muted || m.inaudible}
	if !m.inaudible {
		m.master.Volume = math.Log2(cfg.Volume)
	}
	return m
}

// SampleRate returns the rate sounds must be rendered at.
func (m *Manager) SampleRate() beep.SampleRate {
	return m.rate
}

// Init opens the speaker. On error the manager stays usable and silent.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(m.master)
	m.initialized = true
	return nil
}

// Load registers a rendered sound. A nil buffer is a placeholder that plays
// nothing.
func (m *Manager) Load(name string, buf *beep.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buffers[name] = buf
}

// Loaded reports whether a playable buffer is registered under name.
func (m *Manager) Loaded(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buffers[name] != nil
}

// PlayEffect starts a one-shot sound and returns immediately.
func (m *Manager) PlayEffect(name string) {
	buf := m.playable(name)
	if buf == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// PlayLoop starts a sound that repeats until the returned stop function is
// called. Calling stop more than once is harmless.
func (m *Manager) PlayLoop(name string) (stop func()) {
	buf := m.playable(name)
	if buf == nil {
		return func() {}
	}

	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	speaker.Lock()
	m.mixer.Add(ctrl)
	speaker.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			speaker.Lock()
			// A Ctrl without a streamer reports drained and the mixer drops it
			ctrl.Streamer = nil
			speaker.Unlock()
		})
	}
}

// SetMuted silences or restores all output, including running loops.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	m.muted = muted
	initialized := m.initialized
	m.mu.Unlock()

	if initialized {
		speaker.Lock()
	}
	m.master.Silent = muted || m.inaudible
	if initialized {
		speaker.Unlock()
	}
}

// Muted reports whether output is muted.
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Close stops playback and releases the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	m.initialized = false
}

func (m *Manager) playable(name string) *beep.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized || m.muted {
		return nil
	}
	return m.buffers[name]
}

// Nop is a sink that plays nothing. SSH sessions and headless runs use it.
type Nop struct{}

func (Nop) PlayEffect(string)             {}
func (Nop) PlayLoop(string) (stop func()) { return func() {} }
func (Nop) SetMuted(bool)                 {}
