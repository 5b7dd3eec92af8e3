package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/spacewar/internal/assets"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/sim"
)

// SoundLoader receives rendered sounds once assets are loaded.
type SoundLoader interface {
	Load(name string, buf *beep.Buffer)
}

// Options configures a Model.
type Options struct {
	Sim      *sim.Simulation
	Input    *core.InputState // nil uses the simulation's own record
	Loader   *assets.Loader   // nil skips asset loading
	Sounds   SoundLoader      // nil when there is no local speaker
	Records  RecordsSource    // nil hides the history
	TickRate int
	Width    int
	Height   int
	Logger   *log.Logger
}

type popup int

const (
	popupNone popup = iota
	popupControls
	popupRecords
)

// assetsLoadedMsg reports that the asset load started on entering Loading
// has finished.
type assetsLoadedMsg struct {
	bundle *assets.Bundle
	err    error
}

// Model is the Bubble Tea model of a game session.
type Model struct {
	sim      *sim.Simulation
	input    *core.InputState
	loader   *assets.Loader
	sounds   SoundLoader
	sprites  assets.Sheet
	screen   *core.Screen
	keys     KeyMap
	records  recordsModel
	popup    popup
	tickRate int
	log      *log.Logger
	quitting bool
}

// NewModel creates a new Bubble Tea model for a simulation.
func NewModel(opts Options) Model {
	if opts.Input == nil {
		if in, ok := opts.Sim.Input().(*core.InputState); ok {
			opts.Input = in
		} else {
			opts.Input = core.NewInputState()
		}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cfg := core.DefaultConfig()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = cfg.ScreenW, cfg.ScreenH
	}
	if opts.TickRate <= 0 {
		opts.TickRate = cfg.TickRate
	}

	keys := DefaultKeyMap()
	return Model{
		sim:      opts.Sim,
		input:    opts.Input,
		loader:   opts.Loader,
		sounds:   opts.Sounds,
		sprites:  assets.Sheet{},
		screen:   core.NewScreen(opts.Width, opts.Height),
		keys:     keys,
		records:  newRecordsModel(opts.Records, keys, opts.Width, opts.Height),
		tickRate: opts.TickRate,
		log:      opts.Logger,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case assetsLoadedMsg:
		return m.handleLoaded(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.popup != popupNone {
		return m.handlePopupKey(msg)
	}

	if key.Matches(msg, m.keys.Mute) {
		m.sim.ToggleMute()
		return m, nil
	}

	switch m.sim.State() {
	case sim.StateMenu:
		switch {
		case key.Matches(msg, m.keys.Start):
			if m.sim.RequestStart() {
				return m, m.loadAssets()
			}
		case key.Matches(msg, m.keys.Controls):
			m.popup = popupControls
		case key.Matches(msg, m.keys.Records):
			m.records.reload(m.sim.HighScore())
			m.popup = popupRecords
		}

	case sim.StatePlaying:
		now := time.Now()
		switch {
		case key.Matches(msg, m.keys.Pause):
			m.sim.TogglePause()
		case key.Matches(msg, m.keys.Left):
			m.input.Release(core.ControlRight)
			m.input.Press(core.ControlLeft, now.Add(holdFor))
		case key.Matches(msg, m.keys.Right):
			m.input.Release(core.ControlLeft)
			m.input.Press(core.ControlRight, now.Add(holdFor))
		case key.Matches(msg, m.keys.Fire):
			m.input.Press(core.ControlFire, now.Add(holdFor))
		}

	case sim.StatePaused:
		if key.Matches(msg, m.keys.Pause) {
			m.sim.TogglePause()
		}

	case sim.StateGameOver:
		if key.Matches(msg, m.keys.Start) {
			m.sim.ReturnToMenu()
		}
	}

	return m, nil
}

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back),
		m.popup == popupControls && key.Matches(msg, m.keys.Controls),
		m.popup == popupRecords && key.Matches(msg, m.keys.Records):
		m.popup = popupNone
		return m, nil
	}

	if m.popup == popupRecords {
		var cmd tea.Cmd
		m.records, cmd = m.records.update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize processes window resize events. The canvas keeps its size;
// only the mapping onto cells changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(msg.Width, msg.Height)
	m.records.resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one simulation frame and schedules the next tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.sim.Frame(now)
	return m, tickCmd(m.tickRate)
}

func (m Model) loadAssets() tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		if loader == nil {
			return assetsLoadedMsg{bundle: &assets.Bundle{}}
		}
		b, err := loader.Load(context.Background())
		return assetsLoadedMsg{bundle: b, err: err}
	}
}

func (m Model) handleLoaded(msg assetsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("asset load failed, continuing without assets", "err", msg.err)
	}
	if b := msg.bundle; b != nil {
		if m.sounds != nil {
			for name, buf := range b.Sounds {
				m.sounds.Load(name, buf)
			}
		}
		if b.Sprites != nil {
			m.sprites = b.Sprites
		}
	}
	m.sim.LoadComplete(time.Now())
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.popup {
	case popupControls:
		return controlsView(m.keys, m.screen.Width(), m.screen.Height())
	case popupRecords:
		return m.records.view()
	}

	m.screen.Clear()
	snap := m.sim.Snapshot()
	switch snap.State {
	case sim.StateMenu:
		drawMenu(m.screen, snap)
	case sim.StateLoading:
		loaded, total := 0, 0
		if m.loader != nil {
			loaded, total = m.loader.Progress()
		}
		drawLoading(m.screen, loaded, total)
	case sim.StatePlaying:
		drawField(m.screen, snap, m.sprites)
		drawHUD(m.screen, snap)
	case sim.StatePaused:
		drawField(m.screen, snap, m.sprites)
		drawHUD(m.screen, snap)
		drawPaused(m.screen)
	case sim.StateGameOver:
		drawField(m.screen, snap, m.sprites)
		drawHUD(m.screen, snap)
		drawGameOver(m.screen, snap)
	}
	return RenderScreen(m.screen)
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for the given options and blocks until
// the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
