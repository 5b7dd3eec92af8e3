package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
)

// holdFor is how long a key press keeps its control held. Terminals report
// repeats but no releases, so the hold must outlast the repeat delay.
const holdFor = 220 * time.Millisecond

// KeyMap defines the key bindings of the game screens.
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Fire     key.Binding
	Start    key.Binding
	Pause    key.Binding
	Mute     key.Binding
	Controls key.Binding
	Records  key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Fire, k.Pause, k.Mute, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Fire},
		{k.Start, k.Pause, k.Mute},
		{k.Controls, k.Records, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "move right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "space", "up", "w"),
			key.WithHelp("space/↑", "fire"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start / menu"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Controls: key.NewBinding(
			key.WithKeys("c", "?"),
			key.WithHelp("c", "controls"),
		),
		Records: key.NewBinding(
			key.WithKeys("r", "tab"),
			key.WithHelp("r", "records"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "close"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
