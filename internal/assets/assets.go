// Package assets loads everything a run needs before it starts: rendered
// sound buffers and the sprite sheet. Loading is concurrent and never
// fails on a missing asset; the asset resolves to a placeholder instead.
package assets

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/spacewar/internal/audio"
)

//go:embed sprites.yaml
var spriteYAML []byte

// Sprite describes how one kind of entity is drawn.
type Sprite struct {
	Glyph string `yaml:"glyph"` // Center rune
	Fill  string `yaml:"fill"`  // Body rune, empty means the glyph
	Color string `yaml:"color"`
}

// Sheet maps sprite keys to sprites.
type Sheet map[string]Sprite

// Lookup returns the sprite for key, falling back to a plain glyph.
func (s Sheet) Lookup(key string) Sprite {
	if sp, ok := s[key]; ok && sp.Glyph != "" {
		return sp
	}
	return Sprite{Glyph: "o"}
}

// ParseSheet decodes a YAML sprite sheet.
func ParseSheet(data []byte) (Sheet, error) {
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("assets: parse sprite sheet: %w", err)
	}
	return sheet, nil
}

// Bundle is the result of a load. A nil sound is a placeholder.
type Bundle struct {
	Sounds  map[string]*beep.Buffer
	Sprites Sheet
}

// Loader loads a bundle and reports progress while doing it.
type Loader struct {
	rate   beep.SampleRate
	sounds []string
	sheet  []byte
	log    *log.Logger

	// render is swapped in tests
	render func(name string, rate beep.SampleRate) (*beep.Buffer, error)

	loaded atomic.Int32
	total  atomic.Int32
}

// NewLoader creates a loader for the built-in sounds and sprite sheet.
func NewLoader(rate beep.SampleRate, logger *log.Logger) *Loader {
	return &Loader{
		rate:   rate,
		sounds: audio.Names(),
		sheet:  spriteYAML,
		log:    logger,
		render: audio.Render,
	}
}

// Progress returns how many assets are done out of how many were requested.
// Safe to call from any goroutine while Load runs.
func (l *Loader) Progress() (loaded, total int) {
	return int(l.loaded.Load()), int(l.total.Load())
}

// Load renders every sound and parses the sprite sheet concurrently. Asset
// failures are logged and counted as loaded; only cancellation of ctx
// returns an error.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	b := &Bundle{Sounds: make(map[string]*beep.Buffer, len(l.sounds))}
	l.loaded.Store(0)
	l.total.Store(int32(len(l.sounds) + 1))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for _, name := range l.sounds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf, err := l.render(name, l.rate)
			if err != nil {
				l.log.Warn("sound unavailable, using placeholder", "sound", name, "err", err)
				buf = nil
			}
			mu.Lock()
			b.Sounds[name] = buf
			mu.Unlock()
			l.loaded.Add(1)
			return nil
		})
	}

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		sheet, err := ParseSheet(l.sheet)
		if err != nil {
			l.log.Warn("sprite sheet unavailable, using placeholders", "err", err)
			sheet = Sheet{}
		}
		b.Sprites = sheet
		l.loaded.Add(1)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assets: load: %w", err)
	}
	return b, nil
}
