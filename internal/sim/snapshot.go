package sim

import (
	"time"

	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/entity"
	"github.com/vovakirdan/spacewar/internal/physics"
)

// EntityView is the render-side view of one entity.
type EntityView struct {
	Handle  physics.Handle
	Kind    entity.Kind
	Pos     core.Vec
	Radius  float64
	Variant int
	Tag     string
}

// Snapshot is a read-only copy of everything a renderer needs. It shares no
// memory with the simulation.
type Snapshot struct {
	State      State
	Canvas     core.Canvas
	Player     EntityView
	HasPlayer  bool
	Entities   []EntityView // Enemies and projectiles in handle order
	Life       int
	Score      int
	HighScore  int
	Difficulty float64
	Backdrop   float64
	FPS        int
	Muted      bool
	PlayTime   time.Duration
}

// Snapshot captures the current state for rendering.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		State:      s.state,
		Canvas:     s.canvas,
		HighScore:  s.highScore,
		Difficulty: s.diff.Factor,
		Backdrop:   s.backdrop.Opacity(),
		FPS:        s.loop.FPS(),
		Muted:      s.muted,
		PlayTime:   s.stats.PlayTime,
	}
	if s.player != nil {
		snap.Life = s.player.Life
		snap.Score = s.player.Score
	}

	for h, e := range s.reg.All() {
		pos, err := s.world.Position(h)
		if err != nil {
			continue
		}
		v := EntityView{Handle: h, Kind: e.Kind(), Pos: pos, Radius: e.Radius()}
		switch e := e.(type) {
		case *entity.Player:
			snap.Player = v
			snap.HasPlayer = true
			continue
		case *entity.Enemy:
			v.Variant = e.Variant
			if e.Variant >= 0 && e.Variant < len(s.table) {
				v.Tag = s.table[e.Variant].Tag
			}
		}
		snap.Entities = append(snap.Entities, v)
	}
	return snap
}
