// Package lifecycle removes finished entities from the physics world and the
// registry together, so neither ever holds an entry the other lacks.
package lifecycle

import (
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/entity"
	"github.com/vovakirdan/spacewar/internal/physics"
	"github.com/vovakirdan/spacewar/internal/registry"
)

// World is the part of the physics world the sweeper needs.
type World interface {
	Position(h physics.Handle) (core.Vec, error)
	DestroyBody(h physics.Handle) bool
	Clear()
}

// Sweeper is the only component that destroys bodies during a run.
type Sweeper struct {
	world        World
	reg          *registry.Registry
	canvas       core.Canvas
	topTolerance float64

	doomed []physics.Handle
}

// NewSweeper creates a sweeper. topTolerance is how far above the top edge a
// projectile may travel before it is culled; other entities are culled one
// radius past any edge.
func NewSweeper(world World, reg *registry.Registry, canvas core.Canvas, topTolerance float64) *Sweeper {
	return &Sweeper{
		world:        world,
		reg:          reg,
		canvas:       canvas,
		topTolerance: topTolerance,
	}
}

// OutOfBounds reports whether an entity of kind k and radius r at pos has
// left the play field.
func OutOfBounds(pos core.Vec, r float64, k entity.Kind, canvas core.Canvas, topTolerance float64) bool {
	top := -r
	if k == entity.KindProjectile {
		top = -topTolerance
	}
	return pos.X < -r || pos.X > canvas.W+r || pos.Y < top || pos.Y > canvas.H+r
}

// Sweep removes every non-player entity that is flagged, out of bounds or
// out of life, and returns how many were removed. Candidates are collected
// first and destroyed after the registry walk ends.
func (s *Sweeper) Sweep() int {
	s.doomed = s.doomed[:0]

	for h, e := range s.reg.All() {
		if s.finished(h, e) {
			s.doomed = append(s.doomed, h)
		}
	}

	for _, h := range s.doomed {
		s.world.DestroyBody(h)
		s.reg.Unregister(h)
	}
	return len(s.doomed)
}

func (s *Sweeper) finished(h physics.Handle, e entity.Entity) bool {
	switch v := e.(type) {
	case *entity.Player:
		return false
	case *entity.Enemy:
		if v.Life <= 0 {
			return true
		}
	}
	if e.Destroyed() {
		return true
	}

	pos, err := s.world.Position(h)
	if err != nil {
		// Registered without a body: drop the orphan
		return true
	}
	return OutOfBounds(pos, e.Radius(), e.Kind(), s.canvas, s.topTolerance)
}

// Clear destroys every body and empties the registry. Used when a new run
// starts.
func (s *Sweeper) Clear() {
	s.world.Clear()
	s.reg.Clear()
}
