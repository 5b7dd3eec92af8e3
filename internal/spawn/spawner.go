package spawn

import (
	"math/rand"

	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/entity"
	"github.com/vovakirdan/spacewar/internal/physics"
	"github.com/vovakirdan/spacewar/internal/registry"
)

// BodyFactory is the part of the physics world the spawner needs.
type BodyFactory interface {
	CreateBody(pos core.Vec, radius float64, dynamic bool) physics.Handle
	SetVelocity(h physics.Handle, v core.Vec) error
}

// Spawner creates enemies at the top edge of the canvas.
type Spawner struct {
	world  BodyFactory
	reg    *registry.Registry
	table  []entity.Archetype
	canvas core.Canvas
	rng    *rand.Rand
}

// NewSpawner creates a spawner. The random source decides archetype and
// position, so a seeded rng makes runs reproducible.
func NewSpawner(world BodyFactory, reg *registry.Registry, table []entity.Archetype, canvas core.Canvas, rng *rand.Rand) *Spawner {
	return &Spawner{
		world:  world,
		reg:    reg,
		table:  table,
		canvas: canvas,
		rng:    rng,
	}
}

// SpawnEnemy creates one enemy of a uniformly chosen archetype. Its center
// is one radius above the top edge, at a uniform X that keeps it fully on
// the canvas, and it moves straight down at baseSpeed*factor.
func (s *Spawner) SpawnEnemy(factor float64) (physics.Handle, *entity.Enemy) {
	variant := s.rng.Intn(len(s.table))
	a := s.table[variant]

	x := a.Radius + s.rng.Float64()*(s.canvas.W-2*a.Radius)
	pos := core.Vec{X: x, Y: -a.Radius}

	h := s.world.CreateBody(pos, a.Radius, true)
	// The body was created just above, so the handle is always known
	_ = s.world.SetVelocity(h, core.Vec{Y: a.BaseSpeed * factor})

	e := entity.NewEnemy(a, variant)
	s.reg.Register(h, e)
	return h, e
}
