package lifecycle

import (
	"testing"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/entity"
	"github.com/vovakirdan/spacewar/internal/physics"
	"github.com/vovakirdan/spacewar/internal/registry"
)

var canvas = core.Canvas{W: 800, H: 600}

type fixture struct {
	world *physics.World
	reg   *registry.Registry
	sw    *Sweeper
}

func newFixture() fixture {
	cfg := config.Default()
	world := physics.NewWorld(cfg.Physics)
	reg := registry.New()
	return fixture{
		world: world,
		reg:   reg,
		sw:    NewSweeper(world, reg, canvas, cfg.Projectile.TopTolerance),
	}
}

func (f fixture) add(e entity.Entity, pos core.Vec) physics.Handle {
	h := f.world.CreateBody(pos, e.Radius(), true)
	f.reg.Register(h, e)
	return h
}

func TestOutOfBounds(t *testing.T) {
	tests := []struct {
		name     string
		pos      core.Vec
		r        float64
		kind     entity.Kind
		expected bool
	}{
		{"inside", core.Vec{X: 400, Y: 300}, 15, entity.KindEnemy, false},
		{"spawn row", core.Vec{X: 400, Y: -15}, 15, entity.KindEnemy, false},
		{"above spawn row", core.Vec{X: 400, Y: -15.5}, 15, entity.KindEnemy, true},
		{"past bottom", core.Vec{X: 400, Y: 616}, 15, entity.KindEnemy, true},
		{"on bottom margin", core.Vec{X: 400, Y: 615}, 15, entity.KindEnemy, false},
		{"past left", core.Vec{X: -16, Y: 300}, 15, entity.KindEnemy, true},
		{"past right", core.Vec{X: 816, Y: 300}, 15, entity.KindEnemy, true},
		{"bullet in top tolerance", core.Vec{X: 400, Y: -40}, 3, entity.KindProjectile, false},
		{"bullet past top tolerance", core.Vec{X: 400, Y: -51}, 3, entity.KindProjectile, true},
		{"enemy at bullet tolerance", core.Vec{X: 400, Y: -40}, 3, entity.KindEnemy, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := OutOfBounds(tc.pos, tc.r, tc.kind, canvas, 50); got != tc.expected {
				t.Errorf("OutOfBounds(%v) = %v, expected %v", tc.pos, got, tc.expected)
			}
		})
	}
}

func TestSweepRemovesFlagged(t *testing.T) {
	f := newFixture()
	e := entity.NewEnemy(entity.Archetype{Radius: 15, Life: 1}, 0)
	h := f.add(e, core.Vec{X: 400, Y: 300})
	keep := f.add(entity.NewEnemy(entity.Archetype{Radius: 15, Life: 1}, 0), core.Vec{X: 100, Y: 300})

	e.MarkDestroyed()
	if n := f.sw.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, expected 1", n)
	}

	if _, ok := f.reg.Get(h); ok {
		t.Error("flagged entity still registered")
	}
	if f.world.Contains(h) {
		t.Error("flagged entity's body still in the world")
	}
	for got := range f.reg.All() {
		if got == h {
			t.Error("flagged entity appears in the next frame's snapshot")
		}
	}
	if !f.world.Contains(keep) {
		t.Error("unflagged enemy was removed")
	}

	// A second pass has nothing left to do
	if n := f.sw.Sweep(); n != 0 {
		t.Errorf("second Sweep() = %d, expected 0", n)
	}
}

func TestSweepRemovesOutOfBoundsAndLifeless(t *testing.T) {
	f := newFixture()
	cfg := config.Default()

	gone := f.add(entity.NewEnemy(entity.Archetype{Radius: 15, Life: 1}, 0), core.Vec{X: 400, Y: 700})
	lifeless := entity.NewEnemy(entity.Archetype{Radius: 15, Life: 1}, 0)
	lifeless.Life = 0
	dead := f.add(lifeless, core.Vec{X: 400, Y: 300})
	bullet := f.add(entity.NewProjectile(cfg.Projectile), core.Vec{X: 400, Y: -30})
	lost := f.add(entity.NewProjectile(cfg.Projectile), core.Vec{X: 400, Y: -80})

	if n := f.sw.Sweep(); n != 3 {
		t.Errorf("Sweep() = %d, expected 3", n)
	}
	for _, h := range []physics.Handle{gone, dead, lost} {
		if f.world.Contains(h) {
			t.Errorf("handle %d should have been swept", h)
		}
	}
	if !f.world.Contains(bullet) {
		t.Error("bullet inside the top tolerance should survive")
	}
}

func TestSweepNeverRemovesPlayer(t *testing.T) {
	f := newFixture()
	p := entity.NewPlayer(config.Default().Player)
	h := f.add(p, core.Vec{X: -500, Y: 900})
	p.Life = 0
	p.MarkDestroyed()

	f.sw.Sweep()

	if _, ok := f.reg.Get(h); !ok {
		t.Error("player was swept")
	}
}

func TestSweepDropsOrphanMetadata(t *testing.T) {
	f := newFixture()
	// Metadata whose body vanished behind the registry's back
	f.reg.Register(physics.Handle(9999), entity.NewEnemy(entity.Archetype{Radius: 15, Life: 1}, 0))

	if n := f.sw.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, expected the orphan removed", n)
	}
	if f.reg.Len() != 0 {
		t.Errorf("registry Len() = %d, expected 0", f.reg.Len())
	}
}

func TestClear(t *testing.T) {
	f := newFixture()
	for i := 0; i < 4; i++ {
		f.add(entity.NewEnemy(entity.Archetype{Radius: 10, Life: 1}, 0), core.Vec{X: float64(i) * 50, Y: 100})
	}
	f.add(entity.NewPlayer(config.Default().Player), core.Vec{X: 400, Y: 550})

	f.sw.Clear()

	if f.world.Len() != 0 || f.reg.Len() != 0 {
		t.Errorf("after Clear: %d bodies, %d entities", f.world.Len(), f.reg.Len())
	}
}
