package spawn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/entity"
	"github.com/vovakirdan/spacewar/internal/physics"
	"github.com/vovakirdan/spacewar/internal/registry"
)

func newSpawner(seed int64) (*Spawner, *physics.World, *registry.Registry) {
	cfg := config.Default()
	world := physics.NewWorld(cfg.Physics)
	reg := registry.New()
	canvas := core.Canvas{W: cfg.Canvas.Width, H: cfg.Canvas.Height}
	s := NewSpawner(world, reg, entity.Archetypes(cfg.Enemies), canvas, rand.New(rand.NewSource(seed)))
	return s, world, reg
}

func TestSpawnEnemyPlacement(t *testing.T) {
	s, world, reg := newSpawner(42)
	seen := make(map[int]bool)

	for i := 0; i < 200; i++ {
		h, e := s.SpawnEnemy(1.3)
		seen[e.Variant] = true

		if got, ok := reg.Get(h); !ok || got != entity.Entity(e) {
			t.Fatalf("spawned enemy %d not registered under its handle", h)
		}

		pos, err := world.Position(h)
		if err != nil {
			t.Fatalf("Position() failed: %v", err)
		}
		r := e.Radius()
		if pos.X < r-1e-9 || pos.X > 800-r+1e-9 {
			t.Errorf("spawn X = %v outside [%v, %v]", pos.X, r, 800-r)
		}
		if math.Abs(pos.Y+r) > 1e-9 {
			t.Errorf("spawn Y = %v, expected %v just above the top edge", pos.Y, -r)
		}

		v, _ := world.Velocity(h)
		a := s.table[e.Variant]
		if v.X != 0 || math.Abs(v.Y-a.BaseSpeed*1.3) > 1e-9 {
			t.Errorf("velocity = %v, expected straight down at %v", v, a.BaseSpeed*1.3)
		}
	}

	if len(seen) != 3 {
		t.Errorf("saw variants %v, expected all three over 200 spawns", seen)
	}
	if world.Len() != reg.Len() {
		t.Errorf("world has %d bodies but registry has %d entities", world.Len(), reg.Len())
	}
}

func TestSpawnEnemyArchetypeFields(t *testing.T) {
	s, _, _ := newSpawner(7)

	for i := 0; i < 30; i++ {
		_, e := s.SpawnEnemy(1)
		a := s.table[e.Variant]
		if e.Life != a.Life || e.Damage != a.Damage || e.ScoreValue != a.Score || e.Radius() != a.Radius {
			t.Errorf("enemy %+v does not match archetype %+v", e, a)
		}
	}
}

func TestSpawnDeterministicWithSeed(t *testing.T) {
	a, worldA, _ := newSpawner(12345)
	b, worldB, _ := newSpawner(12345)

	for i := 0; i < 50; i++ {
		ha, ea := a.SpawnEnemy(1)
		hb, eb := b.SpawnEnemy(1)
		pa, _ := worldA.Position(ha)
		pb, _ := worldB.Position(hb)

		if ea.Variant != eb.Variant || pa != pb {
			t.Fatalf("spawn %d diverged: %d@%v vs %d@%v", i, ea.Variant, pa, eb.Variant, pb)
		}
	}
}
