package registry

import (
	"testing"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/entity"
	"github.com/vovakirdan/spacewar/internal/physics"
)

func testEnemy() *entity.Enemy {
	return entity.NewEnemy(entity.Archetype{Radius: 15, Life: 1, Damage: 25, Score: 100}, 0)
}

func TestRegisterGetUnregister(t *testing.T) {
	r := New()
	e := testEnemy()

	r.Register(7, e)
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", r.Len())
	}

	got, ok := r.Get(7)
	if !ok || got != entity.Entity(e) {
		t.Errorf("Get(7) = %v, %v; expected the registered enemy", got, ok)
	}

	removed, ok := r.Unregister(7)
	if !ok || removed != entity.Entity(e) {
		t.Errorf("Unregister(7) = %v, %v; expected the registered enemy", removed, ok)
	}

	if _, ok := r.Unregister(7); ok {
		t.Error("second Unregister(7) should report absence")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", r.Len())
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	r.Register(1, testEnemy())

	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate handle should panic")
		}
	}()
	r.Register(1, testEnemy())
}

func TestAllIsOrderedAndRestartable(t *testing.T) {
	r := New()
	for _, h := range []physics.Handle{5, 1, 3} {
		r.Register(h, testEnemy())
	}

	seq := r.All()
	for pass := 0; pass < 2; pass++ {
		var got []physics.Handle
		for h := range seq {
			got = append(got, h)
		}
		if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
			t.Errorf("pass %d: All() handles = %v, expected [1 3 5]", pass, got)
		}
	}
}

func TestAllStopsEarly(t *testing.T) {
	r := New()
	for h := physics.Handle(1); h <= 10; h++ {
		r.Register(h, testEnemy())
	}

	n := 0
	for range r.All() {
		n++
		if n == 4 {
			break
		}
	}
	if n != 4 {
		t.Errorf("visited %d entries, expected to stop at 4", n)
	}
}

func TestAllSnapshotSkipsRemoved(t *testing.T) {
	r := New()
	r.Register(1, testEnemy())
	r.Register(2, testEnemy())

	seq := r.All()
	r.Unregister(2)
	r.Register(3, entity.NewPlayer(config.Default().Player))

	var got []physics.Handle
	for h := range seq {
		got = append(got, h)
	}
	// A fresh snapshot is taken when ranging starts
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("All() = %v, expected [1 3]", got)
	}
}

func TestClear(t *testing.T) {
	r := New()
	r.Register(1, testEnemy())
	r.Register(2, entity.NewProjectile(config.Default().Projectile))

	r.Clear()

	if r.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, expected 0", r.Len())
	}
	for h := range r.All() {
		t.Errorf("All() yielded %d after Clear()", h)
	}
}
