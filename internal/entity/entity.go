// Package entity defines the gameplay metadata attached to physics bodies.
//
// Entity is a closed variant over *Player, *Enemy and *Projectile: the
// unexported marker method keeps other packages from adding kinds, so type
// switches over it are exhaustive.
package entity

import (
	"time"

	"github.com/vovakirdan/spacewar/internal/config"
)

// Kind names an entity variant.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindEnemy:
		return "Enemy"
	case KindProjectile:
		return "Projectile"
	default:
		return "Unknown"
	}
}

// Entity is the metadata of one simulated object.
type Entity interface {
	Kind() Kind
	Radius() float64
	// MarkDestroyed schedules the entity for removal at the next sweep.
	// The flag is never cleared.
	MarkDestroyed()
	Destroyed() bool

	sealed()
}

// flag is the shared destroy flag embedded in every variant.
type flag struct {
	destroyed bool
}

func (f *flag) MarkDestroyed()  { f.destroyed = true }
func (f *flag) Destroyed() bool { return f.destroyed }

// Player is the single ship controlled by the input source.
type Player struct {
	flag
	Life       int
	Score      int
	Speed      float64 // px/s
	FireRate   float64 // shots/s
	NextShotAt time.Duration
	radius     float64
}

// NewPlayer creates a player at full life with a zero score.
func NewPlayer(cfg config.PlayerConfig) *Player {
	return &Player{
		Life:     cfg.Life,
		Speed:    cfg.Speed,
		FireRate: cfg.FireRate,
		radius:   cfg.Radius,
	}
}

func (p *Player) Kind() Kind      { return KindPlayer }
func (p *Player) Radius() float64 { return p.radius }
func (p *Player) sealed()         {}

// ApplyDamage subtracts d from life, never going below zero.
func (p *Player) ApplyDamage(d int) {
	p.Life = max(p.Life-d, 0)
}

// AddScore adds a non-negative amount to the score.
func (p *Player) AddScore(v int) {
	if v > 0 {
		p.Score += v
	}
}

// Alive reports whether the player still has life left.
func (p *Player) Alive() bool {
	return p.Life > 0
}

// TryFire reports whether a shot is allowed at run time now and, if so,
// schedules the next allowed shot.
func (p *Player) TryFire(now time.Duration) bool {
	if now < p.NextShotAt || p.FireRate <= 0 {
		return false
	}
	p.NextShotAt = now + time.Duration(float64(time.Second)/p.FireRate)
	return true
}

// Enemy is a hostile ship spawned from an archetype.
type Enemy struct {
	flag
	Life       int
	Damage     int
	ScoreValue int
	Variant    int
	radius     float64
}

// NewEnemy creates an enemy from the archetype at index variant.
func NewEnemy(a Archetype, variant int) *Enemy {
	return &Enemy{
		Life:       a.Life,
		Damage:     a.Damage,
		ScoreValue: a.Score,
		Variant:    variant,
		radius:     a.Radius,
	}
}

func (e *Enemy) Kind() Kind      { return KindEnemy }
func (e *Enemy) Radius() float64 { return e.radius }
func (e *Enemy) sealed()         {}

// Projectile is a single-hit bullet fired by the player.
type Projectile struct {
	flag
	Damage int
	radius float64
}

// NewProjectile creates a bullet.
func NewProjectile(cfg config.ProjectileConfig) *Projectile {
	return &Projectile{
		Damage: cfg.Damage,
		radius: cfg.Radius,
	}
}

func (p *Projectile) Kind() Kind      { return KindProjectile }
func (p *Projectile) Radius() float64 { return p.radius }
func (p *Projectile) sealed()         {}
