// Package collision turns engine contacts into gameplay effects.
//
// The resolver only touches entity metadata. It never creates or removes
// bodies, so it is safe to call while contacts are being delivered; the
// lifecycle sweep performs every removal afterwards.
package collision

import (
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/entity"
)

// Effects receives fire-and-forget sound notifications.
type Effects interface {
	PlayEffect(name string)
}

// Outcome describes what a contact did.
type Outcome int

const (
	// Ignored means the pair was unclassified or already scheduled for removal.
	Ignored Outcome = iota
	// EnemyShot means a projectile destroyed an enemy.
	EnemyShot
	// PlayerHit means an enemy rammed the player.
	PlayerHit
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "Ignored"
	case EnemyShot:
		return "EnemyShot"
	case PlayerHit:
		return "PlayerHit"
	default:
		return "Unknown"
	}
}

// Resolver applies damage and scoring for contact pairs.
type Resolver struct {
	effects Effects
	player  *entity.Player
}

// NewResolver creates a resolver. effects may be nil.
func NewResolver(effects Effects) *Resolver {
	return &Resolver{effects: effects}
}

// Reset points the resolver at the player of a new run. Score from
// projectile kills is credited to this player.
func (r *Resolver) Reset(p *entity.Player) {
	r.player = p
}

// Resolve handles one contact-begin event. The order of a and b does not
// matter.
func (r *Resolver) Resolve(a, b entity.Entity) Outcome {
	if a == nil || b == nil || a.Destroyed() || b.Destroyed() {
		return Ignored
	}

	switch x := a.(type) {
	case *entity.Projectile:
		if e, ok := b.(*entity.Enemy); ok {
			return r.shot(x, e)
		}
	case *entity.Enemy:
		switch y := b.(type) {
		case *entity.Projectile:
			return r.shot(y, x)
		case *entity.Player:
			return r.rammed(y, x)
		}
	case *entity.Player:
		if e, ok := b.(*entity.Enemy); ok {
			return r.rammed(x, e)
		}
	}
	return Ignored
}

func (r *Resolver) shot(p *entity.Projectile, e *entity.Enemy) Outcome {
	p.MarkDestroyed()
	e.MarkDestroyed()
	if r.player != nil {
		r.player.AddScore(e.ScoreValue)
	}
	r.play(core.SoundHit)
	return EnemyShot
}

// rammed damages the player and removes the enemy. The player is never
// flagged here; running out of life ends the run instead.
func (r *Resolver) rammed(p *entity.Player, e *entity.Enemy) Outcome {
	p.ApplyDamage(e.Damage)
	e.MarkDestroyed()
	r.play(core.SoundHit)
	return PlayerHit
}

func (r *Resolver) play(name string) {
	if r.effects != nil {
		r.effects.PlayEffect(name)
	}
}
