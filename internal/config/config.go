// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunable parameters of a spacewar run.
type Config struct {
	Canvas       CanvasConfig     `yaml:"canvas"`
	Loop         LoopConfig       `yaml:"loop"`
	Physics      PhysicsConfig    `yaml:"physics"`
	Player       PlayerConfig     `yaml:"player"`
	Projectile   ProjectileConfig `yaml:"projectile"`
	Enemies      []EnemyConfig    `yaml:"enemies"`
	Difficulty   DifficultyConfig `yaml:"difficulty"`
	Spawn        SpawnConfig      `yaml:"spawn"`
	Backdrop     BackdropConfig   `yaml:"backdrop"`
	Audio        AudioConfig      `yaml:"audio"`
	HighScoreKey string           `yaml:"high_score_key"`
}

// CanvasConfig is the play field size in display units.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoopConfig controls the frame driver.
type LoopConfig struct {
	MaxStep float64 `yaml:"max_step"` // Upper bound of a frame's time step, seconds
}

// PhysicsConfig defines the rigid-body world.
type PhysicsConfig struct {
	Scale      float64 `yaml:"scale"`      // Display units per simulation metre
	MaxStep    float64 `yaml:"max_step"`   // Solver step cap, seconds
	Iterations int     `yaml:"iterations"` // Impulse solver iterations per step
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Density    float64 `yaml:"density"`
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Radius      float64 `yaml:"radius"`
	Life        int     `yaml:"life"`
	Speed       float64 `yaml:"speed"`        // Horizontal speed, px/s
	FireRate    float64 `yaml:"fire_rate"`    // Shots per second
	StartOffset float64 `yaml:"start_offset"` // Distance of the start position from the bottom edge
}

// ProjectileConfig defines the player's bullets.
type ProjectileConfig struct {
	Radius       float64 `yaml:"radius"`
	Speed        float64 `yaml:"speed"`         // Upward speed, px/s
	Damage       int     `yaml:"damage"`
	Gap          float64 `yaml:"gap"`           // Spawn distance above the player's edge
	TopTolerance float64 `yaml:"top_tolerance"` // How far above the top edge a bullet survives
}

// EnemyConfig is one row of the enemy archetype table.
type EnemyConfig struct {
	Radius    float64 `yaml:"radius"`
	Life      int     `yaml:"life"`
	Damage    int     `yaml:"damage"`
	Score     int     `yaml:"score"`
	BaseSpeed float64 `yaml:"base_speed"`
	Tag       string  `yaml:"tag"`
}

// DifficultyConfig defines the escalation of the difficulty factor.
type DifficultyConfig struct {
	Enabled          bool    `yaml:"enabled"`
	IncreaseRate     float64 `yaml:"increase_rate"`
	IncreaseInterval float64 `yaml:"increase_interval_ms"`
}

// SpawnConfig defines the enemy spawn cadence.
type SpawnConfig struct {
	BaseInterval float64 `yaml:"base_interval_ms"`
	MinInterval  float64 `yaml:"min_interval_ms"`
}

// BackdropConfig defines the background flash effect.
type BackdropConfig struct {
	RotateEvery float64        `yaml:"rotate_every_ms"`
	Patterns    []FlashPattern `yaml:"patterns"`
}

// FlashPattern is one flash rhythm of the backdrop.
type FlashPattern struct {
	Threshold float64 `yaml:"threshold"` // Peak opacity
	Speed     float64 `yaml:"speed"`     // Opacity change per frame
	Interval  float64 `yaml:"interval_ms"`
}

// AudioConfig controls sound output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Muted      bool    `yaml:"muted"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("config: canvas %vx%v: %w", c.Canvas.Width, c.Canvas.Height, ErrInvalid)
	case c.Loop.MaxStep <= 0:
		return fmt.Errorf("config: loop.max_step %v: %w", c.Loop.MaxStep, ErrInvalid)
	case c.Physics.Scale <= 0:
		return fmt.Errorf("config: physics.scale %v: %w", c.Physics.Scale, ErrInvalid)
	case c.Physics.MaxStep <= 0:
		return fmt.Errorf("config: physics.max_step %v: %w", c.Physics.MaxStep, ErrInvalid)
	case c.Physics.Iterations <= 0:
		return fmt.Errorf("config: physics.iterations %d: %w", c.Physics.Iterations, ErrInvalid)
	case c.Player.Radius <= 0 || c.Player.Life <= 0:
		return fmt.Errorf("config: player radius/life: %w", ErrInvalid)
	case c.Player.FireRate <= 0:
		return fmt.Errorf("config: player.fire_rate %v: %w", c.Player.FireRate, ErrInvalid)
	case c.Projectile.Radius <= 0:
		return fmt.Errorf("config: projectile.radius %v: %w", c.Projectile.Radius, ErrInvalid)
	case len(c.Enemies) == 0:
		return fmt.Errorf("config: no enemy archetypes: %w", ErrInvalid)
	case c.Difficulty.IncreaseInterval <= 0:
		return fmt.Errorf("config: difficulty.increase_interval_ms %v: %w", c.Difficulty.IncreaseInterval, ErrInvalid)
	case c.Difficulty.IncreaseRate < 0:
		return fmt.Errorf("config: difficulty.increase_rate %v: %w", c.Difficulty.IncreaseRate, ErrInvalid)
	case c.Spawn.MinInterval <= 0 || c.Spawn.BaseInterval < c.Spawn.MinInterval:
		return fmt.Errorf("config: spawn intervals %v/%v: %w", c.Spawn.BaseInterval, c.Spawn.MinInterval, ErrInvalid)
	case c.HighScoreKey == "":
		return fmt.Errorf("config: empty high_score_key: %w", ErrInvalid)
	}
	for i, e := range c.Enemies {
		if e.Radius <= 0 || e.Life <= 0 {
			return fmt.Errorf("config: enemies[%d] radius/life: %w", i, ErrInvalid)
		}
		if 2*e.Radius > c.Canvas.Width {
			return fmt.Errorf("config: enemies[%d] wider than canvas: %w", i, ErrInvalid)
		}
	}
	return nil
}
