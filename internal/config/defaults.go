package config

import (
	_ "embed"
)

//go:embed defaults/spacewar.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/spacewar.yaml and is the last fallback of Load.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:  800,
			Height: 600,
		},
		Loop: LoopConfig{
			MaxStep: 0.1,
		},
		Physics: PhysicsConfig{
			Scale:      30,
			MaxStep:    1.0 / 30,
			Iterations: 8,
			Friction:   0,
			Elasticity: 0.2,
			Density:    1,
		},
		Player: PlayerConfig{
			Radius:      20,
			Life:        100,
			Speed:       300,
			FireRate:    8,
			StartOffset: 50,
		},
		Projectile: ProjectileConfig{
			Radius:       3,
			Speed:        600,
			Damage:       1,
			Gap:          5,
			TopTolerance: 50,
		},
		Enemies: []EnemyConfig{
			{Radius: 15, Life: 1, Damage: 25, Score: 100, BaseSpeed: 50, Tag: "red"},
			{Radius: 20, Life: 2, Damage: 25, Score: 200, BaseSpeed: 40, Tag: "blue"},
			{Radius: 10, Life: 1, Damage: 25, Score: 150, BaseSpeed: 70, Tag: "green"},
		},
		Difficulty: DifficultyConfig{
			Enabled:          true,
			IncreaseRate:     0.15,
			IncreaseInterval: 4000,
		},
		Spawn: SpawnConfig{
			BaseInterval: 500,
			MinInterval:  200,
		},
		Backdrop: BackdropConfig{
			RotateEvery: 5000,
			Patterns: []FlashPattern{
				{Threshold: 0.3, Speed: 0.02, Interval: 3000},
				{Threshold: 0.1, Speed: 0.05, Interval: 1500},
				{Threshold: 0.5, Speed: 0.01, Interval: 5000},
				{Threshold: 0.2, Speed: 0.08, Interval: 800},
			},
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.5,
		},
		HighScoreKey: "spaceWarHighScore",
	}
}
