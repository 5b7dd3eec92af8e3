package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed): %w", name, ErrInvalid)
	}
}

// IncreaseRateForPreset returns the difficulty growth per interval for a preset.
// Every preset starts a run at factor 1.0; they differ only in how fast the
// factor climbs.
func IncreaseRateForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.10
	case DifficultyHard:
		return 0.25
	case DifficultyFixed:
		return 0
	default:
		return 0.15
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.IncreaseRate = IncreaseRateForPreset(preset)

	// Hard also spawns sooner from the first second
	if preset == DifficultyHard {
		cfg.Spawn.BaseInterval = 400
	}
}
