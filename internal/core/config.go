package core

// RuntimeConfig carries the process-level settings the front ends pass down
// when they build a simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the front end (default 60)
	Seed     int64 // RNG seed for spawn placement, 0 means time based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// Sound effect and loop names understood by the audio collaborator.
const (
	SoundShoot    = "shoot"
	SoundHit      = "hit"
	SoundGameOver = "gameover"
	SoundMenu     = "menu"
)
