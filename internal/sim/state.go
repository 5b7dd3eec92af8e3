package sim

// State is the game state. Exactly one is active at a time.
type State int

const (
	StateMenu State = iota
	StateLoading
	StatePlaying
	StatePaused
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
