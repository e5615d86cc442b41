// Package game provides the demo's frame loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StatePlaying scrolls the background and animates the sprite.
	StatePlaying State = iota
	// StatePaused freezes scrolling and animation; the sprite can still move.
	StatePaused
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
