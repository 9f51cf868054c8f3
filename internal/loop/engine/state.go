package engine

// State is the session phase.
type State int

const (
	StateIdle       State = iota // Before the first game
	StateRoundIntro              // Round banner, ticks stopped
	StateActive                  // Ticks running, input accepted
	StatePaused                  // Ticks stopped, input suspended
	StateResuming                // Countdown before returning to Active
	StateGameOver                // Hit points ran out
	StateCleared                 // Terminal round beaten
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateRoundIntro: "round-intro",
	StateActive:     "active",
	StatePaused:     "paused",
	StateResuming:   "resuming",
	StateGameOver:   "game-over",
	StateCleared:    "cleared",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether the state ends a game.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateCleared
}
