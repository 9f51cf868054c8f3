package server

import (
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/scores"
)

// Activity is what a connected player is doing.
type Activity int

const (
	ActivityMenu     Activity = iota // Title, ranking or word screens
	ActivityPlaying                  // Inside an encounter
	ActivityFinished                 // Looking at a result screen
)

func (a Activity) String() string {
	switch a {
	case ActivityPlaying:
		return "playing"
	case ActivityFinished:
		return "finished"
	default:
		return "in menu"
	}
}

// Presence is the status a client reports to the lobby.
type Presence struct {
	Activity Activity
	Round    int
	Score    int
}

// PlayerStatus is one connected player as seen in the lobby.
type PlayerStatus struct {
	ID       int
	Username string
	Presence Presence
}

// Result is a finished game announced to the lobby.
type Result struct {
	ClientID int
	Name     string
	Score    int
	Record   bool // Beat the best score on the board
	At       time.Time
}

// LobbySnapshot is an immutable snapshot of the lobby for rendering.
type LobbySnapshot struct {
	Players   []PlayerStatus
	TopScores []scores.Entry // Top N scores for leaderboard display
	Recent    []Result       // Newest first
}
