package client

import (
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/input"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/engine"
)

// Screen represents the current UI screen for a client.
type Screen int

const (
	ScreenTitle    Screen = iota // Name entry and main menu
	ScreenPlaying                // Inside an encounter
	ScreenResult                 // Game over or cleared
	ScreenRanking                // Top scores and lobby
	ScreenWords                  // Word list editor
	ScreenShutdown               // Server is shutting down
)

// Main menu entries.
const (
	menuStart = iota
	menuRanking
	menuWords
	menuQuit
	menuCount
)

var menuLabels = [menuCount]string{"Start", "Ranking", "Words", "Quit"}

// Pause menu entries.
const (
	pauseResume = iota
	pauseQuit
	pauseCount
)

var pauseLabels = [pauseCount]string{"Resume", "Quit to menu"}

// ClientState holds per-player UI state (screen, typing buffers, menus).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input      input.Input
	Screen     Screen
	prevScreen Screen
	Running    bool // Client loop running

	nameLine *input.Line // Title screen name field
	typeLine *input.Line // In-game typing prompt
	wordLine *input.Line // Word editor prompt
	menu     int         // Selected main menu entry
	pause    int         // Selected pause menu entry
	scroll   int         // First word shown in the word editor

	result engine.Snapshot // Final state of the last game
	record bool            // The last game topped the ranking
	status string          // One-line feedback on the current screen

	notice      string  // Lobby announcement
	noticeTimer float64 // Seconds the announcement stays up

	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState(name string) *ClientState {
	st := &ClientState{
		Screen:     ScreenTitle,
		prevScreen: -1,
		Running:    true,
		nameLine:   input.NewLine(config.MaxUsernameLength),
		typeLine:   input.NewLine(config.MaxTypedLength),
		wordLine:   input.NewLine(config.MaxTypedLength),
	}
	for _, r := range name {
		st.nameLine.Apply(input.Key{Kind: input.KeyRune, Rune: r})
	}
	return st
}
