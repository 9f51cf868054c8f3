// Package client renders one player's terminal UI and drives their engine
// session from keyboard input.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/draw"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/input"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/engine"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/server"
	"github.com/charmbracelet/log"
)

// WordStore is the editable standard word list.
type WordStore interface {
	engine.WordSource
	Add(word string) error
	Remove(word string) error
	Words() []string
}

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	session      *engine.Session
	snapshot     atomic.Pointer[engine.Snapshot]
	done         <-chan struct{} // Closed when the current game ends
	presence     server.Presence
	state        *ClientState
	rules        config.Rules
	words        WordStore
	frame        *draw.Frame
	out          *draw.Output // Frame output, flushed in chunks
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Rules        config.Rules // Zero value means DefaultRules
	Words        WordStore
	BossWords    engine.BossWordSource
	Scheduler    engine.Scheduler
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	rules := opts.Rules
	if len(rules.Rounds) == 0 {
		rules = config.DefaultRules()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("session", handle.SessionID)

	session := engine.NewSession(rules, engine.Deps{
		Words:     opts.Words,
		BossWords: opts.BossWords,
		Scores:    handle,
		Scheduler: opts.Scheduler,
		Logger:    logger,
	})

	// Create frame with clamped dimensions for max render area
	termWidth, termHeight, _ := termSizeFunc()
	view := draw.Fit(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	c := &Client{
		server:       gs,
		handle:       handle,
		session:      session,
		state:        NewClientState(opts.Username),
		rules:        rules,
		words:        opts.Words,
		frame:        draw.NewFrame(view.Width, view.Height),
		out:          draw.NewOutput(w, view),
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger.WithPrefix("client"),
	}
	session.OnUpdate(func(s engine.Snapshot) {
		c.snapshot.Store(&s)
	})
	return c
}

// Run starts the client loop. Blocks until the client disconnects, the
// server stops or ctx is done.
func (c *Client) Run(ctx context.Context) error {
	draw.Emit(c.writer, draw.SeqHideCursor, draw.SeqClearScreen)
	defer draw.Emit(c.writer, draw.SeqShowCursor)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		select {
		case <-ctx.Done():
			c.logger.Info("closing client", "reason", context.Cause(ctx))
			c.state.Running = false
			continue
		default:
		}

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle UI state
		switch c.state.Screen {
		case ScreenTitle:
			c.updateTitleState()
		case ScreenPlaying:
			c.updatePlayingState()
		case ScreenResult:
			c.updateResultState()
		case ScreenRanking:
			c.updateRankingState()
		case ScreenWords:
			c.updateWordsState()
		case ScreenShutdown:
			c.updateShutdownState()
		}
		c.updateNotice()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			c.session.Close()
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.abandonGame()
	c.session.Close()

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.Emit(c.writer, draw.SeqClearScreen)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if c.state.Input.Any() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive player")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Closed {
		c.state.Running = false
	}
	for _, k := range c.state.Input.Keys {
		if k.Kind == input.KeyInterrupt {
			c.state.Running = false
		}
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventScorePosted:
				c.state.notice = fmt.Sprintf("%s finished with %d", event.Result.Name, event.Result.Score)
				if event.Result.Record {
					c.state.notice += " - new record!"
				}
				c.state.noticeTimer = config.NoticeSeconds
			case server.EventServerShutdown:
				c.abandonGame()
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render area.
// On actual size changes, clears the terminal to remove residual output
// outside the new frame area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	view := draw.Fit(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if view.Width != c.frame.Width() || view.Height != c.frame.Height() {
		draw.Emit(c.writer, draw.SeqClearScreen)
		c.frame.Resize(view.Width, view.Height)
	}
	c.out.SetViewport(view)
}

// updateTitleState handles name entry and the main menu.
func (c *Client) updateTitleState() {
	for _, k := range c.state.Input.Keys {
		switch k.Kind {
		case input.KeyUp:
			c.state.menu = (c.state.menu + menuCount - 1) % menuCount
		case input.KeyDown, input.KeyTab:
			c.state.menu = (c.state.menu + 1) % menuCount
		case input.KeyEnter:
			c.activateMenu()
			return
		default:
			c.state.nameLine.Apply(k)
		}
	}
}

// activateMenu runs the selected main menu entry.
func (c *Client) activateMenu() {
	input.Reset(c.inputStream)
	c.state.status = ""
	switch c.state.menu {
	case menuStart:
		c.startGame()
	case menuRanking:
		c.state.Screen = ScreenRanking
	case menuWords:
		c.state.wordLine.Reset()
		c.state.scroll = 0
		c.state.Screen = ScreenWords
	case menuQuit:
		c.state.Running = false
	}
}

// startGame starts a new encounter.
func (c *Client) startGame() {
	input.Reset(c.inputStream)
	c.state.typeLine.Reset()
	c.state.pause = pauseResume

	c.session.StartNewGame(c.state.nameLine.Trimmed())
	c.done = c.session.Done()
	snap := c.session.Snapshot()
	c.snapshot.Store(&snap)

	c.state.Screen = ScreenPlaying
	c.reportPresence(server.Presence{Activity: server.ActivityPlaying, Round: snap.Round})
}

// updatePlayingState routes keys by engine state and watches for the end
// of the game.
func (c *Client) updatePlayingState() {
	select {
	case <-c.done:
		c.finishGame()
		return
	default:
	}

	switch c.session.State() {
	case engine.StateActive:
		for _, k := range c.state.Input.Keys {
			if k.Kind == input.KeyEscape {
				c.state.pause = pauseResume
				c.session.RequestPause()
				break
			}
			if text, ok := c.state.typeLine.Apply(k); ok {
				c.session.SubmitText(text)
			}
		}
	case engine.StatePaused:
		for _, k := range c.state.Input.Keys {
			switch k.Kind {
			case input.KeyUp, input.KeyDown, input.KeyTab:
				c.state.pause = (c.state.pause + 1) % pauseCount
			case input.KeyEscape:
				c.session.RequestResume()
				return
			case input.KeyEnter:
				if c.state.pause == pauseQuit {
					c.session.Quit()
					c.state.Screen = ScreenTitle
					c.reportPresence(server.Presence{Activity: server.ActivityMenu})
					return
				}
				c.session.RequestResume()
				return
			}
		}
	}

	snap := c.currentSnapshot()
	c.reportPresence(server.Presence{Activity: server.ActivityPlaying, Round: snap.Round, Score: snap.Score})
}

// finishGame moves to the result screen once the engine has submitted the score.
func (c *Client) finishGame() {
	c.state.result = c.session.Snapshot()
	c.state.record = c.handle.LastWasRecord()
	c.state.typeLine.Reset()
	c.state.Screen = ScreenResult
	c.reportPresence(server.Presence{Activity: server.ActivityFinished, Round: c.state.result.Round, Score: c.state.result.Score})
}

// updateResultState waits for the player to leave the result screen.
func (c *Client) updateResultState() {
	for _, k := range c.state.Input.Keys {
		switch k.Kind {
		case input.KeyEnter, input.KeyEscape:
			input.Reset(c.inputStream)
			c.state.Screen = ScreenTitle
			c.reportPresence(server.Presence{Activity: server.ActivityMenu})
			return
		case input.KeyTab:
			c.startGame()
			return
		}
	}
}

// updateRankingState returns to the title on Enter or Escape.
func (c *Client) updateRankingState() {
	for _, k := range c.state.Input.Keys {
		if k.Kind == input.KeyEnter || k.Kind == input.KeyEscape {
			c.state.Screen = ScreenTitle
			return
		}
	}
}

// updateWordsState edits the word list. A plain line adds a word, a line
// starting with '-' removes one.
func (c *Client) updateWordsState() {
	for _, k := range c.state.Input.Keys {
		switch k.Kind {
		case input.KeyEscape:
			c.state.Screen = ScreenTitle
			return
		case input.KeyUp:
			c.state.scroll = max(c.state.scroll-1, 0)
			continue
		case input.KeyDown:
			c.state.scroll++
			continue
		}
		if text, ok := c.state.wordLine.Apply(k); ok {
			c.state.status = c.editWords(strings.TrimSpace(text))
		}
	}
}

// editWords applies one editor command and returns the feedback line.
func (c *Client) editWords(cmd string) string {
	if c.words == nil {
		return "The word list is read-only."
	}
	if cmd == "" {
		return ""
	}
	if word, ok := strings.CutPrefix(cmd, "-"); ok {
		if err := c.words.Remove(word); err != nil {
			c.logger.Warn("failed to remove word", "word", word, "err", err)
			return fmt.Sprintf("Could not remove %q: %v", word, err)
		}
		c.logger.Info("word removed", "word", word)
		return fmt.Sprintf("Removed %q.", word)
	}
	if err := c.words.Add(cmd); err != nil {
		c.logger.Warn("failed to add word", "word", cmd, "err", err)
		return fmt.Sprintf("Could not add %q: %v", cmd, err)
	}
	c.logger.Info("word added", "word", cmd)
	return fmt.Sprintf("Added %q.", cmd)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
	for _, k := range c.state.Input.Keys {
		if k.Kind == input.KeyEnter || k.Kind == input.KeyEscape || (k.Kind == input.KeyRune && (k.Rune == 'q' || k.Rune == 'Q')) {
			c.state.Running = false
		}
	}
}

// updateNotice expires the lobby announcement.
func (c *Client) updateNotice() {
	if c.state.noticeTimer <= 0 {
		return
	}
	c.state.noticeTimer -= c.state.delta.Seconds()
	if c.state.noticeTimer <= 0 {
		c.state.notice = ""
	}
}

// reportPresence tells the lobby what this client is doing when it changes.
func (c *Client) reportPresence(p server.Presence) {
	if p == c.presence {
		return
	}
	c.presence = p
	c.server.SendPresence(c.handle.ID, p)
}

// abandonGame drops a game in progress without recording a score.
func (c *Client) abandonGame() {
	if st := c.session.State(); st != engine.StateIdle && !st.Terminal() {
		c.session.Quit()
	}
}

// currentSnapshot returns the latest engine snapshot.
func (c *Client) currentSnapshot() engine.Snapshot {
	if snap := c.snapshot.Load(); snap != nil {
		return *snap
	}
	return c.session.Snapshot()
}
