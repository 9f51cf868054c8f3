// Package engine runs the typing-combat simulation: the tick loop, spawning,
// movement and damage, typed-word resolution and the round state machine.
//
// All session state is guarded by one mutex. Ticks, typed submissions,
// projectile steps and phase timers each take it, so every mutation is
// serialized no matter which goroutine the Scheduler fires on.
package engine

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/object"
	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

// WordSource supplies challenge words for standard hostiles.
type WordSource interface {
	RandomWord() string
}

// BossWordSource supplies ordered boss words. It returns nil when it has
// nothing to offer.
type BossWordSource interface {
	RandomWords(count int) []string
}

// ScoreSink records a finished game.
type ScoreSink interface {
	Submit(name string, score int) error
}

// Deps are the collaborators a Session is built from. Words, BossWords and
// Scores are required.
type Deps struct {
	Words     WordSource
	BossWords BossWordSource
	Scores    ScoreSink
	Scheduler Scheduler   // Defaults to RealScheduler
	Rand      *rand.Rand  // Defaults to a time-seeded source
	Logger    *log.Logger // Defaults to the global logger
}

// Session is one player's encounter. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	rules     config.Rules
	words     WordSource
	bossWords BossWordSource
	scores    ScoreSink
	sched     Scheduler
	rng       *rand.Rand
	logger    *log.Logger
	onUpdate  func(Snapshot)

	gameID      ulid.ULID
	state       State
	name        string
	score       int
	hp          int
	round       int
	tick        int64
	cooldown    int
	danger      bool
	dangerPulse int
	damageFlash int
	countdown   int
	bossSpawned int
	bossKills   int
	hits        int
	misses      int
	nextID      int

	hostiles    []*object.Hostile
	boss        *object.Hostile
	projectiles []*object.Projectile
	nextShotID  int
	flights     map[int]Timer
	flightGen   uint64

	ticker   Timer
	tickGen  uint64
	phase    Timer
	phaseGen uint64

	done  chan struct{}
	ended bool // done is closed or owned by a pending finish
}

// effects are the side effects a locked operation leaves for the caller to
// run after unlocking.
type effects struct {
	notify bool
	finish *finish
}

// finish is a terminal transition waiting to be reported.
type finish struct {
	name    string
	score   int
	outcome State
	done    chan struct{}
}

func (e effects) merge(o effects) effects {
	e.notify = e.notify || o.notify
	if o.finish != nil {
		e.finish = o.finish
	}
	return e
}

// NewSession creates an idle session.
func NewSession(rules config.Rules, deps Deps) *Session {
	s := &Session{
		rules:     rules,
		words:     deps.Words,
		bossWords: deps.BossWords,
		scores:    deps.Scores,
		sched:     deps.Scheduler,
		rng:       deps.Rand,
		logger:    deps.Logger,
		state:     StateIdle,
		hp:        rules.MaxHP,
		round:     1,
		flights:   make(map[int]Timer),
		done:      make(chan struct{}),
	}
	if s.sched == nil {
		s.sched = RealScheduler{}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.logger = s.logger.WithPrefix("engine")
	return s
}

// OnUpdate registers the presentation callback. It runs after every tick
// and state change, outside the session lock.
func (s *Session) OnUpdate(fn func(Snapshot)) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

// StartNewGame resets everything and begins round 1 with its intro.
// It may be called in any state.
func (s *Session) StartNewGame(name string) {
	s.mu.Lock()
	s.stopAllLocked()

	name = strings.TrimSpace(name)
	if name == "" {
		name = config.DefaultPlayerName
	}
	if r := []rune(name); len(r) > config.MaxUsernameLength {
		name = string(r[:config.MaxUsernameLength])
	}

	s.gameID = ulid.Make()
	s.name = name
	s.score = 0
	s.hp = s.rules.MaxHP
	s.round = 1
	s.tick = 0
	s.cooldown = 0
	s.danger = false
	s.dangerPulse = 0
	s.damageFlash = 0
	s.countdown = 0
	s.bossSpawned = 0
	s.bossKills = 0
	s.hits = 0
	s.misses = 0
	s.nextID = 1
	s.hostiles = s.hostiles[:0]
	s.boss = nil
	s.projectiles = s.projectiles[:0]
	s.releaseDoneLocked()
	s.done = make(chan struct{})
	s.ended = false

	s.logger.Info("new game", "game", s.gameID, "player", s.name)
	s.enterIntroLocked()
	s.mu.Unlock()

	s.flush(effects{notify: true})
}

// RequestPause stops the ticks. It only has an effect while Active.
func (s *Session) RequestPause() {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return
	}
	s.stopTickerLocked()
	s.holdFlightsLocked()
	s.setStateLocked(StatePaused)
	s.mu.Unlock()

	s.flush(effects{notify: true})
}

// RequestResume starts the resume countdown. It only has an effect while
// Paused; once started the countdown always runs to completion.
func (s *Session) RequestResume() {
	s.mu.Lock()
	if s.state != StatePaused {
		s.mu.Unlock()
		return
	}
	s.setStateLocked(StateResuming)
	s.countdown = s.rules.CountdownFrom
	s.scheduleCountdownLocked()
	s.mu.Unlock()

	s.flush(effects{notify: true})
}

// Quit abandons the current game without recording a score and returns
// the session to Idle.
func (s *Session) Quit() {
	s.mu.Lock()
	if s.state == StateIdle {
		s.mu.Unlock()
		return
	}
	s.stopAllLocked()
	s.releaseDoneLocked()
	s.logger.Info("game abandoned", "game", s.gameID, "score", s.score)
	s.setStateLocked(StateIdle)
	s.mu.Unlock()

	s.flush(effects{notify: true})
}

// SubmitText feeds a confirmed line of typing to the combat resolver. It
// is ignored outside Active.
func (s *Session) SubmitText(text string) {
	s.mu.Lock()
	fx := s.submitLocked(text)
	s.mu.Unlock()

	s.flush(fx)
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsGameOver reports whether the last game ended with the player dead.
func (s *Session) IsGameOver() bool {
	return s.State() == StateGameOver
}

// IsCleared reports whether the last game ended with every round beaten.
func (s *Session) IsCleared() bool {
	return s.State() == StateCleared
}

// Done is closed once the current game has ended. After GameOver or
// Cleared it closes once the score has been submitted; an abandoned game
// (Quit, or StartNewGame mid-game) closes it right away. Each
// StartNewGame creates a fresh channel.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Close stops every timer. The session stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	s.stopAllLocked()
	s.mu.Unlock()
}

// setStateLocked records a transition.
func (s *Session) setStateLocked(next State) {
	if s.state == next {
		return
	}
	s.logger.Debug("state", "game", s.gameID, "from", s.state, "to", next, "round", s.round)
	s.state = next
}

// enterIntroLocked shows the round banner and arms the timer that starts
// the ticks.
func (s *Session) enterIntroLocked() {
	s.stopTickerLocked()
	s.stopPhaseLocked()
	s.setStateLocked(StateRoundIntro)

	gen := s.phaseGen
	s.phase = s.sched.After(s.rules.IntroDuration, func() { s.onIntroDone(gen) })
}

func (s *Session) onIntroDone(gen uint64) {
	s.mu.Lock()
	if gen != s.phaseGen || s.state != StateRoundIntro {
		s.mu.Unlock()
		return
	}
	s.phase = nil
	s.setStateLocked(StateActive)
	s.startTickerLocked()
	s.mu.Unlock()

	s.flush(effects{notify: true})
}

// scheduleCountdownLocked arms the next countdown step.
func (s *Session) scheduleCountdownLocked() {
	s.stopPhaseLocked()
	gen := s.phaseGen
	s.phase = s.sched.After(s.rules.CountdownStep, func() { s.onCountdown(gen) })
}

func (s *Session) onCountdown(gen uint64) {
	s.mu.Lock()
	if gen != s.phaseGen || s.state != StateResuming {
		s.mu.Unlock()
		return
	}
	s.countdown--
	if s.countdown > 0 {
		s.scheduleCountdownLocked()
	} else {
		s.phase = nil
		s.countdown = 0
		s.setStateLocked(StateActive)
		s.startTickerLocked()
		s.resumeFlightsLocked()
	}
	s.mu.Unlock()

	s.flush(effects{notify: true})
}

// startTickerLocked replaces any running ticker with a new one.
func (s *Session) startTickerLocked() {
	s.stopTickerLocked()
	gen := s.tickGen
	s.ticker = s.sched.Every(s.rules.TickInterval, func() { s.onTick(gen) })
}

// stopTickerLocked stops the ticker and invalidates ticks already in flight.
func (s *Session) stopTickerLocked() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	s.tickGen++
}

func (s *Session) stopPhaseLocked() {
	if s.phase != nil {
		s.phase.Stop()
		s.phase = nil
	}
	s.phaseGen++
}

// releaseDoneLocked closes the done channel of a game that ends without a
// finish.
func (s *Session) releaseDoneLocked() {
	if !s.ended {
		close(s.done)
		s.ended = true
	}
}

func (s *Session) stopAllLocked() {
	s.stopTickerLocked()
	s.stopPhaseLocked()
	s.clearProjectilesLocked()
}

func (s *Session) onTick(gen uint64) {
	s.mu.Lock()
	if gen != s.tickGen || s.state != StateActive {
		s.mu.Unlock()
		return
	}
	fx := s.tickLocked()
	s.mu.Unlock()

	s.flush(fx)
}

// tickLocked runs one simulation step: spawn, then movement and damage.
func (s *Session) tickLocked() effects {
	s.tick++
	if s.damageFlash > 0 {
		s.damageFlash--
	}
	s.spawnLocked()
	return s.advanceLocked()
}

// finishLocked ends the game. It must only be reached from Active.
func (s *Session) finishLocked(outcome State) effects {
	s.stopAllLocked()
	s.ended = true
	s.setStateLocked(outcome)
	s.logger.Info("game finished", "game", s.gameID, "outcome", outcome,
		"player", s.name, "score", s.score, "round", s.round)
	return effects{
		notify: true,
		finish: &finish{name: s.name, score: s.score, outcome: outcome, done: s.done},
	}
}

// flush runs the effects of a locked operation. The final score reaches the
// sink before Done is closed and before observers hear about the outcome.
func (s *Session) flush(fx effects) {
	if fx.finish != nil {
		if err := s.scores.Submit(fx.finish.name, fx.finish.score); err != nil {
			s.logger.Error("failed to submit score", "player", fx.finish.name, "score", fx.finish.score, "err", err)
		}
		close(fx.finish.done)
	}
	if !fx.notify {
		return
	}
	s.mu.Lock()
	fn := s.onUpdate
	var snap Snapshot
	if fn != nil {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
