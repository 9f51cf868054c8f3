package server

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/scores"
	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

// GameServer is the interface clients use to communicate with the lobby.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendPresence(clientID int, p Presence)
	GetSnapshot() *LobbySnapshot
	Highest() int
}

// Ranking is the score store shared by every client.
type Ranking interface {
	Record(name string, score int) (best bool, err error)
	TopN(n int) []scores.Entry
	Highest() int
}

// Server tracks connected players and publishes finished games to all of
// them. Each player's encounter runs in its own engine session; the server
// only shares the lobby and the ranking.
type Server struct {
	ranking      Ranking
	logger       *log.Logger
	snapshot     atomic.Pointer[LobbySnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	presenceCh   chan ClientPresence
	registerCh   chan *ClientHandle
	unregisterCh chan int
	resultsCh    chan Result
	recent       []Result
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server. It is the
// score sink of the client's engine session.
type ClientHandle struct {
	ID        int
	Username  string           // Display name for this client
	SessionID ulid.ULID        // Connection identifier for logs
	EventsCh  chan ClientEvent // Events sent to client (scores, shutdown)
	Presence  Presence
	server    *Server
	record    atomic.Bool // Last submitted score topped the ranking
}

// ClientPresence is a presence update from a specific client.
type ClientPresence struct {
	ClientID int
	Presence Presence
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type   ClientEventType
	Result Result // For score events
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventScorePosted ClientEventType = iota
	EventServerShutdown
)

// NewServer creates a new lobby server backed by ranking.
func NewServer(ranking Ranking, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		ranking:      ranking,
		logger:       logger.WithPrefix("lobby"),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		presenceCh:   make(chan ClientPresence, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		resultsCh:    make(chan Result, 64),
	}

	// Create initial snapshot
	s.snapshot.Store(&LobbySnapshot{
		Players:   []PlayerStatus{},
		TopScores: ranking.TopN(config.TopScoresShown),
	})

	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.LobbyTickTime)
	defer ticker.Stop()

	for {
		s.Step()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Step processes all pending messages and publishes a new snapshot.
func (s *Server) Step() {
	// Process registrations/unregistrations
	s.processRegistrations()

	// Collect presence updates
	s.collectPresence()

	// Announce finished games
	s.collectResults()

	// Create new snapshot for clients
	s.createSnapshot()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:        id,
		Username:  username,
		SessionID: ulid.Make(),
		EventsCh:  make(chan ClientEvent, 16),
		Presence:  Presence{Activity: ActivityMenu},
		server:    s,
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendPresence reports what a client is doing.
func (s *Server) SendPresence(clientID int, p Presence) {
	select {
	case s.presenceCh <- ClientPresence{ClientID: clientID, Presence: p}:
	default:
		// Presence channel full, drop update
	}
}

// GetSnapshot returns the current lobby snapshot.
func (s *Server) GetSnapshot() *LobbySnapshot {
	return s.snapshot.Load()
}

// Highest returns the best recorded score.
func (s *Server) Highest() int {
	return s.ranking.Highest()
}

// Submit records a finished game in the ranking and announces it to the
// lobby. It implements the engine's score sink.
func (h *ClientHandle) Submit(name string, score int) error {
	s := h.server
	best, err := s.ranking.Record(name, score)
	h.record.Store(best)
	if err != nil {
		s.logger.Error("failed to save score", "session", h.SessionID, "player", name, "err", err)
	}

	result := Result{
		ClientID: h.ID,
		Name:     name,
		Score:    score,
		Record:   best,
		At:       time.Now(),
	}
	select {
	case s.resultsCh <- result:
	default:
		s.logger.Warn("result queue full, dropping announcement", "player", name)
	}
	return err
}

// LastWasRecord reports whether the last score this client submitted
// topped the ranking.
func (h *ClientHandle) LastWasRecord() bool {
	return h.record.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("player joined", "session", handle.SessionID, "player", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Info("player left", "session", handle.SessionID, "player", handle.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectPresence applies pending presence updates.
func (s *Server) collectPresence() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case cp := <-s.presenceCh:
			if handle, ok := s.clients[cp.ClientID]; ok {
				handle.Presence = cp.Presence
			}
		default:
			return
		}
	}
}

// collectResults broadcasts finished games to every other client and keeps
// the most recent ones for the lobby view.
func (s *Server) collectResults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case r := <-s.resultsCh:
			s.recent = append([]Result{r}, s.recent...)
			if len(s.recent) > config.RecentResults {
				s.recent = s.recent[:config.RecentResults]
			}
			for id, handle := range s.clients {
				if id == r.ClientID {
					continue
				}
				select {
				case handle.EventsCh <- ClientEvent{Type: EventScorePosted, Result: r}:
				default:
				}
			}
		default:
			return
		}
	}
}

// createSnapshot creates an immutable snapshot of the lobby.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	players := make([]PlayerStatus, 0, len(s.clients))
	for _, handle := range s.clients {
		players = append(players, PlayerStatus{
			ID:       handle.ID,
			Username: handle.Username,
			Presence: handle.Presence,
		})
	}
	recent := slices.Clone(s.recent)
	s.mu.RUnlock()

	slices.SortFunc(players, func(a, b PlayerStatus) int { return a.ID - b.ID })

	s.snapshot.Store(&LobbySnapshot{
		Players:   players,
		TopScores: s.ranking.TopN(config.TopScoresShown),
		Recent:    recent,
	})
}
