package server

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/scores"
	"github.com/charmbracelet/log"
)

func newTestServer() (*Server, *scores.Board) {
	logger := log.New(io.Discard)
	board := scores.NewBoard(nil, logger)
	return NewServer(board, logger), board
}

func TestRegisterAndSnapshot(t *testing.T) {
	s, _ := newTestServer()
	a := s.RegisterClient("ada")
	b := s.RegisterClient("bob")
	s.Step()

	snap := s.GetSnapshot()
	if len(snap.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(snap.Players))
	}
	if snap.Players[0].ID != a.ID || snap.Players[1].Username != "bob" {
		t.Errorf("players = %+v", snap.Players)
	}
	if a.SessionID == b.SessionID {
		t.Error("session IDs collide")
	}

	s.SendPresence(b.ID, Presence{Activity: ActivityPlaying, Round: 2, Score: 7})
	s.Step()
	got := s.GetSnapshot().Players[1].Presence
	if got.Activity != ActivityPlaying || got.Round != 2 || got.Score != 7 {
		t.Errorf("presence = %+v", got)
	}
}

func TestUnregisterClosesEvents(t *testing.T) {
	s, _ := newTestServer()
	h := s.RegisterClient("ada")
	s.Step()
	s.UnregisterClient(h.ID)
	s.Step()

	if _, ok := <-h.EventsCh; ok {
		t.Error("events channel still open")
	}
	if n := len(s.GetSnapshot().Players); n != 0 {
		t.Errorf("players = %d, want 0", n)
	}
}

func TestSubmitAnnouncesToOthers(t *testing.T) {
	s, board := newTestServer()
	a := s.RegisterClient("ada")
	b := s.RegisterClient("bob")
	s.Step()

	if err := a.Submit("ada", 12); err != nil {
		t.Fatal(err)
	}
	s.Step()

	if board.Highest() != 12 {
		t.Errorf("board highest = %d", board.Highest())
	}
	select {
	case ev := <-b.EventsCh:
		if ev.Type != EventScorePosted || ev.Result.Name != "ada" || !ev.Result.Record {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("bob got no announcement")
	}
	select {
	case ev := <-a.EventsCh:
		t.Errorf("submitter got its own announcement: %+v", ev)
	default:
	}

	snap := s.GetSnapshot()
	if len(snap.TopScores) != 1 || snap.TopScores[0].Score != 12 {
		t.Errorf("top scores = %+v", snap.TopScores)
	}
	if len(snap.Recent) != 1 || snap.Recent[0].Score != 12 {
		t.Errorf("recent = %+v", snap.Recent)
	}
}

func TestRecentResultsCapped(t *testing.T) {
	s, _ := newTestServer()
	h := s.RegisterClient("ada")
	s.Step()
	for i := range 8 {
		_ = h.Submit("ada", i)
	}
	s.Step()

	recent := s.GetSnapshot().Recent
	if len(recent) != 5 {
		t.Fatalf("recent = %d, want 5", len(recent))
	}
	if recent[0].Score != 7 {
		t.Errorf("newest first: got %d", recent[0].Score)
	}
}

func TestSimultaneousFinishOneRecord(t *testing.T) {
	s, _ := newTestServer()
	a := s.RegisterClient("ada")
	b := s.RegisterClient("bob")
	s.Step()

	var wg sync.WaitGroup
	for _, h := range []*ClientHandle{a, b} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Submit(h.Username, 20)
		}()
	}
	wg.Wait()
	s.Step()

	records := 0
	for _, r := range s.GetSnapshot().Recent {
		if r.Record {
			records++
		}
	}
	if records != 1 {
		t.Errorf("records = %d, want 1", records)
	}
}

type failingRanking struct{}

func (failingRanking) Record(string, int) (bool, error) { return false, errors.New("disk full") }
func (failingRanking) TopN(int) []scores.Entry          { return nil }
func (failingRanking) Highest() int                     { return 0 }

func TestSubmitReportsRankingError(t *testing.T) {
	logger := log.New(io.Discard)
	s := NewServer(failingRanking{}, logger)
	h := s.RegisterClient("ada")
	s.Step()
	if err := h.Submit("ada", 3); err == nil {
		t.Error("expected error")
	}
	s.Step()
	if len(s.GetSnapshot().Recent) != 1 {
		t.Error("result not announced after a save failure")
	}
}

func TestShutdownNotifiesAndReturns(t *testing.T) {
	s, _ := newTestServer()
	h := s.RegisterClient("ada")
	s.Step()

	start := time.Now()
	s.Shutdown(300 * time.Millisecond)
	if time.Since(start) > 2*time.Second {
		t.Error("shutdown ignored its timeout")
	}
	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Error("no shutdown event")
	}
}

func TestShutdownWithoutClients(t *testing.T) {
	s, _ := newTestServer()
	start := time.Now()
	s.Shutdown(5 * time.Second)
	if time.Since(start) > time.Second {
		t.Error("shutdown waited with no clients connected")
	}
}
