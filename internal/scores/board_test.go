package scores

import (
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
)

var quiet = log.New(io.Discard)

func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	manager, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("zombie_scores_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("cannot open gdata storage: %v", err)
	}
	return manager
}

func TestSubmitOrdersDescending(t *testing.T) {
	b := NewBoard(nil, quiet)
	for _, s := range []struct {
		name  string
		score int
	}{{"a", 3}, {"b", 9}, {"c", 3}, {"d", 5}} {
		if err := b.Submit(s.name, s.score); err != nil {
			t.Fatal(err)
		}
	}

	got := b.TopN(10)
	want := []string{"b", "d", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("entries = %v", got)
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i+1, got[i].Name, name)
		}
	}
	if b.Highest() != 9 {
		t.Errorf("highest = %d, want 9", b.Highest())
	}
}

func TestSubmitKeepsCapacity(t *testing.T) {
	b := NewBoard(nil, quiet)
	for i := range config.RankingCapacity + 5 {
		if err := b.Submit(fmt.Sprintf("p%d", i), i); err != nil {
			t.Fatal(err)
		}
	}

	got := b.Entries()
	if len(got) != config.RankingCapacity {
		t.Fatalf("len = %d, want %d", len(got), config.RankingCapacity)
	}
	if got[0].Score != config.RankingCapacity+4 || got[len(got)-1].Score != 5 {
		t.Errorf("kept %d..%d", got[0].Score, got[len(got)-1].Score)
	}
}

func TestTopNBounds(t *testing.T) {
	b := NewBoard(nil, quiet)
	_ = b.Submit("x", 1)
	_ = b.Submit("y", 2)

	if got := b.TopN(1); len(got) != 1 || got[0].Name != "y" {
		t.Errorf("TopN(1) = %v", got)
	}
	if got := b.TopN(50); len(got) != 2 {
		t.Errorf("TopN(50) len = %d", len(got))
	}
	if got := b.TopN(-1); len(got) != 0 {
		t.Errorf("TopN(-1) len = %d", len(got))
	}
	if NewBoard(nil, quiet).Highest() != 0 {
		t.Errorf("empty board highest should be 0")
	}
}

func TestBlankNameDefaults(t *testing.T) {
	b := NewBoard(nil, quiet)
	_ = b.Submit("  ", 4)
	if got := b.TopN(1)[0].Name; got != config.DefaultPlayerName {
		t.Errorf("name = %q, want %q", got, config.DefaultPlayerName)
	}
}

func TestPersistAcrossBoards(t *testing.T) {
	manager := openTestManager(t)

	b := NewBoard(manager, quiet)
	if !b.Persistent() {
		t.Fatalf("board with manager should persist")
	}
	if err := b.Submit("Ada", 12); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := b.Submit("Bo", 20); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	reopened := NewBoard(manager, quiet)
	got := reopened.TopN(10)
	if len(got) != 2 || got[0].Name != "Bo" || got[1].Name != "Ada" {
		t.Errorf("reloaded = %v", got)
	}
}

func TestRecordReportsBest(t *testing.T) {
	b := NewBoard(nil, quiet)
	tests := []struct {
		score int
		best  bool
	}{
		{0, false},
		{4, true},
		{4, false},
		{3, false},
		{9, true},
	}
	for _, tt := range tests {
		best, err := b.Record("p", tt.score)
		if err != nil {
			t.Fatal(err)
		}
		if best != tt.best {
			t.Errorf("Record(%d) best = %v, want %v", tt.score, best, tt.best)
		}
	}
}

func TestRecordSimultaneousBestOnce(t *testing.T) {
	b := NewBoard(nil, quiet)
	var wg sync.WaitGroup
	var mu sync.Mutex
	bests := 0
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			best, err := b.Record(fmt.Sprintf("p%d", i), 50)
			if err != nil {
				t.Error(err)
			}
			if best {
				mu.Lock()
				bests++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if bests != 1 {
		t.Errorf("%d players announced as best, want 1", bests)
	}
}
