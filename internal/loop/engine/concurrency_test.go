package engine

import (
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/charmbracelet/log"
)

// fastRules runs every timer on a millisecond scale.
func fastRules() config.Rules {
	r := config.DefaultRules()
	r.TickInterval = time.Millisecond
	r.IntroDuration = 2 * time.Millisecond
	r.CountdownStep = time.Millisecond
	r.ProjectileStepDelay = time.Millisecond
	for i := range r.Rounds {
		r.Rounds[i].SpawnInterval = 1
		r.Rounds[i].BossInterval = 5
	}
	return r
}

// Run with -race: real timers fire on their own goroutines while callers
// drive the session from several others.
func TestSessionConcurrentUse(t *testing.T) {
	if testing.Short() {
		t.Skip("real-clock test")
	}

	rules := fastRules()
	sink := &memorySink{}
	s := NewSession(rules, Deps{
		Words:     &stubWords{words: []string{"alpha", "bravo", "charlie"}},
		BossWords: stubBossWords{words: []string{"one", "two", "three"}},
		Scores:    sink,
		Scheduler: RealScheduler{},
		Logger:    log.New(io.Discard),
	})
	defer s.Close()

	var updates atomic.Int64
	s.OnUpdate(func(snap Snapshot) {
		updates.Add(1)
		if snap.HP < 0 || snap.HP > snap.MaxHP {
			t.Errorf("hp %d out of range", snap.HP)
		}
	})
	s.StartNewGame("race")

	stop := make(chan struct{})
	var wg sync.WaitGroup
	run := func(every time.Duration, fn func(i int)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				fn(i)
				time.Sleep(every)
			}
		}()
	}

	words := []string{"alpha", "bravo", "charlie", "one", "two", "three", "miss"}
	run(200*time.Microsecond, func(i int) { s.SubmitText(words[i%len(words)]) })
	run(3*time.Millisecond, func(i int) {
		if i%2 == 0 {
			s.RequestPause()
		} else {
			s.RequestResume()
		}
	})
	run(25*time.Millisecond, func(i int) {
		if i%3 == 2 {
			s.Quit()
		} else {
			s.StartNewGame("race")
		}
	})
	run(500*time.Microsecond, func(int) {
		snap := s.Snapshot()
		if snap.Boss != nil && (snap.Boss.Index < 0 || snap.Boss.Index > 3) {
			t.Errorf("boss index %d", snap.Boss.Index)
		}
		select {
		case <-s.Done():
		default:
		}
		_ = s.State()
	})

	time.Sleep(400 * time.Millisecond)
	close(stop)
	wg.Wait()
	s.Close()

	if updates.Load() == 0 {
		t.Error("no updates observed")
	}
	snap := s.Snapshot()
	if snap.HP < 0 || snap.HP > snap.MaxHP {
		t.Errorf("final hp %d out of range", snap.HP)
	}
}
