package engine

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback. Stop is idempotent and never
// waits for a running callback.
type Timer interface {
	Stop()
}

// Scheduler runs callbacks on its own goroutines. Callbacks must do their
// own synchronization.
type Scheduler interface {
	// Every runs fn each interval until stopped.
	Every(interval time.Duration, fn func()) Timer
	// After runs fn once after d unless stopped first.
	After(d time.Duration, fn func()) Timer
}

// RealScheduler schedules on the wall clock.
type RealScheduler struct{}

// Compile-time check that RealScheduler implements Scheduler.
var _ Scheduler = RealScheduler{}

type tickerTimer struct {
	quit chan struct{}
	once sync.Once
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() { close(t.quit) })
}

// Every starts a ticker goroutine.
func (RealScheduler) Every(interval time.Duration, fn func()) Timer {
	t := &tickerTimer{quit: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.quit:
				return
			case <-ticker.C:
				select {
				case <-t.quit:
					return
				default:
				}
				fn()
			}
		}
	}()
	return t
}

type afterTimer struct {
	t *time.Timer
}

func (a afterTimer) Stop() {
	a.t.Stop()
}

// After wraps time.AfterFunc.
func (RealScheduler) After(d time.Duration, fn func()) Timer {
	return afterTimer{t: time.AfterFunc(d, fn)}
}

// ManualScheduler is a deterministic Scheduler driven by Advance. Callbacks
// run on the goroutine calling Advance, in due-time order; ties run in
// scheduling order.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

// Compile-time check that ManualScheduler implements Scheduler.
var _ Scheduler = (*ManualScheduler)(nil)

type manualTimer struct {
	s       *ManualScheduler
	due     time.Duration
	period  time.Duration // 0 for one-shot timers
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() {
	t.s.mu.Lock()
	t.stopped = true
	t.s.mu.Unlock()
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every schedules fn every interval. Non-positive intervals are raised to 1ns.
func (m *ManualScheduler) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = 1
	}
	return m.add(interval, interval, fn)
}

// After schedules fn once.
func (m *ManualScheduler) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	return m.add(d, 0, fn)
}

func (m *ManualScheduler) add(delay, period time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{
		s:      m,
		due:    m.now + delay,
		period: period,
		seq:    m.seq,
		fn:     fn,
	}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every callback that comes
// due on the way. Callbacks may schedule or stop timers.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.pruneLocked()
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			next.stopped = true
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// Now returns the scheduler's clock.
func (m *ManualScheduler) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of live timers.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (m *ManualScheduler) nextDueLocked(target time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if t.stopped || t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *ManualScheduler) pruneLocked() {
	kept := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	clear(m.timers[len(kept):])
	m.timers = kept
}
