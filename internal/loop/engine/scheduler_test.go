package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManualSchedulerOrdering(t *testing.T) {
	m := NewManualScheduler()
	var order []string
	m.After(30*time.Millisecond, func() { order = append(order, "late") })
	m.After(10*time.Millisecond, func() { order = append(order, "first") })
	m.After(10*time.Millisecond, func() { order = append(order, "second") })

	m.Advance(50 * time.Millisecond)

	want := []string{"first", "second", "late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
	if got := m.Now(); got != 50*time.Millisecond {
		t.Errorf("now = %v, want 50ms", got)
	}
	if got := m.Pending(); got != 0 {
		t.Errorf("pending = %d, want 0", got)
	}
}

func TestManualSchedulerEveryAndStop(t *testing.T) {
	m := NewManualScheduler()
	n := 0
	timer := m.Every(10*time.Millisecond, func() { n++ })

	m.Advance(35 * time.Millisecond)
	if n != 3 {
		t.Fatalf("fired %d times, want 3", n)
	}

	timer.Stop()
	timer.Stop()
	m.Advance(time.Second)
	if n != 3 {
		t.Errorf("fired after stop: %d", n)
	}
}

func TestManualSchedulerCallbackCanReschedule(t *testing.T) {
	m := NewManualScheduler()
	var fired []time.Duration
	var step func()
	step = func() {
		fired = append(fired, m.Now())
		if len(fired) < 3 {
			m.After(time.Second, step)
		}
	}
	m.After(time.Second, step)

	m.Advance(10 * time.Second)

	if len(fired) != 3 || fired[2] != 3*time.Second {
		t.Errorf("fired at %v, want 1s 2s 3s", fired)
	}
}

func TestManualSchedulerStopFromCallback(t *testing.T) {
	m := NewManualScheduler()
	n := 0
	var timer Timer
	timer = m.Every(time.Millisecond, func() {
		n++
		if n == 2 {
			timer.Stop()
		}
	})

	m.Advance(10 * time.Millisecond)

	if n != 2 {
		t.Errorf("fired %d times, want 2", n)
	}
}

func TestRealSchedulerStopIsIdempotent(t *testing.T) {
	var n atomic.Int32
	timer := RealScheduler{}.Every(time.Millisecond, func() { n.Add(1) })
	deadline := time.Now().Add(time.Second)
	for n.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	timer.Stop()
	timer.Stop()
	if n.Load() == 0 {
		t.Fatalf("ticker never fired")
	}

	once := RealScheduler{}.After(time.Hour, func() { t.Error("stopped timer fired") })
	once.Stop()
	once.Stop()
}
