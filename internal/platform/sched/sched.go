// Package sched provides a small scheduled-callback abstraction with explicit
// cancellation, so timer-driven control flow (ad countdowns, seek
// accumulation windows) can be owned, cancelled, and faked in tests.
package sched

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled callback. It is safe to call more than once
// and after the callback has fired.
type CancelFunc func()

// Scheduler schedules callbacks. Every scheduling call returns a fresh
// cancellation token; callers must cancel any prior token for the same
// logical timer before scheduling a replacement.
type Scheduler interface {
	// After runs fn once after d, unless cancelled first.
	After(d time.Duration, fn func()) CancelFunc

	// Every runs fn repeatedly at interval d until cancelled.
	Every(d time.Duration, fn func()) CancelFunc
}

// Real is the wall-clock Scheduler used in production.
type Real struct{}

// NewReal returns a Scheduler backed by the runtime's timers.
func NewReal() *Real {
	return &Real{}
}

// After implements Scheduler.After.
func (*Real) After(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Every implements Scheduler.Every.
func (*Real) Every(d time.Duration, fn func()) CancelFunc {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// Manual is a test Scheduler driven by explicit Advance calls. Callbacks run
// synchronously on the advancing goroutine.
type Manual struct {
	mu     sync.Mutex
	nextID int
	timers map[int]*manualTimer
}

type manualTimer struct {
	remaining time.Duration
	interval  time.Duration // zero for one-shot timers
	fn        func()
}

// NewManual returns an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{timers: make(map[int]*manualTimer)}
}

// After implements Scheduler.After.
func (m *Manual) After(d time.Duration, fn func()) CancelFunc {
	return m.add(&manualTimer{remaining: d, fn: fn})
}

// Every implements Scheduler.Every.
func (m *Manual) Every(d time.Duration, fn func()) CancelFunc {
	return m.add(&manualTimer{remaining: d, interval: d, fn: fn})
}

func (m *Manual) add(t *manualTimer) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.timers[id] = t
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.timers, id)
	}
}

// Advance moves manual time forward by d, firing due callbacks in id order.
// Interval timers re-arm; one-shot timers are removed after firing.
func (m *Manual) Advance(d time.Duration) {
	for d > 0 {
		step := d
		if step > time.Second {
			step = time.Second
		}
		d -= step
		m.tick(step)
	}
}

func (m *Manual) tick(step time.Duration) {
	m.mu.Lock()
	var due []func()
	for id, t := range m.timers {
		t.remaining -= step
		if t.remaining > 0 {
			continue
		}
		due = append(due, t.fn)
		if t.interval > 0 {
			t.remaining += t.interval
		} else {
			delete(m.timers, id)
		}
	}
	m.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

// Pending returns the number of armed timers, for test assertions.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}
