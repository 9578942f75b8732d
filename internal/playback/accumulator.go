package playback

import (
	"sync"
	"time"

	"csai-playback/internal/platform/sched"
)

// SeekAccumulator coalesces repeated remote-control seek presses within an
// accumulation window into a single seek. Three forward presses within the
// window become one 3x-delta seek instead of three player seeks.
type SeekAccumulator struct {
	mu     sync.Mutex
	cfg    SeekConfig
	sched  sched.Scheduler
	onSeek func(delta float64)

	accumulated float64
	lastSeekAt  time.Time
	cancel      sched.CancelFunc
}

// NewSeekAccumulator returns an accumulator that calls onSeek with the
// combined delta once the window closes.
func NewSeekAccumulator(cfg SeekConfig, scheduler sched.Scheduler, onSeek func(delta float64)) *SeekAccumulator {
	return &SeekAccumulator{cfg: cfg, sched: scheduler, onSeek: onSeek}
}

// Register records a forward or backward press.
func (a *SeekAccumulator) Register(forward bool) {
	a.mu.Lock()

	delta := a.cfg.SeekDelta
	if !forward {
		delta = -a.cfg.SeekDelta
	}

	now := time.Now()
	if !a.lastSeekAt.IsZero() && now.Sub(a.lastSeekAt) <= a.cfg.AccumulationWindow {
		a.accumulated += delta
	} else {
		a.accumulated = delta
	}
	a.lastSeekAt = now

	if a.cancel != nil {
		a.cancel()
	}
	a.cancel = a.sched.After(a.cfg.AccumulationWindow, a.flush)
	a.mu.Unlock()
}

// Accumulated returns the pending combined delta, for display.
func (a *SeekAccumulator) Accumulated() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.accumulated
}

// Reset drops any pending accumulation without applying it.
func (a *SeekAccumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetLocked()
}

// Destroy cancels the pending flush. Safe to call more than once.
func (a *SeekAccumulator) Destroy() {
	a.Reset()
}

func (a *SeekAccumulator) flush() {
	a.mu.Lock()
	delta := a.accumulated
	a.resetLocked()
	a.mu.Unlock()

	if delta != 0 && a.onSeek != nil {
		a.onSeek(delta)
	}
}

func (a *SeekAccumulator) resetLocked() {
	a.accumulated = 0
	a.lastSeekAt = time.Time{}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
