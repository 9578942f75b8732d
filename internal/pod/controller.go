package pod

import (
	"sync"
	"time"

	"csai-playback/internal/platform/sched"
)

// AdState is a snapshot of the ad currently on screen.
type AdState struct {
	CurrentAd    *Ad
	DisplayIndex int // 1-based index within the pod, 0 when idle
	Countdown    int // seconds remaining in the current ad
}

// Callbacks notify the session layer of sequencing transitions. They are
// invoked without the controller lock held, so they may freely call back
// into the controller.
type Callbacks struct {
	// OnAdChange fires whenever the current ad or its countdown changes.
	OnAdChange func(AdState)
	// OnBreakComplete fires once when the active break runs out of ads.
	OnBreakComplete func()
}

// Controller drives ad playback within a pod: it plays each fallback ad for
// its declared duration on a one-second countdown, advances through the
// break via the Manager, and reacts to interactive ad surface events.
type Controller struct {
	mu      sync.Mutex
	manager *Manager
	sched   sched.Scheduler
	cb      Callbacks

	state    AdState
	cancel   sched.CancelFunc
	gen      uint64 // invalidates stale countdown timers
	disposed bool
}

// NewController returns a Controller sequencing through manager.
func NewController(manager *Manager, scheduler sched.Scheduler, cb Callbacks) *Controller {
	return &Controller{manager: manager, sched: scheduler, cb: cb}
}

// StartBreak begins playing the given pod. A break with no playable ads
// completes synchronously without displaying anything.
func (c *Controller) StartBreak(b *Break) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.manager.StartBreak(b)

	var notify []func()
	if first := c.manager.CurrentAd(); first != nil {
		notify = c.playAdLocked(first)
	} else {
		c.manager.CompleteCurrentBreak()
		c.state = AdState{}
		notify = append(notify, c.breakCompleteLocked())
	}
	c.mu.Unlock()

	run(notify)
}

// CompleteAd finishes the current ad and advances to the next non-skipped
// ad, completing the break when none remain.
func (c *Controller) CompleteAd() {
	c.mu.Lock()
	notify := c.completeAdLocked()
	c.mu.Unlock()

	run(notify)
}

// HandleAdFreePod skips every remaining ad in the active break and advances,
// which completes the break immediately.
func (c *Controller) HandleAdFreePod() {
	c.mu.Lock()
	c.manager.HandleAdFreePod()
	notify := c.completeAdLocked()
	c.mu.Unlock()

	run(notify)
}

// HandleSurfaceEvent reacts to an interactive ad surface event: an ad-free
// pod credit triggers the mass skip, any completion event (including errors
// and empty responses) advances the sequence. Other events are ignored.
func (c *Controller) HandleSurfaceEvent(ev SurfaceEvent) {
	switch {
	case ev == EventAdFreePod:
		c.HandleAdFreePod()
	case IsCompletionEvent(ev):
		c.CompleteAd()
	}
}

// State returns a snapshot of the current ad.
func (c *Controller) State() AdState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispose cancels any outstanding countdown. No callback fires afterwards.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	c.stopCountdownLocked()
}

// playAdLocked makes ad current and arms its countdown. Returns the
// callbacks to run after the lock is released.
func (c *Controller) playAdLocked(ad *Ad) []func() {
	c.state = AdState{
		CurrentAd:    ad,
		DisplayIndex: c.manager.DisplayIndex(),
		Countdown:    int(ad.Duration),
	}

	// Fallback video ads run on the countdown; interactive ads advance via
	// surface events from the renderer.
	if ad.Interactive() {
		c.stopCountdownLocked()
	} else {
		c.startCountdownLocked()
	}

	state := c.state
	return []func(){func() {
		if c.cb.OnAdChange != nil {
			c.cb.OnAdChange(state)
		}
	}}
}

func (c *Controller) startCountdownLocked() {
	c.stopCountdownLocked()
	c.gen++
	gen := c.gen
	c.cancel = c.sched.Every(time.Second, func() { c.countdownTick(gen) })
}

// stopCountdownLocked cancels the armed countdown and bumps the generation
// so an already-fired tick cannot complete the wrong ad.
func (c *Controller) stopCountdownLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) countdownTick(gen uint64) {
	c.mu.Lock()
	if c.disposed || gen != c.gen {
		c.mu.Unlock()
		return
	}

	c.state.Countdown--
	var notify []func()
	if c.state.Countdown <= 0 {
		notify = c.completeAdLocked()
	} else {
		state := c.state
		notify = []func(){func() {
			if c.cb.OnAdChange != nil {
				c.cb.OnAdChange(state)
			}
		}}
	}
	c.mu.Unlock()

	run(notify)
}

func (c *Controller) completeAdLocked() []func() {
	c.stopCountdownLocked()

	if next := c.manager.AdvanceToNextAd(); next != nil {
		return c.playAdLocked(next)
	}

	c.state = AdState{}
	return []func(){c.breakCompleteLocked()}
}

func (c *Controller) breakCompleteLocked() func() {
	return func() {
		if c.cb.OnBreakComplete != nil {
			c.cb.OnBreakComplete()
		}
	}
}

func run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
