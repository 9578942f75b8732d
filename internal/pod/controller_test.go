package pod

import (
	"sync"
	"testing"
	"time"

	"csai-playback/internal/platform/sched"
)

type recorder struct {
	mu        sync.Mutex
	adChanges []AdState
	completes int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnAdChange: func(st AdState) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.adChanges = append(r.adChanges, st)
		},
		OnBreakComplete: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completes++
		},
	}
}

func (r *recorder) lastAd() *Ad {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.adChanges) == 0 {
		return nil
	}
	return r.adChanges[len(r.adChanges)-1].CurrentAd
}

func (r *recorder) completed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completes
}

func newTestController(rec *recorder) (*Controller, *sched.Manual) {
	clock := sched.NewManual()
	c := NewController(NewManager(), clock, rec.callbacks())
	return c, clock
}

func TestController_countdown_auto_advance(t *testing.T) {
	rec := &recorder{}
	c, clock := newTestController(rec)

	b := Break{ID: "b1", Type: Preroll, Ads: []Ad{
		{ID: "a1", System: "mp4", Duration: 3},
		{ID: "a2", System: "mp4", Duration: 2},
	}}
	c.StartBreak(&b)

	if st := c.State(); st.CurrentAd == nil || st.CurrentAd.ID != "a1" || st.Countdown != 3 {
		t.Fatalf("unexpected initial state: %+v", st)
	}

	clock.Advance(2 * time.Second)
	if st := c.State(); st.Countdown != 1 {
		t.Errorf("countdown after 2s = %d, want 1", st.Countdown)
	}

	// Third tick exhausts the first ad and advances exactly once.
	clock.Advance(time.Second)
	if ad := rec.lastAd(); ad == nil || ad.ID != "a2" {
		t.Fatalf("expected advance to a2, got %v", ad)
	}
	if st := c.State(); st.DisplayIndex != 2 || st.Countdown != 2 {
		t.Errorf("unexpected state after advance: %+v", st)
	}

	clock.Advance(2 * time.Second)
	if rec.completed() != 1 {
		t.Errorf("break completions = %d, want 1", rec.completed())
	}
	if st := c.State(); st.CurrentAd != nil {
		t.Errorf("expected idle state after completion, got %+v", st)
	}
	if clock.Pending() != 0 {
		t.Errorf("expected no armed timers after completion, got %d", clock.Pending())
	}
}

func TestController_empty_break_completes_synchronously(t *testing.T) {
	rec := &recorder{}
	c, _ := newTestController(rec)

	c.StartBreak(&Break{ID: "empty", Type: Midroll})

	if rec.completed() != 1 {
		t.Errorf("empty break should complete immediately, completions = %d", rec.completed())
	}
}

func TestController_ad_free_pod_mass_skip(t *testing.T) {
	rec := &recorder{}
	c, _ := newTestController(rec)

	b := Break{ID: "b1", Type: Preroll, Ads: []Ad{
		{ID: "truex", System: "trueX", Duration: 2},
		{ID: "v1", System: "mp4", Duration: 30},
		{ID: "v2", System: "mp4", Duration: 30},
	}}
	c.StartBreak(&b)

	c.HandleAdFreePod()

	if rec.completed() != 1 {
		t.Fatalf("expected break completion after ad-free pod, completions = %d", rec.completed())
	}
	// No fallback ad may have been shown on the way out.
	for _, st := range rec.adChanges {
		if st.CurrentAd != nil && (st.CurrentAd.ID == "v1" || st.CurrentAd.ID == "v2") {
			t.Errorf("skipped ad %s was shown", st.CurrentAd.ID)
		}
	}
}

func TestController_surface_events(t *testing.T) {
	rec := &recorder{}
	c, _ := newTestController(rec)

	b := Break{ID: "b1", Type: Preroll, Ads: []Ad{
		{ID: "truex", System: "trueX", Duration: 2},
		{ID: "v1", System: "mp4", Duration: 30},
	}}
	c.StartBreak(&b)

	// Informational events do nothing.
	c.HandleSurfaceEvent(EventAdStarted)
	c.HandleSurfaceEvent(EventOptIn)
	if st := c.State(); st.CurrentAd == nil || st.CurrentAd.ID != "truex" {
		t.Fatalf("informational events must not advance, state %+v", st)
	}

	// Errors count as completion: the sequence advances.
	c.HandleSurfaceEvent(EventAdError)
	if st := c.State(); st.CurrentAd == nil || st.CurrentAd.ID != "v1" {
		t.Errorf("expected advance past errored ad, state %+v", st)
	}
}

func TestController_ad_change_resets_timer(t *testing.T) {
	rec := &recorder{}
	c, clock := newTestController(rec)

	b := Break{ID: "b1", Type: Preroll, Ads: []Ad{
		{ID: "a1", System: "mp4", Duration: 10},
		{ID: "a2", System: "mp4", Duration: 5},
	}}
	c.StartBreak(&b)

	clock.Advance(3 * time.Second)
	c.CompleteAd() // user-driven advance mid-countdown

	// The stale timer from a1 must not tick a2 down.
	if st := c.State(); st.CurrentAd.ID != "a2" || st.Countdown != 5 {
		t.Fatalf("unexpected state after manual advance: %+v", st)
	}
	clock.Advance(time.Second)
	if st := c.State(); st.Countdown != 4 {
		t.Errorf("countdown = %d, want 4 (single timer)", st.Countdown)
	}
}

func TestController_dispose_cancels_timer(t *testing.T) {
	rec := &recorder{}
	c, clock := newTestController(rec)

	b := Break{ID: "b1", Type: Preroll, Ads: []Ad{{ID: "a1", System: "mp4", Duration: 2}}}
	c.StartBreak(&b)

	c.Dispose()
	clock.Advance(5 * time.Second)

	if rec.completed() != 0 {
		t.Errorf("no callback may fire after dispose, completions = %d", rec.completed())
	}
}
