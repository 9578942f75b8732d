package playback

import (
	"testing"
	"time"

	"csai-playback/internal/platform/sched"
)

func newTestAccumulator(t *testing.T) (*SeekAccumulator, *sched.Manual, *[]float64) {
	t.Helper()
	clock := sched.NewManual()
	var applied []float64
	a := NewSeekAccumulator(DefaultSeekConfig(), clock, func(delta float64) {
		applied = append(applied, delta)
	})
	return a, clock, &applied
}

func TestSeekAccumulator_coalesces_presses(t *testing.T) {
	a, clock, applied := newTestAccumulator(t)

	a.Register(true)
	a.Register(true)
	a.Register(true)
	if got := a.Accumulated(); got != 15 {
		t.Fatalf("Accumulated = %v, want 15", got)
	}
	if len(*applied) != 0 {
		t.Fatalf("seek applied before window closed: %v", *applied)
	}

	clock.Advance(2 * time.Second)
	if len(*applied) != 1 || (*applied)[0] != 15 {
		t.Errorf("expected single combined seek of 15, got %v", *applied)
	}
	if got := a.Accumulated(); got != 0 {
		t.Errorf("Accumulated after flush = %v, want 0", got)
	}
}

func TestSeekAccumulator_mixed_directions(t *testing.T) {
	a, clock, applied := newTestAccumulator(t)

	a.Register(true)
	a.Register(true)
	a.Register(false)
	if got := a.Accumulated(); got != 5 {
		t.Fatalf("Accumulated = %v, want 5", got)
	}

	clock.Advance(2 * time.Second)
	if len(*applied) != 1 || (*applied)[0] != 5 {
		t.Errorf("expected combined seek of 5, got %v", *applied)
	}
}

func TestSeekAccumulator_cancelled_out_presses_skip_seek(t *testing.T) {
	a, clock, applied := newTestAccumulator(t)

	a.Register(true)
	a.Register(false)
	clock.Advance(2 * time.Second)

	if len(*applied) != 0 {
		t.Errorf("zero net delta should not seek, got %v", *applied)
	}
}

func TestSeekAccumulator_each_press_extends_window(t *testing.T) {
	a, clock, applied := newTestAccumulator(t)

	a.Register(true)
	clock.Advance(1 * time.Second)
	a.Register(true) // re-arms the flush timer
	clock.Advance(1 * time.Second)
	if len(*applied) != 0 {
		t.Fatalf("window should have been extended, got %v", *applied)
	}

	clock.Advance(1 * time.Second)
	if len(*applied) != 1 || (*applied)[0] != 10 {
		t.Errorf("expected combined seek of 10, got %v", *applied)
	}
}

func TestSeekAccumulator_reset_drops_pending(t *testing.T) {
	a, clock, applied := newTestAccumulator(t)

	a.Register(true)
	a.Reset()
	clock.Advance(2 * time.Second)

	if len(*applied) != 0 {
		t.Errorf("reset should drop the pending seek, got %v", *applied)
	}
	if got := a.Accumulated(); got != 0 {
		t.Errorf("Accumulated after reset = %v, want 0", got)
	}
}

func TestSeekAccumulator_destroy_idempotent(t *testing.T) {
	a, clock, applied := newTestAccumulator(t)

	a.Register(true)
	a.Destroy()
	a.Destroy()
	clock.Advance(2 * time.Second)

	if len(*applied) != 0 {
		t.Errorf("destroy should cancel the flush, got %v", *applied)
	}
}
