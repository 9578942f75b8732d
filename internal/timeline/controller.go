// Package timeline reconciles player time-update ticks against a stitched
// ad playlist: it tracks which break the viewer is inside, owns per-break
// started/completed status, and computes the corrective seeks that keep the
// viewer from scrubbing back into finished ads or jumping over unplayed ones.
package timeline

import (
	"math"

	"csai-playback/internal/adbreak"
)

// BreakStatus is the playback status of one ad break. The controller is the
// single writer; breaks themselves carry no mutable state.
type BreakStatus int

const (
	StatusPending BreakStatus = iota
	StatusStarted
	StatusCompleted
)

// EffectKind discriminates controller effects.
type EffectKind int

const (
	// EffectSeek asks the host to seek the player to SeekTo (raw time).
	EffectSeek EffectKind = iota
	// EffectBreakChange reports that the active break changed. BreakIndex
	// is the playlist index, or -1 when returning to content.
	EffectBreakChange
)

// Effect is a side effect for the host to perform. The controller itself
// never touches the player; it only reduces ticks into state and effects,
// which keeps the state machine testable without a live player.
type Effect struct {
	Kind       EffectKind
	SeekTo     float64
	BreakIndex int
}

// noSeekTarget marks the absence of a pending seek. Valid targets are >= 0.
const noSeekTarget = -1

// seekSettleWindow is how close (seconds) a tick must land to a pending
// seek target for the seek to count as taken effect. Guards against seeked
// notifications that never arrive.
const seekSettleWindow = 2

// Config adjusts controller policy.
type Config struct {
	// StepThroughAds passes seek steps through unmodified while inside an
	// ad break instead of ignoring them.
	StepThroughAds bool
}

// Controller is the playback timeline state machine for one session.
// Not safe for concurrent use; the owning session serializes access.
type Controller struct {
	playlist adbreak.Playlist
	status   []BreakStatus
	cfg      Config

	rawDuration     float64
	currStreamTime  float64
	lastWholeSecond float64
	currentBreak    int
	seekTarget      float64
}

// NewController returns a Controller over the given playlist with every
// break pending.
func NewController(playlist adbreak.Playlist, cfg Config) *Controller {
	return &Controller{
		playlist:        playlist,
		status:          make([]BreakStatus, len(playlist)),
		cfg:             cfg,
		lastWholeSecond: -1,
		currentBreak:    -1,
		seekTarget:      noSeekTarget,
	}
}

// SetDuration records the raw stream duration reported by the player.
func (c *Controller) SetDuration(rawDuration float64) {
	c.rawDuration = rawDuration
}

// HandleTimeUpdate reduces one player tick into state changes and effects.
// Ticks landing on the same whole second as the previous one are no-ops.
func (c *Controller) HandleTimeUpdate(t float64) []Effect {
	whole := math.Floor(t)
	if whole == c.lastWholeSecond {
		return nil
	}
	c.lastWholeSecond = whole
	c.currStreamTime = t

	var effects []Effect
	prev := c.currentBreak
	resolved := prev
	scheduledSeek := false

	idx, inBreak := c.playlist.BreakAt(whole)
	switch {
	case inBreak && c.status[idx] == StatusCompleted:
		// Never re-enter a finished break. Skip one second past its end so
		// its last, possibly stale, frame is not shown.
		target := c.playlist[idx].EndTime + 1
		if c.seekTarget != target {
			c.seekTarget = target
			effects = append(effects, Effect{Kind: EffectSeek, SeekTo: target})
		}
		scheduledSeek = true
	case inBreak:
		if c.status[idx] == StatusPending {
			c.status[idx] = StatusStarted
		}
		if whole >= c.playlist[idx].EndTime {
			c.status[idx] = StatusCompleted
		}
		resolved = idx
	default:
		resolved = -1
	}

	if resolved != prev {
		c.currentBreak = resolved
		effects = append(effects, Effect{Kind: EffectBreakChange, BreakIndex: resolved})
	}

	// A tick near the pending target means the seek has taken effect, even
	// if the player never delivered a seeked notification.
	if !scheduledSeek && c.seekTarget != noSeekTarget &&
		math.Abs(whole-c.seekTarget) <= seekSettleWindow {
		c.seekTarget = noSeekTarget
	}

	return effects
}

// SeekStep handles coarse forward/backward navigation: steps is a signed
// number of skip presses. Targets are computed in content time, converted
// to raw time, then arbitrated against ad-break boundaries: an unwatched
// break clamps the target to its start, a watched break may be skipped over
// freely.
func (c *Controller) SeekStep(steps int) []Effect {
	if steps == 0 {
		return nil
	}

	if c.currentBreak >= 0 {
		if !c.cfg.StepThroughAds {
			return nil // ads are not steppable
		}
		return c.seekTo(c.clampRaw(c.currStreamTime + float64(steps)*c.stepSize()))
	}

	curRaw := c.currStreamTime
	curContent := adbreak.ContentTimeAt(curRaw, c.playlist)
	candContent := curContent + float64(steps)*c.stepSize()
	if candContent < 0 {
		candContent = 0
	}
	if cd := c.ContentDuration(); cd > 0 && candContent > cd {
		candContent = cd
	}
	candRaw := adbreak.StreamTimeAt(candContent, c.playlist)

	lo := math.Min(curRaw, candRaw)
	hi := math.Max(curRaw, candRaw)
	if idx, ok := c.playlist.NextBreakAfter(lo); ok {
		b := c.playlist[idx]
		switch {
		case candRaw == b.StartTime && c.status[idx] == StatusCompleted:
			// Landing exactly on a finished break: hop past it.
			candRaw = b.EndTime + 1
		case hi > b.StartTime && c.status[idx] != StatusCompleted:
			// The step would jump over an unplayed break; land on it.
			candRaw = b.StartTime
		}
	}

	return c.seekTo(c.clampRaw(candRaw))
}

// SkipCurrentBreak marks the active break completed and seeks one second
// past its end. Used when an interactive ad grants an ad-free credit for a
// break whose fallback ads are stitched into the stream.
func (c *Controller) SkipCurrentBreak() []Effect {
	if c.currentBreak < 0 {
		return nil
	}
	idx := c.currentBreak
	c.status[idx] = StatusCompleted
	c.currentBreak = -1

	effects := []Effect{{Kind: EffectBreakChange, BreakIndex: -1}}
	effects = append(effects, c.seekTo(c.clampRaw(c.playlist[idx].EndTime+1))...)
	return effects
}

// StreamTime is the last raw stream time seen.
func (c *Controller) StreamTime() float64 {
	return c.currStreamTime
}

// ContentTime is the displayed content time for the current position.
func (c *Controller) ContentTime() float64 {
	return adbreak.ContentTimeAt(c.currStreamTime, c.playlist)
}

// ContentDuration is the stream duration with all ad durations excluded,
// or 0 when the duration is not yet known.
func (c *Controller) ContentDuration() float64 {
	if c.rawDuration <= 0 {
		return 0
	}
	return c.rawDuration - c.playlist.TotalAdDuration()
}

// CurrentBreak returns the active break, if any.
func (c *Controller) CurrentBreak() (adbreak.AdBreak, bool) {
	if c.currentBreak < 0 {
		return adbreak.AdBreak{}, false
	}
	return c.playlist[c.currentBreak], true
}

// CurrentBreakIndex returns the active break's playlist index, or -1.
func (c *Controller) CurrentBreakIndex() int {
	return c.currentBreak
}

// Status returns the playback status of break i.
func (c *Controller) Status(i int) BreakStatus {
	return c.status[i]
}

// Statuses returns a copy of all break statuses, in playlist order.
func (c *Controller) Statuses() []BreakStatus {
	out := make([]BreakStatus, len(c.status))
	copy(out, c.status)
	return out
}

// SeekTarget returns the pending seek destination, if one is outstanding.
func (c *Controller) SeekTarget() (float64, bool) {
	if c.seekTarget == noSeekTarget {
		return 0, false
	}
	return c.seekTarget, true
}

// Reset clears all break statuses and position state for a new session.
func (c *Controller) Reset() {
	for i := range c.status {
		c.status[i] = StatusPending
	}
	c.currStreamTime = 0
	c.lastWholeSecond = -1
	c.currentBreak = -1
	c.seekTarget = noSeekTarget
}

// stepSize scales skip granularity with total content length, never
// dropping below 10 seconds.
func (c *Controller) stepSize() float64 {
	step := 10.0
	if cd := c.ContentDuration(); cd > 0 {
		if s := math.Round(cd / 70); s > step {
			step = s
		}
	}
	return step
}

// seekTo records target as the pending seek and emits the seek effect.
// Seeking to the current position is a no-op.
func (c *Controller) seekTo(target float64) []Effect {
	if target == c.currStreamTime {
		return nil
	}
	c.seekTarget = target
	return []Effect{{Kind: EffectSeek, SeekTo: target}}
}

func (c *Controller) clampRaw(t float64) float64 {
	if t < 0 {
		return 0
	}
	if c.rawDuration > 0 && t > c.rawDuration {
		return c.rawDuration
	}
	return t
}
