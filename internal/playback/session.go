package playback

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"csai-playback/internal/adbreak"
	"csai-playback/internal/platform/metrics"
	"csai-playback/internal/platform/sched"
	"csai-playback/internal/pod"
	"csai-playback/internal/timeline"
)

// Session owns playback of one content entry for one viewer: the player
// handle, the ad sequencing state, and the derived context snapshot. All
// host input (player events, remote events, ad surface events) funnels
// through it.
type Session struct {
	id      string
	content Content
	log     *slog.Logger
	metrics *metrics.Metrics // may be nil

	mu        sync.Mutex
	player    *HostPlayer
	phase     Phase
	state     State
	seeking   bool
	buffering bool
	ended     bool

	// csai pod sequencing
	podManager   *pod.Manager
	adController *pod.Controller
	adState      pod.AdState
	accumulator  *SeekAccumulator

	// stitched timeline
	timeline *timeline.Controller
	playlist adbreak.Playlist
}

// NewSession builds a session for the given content. Initialize must be
// called to start playback.
func NewSession(content Content, seekCfg SeekConfig, scheduler sched.Scheduler, log *slog.Logger, m *metrics.Metrics) *Session {
	s := &Session{
		id:      uuid.NewString(),
		content: content,
		metrics: m,
		player:  NewHostPlayer(),
		phase:   PhaseContent,
		state:   StateNotStarted,
	}
	s.log = log.With(slog.String("session_id", s.id), slog.String("content_id", content.ID))

	switch content.Type {
	case TypeStitched:
		s.playlist = adbreak.BuildPlaylist(content.StitchedBreaks)
		s.timeline = timeline.NewController(s.playlist, timeline.Config{})
	default:
		s.podManager = pod.NewManager()
		s.adController = pod.NewController(s.podManager, scheduler, pod.Callbacks{
			OnAdChange:      s.onAdChange,
			OnBreakComplete: s.onBreakComplete,
		})
		s.accumulator = NewSeekAccumulator(seekCfg, scheduler, s.onAccumulatedSeek)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Ended reports whether the session has been disposed.
func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Initialize starts playback: a preroll pod runs first when one is
// scheduled, otherwise content loads and plays immediately.
func (s *Session) Initialize() {
	if s.podManager != nil {
		if preroll := s.podManager.ShouldStartBreak(s.content.AdBreaks, 0); preroll != nil {
			s.mu.Lock()
			s.phase = PhaseAd
			s.mu.Unlock()
			s.breakStarted(preroll.ID)
			s.adController.StartBreak(preroll)
			return
		}
	}
	s.player.Load(s.content.VideoURL)
	s.player.Play()
}

// HandlePlayerEvent applies one host-reported player state change.
func (s *Session) HandlePlayerEvent(ev PlayerEvent) {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}

	var startBreak *pod.Break
	var effects []timeline.Effect

	switch ev.Type {
	case EvTimeUpdate:
		s.player.observeTime(ev.Time)
		if s.metrics != nil {
			s.metrics.IncPlayerTicks()
		}
		if s.timeline != nil {
			effects = s.timeline.HandleTimeUpdate(ev.Time)
		} else if s.phase == PhaseContent {
			if b := s.podManager.ShouldStartBreak(s.content.AdBreaks, ev.Time); b != nil {
				startBreak = b
				s.phase = PhaseAd
			}
		}
	case EvPlaying:
		s.state = StatePlaying
		s.player.observePaused(false)
	case EvPause:
		s.state = StatePaused
		s.player.observePaused(true)
	case EvDurationChange:
		s.player.observeDuration(ev.Duration)
		if s.timeline != nil {
			s.timeline.SetDuration(ev.Duration)
		}
	case EvSeeking:
		s.seeking = true
	case EvSeeked:
		s.seeking = false
	case EvWaiting:
		s.buffering = true
	case EvCanPlay:
		s.buffering = false
	}
	s.mu.Unlock()

	if startBreak != nil {
		s.log.Info("ad break starting", slog.String("break_id", startBreak.ID))
		s.breakStarted(startBreak.ID)
		s.player.Pause()
		s.adController.StartBreak(startBreak)
	}
	s.applyEffects(effects)
}

// HandleRemoteEvent applies one remote-control action.
func (s *Session) HandleRemoteEvent(action string) {
	switch action {
	case "left":
		s.registerSeek(false)
	case "right":
		s.registerSeek(true)
	case "skip_forward":
		s.seekStep(+1)
	case "skip_backward":
		s.seekStep(-1)
	case "play":
		s.player.Play()
	case "pause":
		s.player.Pause()
	case "play_pause", "select":
		if s.player.Paused() {
			s.player.Play()
		} else {
			s.player.Pause()
		}
	}
}

// HandleSurfaceEvent applies one interactive ad surface event.
func (s *Session) HandleSurfaceEvent(ev pod.SurfaceEvent) {
	if ev == pod.EventAdFreePod && s.metrics != nil {
		s.metrics.IncAdFreePods()
	}

	if s.adController != nil {
		s.adController.HandleSurfaceEvent(ev)
		return
	}

	// Stitched streams: an ad-free credit skips the rest of the break's
	// stitched fallback ads; completion events need no action because the
	// stream itself carries the ads.
	if ev == pod.EventAdFreePod {
		s.mu.Lock()
		effects := s.timeline.SkipCurrentBreak()
		s.mu.Unlock()
		s.applyEffects(effects)
	}
}

// CompleteAd finishes the currently displayed pod ad.
func (s *Session) CompleteAd() {
	if s.adController != nil {
		s.adController.CompleteAd()
	}
}

// Context returns the current playback snapshot.
func (s *Session) Context() Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := Context{
		Phase:       s.phase,
		State:       s.state,
		Duration:    s.contentDurationLocked(),
		CurrentTime: s.currentTimeLocked(),
		Seeking:     s.seeking,
		Buffering:   s.buffering,
	}

	if s.timeline != nil {
		ctx.ShowVideoSurface = true
		if b, in := s.timeline.CurrentBreak(); in {
			ctx.Phase = PhaseAd
			ctx.ShowInteractiveAd = b.VastURL != ""
			ctx.CurrentAdBreak = &pod.Break{ID: b.ID, Duration: b.Duration, StartTime: b.StartTime}
		}
		return ctx
	}

	ad := s.adState.CurrentAd
	ctx.CurrentAd = ad
	ctx.CurrentAdIndex = s.adState.DisplayIndex
	ctx.AdCountdown = s.adState.Countdown
	if st := s.podManager.CurrentBreakState(); st != nil {
		ctx.CurrentAdBreak = st.Break
	}
	ctx.ShowVideoSurface = s.phase == PhaseContent || (ad != nil && !ad.Interactive())
	ctx.ShowInteractiveAd = s.phase == PhaseAd && ad != nil && ad.Interactive()
	return ctx
}

// DrainCommands hands pending player commands to the host.
func (s *Session) DrainCommands() []Command {
	return s.player.DrainCommands()
}

// Dispose ends the session: timers are cancelled synchronously and no
// callback fires afterwards.
func (s *Session) Dispose() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	s.mu.Unlock()

	if s.adController != nil {
		s.adController.Dispose()
	}
	if s.accumulator != nil {
		s.accumulator.Destroy()
	}
	s.log.Info("session disposed")
}

func (s *Session) registerSeek(forward bool) {
	if s.accumulator == nil {
		return
	}
	s.mu.Lock()
	inContent := s.phase == PhaseContent
	s.mu.Unlock()
	// Only content is seekable; presses during ads are dropped.
	if inContent {
		s.accumulator.Register(forward)
	}
}

func (s *Session) seekStep(steps int) {
	if s.timeline == nil {
		// Pod-model sessions use the accumulator path for coarse seeks.
		s.registerSeek(steps > 0)
		return
	}
	s.mu.Lock()
	effects := s.timeline.SeekStep(steps)
	s.mu.Unlock()
	s.applyEffects(effects)
}

func (s *Session) applyEffects(effects []timeline.Effect) {
	for _, e := range effects {
		switch e.Kind {
		case timeline.EffectSeek:
			s.log.Debug("corrective seek", slog.Float64("target", e.SeekTo))
			if s.metrics != nil {
				s.metrics.IncCorrectiveSeeks()
			}
			s.player.Seek(e.SeekTo)
		case timeline.EffectBreakChange:
			s.mu.Lock()
			if e.BreakIndex >= 0 {
				s.phase = PhaseAd
			} else {
				s.phase = PhaseContent
			}
			s.mu.Unlock()
			if e.BreakIndex >= 0 {
				s.breakStarted(s.playlist[e.BreakIndex].ID)
			} else {
				s.breakCompleted()
			}
		}
	}
}

// onAdChange is invoked by the pod controller on every ad transition or
// countdown tick.
func (s *Session) onAdChange(st pod.AdState) {
	s.mu.Lock()
	s.adState = st
	s.mu.Unlock()
}

// onBreakComplete resumes (or starts) content after a pod finishes.
func (s *Session) onBreakComplete() {
	s.mu.Lock()
	s.phase = PhaseContent
	s.adState = pod.AdState{}
	notStarted := s.state == StateNotStarted
	s.mu.Unlock()

	s.breakCompleted()
	if notStarted {
		s.player.Load(s.content.VideoURL)
		s.player.Play() // player waits until ready
	} else {
		s.player.Play()
	}
}

// onAccumulatedSeek applies a coalesced remote seek, clamped to the
// content's bounds.
func (s *Session) onAccumulatedSeek(delta float64) {
	s.mu.Lock()
	target := s.currentTimeLocked() + delta
	if target < 0 {
		target = 0
	}
	if d := s.contentDurationLocked(); d > 0 && target > d {
		target = d
	}
	s.mu.Unlock()
	s.player.Seek(target)
}

func (s *Session) currentTimeLocked() float64 {
	if s.timeline != nil {
		return s.timeline.ContentTime()
	}
	return s.player.CurrentTime()
}

func (s *Session) contentDurationLocked() float64 {
	if s.timeline != nil {
		return s.timeline.ContentDuration()
	}
	return s.player.Duration()
}

func (s *Session) breakStarted(breakID string) {
	s.log.Info("ad break started", slog.String("break_id", breakID))
	if s.metrics != nil {
		s.metrics.IncAdBreaksStarted()
	}
}

func (s *Session) breakCompleted() {
	s.log.Info("ad break completed")
	if s.metrics != nil {
		s.metrics.IncAdBreaksCompleted()
	}
}
