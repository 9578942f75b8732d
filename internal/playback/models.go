package playback

import (
	"time"

	"csai-playback/internal/pod"
)

// Phase says what the viewer is currently watching.
type Phase string

const (
	PhaseContent Phase = "content"
	PhaseAd      Phase = "ad"
)

// State is the coarse player state.
type State string

const (
	StateNotStarted State = "not_started"
	StatePlaying    State = "playing"
	StatePaused     State = "paused"
)

// Context is the reactive playback snapshot exposed to the host UI.
type Context struct {
	Phase       Phase   `json:"phase"`
	State       State   `json:"state"`
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
	Seeking     bool    `json:"seeking"`
	Buffering   bool    `json:"buffering"`

	// Ad-specific context.
	CurrentAdBreak *pod.Break `json:"currentAdBreak,omitempty"`
	CurrentAd      *pod.Ad    `json:"currentAd,omitempty"`
	CurrentAdIndex int        `json:"currentAdIndex"` // 1-based within the pod
	AdCountdown    int        `json:"adCountdown"`

	// Surface visibility, derived from phase and the current ad kind.
	ShowVideoSurface  bool `json:"showVideoSurface"`
	ShowInteractiveAd bool `json:"showTruexAd"`
}

// SeekConfig tunes remote-control seek coalescing.
type SeekConfig struct {
	// SeekDelta is the seconds moved per directional press.
	SeekDelta float64
	// AccumulationWindow is how long repeated presses keep coalescing
	// before the combined seek is applied.
	AccumulationWindow time.Duration
}

// DefaultSeekConfig matches the reference TV experience.
func DefaultSeekConfig() SeekConfig {
	return SeekConfig{SeekDelta: 5, AccumulationWindow: 2 * time.Second}
}
