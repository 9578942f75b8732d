package playback

import "sync"

// CommandType is an instruction kind for the host player.
type CommandType string

const (
	CmdLoad  CommandType = "load"
	CmdPlay  CommandType = "play"
	CmdPause CommandType = "pause"
	CmdSeek  CommandType = "seek"
)

// Command is one fire-and-forget instruction for the host's media player.
// The host polls pending commands and applies them; resulting state changes
// come back asynchronously as player events.
type Command struct {
	Type CommandType `json:"type"`
	URL  string      `json:"url,omitempty"`
	Time float64     `json:"time,omitempty"`
}

// PlayerEventType names the player events the session reacts to.
type PlayerEventType string

const (
	EvTimeUpdate     PlayerEventType = "timeupdate"
	EvPlaying        PlayerEventType = "playing"
	EvPause          PlayerEventType = "pause"
	EvDurationChange PlayerEventType = "durationchange"
	EvSeeking        PlayerEventType = "seeking"
	EvSeeked         PlayerEventType = "seeked"
	EvWaiting        PlayerEventType = "waiting"
	EvCanPlay        PlayerEventType = "canplay"
)

// PlayerEvent is a host-reported player state change.
type PlayerEvent struct {
	Type     PlayerEventType `json:"type"`
	Time     float64         `json:"time,omitempty"`
	Duration float64         `json:"duration,omitempty"`
}

// HostPlayer is the session's exclusive handle on the host-side media
// player: a mirror of the player's observed state plus a queue of outgoing
// commands. The session is the single owner; the handle is created on
// initialize and released on dispose.
type HostPlayer struct {
	mu          sync.Mutex
	currentTime float64
	duration    float64
	paused      bool
	pending     []Command
}

// NewHostPlayer returns a paused player with no observed state.
func NewHostPlayer() *HostPlayer {
	return &HostPlayer{paused: true}
}

// Load queues a load command for the given media URL.
func (p *HostPlayer) Load(url string) {
	p.enqueue(Command{Type: CmdLoad, URL: url})
}

// Play queues a play command.
func (p *HostPlayer) Play() {
	p.enqueue(Command{Type: CmdPlay})
}

// Pause queues a pause command.
func (p *HostPlayer) Pause() {
	p.enqueue(Command{Type: CmdPause})
}

// Seek queues a seek to the given raw time.
func (p *HostPlayer) Seek(t float64) {
	p.enqueue(Command{Type: CmdSeek, Time: t})
}

// CurrentTime is the last observed playback position.
func (p *HostPlayer) CurrentTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentTime
}

// Duration is the last observed media duration.
func (p *HostPlayer) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Paused reports the last observed paused state.
func (p *HostPlayer) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// DrainCommands returns and clears the pending command queue.
func (p *HostPlayer) DrainCommands() []Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.pending
	p.pending = nil
	return out
}

func (p *HostPlayer) enqueue(cmd Command) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, cmd)
}

func (p *HostPlayer) observeTime(t float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentTime = t
}

func (p *HostPlayer) observeDuration(d float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.duration = d
}

func (p *HostPlayer) observePaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = paused
}
