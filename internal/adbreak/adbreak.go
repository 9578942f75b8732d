package adbreak

import "strconv"

// BreakDescriptor is the publisher-supplied (VMAP-like) description of a
// single ad break in a stitched stream. This also matches the input payload
// accepted over the API and the YAML content catalog.
type BreakDescriptor struct {
	BreakID string `json:"breakId" yaml:"breakId"`

	// Duration of the stitched fallback ad content in seconds. Publishers
	// frequently encode this as a numeric string, so it is parsed leniently.
	Duration string `json:"videoAdDuration" yaml:"videoAdDuration"`

	// TimeOffset is the content-time insertion point as an H:MM:SS, MM:SS
	// or SS label. Missing or malformed labels parse to 0.
	TimeOffset string `json:"timeOffset" yaml:"timeOffset"`

	// VastURL optionally references the interactive ad experience to show
	// over the break.
	VastURL string `json:"vastUrl" yaml:"vastUrl"`
}

// AdBreak is one resolved ad break in a stitched stream. StartTime and
// EndTime are raw stream times, computed once when the playlist is built.
// Playback status (started/completed) is deliberately not part of the
// entity; the timeline controller is the single owner of that state.
type AdBreak struct {
	ID       string
	Duration float64
	VastURL  string

	// ContentTime is the content-time offset the break is inserted at.
	ContentTime float64

	StartTime float64
	EndTime   float64
}

// Playlist is an ordered list of ad breaks, non-decreasing in ContentTime,
// with non-overlapping [StartTime, EndTime) raw intervals. It is built once
// per playback session and its topology never changes afterwards.
type Playlist []AdBreak

// NewAdBreak resolves a descriptor into an AdBreak. StartTime/EndTime stay
// zero until the break is placed into a playlist by BuildPlaylist.
func NewAdBreak(d BreakDescriptor) AdBreak {
	return AdBreak{
		ID:          d.BreakID,
		Duration:    parseSeconds(d.Duration),
		VastURL:     d.VastURL,
		ContentTime: ParseTimeLabel(d.TimeOffset),
	}
}

// BuildPlaylist assembles an ordered playlist from publisher descriptors,
// converting each break's content-time offset into raw stream times by
// accumulating the durations of all earlier breaks. A nil or empty
// descriptor list produces an empty playlist.
func BuildPlaylist(descriptors []BreakDescriptor) Playlist {
	if len(descriptors) == 0 {
		return nil
	}

	playlist := make(Playlist, 0, len(descriptors))
	totalAdsDuration := 0.0
	for _, d := range descriptors {
		b := NewAdBreak(d)
		b.StartTime = b.ContentTime + totalAdsDuration
		b.EndTime = b.StartTime + b.Duration
		totalAdsDuration += b.Duration
		playlist = append(playlist, b)
	}
	return playlist
}

// BreakAt returns the index of the break whose raw interval contains
// streamTime. Membership is inclusive on both ends so that a tick landing
// exactly on a boundary second still observes the break.
func (p Playlist) BreakAt(streamTime float64) (int, bool) {
	for i, b := range p {
		if b.StartTime <= streamTime && streamTime <= b.EndTime {
			return i, true
		}
	}
	return -1, false
}

// HasBreakAt reports whether streamTime falls inside any ad break.
func (p Playlist) HasBreakAt(streamTime float64) bool {
	_, ok := p.BreakAt(streamTime)
	return ok
}

// NextBreakAfter returns the index of the first break starting at or after
// streamTime. Breaks that have already fully elapsed are skipped.
func (p Playlist) NextBreakAfter(streamTime float64) (int, bool) {
	for i, b := range p {
		if b.EndTime < streamTime {
			continue // break is entirely in the past
		}
		if streamTime <= b.StartTime {
			return i, true
		}
	}
	return -1, false
}

// TotalAdDuration is the sum of all break durations in the playlist.
func (p Playlist) TotalAdDuration() float64 {
	total := 0.0
	for _, b := range p {
		total += b.Duration
	}
	return total
}

// parseSeconds parses a possibly-fractional seconds value encoded as a
// string. Malformed values parse to 0 per the lenient input policy.
func parseSeconds(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
