package pod

// BreakState tracks the progress of the currently active pod.
type BreakState struct {
	Break        *Break
	AdIndex      int
	SkippedAdIDs map[string]bool
	Completed    bool
	AdFreePod    bool
}

// Manager sequences ad pods over a playback session: it decides when a
// break should start, walks the break's ad list, and records completed
// breaks so they never re-trigger. Not safe for concurrent use; the owning
// controller serializes access.
type Manager struct {
	completedBreakIDs map[string]bool
	current           *BreakState
}

// NewManager returns a Manager with no playback history.
func NewManager() *Manager {
	return &Manager{completedBreakIDs: make(map[string]bool)}
}

// ShouldStartBreak returns the first incomplete break eligible at
// currentTime, or nil. Prerolls trigger only at time 0; midrolls trigger
// once currentTime reaches their start, but never re-trigger while they are
// already the active break.
func (m *Manager) ShouldStartBreak(breaks []Break, currentTime float64) *Break {
	for i := range breaks {
		b := &breaks[i]
		if m.completedBreakIDs[b.ID] {
			continue
		}

		if b.Type == Preroll && currentTime == 0 {
			return b
		}

		if b.Type == Midroll && currentTime >= b.StartTime {
			if m.current == nil || m.current.Break.ID != b.ID {
				return b
			}
		}
	}
	return nil
}

// StartBreak makes b the active break with fresh sequencing state.
func (m *Manager) StartBreak(b *Break) *BreakState {
	m.current = &BreakState{
		Break:        b,
		SkippedAdIDs: make(map[string]bool),
	}
	return m.current
}

// CurrentAd returns the ad at the current index, advancing past any ad in
// the skip set. Returns nil when no break is active or the break is out of
// ads (in which case the break has been completed).
func (m *Manager) CurrentAd() *Ad {
	if m.current == nil {
		return nil
	}

	ads := m.current.Break.Ads
	if m.current.AdIndex >= len(ads) {
		return nil
	}

	ad := &ads[m.current.AdIndex]
	if m.current.SkippedAdIDs[ad.ID] {
		return m.AdvanceToNextAd()
	}
	return ad
}

// AdvanceToNextAd moves to the next non-skipped ad in the active break.
// Reaching the end of the ad list completes the break and returns nil.
func (m *Manager) AdvanceToNextAd() *Ad {
	if m.current == nil {
		return nil
	}

	ads := m.current.Break.Ads
	for i := m.current.AdIndex + 1; i < len(ads); i++ {
		if !m.current.SkippedAdIDs[ads[i].ID] {
			m.current.AdIndex = i
			return &ads[i]
		}
	}

	m.CompleteCurrentBreak()
	return nil
}

// HandleAdFreePod records an ad-free-pod credit: every ad after the current
// index is marked skipped, so the next advance completes the break.
func (m *Manager) HandleAdFreePod() {
	if m.current == nil {
		return
	}

	m.current.AdFreePod = true
	ads := m.current.Break.Ads
	for i := m.current.AdIndex + 1; i < len(ads); i++ {
		m.current.SkippedAdIDs[ads[i].ID] = true
	}
}

// CompleteCurrentBreak moves the active break into the completed set and
// clears the active state.
func (m *Manager) CompleteCurrentBreak() {
	if m.current == nil {
		return
	}
	m.completedBreakIDs[m.current.Break.ID] = true
	m.current.Completed = true
	m.current = nil
}

// CurrentBreakState returns the active break state, or nil.
func (m *Manager) CurrentBreakState() *BreakState {
	return m.current
}

// DisplayIndex is the 1-based index of the current ad, 0 when idle.
func (m *Manager) DisplayIndex() int {
	if m.current == nil {
		return 0
	}
	return m.current.AdIndex + 1
}

// InBreak reports whether a break is actively playing.
func (m *Manager) InBreak() bool {
	return m.current != nil && !m.current.Completed
}

// HasAdFreePod reports whether the active break received an ad-free credit.
func (m *Manager) HasAdFreePod() bool {
	return m.current != nil && m.current.AdFreePod
}

// Reset clears all sequencing state and history for a new session.
func (m *Manager) Reset() {
	m.completedBreakIDs = make(map[string]bool)
	m.current = nil
}
