package pod

// SurfaceEvent is an event emitted by the interactive ad rendering surface
// as the ad progresses through its life cycle. The sequencer only reacts to
// EventAdFreePod and the terminal completion set; everything else is
// informational.
type SurfaceEvent string

const (
	EventAdStarted          SurfaceEvent = "adStarted"
	EventAdDisplayed        SurfaceEvent = "adDisplayed"
	EventAdCompleted        SurfaceEvent = "adCompleted"
	EventAdError            SurfaceEvent = "adError"
	EventNoAdsAvailable     SurfaceEvent = "noAdsAvailable"
	EventAdFreePod          SurfaceEvent = "adFreePod"
	EventAdFetchCompleted   SurfaceEvent = "adFetchCompleted"
	EventUserCancelStream   SurfaceEvent = "userCancelStream"
	EventOptIn              SurfaceEvent = "optIn"
	EventOptOut             SurfaceEvent = "optOut"
	EventSkipCardShown      SurfaceEvent = "skipCardShown"
	EventUserCancel         SurfaceEvent = "userCancel"
	EventXtendedViewStarted SurfaceEvent = "xtendedViewStarted"
	EventPopupWebsite       SurfaceEvent = "popupWebsite"
)

// IsCompletionEvent reports whether the event terminates the current ad.
// Errors and empty responses count as completion so playback always resumes.
func IsCompletionEvent(ev SurfaceEvent) bool {
	switch ev {
	case EventAdCompleted, EventAdError, EventNoAdsAvailable, EventUserCancelStream:
		return true
	}
	return false
}
