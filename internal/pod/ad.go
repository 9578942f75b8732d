package pod

import (
	"encoding/json"
	"strings"
)

// BreakType says when a break is eligible to start.
type BreakType string

const (
	Preroll BreakType = "preroll"
	Midroll BreakType = "midroll"
)

// Ad is a single ad within a pod: either a fallback video ad or an
// interactive experience. The structure matches a parsed VAST response and
// the YAML content catalog.
type Ad struct {
	ID         string  `json:"adId" yaml:"adId"`
	Title      string  `json:"adTitle,omitempty" yaml:"adTitle"`
	System     string  `json:"adSystem" yaml:"adSystem"`
	Duration   float64 `json:"duration" yaml:"duration"`
	VideoURL   string  `json:"videoUrl,omitempty" yaml:"videoUrl"`
	Parameters string  `json:"adParameters,omitempty" yaml:"adParameters"`
}

// Interactive reports whether the ad renders through the interactive ad
// surface rather than the video surface.
func (a Ad) Interactive() bool {
	switch strings.ToLower(a.System) {
	case "truex", "idvx":
		return true
	}
	return false
}

// ParseParameters decodes the ad's JSON parameter blob. A malformed blob
// decodes to an empty map, which downstream surfaces treat as an ad error.
func (a Ad) ParseParameters() map[string]any {
	params := map[string]any{}
	if a.Parameters == "" {
		return params
	}
	if err := json.Unmarshal([]byte(a.Parameters), &params); err != nil {
		return map[string]any{}
	}
	return params
}

// Break is one scheduled ad pod: a sequence of ads shown together at a
// single interruption point. Unlike stitched ad breaks, pod ads are
// separately loaded assets played in order.
type Break struct {
	ID        string    `json:"breakId" yaml:"breakId"`
	Type      BreakType `json:"breakType" yaml:"breakType"`
	StartTime float64   `json:"startTime" yaml:"startTime"`
	Duration  float64   `json:"duration" yaml:"duration"`
	Ads       []Ad      `json:"ads" yaml:"ads"`
}
