package adbreak

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ContentTimeAt maps a raw stream time to the content time displayed to the
// viewer, assuming ad videos are stitched into the main stream. Breaks that
// start in the future do not affect the result. While inside a break the
// returned value is the elapsed time into the ad itself, so progress bars
// can show the ad's own position. Past breaks have their durations
// discounted. An empty playlist yields the identity mapping.
func ContentTimeAt(streamTime float64, playlist Playlist) float64 {
	result := streamTime
	for _, b := range playlist {
		if streamTime < b.StartTime {
			break // future ads don't affect things
		}
		if b.StartTime <= streamTime && streamTime <= b.EndTime {
			// Within the ad, show the ad time.
			return streamTime - b.StartTime
		}
		// Discount the ad duration.
		result -= b.Duration
	}
	return result
}

// StreamTimeAt maps a content time back to raw stream time by adding the
// durations of every break inserted strictly before that content time.
// The inverse of ContentTimeAt for positions outside ad breaks.
func StreamTimeAt(contentTime float64, playlist Playlist) float64 {
	result := contentTime
	for _, b := range playlist {
		if b.ContentTime < contentTime {
			result += b.Duration
		}
	}
	return result
}

// ParseTimeLabel parses an H:MM:SS, MM:SS or SS label into seconds.
// Parts may be fractional; missing or unparsable parts count as 0.
func ParseTimeLabel(label string) float64 {
	if label == "" {
		return 0
	}
	var hours, minutes, seconds float64
	parts := strings.Split(label, ":")
	switch {
	case len(parts) >= 3:
		hours = parsePart(parts[0])
		minutes = parsePart(parts[1])
		seconds = parsePart(parts[2])
	case len(parts) == 2:
		minutes = parsePart(parts[0])
		seconds = parsePart(parts[1])
	default:
		seconds = parsePart(parts[0])
	}
	return seconds + minutes*60 + hours*60*60
}

// TimeLabel formats seconds as H:MM:SS when at least an hour, else MM:SS.
// Negative input formats as the sentinel "-1".
func TimeLabel(seconds float64) string {
	if seconds < 0 {
		return "-1"
	}

	secs := math.Mod(seconds, 60)
	seconds /= 60
	mins := math.Mod(seconds, 60)
	seconds /= 60
	hours := seconds

	result := pad(mins) + ":" + pad(secs)
	if hours >= 1 {
		return strconv.Itoa(int(hours)) + ":" + result
	}
	return result
}

// TimeDebugDisplay renders a stream time as its displayed content time with
// the raw time alongside, e.g. "04:23 (raw: 05:55)".
func TimeDebugDisplay(streamTime float64, playlist Playlist) string {
	displayTime := ContentTimeAt(streamTime, playlist)
	return fmt.Sprintf("%s (raw: %s)", TimeLabel(displayTime), TimeLabel(streamTime))
}

func pad(value float64) string {
	v := int(math.Floor(value))
	if v < 0 {
		v = 0
	}
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

func parsePart(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
