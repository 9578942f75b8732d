package playback

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"csai-playback/internal/adbreak"
	"csai-playback/internal/pod"
)

// ContentType distinguishes the two ad insertion models a content entry
// can use.
type ContentType string

const (
	// TypeCSAI content plays ad pods as separately loaded assets.
	TypeCSAI ContentType = "csai"
	// TypeStitched content is a single stream with ads spliced in.
	TypeStitched ContentType = "stitched"
)

// Content is one playable entry in the catalog. The adBreaks structure
// represents a parsed VAST/VMAP response from a publisher's ad server; real
// applications would parse actual responses, which vary between publishers.
type Content struct {
	ID          string      `yaml:"id" json:"id"`
	Type        ContentType `yaml:"type" json:"type"`
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Cover       string      `yaml:"cover,omitempty" json:"cover,omitempty"`
	VideoURL    string      `yaml:"videoUrl" json:"videoUrl"`

	// AdBreaks holds the pods for csai content.
	AdBreaks []pod.Break `yaml:"adBreaks,omitempty" json:"adBreaks,omitempty"`

	// StitchedBreaks holds the break descriptors for stitched content.
	StitchedBreaks []adbreak.BreakDescriptor `yaml:"stitchedBreaks,omitempty" json:"stitchedBreaks,omitempty"`
}

// Catalog is the set of contents the service can start sessions for.
type Catalog struct {
	Contents []Content `yaml:"contents"`
}

// ContentByID looks a content entry up by id.
func (c Catalog) ContentByID(id string) (Content, bool) {
	for _, content := range c.Contents {
		if content.ID == id {
			return content, true
		}
	}
	return Content{}, false
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	return catalog, nil
}

// ExampleCatalog returns the built-in sample contents used when no catalog
// file is configured: a csai entry with interactive and fallback ads, and a
// stitched entry with a preroll and one midroll.
func ExampleCatalog() Catalog {
	return Catalog{Contents: []Content{
		{
			ID:       "csai-example-1",
			Type:     TypeCSAI,
			Title:    "The Employee Experience",
			VideoURL: "https://ctv.example.com/assets/reference-app-stream-no-ads-720p.mp4",
			AdBreaks: []pod.Break{
				{
					ID:        "preroll",
					Type:      pod.Preroll,
					StartTime: 0,
					Duration:  92,
					Ads: []pod.Ad{
						{ID: "truex-ad-1-0", System: "trueX", Duration: 2,
							Parameters: `{"vast_config_url":"https://ads.example.com/vast/config?placement=preroll"}`},
						{ID: "video-ad-1-1", Title: "Sample Coffee Video Ad", System: "mp4", Duration: 30,
							VideoURL: "https://ctv.example.com/assets/coffee-720p.mp4"},
						{ID: "video-ad-1-2", Title: "Sample Airline Video Ad", System: "mp4", Duration: 30,
							VideoURL: "https://ctv.example.com/assets/airline-720p.mp4"},
						{ID: "video-ad-1-3", Title: "Sample Petcare Video Ad", System: "mp4", Duration: 30,
							VideoURL: "https://ctv.example.com/assets/petcare-720p.mp4"},
					},
				},
				{
					ID:        "midroll-1",
					Type:      pod.Midroll,
					StartTime: 485,
					Duration:  92,
					Ads: []pod.Ad{
						{ID: "midroll-1-1", System: "trueX", Duration: 2,
							Parameters: `{"vast_config_url":"https://ads.example.com/vast/config?placement=midroll"}`},
						{ID: "video-ad-2-1", Title: "Sample Coffee Video Ad", System: "mp4", Duration: 30,
							VideoURL: "https://ctv.example.com/assets/coffee-720p.mp4"},
						{ID: "midroll-2-2", System: "IDVx", Duration: 2,
							Parameters: `{"vast_config_url":"https://ads.example.com/vast/config?placement=midroll"}`},
						{ID: "video-ad-2-3", Title: "Sample Petcare Video Ad", System: "mp4", Duration: 30,
							VideoURL: "https://ctv.example.com/assets/petcare-720p.mp4"},
					},
				},
			},
		},
		{
			ID:       "stitched-example-1",
			Type:     TypeStitched,
			Title:    "The Employee Experience (stitched)",
			VideoURL: "https://ctv.example.com/assets/reference-app-stream-720p.mp4",
			StitchedBreaks: []adbreak.BreakDescriptor{
				{BreakID: "preroll", Duration: "92", TimeOffset: "0",
					VastURL: "https://ads.example.com/vast/config?placement=preroll"},
				{BreakID: "midroll-1", Duration: "92", TimeOffset: "8:05",
					VastURL: "https://ads.example.com/vast/config?placement=midroll"},
			},
		},
	}}
}
