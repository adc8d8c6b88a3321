// Package segment models timestamped transcript units and matches playback time against them.
package segment

import "github.com/glossa-cli/glossa/asset"

// Segment is a time window of the transcript with the clips to play while it is active.
// Times are in seconds from the start of the media.
type Segment struct {
	Start    float64     `json:"start" yaml:"start" jsonschema:"minimum=0"`
	End      float64     `json:"end" yaml:"end" jsonschema:"minimum=0"`
	Text     string      `json:"text" yaml:"text"`
	Sequence []asset.Ref `json:"glb_sequence" yaml:"glb_sequence" jsonschema:"description=Clip references played in order while the segment is active"`
}

// Duration returns the length of the window in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Contains reports whether t falls inside the closed window [Start, End].
func (s Segment) Contains(t float64) bool {
	return s.Start <= t && t <= s.End
}
