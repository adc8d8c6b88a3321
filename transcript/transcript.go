// Package transcript produces timestamped segments for a media file, either
// from a transcription service or from a transcript file on disk.
package transcript

import (
	"context"
	"fmt"
	"strings"

	"github.com/glossa-cli/glossa/asset"
	"github.com/glossa-cli/glossa/segment"
	"github.com/samber/lo"
)

// Service transcribes media. A transcript without segments is a valid
// result and means there is nothing to synchronize.
type Service interface {
	Transcribe(ctx context.Context, mediaPath string) (*Transcript, error)
}

// Transcript is the decoded result of a transcription.
type Transcript struct {
	Segments []segment.Segment
	Language string
	Duration float64
}

// Document is the on-disk and on-wire form of a transcript.
type Document struct {
	Segments []DocumentSegment `json:"segments" yaml:"segments"`
	Language string            `json:"language,omitempty" yaml:"language,omitempty"`
	Duration float64           `json:"duration,omitempty" yaml:"duration,omitempty" jsonschema:"description=Media duration in seconds"`
}

// DocumentSegment accepts both the glb_sequence and sequence spellings.
type DocumentSegment struct {
	Start       float64     `json:"start" yaml:"start" jsonschema:"minimum=0"`
	End         float64     `json:"end" yaml:"end" jsonschema:"minimum=0"`
	Text        string      `json:"text" yaml:"text"`
	Duration    float64     `json:"duration,omitempty" yaml:"duration,omitempty" jsonschema:"description=end minus start; ignored on read"`
	GLBSequence []asset.Ref `json:"glb_sequence,omitempty" yaml:"glb_sequence,omitempty" jsonschema:"description=Clip references played in order while the segment is active"`
	Sequence    []asset.Ref `json:"sequence,omitempty" yaml:"sequence,omitempty" jsonschema:"description=Alias of glb_sequence"`
}

// Transcript converts the document, trimming segment text.
func (d *Document) Transcript() *Transcript {
	return &Transcript{
		Segments: lo.Map(d.Segments, func(s DocumentSegment, _ int) segment.Segment {
			sequence := s.GLBSequence
			if len(sequence) == 0 {
				sequence = s.Sequence
			}
			return segment.Segment{
				Start:    s.Start,
				End:      s.End,
				Text:     strings.TrimSpace(s.Text),
				Sequence: sequence,
			}
		}),
		Language: d.Language,
		Duration: d.Duration,
	}
}

// Document converts the transcript to its serializable form.
func (t *Transcript) Document() *Document {
	return &Document{
		Segments: lo.Map(t.Segments, func(s segment.Segment, _ int) DocumentSegment {
			return DocumentSegment{
				Start:       s.Start,
				End:         s.End,
				Text:        s.Text,
				Duration:    s.Duration(),
				GLBSequence: s.Sequence,
			}
		}),
		Language: t.Language,
		Duration: t.Duration,
	}
}

// Empty reports whether there is nothing to synchronize.
func (t *Transcript) Empty() bool {
	return t == nil || len(t.Segments) == 0
}

// Fill builds the sequence of every segment that has none.
func Fill(t *Transcript, builder asset.Builder) error {
	if t == nil || builder == nil {
		return nil
	}

	for i, s := range t.Segments {
		if len(s.Sequence) > 0 {
			continue
		}

		refs, err := builder.Build(s.Text)
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		t.Segments[i].Sequence = refs
	}
	return nil
}
