package controller

import (
	"github.com/glossa-cli/glossa/segment"
	"github.com/glossa-cli/glossa/sequence"
	"github.com/samber/mo"
)

// State is the synchronized playback state of one viewer session.
// ActiveToken is present exactly when ActiveIndex is.
type State struct {
	Segments    []segment.Segment
	ActiveIndex mo.Option[int]
	ActiveToken mo.Option[sequence.Token]
}

func newState(segments []segment.Segment) State {
	return State{
		Segments:    segments,
		ActiveIndex: mo.None[int](),
		ActiveToken: mo.None[sequence.Token](),
	}
}

// Active returns the active segment, if any.
func (s State) Active() mo.Option[segment.Segment] {
	index, ok := s.ActiveIndex.Get()
	if !ok || index >= len(s.Segments) {
		return mo.None[segment.Segment]()
	}
	return mo.Some(s.Segments[index])
}
