package segment

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

var (
	ErrEmptyWindow   = errors.New("segment start is not before its end")
	ErrEmptySequence = errors.New("segment has no clips")
)

// Validate reports every structural problem of s.
// Matching never requires a valid segment: an unreachable window is simply never
// found and an empty sequence yields a run that plays nothing.
func Validate(s Segment) error {
	var errs []error
	if s.Start >= s.End {
		errs = append(errs, fmt.Errorf("%w: [%.3f, %.3f]", ErrEmptyWindow, s.Start, s.End))
	}
	if len(s.Sequence) == 0 {
		errs = append(errs, ErrEmptySequence)
	}
	return errors.Join(errs...)
}

// Sanitize drops segments with an empty or inverted window and returns how many were dropped.
// Segments without clips are kept so their caption still shows.
func Sanitize(segments []Segment) ([]Segment, int) {
	kept := lo.Filter(segments, func(s Segment, _ int) bool {
		return !errors.Is(Validate(s), ErrEmptyWindow)
	})
	return kept, len(segments) - len(kept)
}
