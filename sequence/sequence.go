// Package sequence plays the clips of one transcript segment, one at a time,
// while the main video is slowed down.
//
// A run never preempts a clip that is already showing. Before each clip it asks
// whether it is still the current run and stops quietly if it is not.
package sequence

import "fmt"

// Token identifies one segment activation. Tokens are minted by the owner of
// the player state, increase strictly and are never reused.
type Token uint64

// Outcome is the terminal state of a run.
type Outcome int

const (
	// Completed means every clip was shown.
	Completed Outcome = iota
	// Aborted means a newer run took over, or the viewer shut down, before all clips were shown.
	Aborted
	// Failed means a clip could not be loaded.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Playback rates of the main video.
const (
	NominalRate     = 1.0
	DefaultSlowRate = 0.5
)

// RateController sets the playback rate of the main video.
type RateController interface {
	SetRate(rate float64) error
}

// GuardedRateController can tie a rate write to a run still being current.
// SetRateIfCurrent checks and writes atomically with respect to supersession
// and reports whether the run was current.
type GuardedRateController interface {
	RateController
	SetRateIfCurrent(rate float64) (current bool, err error)
}

// RestorePolicy decides whether a finishing run puts the video back to nominal speed.
type RestorePolicy int

const (
	// RestoreIfCurrent restores only when the finishing run is still current,
	// so a superseded run cannot undo the slow rate of its successor.
	RestoreIfCurrent RestorePolicy = iota
	// RestoreAlways restores on every exit. A superseded run whose last clip
	// outlives the start of the next run resets the rate while that run is still playing.
	RestoreAlways
)

func (p RestorePolicy) String() string {
	if p == RestoreAlways {
		return "always"
	}
	return "if-current"
}
