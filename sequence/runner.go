package sequence

import (
	"context"
	"fmt"

	"github.com/glossa-cli/glossa/asset"
	"github.com/glossa-cli/glossa/log"
	"github.com/glossa-cli/glossa/util"
)

// Runner plays clip sequences.
type Runner struct {
	SlowRate float64
	Restore  RestorePolicy
}

// NewRunner returns a runner slowing the video to slowRate.
// Rates outside (0, 1) fall back to DefaultSlowRate.
func NewRunner(slowRate float64, restore RestorePolicy) *Runner {
	if slowRate <= 0 || slowRate >= NominalRate {
		slowRate = DefaultSlowRate
	}
	return &Runner{SlowRate: slowRate, Restore: restore}
}

// Run shows seq in order through loader.
//
// isCurrent is polled before every clip and before restoring the rate; once it
// reports false the run issues no further loads. The rate is set to SlowRate
// on entry and, subject to Restore, back to NominalRate on every exit path.
// A load error ends the run with Failed and is returned.
//
// With a GuardedRateController the slow rate is only written while the run is
// current. A run that is already stale when it starts returns Aborted without
// touching the rate, and the guarded restore cannot race a successor's start.
func (r *Runner) Run(
	ctx context.Context,
	seq []asset.Ref,
	token Token,
	isCurrent func() bool,
	loader asset.Loader,
	rate RateController,
) (outcome Outcome, err error) {
	entry := log.WithFields(log.Fields{"token": token, "clips": len(seq)})

	slow := util.Clamp(r.SlowRate, 0.01, NominalRate)
	if guarded, ok := rate.(GuardedRateController); ok {
		current, setErr := guarded.SetRateIfCurrent(slow)
		if !current {
			entry.Debug("stale before start, leaving playback rate alone")
			return Aborted, nil
		}
		if setErr != nil {
			entry.WithError(setErr).Warnf("set playback rate to %.2f", slow)
		}
	} else {
		r.setRate(entry, rate, slow)
	}

	var loaded int
	defer func() {
		if r.Restore == RestoreAlways {
			r.setRate(entry, rate, NominalRate)
		} else if !r.restoreIfCurrent(entry, rate, isCurrent) {
			entry.Debug("superseded, leaving playback rate to the current run")
		}

		entry.WithFields(log.Fields{
			"outcome": outcome,
			"loaded":  loaded,
		}).Info("sequence finished")
	}()

	for _, ref := range seq {
		if !isCurrent() {
			return Aborted, nil
		}
		if ctx.Err() != nil {
			return Aborted, nil
		}

		if _, err := loader.Load(ctx, ref); err != nil {
			if ctx.Err() != nil {
				return Aborted, nil
			}
			return Failed, fmt.Errorf("load clip %s: %w", ref, err)
		}
		loaded++
	}

	return Completed, nil
}

func (r *Runner) restoreIfCurrent(entry *log.Entry, rate RateController, isCurrent func() bool) bool {
	if guarded, ok := rate.(GuardedRateController); ok {
		current, err := guarded.SetRateIfCurrent(NominalRate)
		if err != nil {
			entry.WithError(err).Warn("restore playback rate")
		}
		return current
	}

	if !isCurrent() {
		return false
	}
	r.setRate(entry, rate, NominalRate)
	return true
}

func (r *Runner) setRate(entry *log.Entry, rate RateController, value float64) {
	if err := rate.SetRate(value); err != nil {
		entry.WithError(err).Warnf("set playback rate to %.2f", value)
	}
}
