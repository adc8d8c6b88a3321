// Package controller keeps the viewer's playback state and starts a clip
// sequence whenever playback time enters a new transcript segment.
package controller

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/glossa-cli/glossa/asset"
	"github.com/glossa-cli/glossa/log"
	"github.com/glossa-cli/glossa/segment"
	"github.com/glossa-cli/glossa/sequence"
	"github.com/samber/mo"
)

// CaptionSink shows the text of the active segment.
// Calls happen while the controller holds its lock, so sinks must not call back into it.
type CaptionSink interface {
	Publish(text string)
	Clear()
}

// RunEvent describes the start or the end of a clip sequence run.
type RunEvent struct {
	Token   sequence.Token
	Index   int
	Clips   int
	Done    bool
	Outcome sequence.Outcome
	Err     error
}

// Options wires the controller to its collaborators.
// Runner, Loader and Rate are required.
type Options struct {
	Runner   *sequence.Runner
	Loader   asset.Loader
	Rate     sequence.RateController
	Captions CaptionSink

	// OnError receives clip failures. Failures never stop the session.
	OnError func(err error)

	// OnRun observes run lifecycles. It is called from run goroutines.
	OnRun func(event RunEvent)
}

// runStarting is called at the top of every run goroutine. Tests use it to
// delay a run past later updates.
var runStarting = func(sequence.Token) {}

// Controller reacts to playback time updates. It is safe for concurrent use.
type Controller struct {
	opts Options

	mu     sync.Mutex
	state  State
	minted sequence.Token
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	runs   sync.WaitGroup
}

// New returns a controller with no segments.
func New(opts Options) *Controller {
	if opts.Captions == nil {
		opts.Captions = nopCaptions{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		opts:   opts,
		state:  newState(nil),
		ctx:    ctx,
		cancel: cancel,
	}
}

// OnTimeUpdate matches t against the segments. Entering a segment other than
// the active one publishes its caption and starts its clip sequence without
// waiting for it; any previous run notices at its next step boundary.
// Staying in the active segment, or being outside every segment, changes nothing.
func (c *Controller) OnTimeUpdate(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	index, ok := segment.Find(c.state.Segments, t)
	if !ok {
		return
	}
	if active, ok := c.state.ActiveIndex.Get(); ok && active == index {
		return
	}

	c.minted++
	token := c.minted
	c.state.ActiveIndex = mo.Some(index)
	c.state.ActiveToken = mo.Some(token)

	seg := c.state.Segments[index]
	c.opts.Captions.Publish(seg.Text)

	log.WithFields(log.Fields{
		"token":   token,
		"segment": index,
		"at":      t,
	}).Debug("segment activated")

	c.runs.Add(1)
	go c.run(seg, index, token)
}

// Reload replaces the segments, forgets the active segment and clears the caption.
// Runs started before the reload become stale immediately. The playback rate is
// reset here because stale runs may no longer restore it.
func (c *Controller) Reload(segments []segment.Segment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = newState(slices.Clone(segments))
	c.opts.Captions.Clear()

	if err := c.opts.Rate.SetRate(sequence.NominalRate); err != nil {
		log.Warnf("reset playback rate: %v", err)
	}

	log.Infof("loaded %d segments", len(segments))
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until every started run has finished.
func (c *Controller) Wait() {
	c.runs.Wait()
}

// Close stops accepting time updates, cancels in-flight clips and waits for all runs.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.runs.Wait()
}

func (c *Controller) isCurrent(token sequence.Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.state.ActiveToken.Get()
	return ok && active == token
}

func (c *Controller) run(seg segment.Segment, index int, token sequence.Token) {
	defer c.runs.Done()

	runStarting(token)

	event := RunEvent{Token: token, Index: index, Clips: len(seg.Sequence)}
	c.observe(event)

	outcome, err := c.opts.Runner.Run(
		c.ctx,
		seg.Sequence,
		token,
		func() bool { return c.isCurrent(token) },
		c.opts.Loader,
		runRate{controller: c, token: token},
	)
	if err != nil {
		err = fmt.Errorf("segment %d: %w", index, err)
		log.Error(err)
		if c.opts.OnError != nil {
			c.opts.OnError(err)
		}
	}

	event.Done = true
	event.Outcome = outcome
	event.Err = err
	c.observe(event)
}

func (c *Controller) observe(event RunEvent) {
	if c.opts.OnRun != nil {
		c.opts.OnRun(event)
	}
}

// runRate writes the playback rate on behalf of one run. Guarded writes
// hold the controller lock so no reload or newer activation can slip between
// the token check and the write.
type runRate struct {
	controller *Controller
	token      sequence.Token
}

func (r runRate) SetRate(rate float64) error {
	return r.controller.opts.Rate.SetRate(rate)
}

func (r runRate) SetRateIfCurrent(rate float64) (bool, error) {
	c := r.controller
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.state.ActiveToken.Get()
	if !ok || active != r.token {
		return false, nil
	}
	return true, c.opts.Rate.SetRate(rate)
}

type nopCaptions struct{}

func (nopCaptions) Publish(string) {}
func (nopCaptions) Clear()         {}
