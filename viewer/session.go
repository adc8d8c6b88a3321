// Package viewer runs a viewing session: it feeds player time into the
// controller and loads transcripts for the media being played.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/glossa-cli/glossa/asset"
	"github.com/glossa-cli/glossa/controller"
	"github.com/glossa-cli/glossa/log"
	"github.com/glossa-cli/glossa/player"
	"github.com/glossa-cli/glossa/segment"
	"github.com/glossa-cli/glossa/sequence"
	"github.com/glossa-cli/glossa/transcript"
	"golang.org/x/sync/errgroup"
)

// Options configure a session. Video, Loader, Runner and Service are required.
type Options struct {
	Video   player.Player
	Loader  asset.Loader
	Runner  *sequence.Runner
	Service transcript.Service

	// Builder fills segments that come without clip sequences. May be nil.
	Builder asset.Builder

	// Captions receive segment text in addition to the OSD, if enabled.
	Captions []controller.CaptionSink

	Reporter Reporter

	// Strict drops segments whose start is not before their end.
	Strict bool

	// Chapters marks segment starts on the player timeline.
	Chapters bool

	// OSD shows captions on the player.
	OSD bool

	// Watch reloads the transcript when this file changes.
	Watch string
}

// Session binds one video player to one controller.
type Session struct {
	opts       Options
	controller *controller.Controller
	listener   *player.EventListener

	media string
	rate  float64
}

// New creates a session. Nothing is started until Open.
func New(opts Options) *Session {
	if opts.Reporter == nil {
		opts.Reporter = LogReporter{}
	}

	captions := Captions(opts.Captions)
	if opts.OSD {
		captions = append(Captions{OSDCaptions{Display: opts.Video}}, captions...)
	}

	s := &Session{opts: opts, rate: sequence.NominalRate}
	s.controller = controller.New(controller.Options{
		Runner:   opts.Runner,
		Loader:   opts.Loader,
		Rate:     opts.Video,
		Captions: captions,
		OnError:  opts.Reporter.Error,
		OnRun:    opts.Reporter.Observe,
	})
	return s
}

// Controller returns the session's controller.
func (s *Session) Controller() *controller.Controller {
	return s.controller
}

// Open starts the player paused on media, subscribes to its events and loads the transcript.
func (s *Session) Open(ctx context.Context, media string) error {
	if err := s.opts.Video.Play(media); err != nil {
		return fmt.Errorf("open %s: %w", media, err)
	}

	s.listener = player.NewEventListener(s.opts.Video.Socket(), s.handleEvent)
	if err := s.listener.Start(); err != nil {
		return err
	}

	return s.Load(ctx, media)
}

// Load switches to media: playback is paused and rewound, the old segments
// and caption are dropped, and the new transcript is applied before playback
// resumes. A failed transcription leaves the session without segments.
func (s *Session) Load(ctx context.Context, media string) error {
	s.media = media

	if err := s.opts.Video.SetPause(true); err != nil {
		log.Warnf("pause: %v", err)
	}
	if err := s.opts.Video.Seek(0); err != nil {
		log.Debugf("rewind: %v", err)
	}
	s.controller.Reload(nil)

	defer func() {
		if err := s.opts.Video.SetPause(false); err != nil {
			log.Warnf("resume: %v", err)
		}
	}()

	s.opts.Reporter.Transcribing(filepath.Base(media))

	t, err := s.opts.Service.Transcribe(ctx, media)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		err = fmt.Errorf("transcription: %w", err)
		s.opts.Reporter.Error(err)
		s.opts.Reporter.Loaded(filepath.Base(media), 0)
		return nil
	}

	s.Apply(t)
	return nil
}

// Apply installs a transcript: missing sequences are built, malformed windows
// dropped in strict mode, then the controller is reloaded.
func (s *Session) Apply(t *transcript.Transcript) {
	if t == nil {
		t = &transcript.Transcript{}
	}

	if err := transcript.Fill(t, s.opts.Builder); err != nil {
		s.opts.Reporter.Error(fmt.Errorf("build sequences: %w", err))
	}

	segments := t.Segments
	if s.opts.Strict {
		var dropped int
		segments, dropped = segment.Sanitize(segments)
		if dropped > 0 {
			log.Warnf("dropped %d malformed segments", dropped)
		}
	} else {
		for i, seg := range segments {
			if err := segment.Validate(seg); err != nil {
				log.Debugf("segment %d: %v", i, err)
			}
		}
	}

	s.controller.Reload(segments)

	if s.opts.Chapters && len(segments) > 0 {
		if err := s.opts.Video.SetChapters(player.ChaptersOf(segments)); err != nil {
			log.Warnf("set chapters: %v", err)
		}
	}

	s.opts.Reporter.Loaded(filepath.Base(s.media), len(segments))
}

// Run blocks until the player exits or ctx is done, reloading the watched
// transcript file on change. The controller is closed on return.
func (s *Session) Run(ctx context.Context) error {
	defer s.controller.Close()

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		select {
		case <-s.opts.Video.Wait():
		case <-s.listener.Done():
		case <-ctx.Done():
		}
		return nil
	})

	if s.opts.Watch != "" {
		g.Go(func() error {
			return Watch(ctx, s.opts.Watch, func() {
				t, err := transcript.ReadFile(s.opts.Watch)
				if err != nil {
					s.opts.Reporter.Error(err)
					return
				}
				log.Infof("reloading %s", s.opts.Watch)
				s.Apply(t)
			})
		})
	}

	return g.Wait()
}

// Close stops listening and quits the player.
func (s *Session) Close() error {
	if s.listener != nil {
		s.listener.Stop()
	}
	s.controller.Close()
	return s.opts.Video.Close()
}

func (s *Session) handleEvent(name string, data interface{}) {
	switch name {
	case player.PropTimePos:
		t, ok := data.(float64)
		if !ok {
			return
		}
		s.controller.OnTimeUpdate(t)
		s.opts.Reporter.Position(t, s.rate)
	case player.PropSpeed:
		if rate, ok := data.(float64); ok {
			s.rate = rate
		}
	}
}
