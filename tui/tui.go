// Package tui renders a terminal dashboard for a viewing session. The
// dashboard is a caption sink and a session reporter.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/glossa-cli/glossa/controller"
	"github.com/glossa-cli/glossa/log"
	"github.com/samber/mo"
)

const queueSize = 256

// Options hook the dashboard's keys to the session.
type Options struct {
	OnQuit        func()
	OnTogglePause func() error
	OnReplay      func() error
}

// Dashboard forwards session updates to the bubbletea program. Updates never
// block the caller; they are queued and dropped when the queue is full.
// Captions are not queued: only the latest one is kept, and it is never dropped.
type Dashboard struct {
	program *tea.Program
	queue   chan tea.Msg

	captionMu    sync.Mutex
	caption      mo.Option[string]
	captionReady chan struct{}
}

// New creates a dashboard. Updates sent before Run are queued.
func New(options *Options) *Dashboard {
	return &Dashboard{
		program:      tea.NewProgram(newBubble(options), tea.WithAltScreen()),
		queue:        make(chan tea.Msg, queueSize),
		captionReady: make(chan struct{}, 1),
	}
}

// Run blocks until the user quits or Quit is called.
func (d *Dashboard) Run() error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case msg := <-d.queue:
				d.program.Send(msg)
			case <-d.captionReady:
				if text, ok := d.takeCaption(); ok {
					d.program.Send(captionMsg(text))
				}
			case <-done:
				return
			}
		}
	}()

	_, err := d.program.Run()
	return err
}

// Quit stops the program.
func (d *Dashboard) Quit() {
	d.program.Quit()
}

func (d *Dashboard) send(msg tea.Msg) {
	select {
	case d.queue <- msg:
	default:
		log.Warnf("dashboard queue full, dropping %T", msg)
	}
}

// setCaption replaces the pending caption and wakes the pump.
func (d *Dashboard) setCaption(text string) {
	d.captionMu.Lock()
	d.caption = mo.Some(text)
	d.captionMu.Unlock()

	select {
	case d.captionReady <- struct{}{}:
	default:
	}
}

func (d *Dashboard) takeCaption() (string, bool) {
	d.captionMu.Lock()
	defer d.captionMu.Unlock()

	text, ok := d.caption.Get()
	d.caption = mo.None[string]()
	return text, ok
}

func (d *Dashboard) Publish(text string) { d.setCaption(text) }
func (d *Dashboard) Clear()              { d.setCaption("") }

func (d *Dashboard) Transcribing(media string) { d.send(transcribingMsg(media)) }

func (d *Dashboard) Loaded(media string, segments int) {
	d.send(loadedMsg{media: media, segments: segments})
}

func (d *Dashboard) Position(seconds, rate float64) {
	d.send(positionMsg{seconds: seconds, rate: rate})
}

func (d *Dashboard) Observe(event controller.RunEvent) { d.send(runMsg(event)) }

func (d *Dashboard) Error(err error) {
	log.Error(err)
	d.send(errMsg{err: err})
}
