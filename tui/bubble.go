package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/glossa-cli/glossa/controller"
	"github.com/glossa-cli/glossa/internal/ui"
	"github.com/glossa-cli/glossa/sequence"
	"github.com/samber/mo"
)

// bubble is the dashboard model.
type bubble struct {
	state  state
	keymap *keymap

	spinnerC spinner.Model
	helpC    help.Model
	notifier *ui.Model

	media    string
	segments int
	caption  string
	position float64
	rate     float64

	active   mo.Option[controller.RunEvent]
	finished mo.Option[controller.RunEvent]
	outcomes map[sequence.Outcome]int

	startedAt     time.Time
	width, height int

	options *Options
}

func newBubble(options *Options) *bubble {
	if options == nil {
		options = &Options{}
	}

	spinnerC := spinner.New()
	spinnerC.Spinner = spinner.Dot

	return &bubble{
		state:     loadingState,
		keymap:    newKeymap(),
		spinnerC:  spinnerC,
		helpC:     help.New(),
		notifier:  &ui.Model{},
		rate:      sequence.NominalRate,
		outcomes:  make(map[sequence.Outcome]int),
		startedAt: time.Now(),
		options:   options,
	}
}

func (b *bubble) resize(width, height int) {
	b.width = width
	b.height = height
	b.helpC.Width = width
}
