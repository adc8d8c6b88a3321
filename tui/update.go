package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/glossa-cli/glossa/controller"
	"github.com/glossa-cli/glossa/internal/ui"
	"github.com/samber/mo"
)

func (b *bubble) Init() tea.Cmd {
	return b.spinnerC.Tick
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if cmd := b.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		cmds = append(cmds, cmd)
	case transcribingMsg:
		b.state = transcribingState
		b.media = string(msg)
	case loadedMsg:
		b.state = playingState
		b.media = msg.media
		b.segments = msg.segments
		b.caption = ""
		b.active = mo.None[controller.RunEvent]()
		cmds = append(cmds, ui.Notify(fmt.Sprintf("%d segments loaded", msg.segments)))
	case captionMsg:
		b.caption = string(msg)
	case positionMsg:
		b.position = msg.seconds
		b.rate = msg.rate
	case runMsg:
		b.updateRun(controller.RunEvent(msg))
	case errMsg:
		cmds = append(cmds, ui.Notify(msg.err.Error()))
	}

	return b, tea.Batch(cmds...)
}

func (b *bubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keymap.forceQuit), key.Matches(msg, b.keymap.quit):
		if b.options.OnQuit != nil {
			b.options.OnQuit()
		}
		return tea.Quit
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	case key.Matches(msg, b.keymap.playPause):
		return b.call(b.options.OnTogglePause)
	case key.Matches(msg, b.keymap.replay):
		return b.call(b.options.OnReplay)
	}
	return nil
}

// call runs a player action off the update loop and reports its failure.
func (b *bubble) call(action func() error) tea.Cmd {
	if action == nil {
		return nil
	}
	return func() tea.Msg {
		if err := action(); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// updateRun keeps the newest run as active. Events of superseded runs only
// count towards the outcome totals.
func (b *bubble) updateRun(event controller.RunEvent) {
	if !event.Done {
		if active, ok := b.active.Get(); !ok || event.Token > active.Token {
			b.active = mo.Some(event)
		}
		return
	}

	b.outcomes[event.Outcome]++
	b.finished = mo.Some(event)
	if active, ok := b.active.Get(); ok && active.Token == event.Token {
		b.active = mo.None[controller.RunEvent]()
	}
}
