package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/glossa-cli/glossa/controller"
	"github.com/glossa-cli/glossa/internal/ui"
	"github.com/glossa-cli/glossa/sequence"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBubble(t *testing.T) {
	Convey("Given a fresh dashboard model", t, func() {
		b := newBubble(nil)
		b.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

		Convey("It starts in the loading state", func() {
			So(b.state, ShouldEqual, loadingState)
			So(b.View(), ShouldContainSubstring, "starting")
		})

		Convey("Transcription and loading move it to playing", func() {
			b.Update(transcribingMsg("talk.mp4"))
			So(b.state, ShouldEqual, transcribingState)
			So(b.View(), ShouldContainSubstring, "talk.mp4")

			_, cmd := b.Update(loadedMsg{media: "talk.mp4", segments: 4})
			So(b.state, ShouldEqual, playingState)
			So(b.View(), ShouldContainSubstring, "4 segments")

			msg := cmd()
			So(msg, ShouldHaveSameTypeAs, ui.Notification(""))
		})

		Convey("Captions and position are shown while playing", func() {
			b.Update(loadedMsg{media: "talk.mp4", segments: 1})
			b.Update(captionMsg("HELLO THERE"))
			b.Update(positionMsg{seconds: 75.25, rate: 0.5})

			view := b.View()
			So(view, ShouldContainSubstring, "HELLO THERE")
			So(view, ShouldContainSubstring, "01:15.3")
			So(view, ShouldContainSubstring, "x0.5")
		})

		Convey("The newest run stays active", func() {
			b.Update(runMsg(controller.RunEvent{Token: 2, Index: 1, Clips: 3}))
			b.Update(runMsg(controller.RunEvent{Token: 1, Index: 0, Clips: 5}))

			active, ok := b.active.Get()
			So(ok, ShouldBeTrue)
			So(active.Token, ShouldEqual, sequence.Token(2))

			Convey("A superseded run finishing does not clear it", func() {
				b.Update(runMsg(controller.RunEvent{Token: 1, Done: true, Outcome: sequence.Aborted}))
				So(b.active.IsPresent(), ShouldBeTrue)
				So(b.outcomes[sequence.Aborted], ShouldEqual, 1)
			})

			Convey("The active run finishing clears it", func() {
				b.Update(runMsg(controller.RunEvent{Token: 2, Index: 1, Done: true, Outcome: sequence.Completed}))
				So(b.active.IsPresent(), ShouldBeFalse)
				So(b.outcomes[sequence.Completed], ShouldEqual, 1)

				b.state = playingState
				So(b.View(), ShouldContainSubstring, "segment 2 completed")
			})
		})

		Convey("Errors become notifications", func() {
			_, cmd := b.Update(errMsg{err: errors.New("clip missing")})
			b.Update(cmd())
			So(b.notifier.Current(), ShouldEqual, "clip missing")
		})

		Convey("Quitting calls back into the session", func() {
			quit := false
			b.options.OnQuit = func() { quit = true }

			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
			So(quit, ShouldBeTrue)
			So(cmd, ShouldNotBeNil)
		})

		Convey("Player actions run as commands and report failures", func() {
			b.options.OnTogglePause = func() error { return errors.New("mpv gone") }

			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldResemble, errMsg{err: errors.New("mpv gone")})
		})
	})
}

func TestFormatPosition(t *testing.T) {
	Convey("Positions are shown as minutes and seconds", t, func() {
		So(formatPosition(0), ShouldEqual, "00:00.0")
		So(formatPosition(61.04), ShouldEqual, "01:01.0")
		So(formatPosition(599.96), ShouldEqual, "10:00.0")
	})
}

func TestDashboardCaptions(t *testing.T) {
	Convey("Given a dashboard whose update queue is full", t, func() {
		d := New(&Options{})
		for i := 0; i < queueSize+10; i++ {
			d.Position(float64(i), 1)
		}
		So(len(d.queue), ShouldEqual, queueSize)

		Convey("A clear after a caption is still delivered", func() {
			d.Publish("hello")
			d.Clear()

			So(len(d.captionReady), ShouldEqual, 1)
			text, ok := d.takeCaption()
			So(ok, ShouldBeTrue)
			So(text, ShouldEqual, "")

			_, ok = d.takeCaption()
			So(ok, ShouldBeFalse)
		})
	})
}
