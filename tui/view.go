package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/glossa-cli/glossa/color"
	"github.com/glossa-cli/glossa/constant"
	"github.com/glossa-cli/glossa/icon"
	"github.com/glossa-cli/glossa/sequence"
	"github.com/glossa-cli/glossa/style"
	"github.com/muesli/reflow/wordwrap"
)

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)
	captionStyle = lipgloss.NewStyle().Bold(true).Foreground(color.HiWhite)
)

func (b *bubble) View() string {
	lines := []string{
		style.Title(constant.App),
		"",
		b.viewMedia(),
		"",
	}

	switch b.state {
	case loadingState, transcribingState:
		lines = append(lines, b.spinnerC.View()+" "+style.Faint(b.state.String()+"..."))
	case playingState:
		lines = append(lines, b.viewPlaying()...)
	}

	return b.notifier.View(b.renderLines(lines))
}

func (b *bubble) viewMedia() string {
	name := b.media
	if name == "" {
		name = "-"
	}
	return style.Truncate(b.contentWidth())(icon.Get(icon.Video) + " " + style.Fg(color.Purple)(name))
}

func (b *bubble) viewPlaying() []string {
	rate := fmt.Sprintf("x%.2g", b.rate)
	if b.rate < sequence.NominalRate {
		rate = style.Fg(color.Yellow)(rate)
	}

	lines := []string{
		fmt.Sprintf("%s  %s  %s",
			formatPosition(b.position),
			rate,
			style.Faint(fmt.Sprintf("%d segments", b.segments)),
		),
		"",
	}

	caption := b.caption
	if caption == "" {
		caption = style.Faint("...")
	} else {
		caption = captionStyle.Render(wordwrap.String(caption, b.contentWidth()-2))
	}
	lines = append(lines, icon.Get(icon.Caption)+" "+caption, "")

	if active, ok := b.active.Get(); ok {
		lines = append(lines, fmt.Sprintf("%s segment %d, %d clips %s",
			icon.Get(icon.Clip),
			active.Index+1,
			active.Clips,
			b.spinnerC.View(),
		))
	} else if finished, ok := b.finished.Get(); ok {
		lines = append(lines, fmt.Sprintf("%s segment %d %s",
			outcomeIcon(finished.Outcome),
			finished.Index+1,
			style.Faint(finished.Outcome.String()),
		))
	} else {
		lines = append(lines, style.Faint("no clips yet"))
	}

	lines = append(lines, style.Faint(fmt.Sprintf(
		"%d completed, %d aborted, %d failed",
		b.outcomes[sequence.Completed],
		b.outcomes[sequence.Aborted],
		b.outcomes[sequence.Failed],
	)))

	return lines
}

func (b *bubble) renderLines(lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if b.height > h+3 {
		l += strings.Repeat("\n", b.height-h-3)
	}
	l += "\n" + b.helpC.View(b.keymap)

	return paddingStyle.Render(l)
}

func (b *bubble) contentWidth() int {
	if b.width <= 4 {
		return 80
	}
	return b.width - 4
}

func outcomeIcon(o sequence.Outcome) string {
	switch o {
	case sequence.Completed:
		return icon.Get(icon.Success)
	case sequence.Failed:
		return icon.Get(icon.Fail)
	default:
		return icon.Get(icon.Warn)
	}
}

func formatPosition(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(100 * time.Millisecond)
	minutes := int(d / time.Minute)
	rest := (d % time.Minute).Seconds()
	return fmt.Sprintf("%02d:%04.1f", minutes, rest)
}
