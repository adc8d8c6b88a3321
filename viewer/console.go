package viewer

import (
	"fmt"
	"io"
	"sync"

	"github.com/glossa-cli/glossa/util"
	"github.com/muesli/reflow/wordwrap"
)

const defaultConsoleWidth = 80

// ConsoleCaptions prints captions as wrapped lines on a terminal.
type ConsoleCaptions struct {
	Out io.Writer
	// Width returns the wrap width. Terminal width when nil.
	Width func() int

	mu   sync.Mutex
	last string
}

func (c *ConsoleCaptions) Publish(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if text == c.last {
		return
	}
	c.last = text

	_, _ = fmt.Fprintln(c.Out, wordwrap.String(text, c.width()))
}

func (c *ConsoleCaptions) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = ""
}

func (c *ConsoleCaptions) width() int {
	if c.Width != nil {
		return c.Width()
	}

	width, _, err := util.TerminalSize()
	if err != nil || width <= 0 {
		return defaultConsoleWidth
	}
	return width
}
