package tui

import "github.com/glossa-cli/glossa/controller"

type (
	captionMsg      string
	transcribingMsg string
	loadedMsg       struct {
		media    string
		segments int
	}
	positionMsg struct {
		seconds, rate float64
	}
	runMsg controller.RunEvent
	errMsg struct{ err error }
)
