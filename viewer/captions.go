package viewer

import (
	"time"

	"github.com/glossa-cli/glossa/controller"
	"github.com/glossa-cli/glossa/log"
)

// captionHold keeps an OSD caption up until it is replaced or cleared.
const captionHold = time.Hour

// TextDisplay is the OSD of a player.
type TextDisplay interface {
	ShowText(text string, d time.Duration) error
}

// OSDCaptions shows captions on the player OSD.
type OSDCaptions struct {
	Display TextDisplay
}

func (c OSDCaptions) Publish(text string) {
	if err := c.Display.ShowText(text, captionHold); err != nil {
		log.Warnf("show caption: %v", err)
	}
}

func (c OSDCaptions) Clear() {
	if err := c.Display.ShowText("", 0); err != nil {
		log.Warnf("clear caption: %v", err)
	}
}

// Captions fans a caption out to several sinks.
type Captions []controller.CaptionSink

func (c Captions) Publish(text string) {
	for _, sink := range c {
		sink.Publish(text)
	}
}

func (c Captions) Clear() {
	for _, sink := range c {
		sink.Clear()
	}
}
