package viewer

import (
	"github.com/glossa-cli/glossa/controller"
	"github.com/glossa-cli/glossa/log"
)

// Reporter is told what the session is doing. Calls may come from any goroutine.
type Reporter interface {
	Transcribing(media string)
	Loaded(media string, segments int)
	Position(seconds, rate float64)
	Observe(event controller.RunEvent)
	Error(err error)
}

// LogReporter reports to the log only.
type LogReporter struct{}

func (LogReporter) Transcribing(media string) {
	log.Infof("transcribing %s", media)
}

func (LogReporter) Loaded(media string, segments int) {
	log.Infof("%s: %d segments", media, segments)
}

func (LogReporter) Position(float64, float64) {}

func (LogReporter) Observe(event controller.RunEvent) {
	if event.Done {
		log.Debugf("run %d finished: %s", event.Token, event.Outcome)
	}
}

func (LogReporter) Error(err error) {
	log.Error(err)
}
