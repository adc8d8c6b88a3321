// Package player drives mpv over its JSON-IPC socket. One instance plays the
// video and reports its position; a second one is used as the clip window.
package player

import "time"

// Player is the video side of a viewing session.
type Player interface {
	// Play starts mpv on target, or loads target into the running instance.
	Play(target string) error

	// SetRate sets the playback speed, 1.0 being nominal.
	SetRate(rate float64) error

	// SetPause suspends or resumes playback.
	SetPause(paused bool) error

	// Seek moves to an absolute position in seconds.
	Seek(seconds float64) error

	// GetTimePos returns the current position in seconds.
	GetTimePos() (float64, error)

	// ShowText puts text on the OSD for d.
	ShowText(text string, d time.Duration) error

	// SetChapters replaces the chapter markers of the loaded file.
	SetChapters(chapters []Chapter) error

	// Socket returns the IPC socket path, empty before Play.
	Socket() string

	// Wait returns a channel closed when the process exits.
	Wait() <-chan struct{}

	// Close quits mpv and removes its socket.
	Close() error
}
