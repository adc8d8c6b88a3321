package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glossa-cli/glossa/asset"
)

const (
	probeRetries = 20
	probeDelay   = 25 * time.Millisecond
)

// ClipWindow shows clips in a dedicated idle mpv window that is started on
// first use. It implements asset.Presenter and asset.Prober.
type ClipWindow struct {
	mpv *MPV
}

// NewClipWindow creates a clip window with the given background colour.
func NewClipWindow(title, background string) *ClipWindow {
	return &ClipWindow{
		mpv: NewMPV(Options{
			Title:      title,
			Background: background,
			Idle:       true,
			KeepOpen:   true,
		}),
	}
}

// Show loads ref into the window, starting mpv if needed.
func (w *ClipWindow) Show(ctx context.Context, ref asset.Ref) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := sanitizeMediaTarget(string(ref))
	if err != nil {
		return fmt.Errorf("clip %s: %w", ref, err)
	}

	if !w.mpv.IsRunning() {
		if err := w.mpv.Play(""); err != nil {
			return fmt.Errorf("clip window: %w", err)
		}
	}

	return w.mpv.LoadFile(target)
}

// Hide unloads the current clip, leaving the window on its background.
func (w *ClipWindow) Hide() error {
	if !w.mpv.IsRunning() {
		return nil
	}
	return w.mpv.Stop()
}

// Probe returns the duration of the clip currently loaded. mpv reports it
// shortly after loadfile, so the property is polled briefly.
func (w *ClipWindow) Probe(ref asset.Ref) (time.Duration, error) {
	var lastErr error
	for i := 0; i < probeRetries; i++ {
		seconds, err := w.mpv.GetDuration()
		if err == nil && seconds > 0 {
			return time.Duration(seconds * float64(time.Second)), nil
		}
		lastErr = err
		time.Sleep(probeDelay)
	}
	if lastErr == nil {
		lastErr = errors.New("duration unavailable")
	}
	return 0, fmt.Errorf("probe %s: %w", ref, lastErr)
}

// Close quits the window.
func (w *ClipWindow) Close() error {
	return w.mpv.Close()
}
