package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/glossa-cli/glossa/log"
)

// DefaultDuration is used for clips whose duration is neither declared nor probed.
const DefaultDuration = 2 * time.Second

// Presenter puts a clip on screen and takes it down again.
type Presenter interface {
	Show(ctx context.Context, ref Ref) error
	Hide() error
}

// Prober is implemented by presenters that can report the duration of the clip they show.
type Prober interface {
	Probe(ref Ref) (time.Duration, error)
}

// ClipLoader shows a clip for its display duration: the duration declared in
// the mapping, else a cached or freshly probed duration, else the fallback.
type ClipLoader struct {
	presenter Presenter
	mapping   *Mapping
	cache     *DurationCache
	fallback  time.Duration
}

// NewClipLoader returns a loader. mapping and cache may be nil.
func NewClipLoader(presenter Presenter, mapping *Mapping, cache *DurationCache, fallback time.Duration) *ClipLoader {
	if fallback <= 0 {
		fallback = DefaultDuration
	}
	return &ClipLoader{
		presenter: presenter,
		mapping:   mapping,
		cache:     cache,
		fallback:  fallback,
	}
}

// Load shows ref and returns after its display duration, or early with the
// context error when ctx is cancelled.
func (l *ClipLoader) Load(ctx context.Context, ref Ref) (time.Duration, error) {
	if err := l.presenter.Show(ctx, ref); err != nil {
		return 0, fmt.Errorf("show: %w", err)
	}
	defer func() {
		if err := l.presenter.Hide(); err != nil {
			log.Warnf("hide clip %s: %v", ref, err)
		}
	}()

	d := l.duration(ref)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return d, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (l *ClipLoader) duration(ref Ref) time.Duration {
	if l.mapping != nil {
		if d, ok := l.mapping.Duration(ref); ok {
			return d
		}
	}

	if l.cache != nil {
		if d, ok := l.cache.Get(ref).Get(); ok {
			return d
		}
	}

	prober, ok := l.presenter.(Prober)
	if !ok {
		return l.fallback
	}

	d, err := prober.Probe(ref)
	if err != nil || d <= 0 {
		log.Debugf("probe %s: %v, using %s", ref, err, l.fallback)
		return l.fallback
	}

	if l.cache != nil {
		if err := l.cache.Set(ref, d); err != nil {
			log.Warnf("cache duration of %s: %v", ref, err)
		}
	}
	return d
}

// LogPresenter shows nothing and only records clips in the log.
type LogPresenter struct{}

func (LogPresenter) Show(_ context.Context, ref Ref) error {
	log.Infof("clip %s", ref)
	return nil
}

func (LogPresenter) Hide() error { return nil }
