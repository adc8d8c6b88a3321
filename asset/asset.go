// Package asset resolves and displays the animation clips referenced by transcript segments.
package asset

import (
	"context"
	"time"
)

// Ref identifies a clip, usually a path relative to the mapping file.
// It is opaque to everything except loaders.
type Ref string

// Loader displays a single clip and returns once its display duration has elapsed.
type Loader interface {
	Load(ctx context.Context, ref Ref) (time.Duration, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref Ref) (time.Duration, error)

func (f LoaderFunc) Load(ctx context.Context, ref Ref) (time.Duration, error) {
	return f(ctx, ref)
}
