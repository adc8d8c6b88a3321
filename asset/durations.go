package asset

import (
	"sync"
	"time"

	"github.com/glossa-cli/glossa/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// DurationCache remembers probed clip durations on disk.
type DurationCache struct {
	mu       sync.Mutex
	internal *gache.Cache[map[Ref]float64]
}

// NewDurationCache opens a cache stored at path.
func NewDurationCache(path string) *DurationCache {
	return &DurationCache{
		internal: gache.New[map[Ref]float64](&gache.Options{
			Path:       path,
			Lifetime:   time.Hour * 24 * 30,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Get returns the cached duration of ref.
func (c *DurationCache) Get(ref Ref) mo.Option[time.Duration] {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[time.Duration]()
	}

	seconds, ok := data[ref]
	if !ok {
		return mo.None[time.Duration]()
	}
	return mo.Some(time.Duration(seconds * float64(time.Second)))
}

// Set stores the duration of ref.
func (c *DurationCache) Set(ref Ref, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}
	if expired || data == nil {
		data = make(map[Ref]float64)
	}

	data[ref] = d.Seconds()
	return c.internal.Set(data)
}
