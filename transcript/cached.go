package transcript

import (
	"context"

	"github.com/glossa-cli/glossa/internal/cache"
	"github.com/glossa-cli/glossa/log"
)

// Cached remembers transcripts by media checksum.
type Cached struct {
	Service Service
}

// Transcribe returns the cached transcript of identical media, or asks the
// wrapped service and stores the result. Empty transcripts are not stored.
func (c Cached) Transcribe(ctx context.Context, mediaPath string) (*Transcript, error) {
	key, err := cache.KeyOf(mediaPath)
	if err != nil {
		log.Warnf("transcript cache: %v", err)
		return c.Service.Transcribe(ctx, mediaPath)
	}

	var doc Document
	if cache.Read(key, &doc) {
		log.Debugf("transcript cache hit for %s", mediaPath)
		return doc.Transcript(), nil
	}

	t, err := c.Service.Transcribe(ctx, mediaPath)
	if err != nil {
		return nil, err
	}

	if !t.Empty() {
		if err := cache.Write(key, t.Document()); err != nil {
			log.Warnf("transcript cache write: %v", err)
		}
	}
	return t, nil
}
