package asset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/glossa-cli/glossa/filesystem"
)

// DefaultKey names the entry used for characters without their own clip.
const DefaultKey = "default"

// ErrNoClip is returned when a character has no clip and the mapping has no default.
var ErrNoClip = errors.New("no clip for character")

// Entry is one mapping value. In the mapping file it is either a plain path
// or an object with a path and an explicit display duration in seconds.
type Entry struct {
	Ref      Ref     `json:"path"`
	Duration float64 `json:"duration,omitempty"`
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var path string
		if err := json.Unmarshal(data, &path); err != nil {
			return err
		}
		*e = Entry{Ref: Ref(path)}
		return nil
	}

	type plain Entry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// Mapping resolves transcript characters to clips.
type Mapping struct {
	entries   map[string]Entry
	durations map[Ref]time.Duration
}

// NewMapping builds a mapping from entries keyed by upper-case character or DefaultKey.
func NewMapping(entries map[string]Entry) *Mapping {
	m := &Mapping{
		entries:   make(map[string]Entry, len(entries)),
		durations: make(map[Ref]time.Duration),
	}
	for k, e := range entries {
		if k != DefaultKey {
			k = strings.ToUpper(k)
		}
		m.entries[k] = e
		if e.Duration > 0 {
			m.durations[e.Ref] = time.Duration(e.Duration * float64(time.Second))
		}
	}
	return m
}

// LoadMapping reads a JSON mapping file. Relative clip paths are resolved
// against the directory of the file.
func LoadMapping(path string) (*Mapping, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse mapping %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for k, e := range entries {
		if e.Ref != "" && !filepath.IsAbs(string(e.Ref)) && !strings.Contains(string(e.Ref), "://") {
			e.Ref = Ref(filepath.Join(dir, string(e.Ref)))
			entries[k] = e
		}
	}

	return NewMapping(entries), nil
}

// Lookup returns the clip for ch, falling back to the default entry.
func (m *Mapping) Lookup(ch rune) (Entry, bool) {
	if e, ok := m.entries[string(unicode.ToUpper(ch))]; ok {
		return e, true
	}
	e, ok := m.entries[DefaultKey]
	return e, ok
}

// Build returns one clip per character of the trimmed text, spaces included.
func (m *Mapping) Build(text string) ([]Ref, error) {
	text = strings.TrimSpace(text)
	refs := make([]Ref, 0, len(text))
	for _, ch := range text {
		e, ok := m.Lookup(ch)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrNoClip, ch)
		}
		refs = append(refs, e.Ref)
	}
	return refs, nil
}

// Duration returns the explicit display duration of ref, if the mapping declares one.
func (m *Mapping) Duration(ref Ref) (time.Duration, bool) {
	d, ok := m.durations[ref]
	return d, ok
}

// Table returns the raw key to clip table.
func (m *Mapping) Table() map[string]Ref {
	table := make(map[string]Ref, len(m.entries))
	for k, e := range m.entries {
		table[k] = e.Ref
	}
	return table
}

// Len returns the number of entries, the default included.
func (m *Mapping) Len() int {
	return len(m.entries)
}
