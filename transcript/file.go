package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/glossa-cli/glossa/filesystem"
	"gopkg.in/yaml.v3"
)

// Format is a transcript file encoding.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatOf picks the format from the file extension, defaulting to JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Parse decodes a transcript document.
func Parse(data []byte, format Format) (*Transcript, error) {
	var doc Document

	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, err
	}

	return doc.Transcript(), nil
}

// Encode serializes a transcript.
func Encode(t *Transcript, format Format) ([]byte, error) {
	doc := t.Document()
	if format == YAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ReadFile loads a transcript from path.
func ReadFile(path string) (*Transcript, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	t, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return t, nil
}

// WriteFile stores a transcript at path in the format of its extension.
func WriteFile(path string, t *Transcript) error {
	data, err := Encode(t, FormatOf(path))
	if err != nil {
		return err
	}
	return filesystem.API().WriteFile(path, data, 0644)
}

// File serves a prepared transcript file regardless of the media.
type File struct {
	Path string
}

func (f File) Transcribe(_ context.Context, _ string) (*Transcript, error) {
	return ReadFile(f.Path)
}
