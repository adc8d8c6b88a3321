// Package cache provides a filesystem-based store for transcripts keyed by media checksum.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/glossa-cli/glossa/filesystem"
	"github.com/glossa-cli/glossa/where"
	"github.com/spf13/afero"
)

const TTL = 30 * 24 * time.Hour

// KeyOf hashes the file at path into a cache identifier.
func KeyOf(path string) (string, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func entry(key string) string {
	return filepath.Join(where.Transcripts(), key+".json")
}

// Read decodes a cached object into target if it exists and has not exceeded its TTL.
func Read(key string, target interface{}) bool {
	fs := filesystem.API()
	path := entry(key)

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(target) == nil
}

// Write persists a serializable object, swapping a temporary file into place.
func Write(key string, data interface{}) error {
	fs := filesystem.API()
	path := entry(key)
	tmpPath := path + ".tmp"

	f, err := fs.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return fs.Rename(tmpPath, path)
}

// CollectGarbage prunes expired entries.
func CollectGarbage() {
	fs := filesystem.API()
	_ = afero.Walk(fs, where.Transcripts(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > TTL {
			_ = fs.Remove(path)
		}
		return nil
	})
}
