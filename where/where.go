// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/glossa-cli/glossa/constant"
	"github.com/glossa-cli/glossa/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable used to override the default configuration directory.
const EnvConfigPath = "GLOSSA_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the primary application configuration directory.
// GLOSSA_CONFIG_PATH takes precedence over the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Scripts resolves the directory holding Lua sequence scripts.
func Scripts() string {
	return ensureDir(filepath.Join(Config(), "scripts"))
}

// Mapping resolves the default character to clip mapping file.
func Mapping() string {
	return filepath.Join(Config(), "mapping.json")
}

// Transcripts resolves the directory holding cached transcripts.
func Transcripts() string {
	return ensureDir(filepath.Join(Cache(), "transcripts"))
}

// Durations resolves the probed clip duration cache file.
func Durations() string {
	return filepath.Join(Cache(), "durations.json")
}

// Temp resolves a volatile path for transient artifacts such as mpv IPC sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
