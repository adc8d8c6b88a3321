package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glossa-cli/glossa/asset"
	"github.com/glossa-cli/glossa/auth"
	"github.com/glossa-cli/glossa/filesystem"
	"github.com/glossa-cli/glossa/key"
	"github.com/glossa-cli/glossa/log"
	"github.com/glossa-cli/glossa/transcript"
	"github.com/glossa-cli/glossa/where"
	"github.com/spf13/viper"
)

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// loadMapping reads the configured mapping file. Without an explicit path a
// missing default mapping is not an error and yields nil.
func loadMapping() (*asset.Mapping, error) {
	path := viper.GetString(key.AssetsMapping)
	explicit := path != ""
	if !explicit {
		path = where.Mapping()
	}

	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		if explicit {
			return nil, fmt.Errorf("mapping %s not found", path)
		}
		log.Infof("no mapping at %s, segments must carry their own clips", path)
		return nil, nil
	}

	mapping, err := asset.LoadMapping(path)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %d mapping entries from %s", mapping.Len(), path)
	return mapping, nil
}

// scriptPath resolves a script name against the scripts directory.
func scriptPath(name string) string {
	if !strings.HasSuffix(name, ".lua") {
		name += ".lua"
	}
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(where.Scripts(), name)
}

// newBuilder prefers the configured Lua script over the plain mapping.
// It returns nil when neither is available.
func newBuilder(mapping *asset.Mapping) (asset.Builder, error) {
	if script := viper.GetString(key.AssetsScript); script != "" {
		return asset.LoadLuaBuilder(scriptPath(script), mapping)
	}
	if mapping == nil {
		return nil, nil
	}
	return mapping, nil
}

// newTranscriptionService reads a prepared transcript when path is set and
// otherwise talks to the configured endpoint.
func newTranscriptionService(path string) transcript.Service {
	if path != "" {
		return transcript.File{Path: path}
	}

	token := os.Getenv(auth.EnvAPIKey)
	if token == "" {
		var err error
		if token, err = auth.APIKey(); err != nil {
			log.Warnf("read api key: %v", err)
		}
	}

	client := transcript.NewClient(transcript.Config{
		Endpoint: viper.GetString(key.TranscriptionEndpoint),
		Model:    viper.GetString(key.TranscriptionModel),
		Token:    token,
		Timeout:  time.Duration(viper.GetInt(key.TranscriptionTimeout)) * time.Second,
	})

	if viper.GetBool(key.TranscriptionCache) {
		return transcript.Cached{Service: client}
	}
	return client
}
