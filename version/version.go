// Package version provides release discovery and version comparison.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/glossa-cli/glossa/constant"
	"github.com/glossa-cli/glossa/filesystem"
	"github.com/glossa-cli/glossa/network"
	"github.com/glossa-cli/glossa/util"
	"github.com/glossa-cli/glossa/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the endpoint queried for the latest published release.
var ReleasesURL = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

var releaseCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the most recent published release version without the "v" prefix.
// Results are cached for two days.
func Latest(ctx context.Context) (string, error) {
	cached, expired, err := releaseCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err = json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	_ = releaseCacher.Set(latest)
	return latest, nil
}
