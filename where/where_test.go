package where

import (
	"path/filepath"
	"testing"

	"github.com/glossa-cli/glossa/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config() honours the override variable", func() {
			t.Setenv(EnvConfigPath, "/tmp/glossa-test-config")
			So(Config(), ShouldEqual, "/tmp/glossa-test-config")
			So(lo.Must(filesystem.API().IsDir(Config())), ShouldBeTrue)
			So(Mapping(), ShouldEqual, filepath.Join("/tmp/glossa-test-config", "mapping.json"))
		})

		Convey("Directories are created on resolution", func() {
			for _, dir := range []string{Cache(), Logs(), Scripts(), Transcripts(), Temp()} {
				So(dir, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(dir)), ShouldBeTrue)
			}
		})

		Convey("Durations() lives in the cache directory", func() {
			So(filepath.Dir(Durations()), ShouldEqual, Cache())
		})
	})
}
