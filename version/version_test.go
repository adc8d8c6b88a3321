package version

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glossa-cli/glossa/constant"
	"github.com/glossa-cli/glossa/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCompare(t *testing.T) {
	Convey("When comparing versions", t, func() {
		Convey("Major, minor and patch are compared in order", func() {
			So(comparison(Compare("1.0.0", "0.9.9")), ShouldEqual, 1)
			So(comparison(Compare("0.3.1", "0.3.2")), ShouldEqual, -1)
			So(comparison(Compare("v0.3.0", "0.3.0")), ShouldEqual, 0)
		})

		Convey("Malformed versions are rejected", func() {
			_, err := Compare("latest", "0.3.0")
			So(err, ShouldNotBeNil)
		})

		Convey("Newer is strict", func() {
			newer, err := Newer("0.3.0", "0.3.0")
			So(err, ShouldBeNil)
			So(newer, ShouldBeFalse)

			newer, err = Newer("0.4.0", "0.3.0")
			So(err, ShouldBeNil)
			So(newer, ShouldBeTrue)
		})
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a release endpoint", t, func() {
		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			_, _ = w.Write([]byte(`{"tag_name": "v99.0.0"}`))
		}))
		defer server.Close()

		previous := ReleasesURL
		ReleasesURL = server.URL
		defer func() { ReleasesURL = previous }()

		Convey("The tag is returned without prefix and cached", func() {
			latest, err := Latest(context.Background())
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "99.0.0")

			latest, err = Latest(context.Background())
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "99.0.0")
			So(hits, ShouldEqual, 1)

			var out bytes.Buffer
			Notify(context.Background(), &out)
			So(out.String(), ShouldContainSubstring, "99.0.0")
			So(strings.Contains(out.String(), constant.Repository), ShouldBeTrue)
		})
	})
}

func comparison(comp int, _ error) int {
	return comp
}
