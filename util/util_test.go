package util

import (
	"testing"

	"github.com/glossa-cli/glossa/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("my  talk.mp4"), ShouldEqual, "my_talk.mp4")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "segment", "segments"), ShouldEqual, "1 segment")
		So(Quantify(0, "segment", "segments"), ShouldEqual, "0 segments")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("videos/lecture.mp4"), ShouldEqual, "lecture")
		So(FileStem("lecture"), ShouldEqual, "lecture")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(0.5, 0.1, 1.0), ShouldEqual, 0.5)
		So(Clamp(-1.0, 0.1, 1.0), ShouldEqual, 0.1)
		So(Clamp(3, 0, 2), ShouldEqual, 2)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a directory with a file", t, func() {
		fs := filesystem.API()
		lo.Must0(fs.MkdirAll("/scratch/a", 0755))
		lo.Must0(fs.WriteFile("/scratch/a/file", []byte("x"), 0644))

		Convey("Delete removes it recursively", func() {
			So(Delete("/scratch"), ShouldBeNil)
			So(lo.Must(fs.Exists("/scratch")), ShouldBeFalse)
		})
	})
}
