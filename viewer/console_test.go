package viewer

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConsoleCaptions(t *testing.T) {
	Convey("Given console captions with a fixed width", t, func() {
		var out bytes.Buffer
		captions := &ConsoleCaptions{Out: &out, Width: func() int { return 10 }}

		Convey("Text is wrapped to the width", func() {
			captions.Publish("hello there world")
			So(out.String(), ShouldEqual, "hello\nthere\nworld\n")
		})

		Convey("A repeated caption is printed once until cleared", func() {
			captions.Publish("hi")
			captions.Publish("hi")
			So(out.String(), ShouldEqual, "hi\n")

			captions.Clear()
			captions.Publish("hi")
			So(out.String(), ShouldEqual, "hi\nhi\n")
		})
	})
}
