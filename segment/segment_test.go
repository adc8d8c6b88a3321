package segment

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/glossa-cli/glossa/asset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFind(t *testing.T) {
	Convey("Given non-overlapping segments", t, func() {
		segments := []Segment{
			{Start: 0, End: 2, Text: "hi", Sequence: []asset.Ref{"a", "b"}},
			{Start: 2.5, End: 5, Text: "there", Sequence: []asset.Ref{"c"}},
			{Start: 8, End: 9, Text: "you"},
		}

		Convey("Timestamps inside a window find it", func() {
			i, ok := Find(segments, 1)
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 0)

			i, ok = Find(segments, 8.5)
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 2)
		})

		Convey("Window bounds are inclusive", func() {
			i, _ := Find(segments, 2)
			So(i, ShouldEqual, 0)
			i, _ = Find(segments, 2.5)
			So(i, ShouldEqual, 1)
			i, _ = Find(segments, 5)
			So(i, ShouldEqual, 1)
		})

		Convey("Gaps and out of range timestamps find nothing", func() {
			for _, ts := range []float64{-1, 2.2, 6, 9.01, 100} {
				i, ok := Find(segments, ts)
				So(ok, ShouldBeFalse)
				So(i, ShouldEqual, -1)
			}
		})

		Convey("Every sampled timestamp matches the unique containing segment", func() {
			rng := rand.New(rand.NewSource(42))
			for n := 0; n < 500; n++ {
				ts := rng.Float64()*12 - 1

				want := -1
				for i, s := range segments {
					if s.Start <= ts && ts <= s.End {
						want = i
					}
				}

				got, ok := Find(segments, ts)
				So(got, ShouldEqual, want)
				So(ok, ShouldEqual, want >= 0)
			}
		})
	})

	Convey("Given overlapping segments", t, func() {
		segments := []Segment{
			{Start: 0, End: 1},
			{Start: 3, End: 6},
			{Start: 2, End: 5},
			{Start: 4, End: 7},
		}

		Convey("The lowest index wins on every call", func() {
			for n := 0; n < 3; n++ {
				i, ok := Find(segments, 4.5)
				So(ok, ShouldBeTrue)
				So(i, ShouldEqual, 1)
			}

			i, _ := Find(segments, 2.5)
			So(i, ShouldEqual, 2)
			i, _ = Find(segments, 6.5)
			So(i, ShouldEqual, 3)
		})
	})

	Convey("Given no segments", t, func() {
		_, ok := Find(nil, 1)
		So(ok, ShouldBeFalse)
	})
}

func TestSegment(t *testing.T) {
	Convey("Duration is the window length", t, func() {
		So(Segment{Start: 1.5, End: 4}.Duration(), ShouldEqual, 2.5)
	})
}

func TestValidate(t *testing.T) {
	Convey("Validate", t, func() {
		Convey("Accepts a well formed segment", func() {
			So(Validate(Segment{Start: 0, End: 1, Sequence: []asset.Ref{"a"}}), ShouldBeNil)
		})

		Convey("Reports an inverted window", func() {
			err := Validate(Segment{Start: 2, End: 2, Sequence: []asset.Ref{"a"}})
			So(errors.Is(err, ErrEmptyWindow), ShouldBeTrue)
		})

		Convey("Reports both problems at once", func() {
			err := Validate(Segment{Start: 3, End: 1})
			So(errors.Is(err, ErrEmptyWindow), ShouldBeTrue)
			So(errors.Is(err, ErrEmptySequence), ShouldBeTrue)
		})
	})

	Convey("Sanitize drops only unreachable windows", t, func() {
		kept, dropped := Sanitize([]Segment{
			{Start: 0, End: 1, Text: "ok"},
			{Start: 2, End: 1, Text: "inverted"},
			{Start: 3, End: 4, Text: "no clips"},
		})
		So(dropped, ShouldEqual, 1)
		So(kept, ShouldHaveLength, 2)
		So(kept[1].Text, ShouldEqual, "no clips")
	})
}
