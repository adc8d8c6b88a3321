package asset

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glossa-cli/glossa/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestMapping(t *testing.T) {
	Convey("Given a mapping file with a default entry", t, func() {
		lo.Must0(filesystem.API().WriteFile("/clips/mapping.json", []byte(`{
			"a": "a.glb",
			"B": {"path": "/abs/b.glb", "duration": 1.5},
			"default": "rest.glb"
		}`), 0644))

		m, err := LoadMapping("/clips/mapping.json")
		So(err, ShouldBeNil)
		So(m.Len(), ShouldEqual, 3)

		Convey("Lookup is case insensitive", func() {
			e, ok := m.Lookup('A')
			So(ok, ShouldBeTrue)
			So(e.Ref, ShouldEqual, Ref("/clips/a.glb"))

			e, _ = m.Lookup('b')
			So(e.Ref, ShouldEqual, Ref("/abs/b.glb"))
		})

		Convey("Unknown characters fall back to the default", func() {
			e, ok := m.Lookup('z')
			So(ok, ShouldBeTrue)
			So(e.Ref, ShouldEqual, Ref("/clips/rest.glb"))
		})

		Convey("Build trims the text and keeps one clip per character", func() {
			refs, err := m.Build("  ab a ")
			So(err, ShouldBeNil)
			So(refs, ShouldResemble, []Ref{"/clips/a.glb", "/abs/b.glb", "/clips/rest.glb", "/clips/a.glb"})
		})

		Convey("Explicit durations are exposed", func() {
			d, ok := m.Duration("/abs/b.glb")
			So(ok, ShouldBeTrue)
			So(d, ShouldEqual, 1500*time.Millisecond)

			_, ok = m.Duration("/clips/a.glb")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a mapping without a default", t, func() {
		m := NewMapping(map[string]Entry{"h": {Ref: "h.glb"}})

		Convey("Unmapped characters fail the build", func() {
			_, err := m.Build("hi")
			So(errors.Is(err, ErrNoClip), ShouldBeTrue)
		})
	})

	Convey("Given a malformed mapping file", t, func() {
		lo.Must0(filesystem.API().WriteFile("/clips/broken.json", []byte(`{"a": 1}`), 0644))

		_, err := LoadMapping("/clips/broken.json")
		So(err, ShouldNotBeNil)
	})
}

func TestLuaBuilder(t *testing.T) {
	Convey("Given a script defining Sequence", t, func() {
		lo.Must0(filesystem.API().WriteFile("/scripts/reverse.lua", []byte(`
function Sequence(text, mapping)
  local out = {}
  for i = #text, 1, -1 do
    local ch = text:sub(i, i):upper()
    out[#out + 1] = mapping[ch] or mapping["default"]
  end
  return out
end
`), 0644))

		mapping := NewMapping(map[string]Entry{
			"a":        {Ref: "a.glb"},
			"b":        {Ref: "b.glb"},
			DefaultKey: {Ref: "x.glb"},
		})

		builder, err := LoadLuaBuilder("/scripts/reverse.lua", mapping)
		So(err, ShouldBeNil)
		defer builder.Close()

		So(builder.Name(), ShouldEqual, "reverse")

		Convey("Build returns the script's refs", func() {
			refs, err := builder.Build(" abc ")
			So(err, ShouldBeNil)
			So(refs, ShouldResemble, []Ref{"x.glb", "b.glb", "a.glb"})
		})
	})

	Convey("Given a script without Sequence", t, func() {
		lo.Must0(filesystem.API().WriteFile("/scripts/empty.lua", []byte(`local x = 1`), 0644))

		_, err := LoadLuaBuilder("/scripts/empty.lua", nil)
		So(err, ShouldNotBeNil)
	})

	Convey("Given a script returning non-strings", t, func() {
		lo.Must0(filesystem.API().WriteFile("/scripts/numbers.lua", []byte(`
function Sequence(text) return {1, 2} end
`), 0644))

		builder, err := LoadLuaBuilder("/scripts/numbers.lua", nil)
		So(err, ShouldBeNil)
		defer builder.Close()

		_, err = builder.Build("hi")
		So(err, ShouldNotBeNil)
	})
}

type presenterRecorder struct {
	mu     sync.Mutex
	shown  []Ref
	hidden int
	probe  time.Duration
	probes int
}

func (p *presenterRecorder) Show(_ context.Context, ref Ref) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = append(p.shown, ref)
	return nil
}

func (p *presenterRecorder) Hide() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hidden++
	return nil
}

type probingPresenter struct {
	*presenterRecorder
}

func (p probingPresenter) Probe(Ref) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probes++
	if p.probe == 0 {
		return 0, errors.New("no duration")
	}
	return p.probe, nil
}

func TestClipLoader(t *testing.T) {
	Convey("Given a presenter that cannot probe", t, func() {
		presenter := &presenterRecorder{}
		mapping := NewMapping(map[string]Entry{
			"a": {Ref: "a.glb", Duration: 0.02},
		})
		loader := NewClipLoader(presenter, mapping, nil, 10*time.Millisecond)

		Convey("Declared durations win", func() {
			d, err := loader.Load(context.Background(), "a.glb")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 20*time.Millisecond)
			So(presenter.shown, ShouldResemble, []Ref{"a.glb"})
			So(presenter.hidden, ShouldEqual, 1)
		})

		Convey("Other clips use the fallback", func() {
			d, err := loader.Load(context.Background(), "other.glb")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 10*time.Millisecond)
		})

		Convey("Cancellation ends the clip early and still hides it", func() {
			long := NewClipLoader(presenter, nil, nil, time.Hour)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := long.Load(ctx, "slow.glb")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(presenter.hidden, ShouldEqual, 1)
		})
	})

	Convey("Given a probing presenter and a duration cache", t, func() {
		presenter := probingPresenter{&presenterRecorder{probe: 15 * time.Millisecond}}
		cache := NewDurationCache("/cache/durations.json")
		loader := NewClipLoader(presenter, nil, cache, time.Hour)

		Convey("The probed duration is used and cached", func() {
			d, err := loader.Load(context.Background(), "p.glb")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 15*time.Millisecond)

			cached, ok := cache.Get("p.glb").Get()
			So(ok, ShouldBeTrue)
			So(cached, ShouldEqual, 15*time.Millisecond)

			_, err = loader.Load(context.Background(), "p.glb")
			So(err, ShouldBeNil)
			So(presenter.probes, ShouldEqual, 1)
		})
	})

	Convey("The zero fallback becomes the default duration", t, func() {
		loader := NewClipLoader(LogPresenter{}, nil, nil, 0)
		So(loader.fallback, ShouldEqual, DefaultDuration)
	})
}
