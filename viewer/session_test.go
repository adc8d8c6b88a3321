package viewer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glossa-cli/glossa/asset"
	"github.com/glossa-cli/glossa/controller"
	"github.com/glossa-cli/glossa/player"
	"github.com/glossa-cli/glossa/segment"
	"github.com/glossa-cli/glossa/sequence"
	"github.com/glossa-cli/glossa/transcript"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeVideo struct {
	mu       sync.Mutex
	calls    []string
	chapters []player.Chapter
	exited   chan struct{}
}

func newFakeVideo() *fakeVideo {
	return &fakeVideo{exited: make(chan struct{})}
}

func (v *fakeVideo) record(format string, args ...interface{}) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, fmt.Sprintf(format, args...))
	return nil
}

func (v *fakeVideo) Play(target string) error { return v.record("play %s", target) }
func (v *fakeVideo) SetRate(rate float64) error { return v.record("rate %v", rate) }
func (v *fakeVideo) SetPause(paused bool) error { return v.record("pause %v", paused) }
func (v *fakeVideo) Seek(seconds float64) error { return v.record("seek %v", seconds) }
func (v *fakeVideo) GetTimePos() (float64, error) {
	return 0, nil
}
func (v *fakeVideo) ShowText(text string, _ time.Duration) error {
	return v.record("osd %q", text)
}
func (v *fakeVideo) SetChapters(chapters []player.Chapter) error {
	v.mu.Lock()
	v.chapters = chapters
	v.mu.Unlock()
	return v.record("chapters %d", len(chapters))
}
func (v *fakeVideo) Socket() string { return "" }
func (v *fakeVideo) Wait() <-chan struct{} { return v.exited }
func (v *fakeVideo) Close() error { return nil }

func (v *fakeVideo) history() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.calls...)
}

type fakeService struct {
	result *transcript.Transcript
	err    error
}

func (s fakeService) Transcribe(context.Context, string) (*transcript.Transcript, error) {
	return s.result, s.err
}

type errorRecorder struct {
	mu     sync.Mutex
	errors []error
	loaded []int
}

func (r *errorRecorder) Transcribing(string) {}
func (r *errorRecorder) Position(float64, float64) {}
func (r *errorRecorder) Observe(controller.RunEvent) {}
func (r *errorRecorder) Loaded(_ string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = append(r.loaded, n)
}
func (r *errorRecorder) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func instantLoader() asset.Loader {
	return asset.LoaderFunc(func(context.Context, asset.Ref) (time.Duration, error) {
		return 0, nil
	})
}

func TestSessionLoad(t *testing.T) {
	Convey("Given a session over a fake player", t, func() {
		video := newFakeVideo()
		reporter := &errorRecorder{}
		mapping := asset.NewMapping(map[string]asset.Entry{asset.DefaultKey: {Ref: "clip"}})

		newSession := func(service transcript.Service, strict bool) *Session {
			return New(Options{
				Video:    video,
				Loader:   instantLoader(),
				Runner:   sequence.NewRunner(0.5, sequence.RestoreIfCurrent),
				Service:  service,
				Builder:  mapping,
				Reporter: reporter,
				Strict:   strict,
				Chapters: true,
				OSD:      true,
			})
		}

		Convey("A transcript is applied between pause and resume", func() {
			s := newSession(fakeService{result: &transcript.Transcript{Segments: []segment.Segment{
				{Start: 0, End: 1, Text: "hi"},
				{Start: 2, End: 3, Text: "yo", Sequence: []asset.Ref{"y"}},
			}}}, false)
			defer s.Close()

			So(s.Load(context.Background(), "/media/talk.mp4"), ShouldBeNil)

			So(video.history(), ShouldResemble, []string{
				"pause true",
				"seek 0",
				`osd ""`,
				"rate 1",
				`osd ""`,
				"rate 1",
				"chapters 2",
				"pause false",
			})
			So(reporter.loaded, ShouldResemble, []int{2})

			state := s.Controller().Snapshot()
			So(state.Segments[0].Sequence, ShouldResemble, []asset.Ref{"clip", "clip"})
			So(state.Segments[1].Sequence, ShouldResemble, []asset.Ref{"y"})
			So(video.chapters[1], ShouldResemble, player.Chapter{Title: "yo", Time: 2})
		})

		Convey("Time events drive the controller", func() {
			s := newSession(fakeService{result: &transcript.Transcript{Segments: []segment.Segment{
				{Start: 0, End: 1, Text: "hi"},
			}}}, false)
			defer s.Close()

			So(s.Load(context.Background(), "/media/talk.mp4"), ShouldBeNil)

			s.handleEvent(player.PropSpeed, 0.5)
			s.handleEvent(player.PropTimePos, nil)
			s.handleEvent(player.PropTimePos, 0.5)
			s.Controller().Wait()

			So(s.rate, ShouldEqual, 0.5)
			idx, ok := s.Controller().Snapshot().ActiveIndex.Get()
			So(ok, ShouldBeTrue)
			So(idx, ShouldEqual, 0)
			So(video.history(), ShouldContain, `osd "hi"`)
		})

		Convey("Strict mode drops empty windows", func() {
			s := newSession(fakeService{result: &transcript.Transcript{Segments: []segment.Segment{
				{Start: 1, End: 1, Text: "x"},
				{Start: 2, End: 3, Text: "y"},
			}}}, true)
			defer s.Close()

			So(s.Load(context.Background(), "/media/talk.mp4"), ShouldBeNil)
			So(s.Controller().Snapshot().Segments, ShouldHaveLength, 1)
		})

		Convey("A failed transcription leaves no segments and keeps playing", func() {
			s := newSession(fakeService{err: errors.New("backend down")}, false)
			defer s.Close()

			So(s.Load(context.Background(), "/media/talk.mp4"), ShouldBeNil)

			So(s.Controller().Snapshot().Segments, ShouldBeEmpty)
			So(reporter.errors, ShouldHaveLength, 1)
			So(reporter.errors[0].Error(), ShouldContainSubstring, "backend down")
			history := video.history()
			So(history[len(history)-1], ShouldEqual, "pause false")
		})

		Convey("Run returns when the player exits", func() {
			s := newSession(fakeService{result: &transcript.Transcript{}}, false)
			s.listener = player.NewEventListener("", nil)
			close(video.exited)

			done := make(chan error, 1)
			go func() { done <- s.Run(context.Background()) }()

			select {
			case err := <-done:
				So(err, ShouldBeNil)
			case <-time.After(2 * time.Second):
				So("run did not return", ShouldBeEmpty)
			}
		})
	})
}

func TestWatch(t *testing.T) {
	Convey("Given a watched file", t, func() {
		dir, err := os.MkdirTemp("", "watch")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "transcript.json")
		So(os.WriteFile(path, []byte("{}"), 0644), ShouldBeNil)

		changes := make(chan struct{}, 10)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- Watch(ctx, path, func() { changes <- struct{}{} })
		}()

		// give the watcher time to subscribe
		time.Sleep(100 * time.Millisecond)

		Convey("Bursts of writes trigger a single change", func() {
			for i := 0; i < 3; i++ {
				So(os.WriteFile(path, []byte(fmt.Sprintf(`{"n": %d}`, i)), 0644), ShouldBeNil)
			}
			So(os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644), ShouldBeNil)

			select {
			case <-changes:
			case <-time.After(2 * time.Second):
				So("no change noticed", ShouldBeEmpty)
			}

			select {
			case <-changes:
				So("change reported twice", ShouldBeEmpty)
			case <-time.After(3 * watchDebounce):
			}

			cancel()
			So(<-done, ShouldBeNil)
		})
	})
}
