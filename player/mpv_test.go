package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glossa-cli/glossa/asset"
	"github.com/glossa-cli/glossa/segment"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers JSON-IPC commands on a unix socket the way mpv does.
type fakeMPV struct {
	socket   string
	listener net.Listener

	mu       sync.Mutex
	commands [][]interface{}
}

func newFakeMPV(t *testing.T) *fakeMPV {
	dir, err := os.MkdirTemp("", "mpv")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	socket := filepath.Join(dir, "ipc.sock")
	listener, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = listener.Close() })

	f := &fakeMPV{socket: socket, listener: listener}
	go f.serve()
	return f
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	defer conn.Close()

	send := func(v interface{}) {
		payload, _ := json.Marshal(v)
		_, _ = conn.Write(append(payload, '\n'))
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			return
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		f.mu.Unlock()

		reply := map[string]interface{}{"request_id": cmd.RequestID, "error": "success"}

		switch cmd.Command[0] {
		case "get_property":
			switch cmd.Command[1] {
			case "time-pos":
				send(map[string]interface{}{"event": "playback-restart"})
				reply["data"] = 12.5
			case "duration":
				reply["data"] = 3.0
			default:
				reply["error"] = "property unavailable"
			}
			send(reply)
		case "observe_property":
			send(reply)
			if cmd.Command[2] == "time-pos" {
				for _, ts := range []float64{1, 1.5, 2} {
					send(map[string]interface{}{"event": "property-change", "id": cmd.Command[1], "name": "time-pos", "data": ts})
				}
				send(map[string]interface{}{"event": "property-change", "id": 99, "name": "volume", "data": 50})
				send(map[string]interface{}{"event": "end-file"})
			}
		default:
			send(reply)
		}
	}
}

func (f *fakeMPV) sent(name string) [][]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lo.Filter(f.commands, func(c []interface{}, _ int) bool {
		return c[0] == name
	})
}

func TestArguments(t *testing.T) {
	Convey("Given clip window options", t, func() {
		m := NewMPV(Options{Title: "glossa\nclips", Background: "#101010", Idle: true, KeepOpen: true})
		m.socketPath = "/tmp/test.sock"

		args := m.arguments("clip.webm")

		So(args, ShouldContain, "--input-ipc-server=/tmp/test.sock")
		So(args, ShouldContain, "--title=glossa clips")
		So(args, ShouldContain, "--background=#101010")
		So(args, ShouldContain, "--idle=yes")
		So(args, ShouldContain, "--keep-open=yes")
		So(args[len(args)-2:], ShouldResemble, []string{"--", "clip.webm"})
	})

	Convey("Given video options without a target", t, func() {
		m := NewMPV(Options{Paused: true})
		args := m.arguments("")

		So(args, ShouldContain, "--idle=once")
		So(args, ShouldContain, "--pause=yes")
		So(args, ShouldNotContain, "--")
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("Local paths are cleaned", t, func() {
		target, err := sanitizeMediaTarget(" clips/./a.webm ")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "clips/a.webm")
	})

	Convey("Web and file URLs are accepted", t, func() {
		for _, u := range []string{"https://example.com/a.mp4", "file:///tmp/a.mp4"} {
			_, err := sanitizeMediaTarget(u)
			So(err, ShouldBeNil)
		}
	})

	Convey("Flags, control characters and odd schemes are rejected", t, func() {
		for _, bad := range []string{"", "--script=x.lua", "a\nb", "ytdl://x"} {
			_, err := sanitizeMediaTarget(bad)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestIPC(t *testing.T) {
	Convey("Given a running mpv", t, func() {
		fake := newFakeMPV(t)
		m := NewMPV(Options{})
		m.socketPath = fake.socket

		Convey("SetRate writes the speed property", func() {
			So(m.SetRate(0.5), ShouldBeNil)

			sets := fake.sent("set_property")
			So(sets, ShouldHaveLength, 1)
			So(sets[0][1], ShouldEqual, "speed")
			So(sets[0][2], ShouldEqual, 0.5)
		})

		Convey("SetRate refuses non-positive rates", func() {
			So(m.SetRate(0), ShouldNotBeNil)
			So(fake.sent("set_property"), ShouldBeEmpty)
		})

		Convey("Broadcast events before the reply are skipped", func() {
			pos, err := m.GetTimePos()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 12.5)
		})

		Convey("mpv errors are returned without retrying", func() {
			_, err := m.getFloatProperty("bogus")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "property unavailable")
			So(fake.sent("get_property"), ShouldHaveLength, 1)
		})

		Convey("Clearing the OSD sends a minimal duration", func() {
			So(m.ShowText("", time.Second), ShouldBeNil)
			So(m.ShowText("HELLO", 2*time.Second), ShouldBeNil)

			shown := fake.sent("show-text")
			So(shown, ShouldHaveLength, 2)
			So(shown[0][2], ShouldEqual, 1)
			So(shown[1][1], ShouldEqual, "HELLO")
			So(shown[1][2], ShouldEqual, 2000)
		})

		Convey("Chapters are written as the chapter list", func() {
			So(m.SetChapters([]Chapter{{Title: "hi", Time: 1}}), ShouldBeNil)

			sets := fake.sent("set_property")
			So(sets, ShouldHaveLength, 1)
			So(sets[0][1], ShouldEqual, "chapter-list")
		})

		Convey("The clip window probes the loaded duration", func() {
			w := &ClipWindow{mpv: m}
			d, err := w.Probe(asset.Ref("a.webm"))
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 3*time.Second)
		})
	})
}

func TestEventListener(t *testing.T) {
	Convey("Given a listener observing time-pos", t, func() {
		fake := newFakeMPV(t)

		var (
			mu     sync.Mutex
			times  []float64
			events []string
		)
		listener := NewEventListener(fake.socket, func(name string, data interface{}) {
			mu.Lock()
			defer mu.Unlock()
			if name == PropTimePos {
				times = append(times, data.(float64))
				return
			}
			events = append(events, name)
		}, PropTimePos)

		So(listener.Start(), ShouldBeNil)

		Convey("Updates arrive in order and unobserved properties are dropped", func() {
			So(func() bool {
				deadline := time.Now().Add(2 * time.Second)
				for time.Now().Before(deadline) {
					mu.Lock()
					n := len(events)
					mu.Unlock()
					if n > 0 {
						return true
					}
					time.Sleep(5 * time.Millisecond)
				}
				return false
			}(), ShouldBeTrue)

			mu.Lock()
			defer mu.Unlock()
			So(times, ShouldResemble, []float64{1, 1.5, 2})
			So(events, ShouldResemble, []string{"end-file"})
		})

		Reset(func() {
			listener.Stop()
		})
	})
}

func TestChaptersOf(t *testing.T) {
	Convey("Segments become chapters at their start", t, func() {
		chapters := ChaptersOf([]segment.Segment{
			{Start: 0, End: 1, Text: "hello"},
			{Start: 2, End: 3},
		})

		So(chapters, ShouldResemble, []Chapter{
			{Title: "hello", Time: 0},
			{Title: "Segment 2", Time: 2},
		})
	})
}
