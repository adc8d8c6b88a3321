package player

import (
	"crypto/rand"
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/glossa-cli/glossa/constant"
	"github.com/glossa-cli/glossa/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// Options configure how an mpv process is launched.
type Options struct {
	Title string

	// Background is the window colour used when nothing is drawn, e.g. "#000000".
	Background string

	// Idle keeps mpv alive without a file, used by the clip window.
	Idle bool

	// KeepOpen holds the last frame when a file ends.
	KeepOpen bool

	// Paused starts playback suspended.
	Paused bool
}

// MPV implements Player using mpv's JSON-IPC protocol.
type MPV struct {
	options    Options
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	mu         sync.Mutex    // serializes IPC round trips
}

// NewMPV creates a player; the process is started by the first Play.
func NewMPV(options Options) *MPV {
	return &MPV{
		options: options,
		exited:  make(chan struct{}),
	}
}

// Play starts playback of target. If mpv is already running the file is
// loaded into the existing instance. An empty target is accepted only for
// idle players.
func (m *MPV) Play(target string) error {
	var safe string
	if target != "" || !m.options.Idle {
		var err error
		if safe, err = sanitizeMediaTarget(target); err != nil {
			return fmt.Errorf("invalid media target: %w", err)
		}
	}

	if m.IsRunning() {
		if safe == "" {
			return nil
		}
		return m.LoadFile(safe)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes))
	}

	m.cmd = exec.Command("mpv", m.arguments(safe)...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// arguments builds the command line. The user's mpv.conf is left in charge
// of video output and decoding.
func (m *MPV) arguments(target string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
	}

	if title := sanitizeTitle(m.options.Title); title != "" {
		args = append(args,
			fmt.Sprintf("--force-media-title=%s", title),
			fmt.Sprintf("--title=%s", title),
		)
	}

	if m.options.Background != "" {
		args = append(args, fmt.Sprintf("--background=%s", m.options.Background))
	}

	if m.options.Idle {
		args = append(args, "--idle=yes")
	} else {
		args = append(args, "--idle=once")
	}

	if m.options.KeepOpen {
		args = append(args, "--keep-open=yes")
	}

	if m.options.Paused {
		args = append(args, "--pause=yes")
	}

	if target != "" {
		args = append(args, "--", target)
	}

	return args
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// GetTimePos returns the current playback position in seconds.
func (m *MPV) GetTimePos() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// GetDuration returns the duration of the loaded file in seconds.
func (m *MPV) GetDuration() (float64, error) {
	return m.getFloatProperty("duration")
}

// SetRate sets the playback speed.
func (m *MPV) SetRate(rate float64) error {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("invalid rate %v", rate)
	}
	return m.Set("speed", rate)
}

// SetPause suspends or resumes playback.
func (m *MPV) SetPause(paused bool) error {
	return m.Set("pause", paused)
}

// TogglePause flips the pause state.
func (m *MPV) TogglePause() error {
	_, err := m.sendCommand([]interface{}{"cycle", "pause"})
	return err
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// LoadFile replaces the current file.
func (m *MPV) LoadFile(target string) error {
	_, err := m.sendCommand([]interface{}{"loadfile", target, "replace"})
	return err
}

// Stop unloads the current file without quitting.
func (m *MPV) Stop() error {
	_, err := m.sendCommand([]interface{}{"stop"})
	return err
}

// ShowText displays text on the OSD for d. Empty text clears it.
func (m *MPV) ShowText(text string, d time.Duration) error {
	ms := d.Milliseconds()
	if text == "" {
		ms = 1
	}
	_, err := m.sendCommand([]interface{}{"show-text", text, ms})
	return err
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" || m.cmd == nil {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Set a property.
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a target is safe to pass to mpv.
// Targets come from transcripts, mapping files and scripts.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty target")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in target")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("target must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

// sanitizeTitle flattens a title onto one line.
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
