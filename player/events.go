package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/glossa-cli/glossa/log"
	"github.com/samber/lo"
)

// EventCallback receives property changes (by property name) and other mpv
// events (by event name). Calls are made serially from one goroutine.
type EventCallback func(name string, data interface{})

// Observed properties.
const (
	PropTimePos    = "time-pos"
	PropSpeed      = "speed"
	PropPause      = "pause"
	PropEOFReached = "eof-reached"
)

// EventListener streams mpv property changes over a persistent connection.
type EventListener struct {
	socketPath string
	properties []string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	done      chan struct{}
}

// NewEventListener creates a listener for the given socket. With no
// properties it observes time-pos, speed, pause and eof-reached.
func NewEventListener(socketPath string, callback EventCallback, properties ...string) *EventListener {
	if len(properties) == 0 {
		properties = []string{PropTimePos, PropSpeed, PropPause, PropEOFReached}
	}
	return &EventListener{
		socketPath: socketPath,
		properties: properties,
		callback:   callback,
		done:       make(chan struct{}),
	}
}

// Start connects and subscribes. mpv ties observers to the connection that
// created them, so the subscriptions are sent on the listening connection.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range el.properties {
		if err := writeCommand(conn, requestID.Add(1), []interface{}{"observe_property", i + 1, name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	el.done = make(chan struct{})

	go el.readLoop(conn)

	log.WithFields(log.Fields{
		"socket":     el.socketPath,
		"properties": el.properties,
	}).Info("mpv event listener started")
	return nil
}

// Stop closes the connection and waits for the read loop to exit.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}
	el.listening = false
	conn, done := el.conn, el.done
	el.mu.Unlock()

	conn.Close()
	<-done
}

// Done is closed when the read loop exits, either by Stop or because mpv went away.
func (el *EventListener) Done() <-chan struct{} {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.done
}

// readLoop reads newline-delimited events until the connection is closed.
func (el *EventListener) readLoop(conn net.Conn) {
	defer close(el.done)
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		el.processEvent(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warnf("event listener read error: %v", err)
	}
}

// processEvent parses and dispatches a single mpv event line. Replies to the
// observe commands carry no event and are dropped.
func (el *EventListener) processEvent(line []byte) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil || msg.Event == "" || el.callback == nil {
		return
	}

	switch msg.Event {
	case "property-change":
		if msg.Name != "" && lo.Contains(el.properties, msg.Name) {
			el.callback(msg.Name, msg.Data)
		}
	default:
		// e.g. "playback-restart", "end-file"
		el.callback(msg.Event, nil)
	}
}
