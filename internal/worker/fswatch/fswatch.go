// Package fswatch watches the workspace tree for out-of-band file
// changes (an external editor, a checkout, a generated-file rewrite)
// and republishes them as typed events for the git seam and the
// recovery flusher to react to. It wraps rjeczalik/notify rather than
// walking directories itself.
package fswatch

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rjeczalik/notify"
)

// Op is the bitmask of filesystem operations an Event can carry.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Event is one change notification, relative to nothing (Path is
// always absolute, matching notify's own convention).
type Event struct {
	Path string
	Op   Op
}

// ErrWatcherClosed reports use of a Watcher after Close. None of
// Watcher's methods return it: a second Close returns nil.
var ErrWatcherClosed = errors.New("fswatch: watcher is closed")

// IgnoreFunc reports whether a path should be suppressed before it
// ever reaches the Events channel.
type IgnoreFunc func(path string) bool

// DefaultIgnore skips dotfiles/dotdirs and common build output
// directories, the same coarse filter the git-status poller would
// otherwise have to re-apply itself.
func DefaultIgnore(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == "" {
			continue
		}
		if part[0] == '.' && part != "." && part != ".." {
			return true
		}
		if part == "node_modules" || part == "vendor" {
			return true
		}
	}
	return false
}

// Watcher republishes notify's raw events as Events, filtered by an
// IgnoreFunc, on a buffered channel sized to tolerate a burst (a git
// checkout touching hundreds of files) without blocking the notify
// goroutine.
type Watcher struct {
	events chan Event
	raw    chan notify.EventInfo
	ignore IgnoreFunc

	mu     sync.Mutex
	closed bool
	done   chan struct{}

	totalEvents int64
	totalDrops  int64
}

// NewWatcher starts watching root (and, per notify's "..." suffix
// convention, everything beneath it) and returns a Watcher streaming
// filtered events on Events(). bufSize non-positive defaults to 256.
func NewWatcher(root string, ignore IgnoreFunc, bufSize int) (*Watcher, error) {
	if bufSize <= 0 {
		bufSize = 256
	}
	if ignore == nil {
		ignore = DefaultIgnore
	}

	raw := make(chan notify.EventInfo, bufSize)
	if err := notify.Watch(filepath.Join(root, "..."), raw, notify.All); err != nil {
		return nil, err
	}

	w := &Watcher{
		events: make(chan Event, bufSize),
		raw:    raw,
		ignore: ignore,
		done:   make(chan struct{}),
	}
	go w.processLoop()
	return w, nil
}

// Events returns the filtered event stream.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops the underlying notify watch and the process loop.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	notify.Stop(w.raw)
	return nil
}

// Stats reports how many events were forwarded and how many were
// dropped because Events() wasn't being drained fast enough.
type Stats struct {
	TotalEvents int64
	TotalDrops  int64
}

func (w *Watcher) Stats() Stats {
	return Stats{
		TotalEvents: atomic.LoadInt64(&w.totalEvents),
		TotalDrops:  atomic.LoadInt64(&w.totalDrops),
	}
}

func (w *Watcher) processLoop() {
	for {
		select {
		case <-w.done:
			return
		case info, ok := <-w.raw:
			if !ok {
				return
			}
			w.handle(info)
		}
	}
}

func (w *Watcher) handle(info notify.EventInfo) {
	path := info.Path()
	if w.ignore(path) {
		return
	}

	op := convertEvent(info.Event())
	if op == 0 {
		return
	}

	select {
	case w.events <- Event{Path: path, Op: op}:
		atomic.AddInt64(&w.totalEvents, 1)
	default:
		atomic.AddInt64(&w.totalDrops, 1)
	}
}

func convertEvent(e notify.Event) Op {
	switch e {
	case notify.Create:
		return OpCreate
	case notify.Write:
		return OpWrite
	case notify.Remove:
		return OpRemove
	case notify.Rename:
		return OpRename
	default:
		return 0
	}
}
