// Package plugin is the script-host seam: a single goroutine owning a
// gopher-lua state, fed typed calls over a channel so every other
// goroutine stays off the unsafe-for-concurrent-use LState. A script
// only ever reaches the rest of the editor through Invoke's decoration/
// command result, never by touching buffer state directly.
package plugin

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"

	"github.com/forge-editor/forge/internal/decoration"
	"github.com/forge-editor/forge/internal/input"
)

// ErrHostClosed is returned for any call submitted after Close.
var ErrHostClosed = errors.New("plugin: host is closed")

// call is one operation to run on the owned LState.
type call struct {
	fn     func(L *lua.LState) (Result, error)
	result chan callResult
}

type callResult struct {
	value Result
	err   error
}

// Result is what a script call hands back to its caller: zero or more
// commands to dispatch (the only way a script affects the buffer) and
// zero or more decorations to publish under its own layer.
type Result struct {
	Commands    []input.Command
	Decorations []decoration.Decoration
}

// Host serializes every Lua operation through Run's goroutine onto
// a single owning goroutine for its LState.
type Host struct {
	L     *lua.LState
	queue chan *call

	closed    atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewHost returns a Host wrapping a fresh LState with the given queue
// depth (a non-positive size defaults to 64 pending calls).
func NewHost(queueSize int) *Host {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Host{
		L:     lua.NewState(),
		queue: make(chan *call, queueSize),
		done:  make(chan struct{}),
	}
}

// Invoke submits fn to run on the owned LState and blocks for its
// result or ctx's cancellation, whichever comes first.
func (h *Host) Invoke(ctx context.Context, fn func(L *lua.LState) (Result, error)) (Result, error) {
	if h.closed.Load() {
		return Result{}, ErrHostClosed
	}

	c := &call{fn: fn, result: make(chan callResult, 1)}
	select {
	case h.queue <- c:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-h.done:
		return Result{}, ErrHostClosed
	}

	select {
	case r := <-c.result:
		return r.value, r.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Run drains queued calls on the goroutine that owns L until ctx is
// canceled or Close is called. It must be the only goroutine that
// ever touches h.L.
func (h *Host) Run(ctx context.Context) error {
	defer h.L.Close()
	for {
		select {
		case <-ctx.Done():
			h.drain(ctx.Err())
			return ctx.Err()
		case <-h.done:
			h.drain(ErrHostClosed)
			return nil
		case c, ok := <-h.queue:
			if !ok {
				return nil
			}
			value, err := h.execute(c)
			select {
			case c.result <- callResult{value: value, err: err}:
			default:
			}
		}
	}
}

// execute runs one call with panic recovery, since a misbehaving
// script must not take the whole host goroutine down with it.
func (h *Host) execute(c *call) (value Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			case string:
				err = errors.New(v)
			default:
				err = errors.New("plugin: script panic")
			}
		}
	}()
	return c.fn(h.L)
}

func (h *Host) drain(err error) {
	for {
		select {
		case c, ok := <-h.queue:
			if !ok {
				return
			}
			select {
			case c.result <- callResult{err: err}:
			default:
			}
		default:
			return
		}
	}
}

// Close stops Run's loop and rejects further Invoke calls. It does
// not close the LState itself; Run's goroutine does that after
// returning, since gopher-lua's Close must also run on the host
// goroutine like everything else.
func (h *Host) Close() {
	h.closeOnce.Do(func() {
		h.closed.Store(true)
		close(h.done)
	})
}
