// Package terminal defines the ANSI-grid cell type and the request/
// reply contract a PTY-owning collaborator feeds. Spawning and reading
// the actual pseudo-terminal is left to a Session the host supplies
// (backed by creack/pty or a platform-specific syscall shim); this
// package owns the grid representation and the channel plumbing a
// terminal panel renders from, not process lifecycle.
package terminal

import "context"

// CellAttr is a bitmask of the text attributes a single grid cell can
// carry.
type CellAttr uint16

const (
	AttrNone      CellAttr = 0
	AttrBold      CellAttr = 1 << iota
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrDim
)

// Has reports whether attr is set.
func (a CellAttr) Has(attr CellAttr) bool {
	return a&attr != 0
}

// Color is a packed 24-bit color plus an optional palette index (-1
// means "use RGB", matching how a 256-color ANSI stream still needs to
// fall back to indexed colors for some sequences).
type Color struct {
	R, G, B uint8
	Index   int16
}

// Cell is one character position of the terminal grid.
type Cell struct {
	Rune       rune
	Width      uint8
	Foreground Color
	Background Color
	Attrs      CellAttr
}

// Grid is a full-screen snapshot: Cells[y][x] addresses row y, column
// x, both zero-based. A snapshot (not a diff) is republished each
// time, since a VT100 parser's state (scroll regions, alternate
// screen, wide-char shifts) is cheaper to flatten once per update than
// to keep incrementally synced with a renderer.
type Grid struct {
	Cols, Rows int
	Cells      [][]Cell
	CursorX    int
	CursorY    int
	CursorOn   bool
	Title      string
}

// RequestKind enumerates the operations a terminal session accepts.
type RequestKind int

const (
	RequestWrite RequestKind = iota
	RequestResize
	RequestClose
)

// Request is one operation against a named terminal session.
type Request struct {
	Kind      RequestKind
	SessionID string
	Input     []byte
	Cols, Rows int
}

// Reply carries either a fresh Grid snapshot (published any time the
// PTY produces output) or a session-lifecycle notice.
type Reply struct {
	SessionID string
	Grid      *Grid
	ExitCode  int
	Closed    bool
	Err       error
}

// Session is the process boundary: a host supplies one backed by a
// real PTY plus a VT100 parser. This package never spawns a shell
// itself.
type Session interface {
	ID() string
	Write(data []byte) (int, error)
	Resize(cols, rows int) error
	Close() error
	// Updates streams a Grid snapshot each time the PTY produces output
	// or the session closes (in which case the final send sets
	// Reply.Closed and the channel is then closed by the Session).
	Updates() <-chan Reply
}

// Client multiplexes Requests to whichever Session they name and fans
// every Session's Updates back out on one Replies channel, the same
// shape worker.Seam expects of every collaborator.
type Client struct {
	Requests chan Request
	Replies  chan Reply

	sessions map[string]Session
}

// NewClient returns a Client with no sessions attached; a host adds
// them via Attach after spawning a real PTY-backed Session.
func NewClient() *Client {
	return &Client{
		Requests: make(chan Request, 16),
		Replies:  make(chan Reply, 16),
		sessions: make(map[string]Session),
	}
}

// Attach registers a live session so Requests naming its ID are
// routed to it and its Updates are merged into Replies.
func (c *Client) Attach(ctx context.Context, s Session) {
	c.sessions[s.ID()] = s
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case reply, ok := <-s.Updates():
				if !ok {
					return
				}
				select {
				case c.Replies <- reply:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

// Run dispatches Requests to their named Session until ctx is
// canceled. A request naming an unattached session id is dropped with
// an error reply rather than silently ignored.
func (c *Client) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-c.Requests:
			if !ok {
				return nil
			}
			c.dispatch(ctx, req)
		}
	}
}

func (c *Client) dispatch(ctx context.Context, req Request) {
	s, ok := c.sessions[req.SessionID]
	if !ok {
		c.reply(ctx, Reply{SessionID: req.SessionID, Err: ErrUnknownSession})
		return
	}

	var err error
	switch req.Kind {
	case RequestWrite:
		_, err = s.Write(req.Input)
	case RequestResize:
		err = s.Resize(req.Cols, req.Rows)
	case RequestClose:
		err = s.Close()
		delete(c.sessions, req.SessionID)
	}
	if err != nil {
		c.reply(ctx, Reply{SessionID: req.SessionID, Err: err})
	}
}

func (c *Client) reply(ctx context.Context, r Reply) {
	select {
	case c.Replies <- r:
	case <-ctx.Done():
	}
}
