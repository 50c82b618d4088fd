package gpu

// CursorStyle selects how the caret is drawn.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
	CursorHidden
)

// EventType identifies the kind of input event a Backend delivers.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	EventFocus
)

// Key enumerates the special keys the input layer needs to
// distinguish from a plain rune. Ctrl-letter combinations are carried
// as KeyRune + ModCtrl rather than their own constants, since the
// command resolver (internal/input) dispatches on (Key, Rune, Mod)
// tuples rather than a flat alphabet of Ctrl-X constants.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// ModMask is a bitset of held modifier keys.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether the mask contains mod.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton enumerates mouse button/wheel state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Event is a single input event delivered by PollEvent.
type Event struct {
	Type EventType

	Key  Key
	Rune rune
	Mod  ModMask

	MouseX, MouseY int
	MouseButton    MouseButton

	Width, Height int

	Focused bool

	PasteText string
}

// Frame is everything a Backend needs to present one rendered frame:
// the rect and glyph-run streams (in paint order — callers append
// lower z-index layers first) and where, if anywhere, the caret
// should be drawn.
type Frame struct {
	Rects      []Rect
	GlyphRuns  []GlyphRun
	CursorAt   Point
	CursorShow bool
	Cursor     CursorStyle
}

// Backend is the presentation surface the render phase drives: init/
// shutdown lifecycle, frame presentation, and the input event stream.
// internal/render depends only on this interface, never on a concrete
// backend, so the frame driver is testable against a recording fake.
type Backend interface {
	Init() error
	Shutdown()

	// Size returns the backend's current pixel dimensions.
	Size() (width, height int)
	OnResize(callback func(width, height int))

	// Present draws one full frame. Implementations must not retain
	// slices in Frame past the call (the caller reuses their backing
	// arrays via FramePools.Reset on the next frame).
	Present(frame Frame)

	PollEvent() Event
	PostEvent(event Event)

	HasTrueColor() bool
	Beep()

	EnableMouse()
	DisableMouse()
	EnablePaste()
	DisablePaste()

	Suspend() error
	Resume() error
}
