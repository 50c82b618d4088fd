package gpu

// NullBackend is a recording, no-terminal-required Backend used by
// tests of internal/render: it captures the last Frame presented and
// lets a test feed synthetic events instead of reading a real tty.
type NullBackend struct {
	width, height int
	resizeHandler func(width, height int)
	events        chan Event

	lastFrame Frame
	presented int
}

// NewNullBackend creates a null backend with the given pixel size.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{width: width, height: height, events: make(chan Event, 64)}
}

func (b *NullBackend) Init() error { return nil }
func (b *NullBackend) Shutdown()   {}

func (b *NullBackend) Size() (int, int) { return b.width, b.height }

func (b *NullBackend) OnResize(callback func(width, height int)) {
	b.resizeHandler = callback
}

func (b *NullBackend) Present(frame Frame) {
	b.lastFrame = frame
	b.presented++
}

// LastFrame returns the most recently presented frame, for assertions.
func (b *NullBackend) LastFrame() Frame { return b.lastFrame }

// PresentCount returns how many frames have been presented.
func (b *NullBackend) PresentCount() int { return b.presented }

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
	}
}

func (b *NullBackend) HasTrueColor() bool { return true }
func (b *NullBackend) Beep()              {}
func (b *NullBackend) EnableMouse()       {}
func (b *NullBackend) DisableMouse()      {}
func (b *NullBackend) EnablePaste()       {}
func (b *NullBackend) DisablePaste()      {}
func (b *NullBackend) Suspend() error     { return nil }
func (b *NullBackend) Resume() error      { return nil }

// Resize simulates a backend resize for testing, invoking any
// registered resize handler.
func (b *NullBackend) Resize(width, height int) {
	b.width, b.height = width, height
	if b.resizeHandler != nil {
		b.resizeHandler(width, height)
	}
}
