package gpu

import (
	"sync"

	"github.com/gdamore/encoding"
	"github.com/gdamore/tcell/v2"
)

func init() {
	// Registers the non-UTF-8 charset tables tcell ships beyond the
	// default UTF-8 handling, so TcellBackend behaves correctly when
	// run under a legacy $TERM/locale that isn't UTF-8.
	encoding.Register()
}

// CellMetrics describes the pixel footprint of one terminal cell.
// TcellBackend is a pixel-addressed Backend layered over a
// character-cell surface, so every pixel Rect/GlyphRun origin is
// divided by these metrics to find its target cell.
type CellMetrics struct {
	Width, Height int
}

// DefaultCellMetrics is a reasonable monospace cell size in pixels,
// used when the embedding application has no better font metrics.
var DefaultCellMetrics = CellMetrics{Width: 8, Height: 16}

// TcellBackend implements Backend by presenting pixel-addressed Rects
// and GlyphRuns onto a tcell.Screen, the terminal surface this module
// uses to satisfy that graphics abstraction without a wire-level GPU
// driver.
type TcellBackend struct {
	mu            sync.Mutex
	screen        tcell.Screen
	metrics       CellMetrics
	resizeHandler func(width, height int)
}

// NewTcellBackend creates a backend with the given cell pixel metrics.
func NewTcellBackend(metrics CellMetrics) (*TcellBackend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &TcellBackend{screen: screen, metrics: metrics}, nil
}

func (b *TcellBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse()
	b.screen.EnablePaste()
	return nil
}

func (b *TcellBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.screen.Fini()
}

func (b *TcellBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cols, rows := b.screen.Size()
	return cols * b.metrics.Width, rows * b.metrics.Height
}

func (b *TcellBackend) OnResize(callback func(width, height int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resizeHandler = callback
}

// cellOf converts a pixel coordinate to the terminal cell it falls
// within.
func (b *TcellBackend) cellOf(x, y int) (col, row int) {
	return x / b.metrics.Width, y / b.metrics.Height
}

// Present paints frame.Rects (in order, so later entries — higher
// z-index layers — overwrite earlier ones at the same cell) followed
// by frame.GlyphRuns, then positions the cursor, then flushes to the
// terminal.
func (b *TcellBackend) Present(frame Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cols, rows := b.screen.Size()

	for _, r := range frame.Rects {
		if r.Color.Transparent() {
			continue
		}
		bg := tcell.NewRGBColor(int32(r.Color.R), int32(r.Color.G), int32(r.Color.B))
		c0, rw0 := b.cellOf(r.X, r.Y)
		c1, rw1 := b.cellOf(r.X+r.W, r.Y+r.H)
		for row := rw0; row < rw1 && row < rows; row++ {
			for col := c0; col < c1 && col < cols; col++ {
				if col < 0 || row < 0 {
					continue
				}
				mainc, combc, existing, _ := b.screen.GetContent(col, row) //nolint:staticcheck
				b.screen.SetContent(col, row, mainc, combc, existing.Background(bg))
			}
		}
	}

	for _, g := range frame.GlyphRuns {
		col, row := b.cellOf(g.Origin.X, g.Origin.Y)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
			int32(g.Color.R), int32(g.Color.G), int32(g.Color.B)))
		for _, r := range g.Text {
			if col < 0 || col >= cols || row < 0 || row >= rows {
				break
			}
			b.screen.SetContent(col, row, r, nil, style)
			col += runeCells(r)
		}
	}

	if frame.CursorShow {
		col, row := b.cellOf(frame.CursorAt.X, frame.CursorAt.Y)
		b.screen.ShowCursor(col, row)
		b.setCursorStyleLocked(frame.Cursor)
	} else {
		b.screen.HideCursor()
	}

	b.screen.Show()
}

func (b *TcellBackend) setCursorStyleLocked(style CursorStyle) {
	switch style {
	case CursorBlock:
		b.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	case CursorUnderline:
		b.screen.SetCursorStyle(tcell.CursorStyleSteadyUnderline)
	case CursorBar:
		b.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	case CursorHidden:
		b.screen.HideCursor()
	}
}

// runeCells reports how many terminal cells a rune occupies. Wide
// (CJK/fullwidth) runes take two; everything else takes one.
func runeCells(r rune) int {
	switch {
	case r >= 0x1100 && r <= 0x115F,
		r >= 0x2E80 && r <= 0xA4CF,
		r >= 0xAC00 && r <= 0xD7A3,
		r >= 0xF900 && r <= 0xFAFF,
		r >= 0xFF00 && r <= 0xFF60,
		r >= 0x20000 && r <= 0x3FFFD:
		return 2
	default:
		return 1
	}
}

func (b *TcellBackend) PollEvent() Event {
	ev := b.screen.PollEvent()
	return b.convertEvent(ev)
}

func (b *TcellBackend) PostEvent(event Event) {
	if event.Type != EventKey {
		return
	}
	tcellEv := tcell.NewEventKey(convertToTcellKey(event.Key), event.Rune, convertToTcellMod(event.Mod))
	_ = b.screen.PostEvent(tcellEv)
}

func (b *TcellBackend) HasTrueColor() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.screen.Colors() > 256
}

func (b *TcellBackend) Beep() {
	_ = b.screen.Beep()
}

func (b *TcellBackend) EnableMouse()  { b.screen.EnableMouse() }
func (b *TcellBackend) DisableMouse() { b.screen.DisableMouse() }
func (b *TcellBackend) EnablePaste()  { b.screen.EnablePaste() }
func (b *TcellBackend) DisablePaste() { b.screen.DisablePaste() }
func (b *TcellBackend) Suspend() error {
	return b.screen.Suspend()
}
func (b *TcellBackend) Resume() error {
	return b.screen.Resume()
}

func (b *TcellBackend) convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: convertKey(e.Key()), Rune: e.Rune(), Mod: convertMod(e.Modifiers())}
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{Type: EventMouse, MouseX: x * b.metrics.Width, MouseY: y * b.metrics.Height, MouseButton: convertMouseButton(e.Buttons()), Mod: convertMod(e.Modifiers())}
	case *tcell.EventResize:
		w, h := e.Size()
		pw, ph := w*b.metrics.Width, h*b.metrics.Height
		if b.resizeHandler != nil {
			b.resizeHandler(pw, ph)
		}
		return Event{Type: EventResize, Width: pw, Height: ph}
	case *tcell.EventPaste:
		return Event{Type: EventPaste, Focused: e.Start()}
	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}
	default:
		return Event{Type: EventNone}
	}
}

func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyInsert:
		return KeyInsert
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyF1:
		return KeyF1
	case tcell.KeyF2:
		return KeyF2
	case tcell.KeyF3:
		return KeyF3
	case tcell.KeyF4:
		return KeyF4
	case tcell.KeyF5:
		return KeyF5
	case tcell.KeyF6:
		return KeyF6
	case tcell.KeyF7:
		return KeyF7
	case tcell.KeyF8:
		return KeyF8
	case tcell.KeyF9:
		return KeyF9
	case tcell.KeyF10:
		return KeyF10
	case tcell.KeyF11:
		return KeyF11
	case tcell.KeyF12:
		return KeyF12
	default:
		// Ctrl-letter combinations arrive as their own tcell.Key values
		// (tcell.KeyCtrlA..Z); surfaced to callers as a plain rune plus
		// ModCtrl rather than a parallel set of KeyCtrl* constants.
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return KeyRune
		}
		return KeyNone
	}
}

func convertToTcellKey(k Key) tcell.Key {
	switch k {
	case KeyRune:
		return tcell.KeyRune
	case KeyEscape:
		return tcell.KeyEscape
	case KeyEnter:
		return tcell.KeyEnter
	case KeyTab:
		return tcell.KeyTab
	case KeyBackspace:
		return tcell.KeyBackspace2
	case KeyDelete:
		return tcell.KeyDelete
	case KeyInsert:
		return tcell.KeyInsert
	case KeyHome:
		return tcell.KeyHome
	case KeyEnd:
		return tcell.KeyEnd
	case KeyPageUp:
		return tcell.KeyPgUp
	case KeyPageDown:
		return tcell.KeyPgDn
	case KeyUp:
		return tcell.KeyUp
	case KeyDown:
		return tcell.KeyDown
	case KeyLeft:
		return tcell.KeyLeft
	case KeyRight:
		return tcell.KeyRight
	default:
		return tcell.KeyRune
	}
}

func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

func convertToTcellMod(m ModMask) tcell.ModMask {
	var result tcell.ModMask
	if m.Has(ModShift) {
		result |= tcell.ModShift
	}
	if m.Has(ModCtrl) {
		result |= tcell.ModCtrl
	}
	if m.Has(ModAlt) {
		result |= tcell.ModAlt
	}
	if m.Has(ModMeta) {
		result |= tcell.ModMeta
	}
	return result
}

func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}
