package editor

import (
	"errors"
	"sort"

	"github.com/forge-editor/forge/internal/buffer"
	"github.com/forge-editor/forge/internal/decoration"
	"github.com/forge-editor/forge/internal/history"
	"github.com/forge-editor/forge/internal/render"
	"github.com/forge-editor/forge/internal/selection"
	"github.com/forge-editor/forge/internal/syntax"
)

// Clipboard is the minimal system-clipboard surface a Commander needs.
// internal/app.SystemClipboard and internal/app.MemoryClipboard both
// satisfy it; this package declares its own copy instead of importing
// internal/app so app can import editor without a cycle.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// Commander turns a resolved input.Command into mutations on a
// Document: cursor/selection movement, multi-cursor edits landed on
// the history tree, undo/redo, and clipboard cut/copy/paste. It is the
// concrete internal/render.Commander a Driver is wired against.
//
// Every Apply call that changes the selection but not the buffer still
// republishes the "selection"/"active-line"/"caret" decoration layers,
// since those are derived state the render loop expects to already be
// current by the time phase 5 queries the Store.
type Commander struct {
	Doc         *Document
	Clipboard   Clipboard
	Decorations *decoration.Store

	// Syntax is the same syntax.Document a render.Driver's
	// SyntaxReparser keeps current; nil leaves bracket-match, fold,
	// and outline commands as no-ops. Set it after wiring a
	// SyntaxReparser via Commander.Syntax = reparser.Syntax.
	Syntax *syntax.Document

	// Path is the file the document was opened from; file.save writes
	// here and file.saveAs updates it. Empty for a scratch buffer with
	// nowhere to save yet.
	Path   string
	Saver  FileSaver
	Notify Notifier

	foldedAt map[buffer.ByteOffset]bool
}

// NewCommander builds a Commander over doc, publishing decorations (if
// store is non-nil) to store.
func NewCommander(doc *Document, clipboard Clipboard, store *decoration.Store) *Commander {
	return &Commander{Doc: doc, Clipboard: clipboard, Decorations: store}
}

// Apply implements render.Commander.
func (c *Commander) Apply(cmd render.Command) (bool, error) {
	changed, err := c.dispatch(cmd)
	if err != nil {
		return false, err
	}
	c.publishDecorations()
	return changed, nil
}

func (c *Commander) dispatch(cmd render.Command) (bool, error) {
	switch cmd.Name {
	case "cursor.moveLeft":
		return c.move(selection.MoveLeft, selection.Move), nil
	case "cursor.moveRight":
		return c.move(selection.MoveRight, selection.Move), nil
	case "cursor.moveUp":
		return c.moveVertical(selection.MoveUp, selection.Move), nil
	case "cursor.moveDown":
		return c.moveVertical(selection.MoveDown, selection.Move), nil
	case "cursor.lineStart":
		return c.moveLine(selection.MoveLineStart, selection.Move), nil
	case "cursor.lineEnd":
		return c.moveLine(selection.MoveLineEnd, selection.Move), nil
	case "cursor.documentStart":
		return c.moveDoc(selection.MoveDocStart, selection.Move), nil
	case "cursor.documentEnd":
		return c.moveDocEnd(selection.Move), nil
	case "cursor.pageUp":
		return c.movePage(-1, selection.Move), nil
	case "cursor.pageDown":
		return c.movePage(1, selection.Move), nil
	case "cursor.wordLeft":
		return c.move(selection.MoveWordLeft, selection.Move), nil
	case "cursor.wordRight":
		return c.move(selection.MoveWordRight, selection.Move), nil

	case "selection.extendLeft":
		return c.move(selection.MoveLeft, selection.Extend), nil
	case "selection.extendRight":
		return c.move(selection.MoveRight, selection.Extend), nil
	case "selection.extendUp":
		return c.moveVertical(selection.MoveUp, selection.Extend), nil
	case "selection.extendDown":
		return c.moveVertical(selection.MoveDown, selection.Extend), nil
	case "selection.extendLineStart":
		return c.moveLine(selection.MoveLineStart, selection.Extend), nil
	case "selection.extendLineEnd":
		return c.moveLine(selection.MoveLineEnd, selection.Extend), nil
	case "selection.selectAll":
		return c.selectAll(), nil
	case "selection.selectNextOccurrence":
		return selection.SelectNextOccurrence(c.Doc.Buf, c.Doc.Sel), nil
	case "selection.selectAllOccurrences":
		return c.selectAllOccurrences(), nil
	case "selection.addCursorAbove":
		return c.addCursorVertical(-1), nil
	case "selection.addCursorBelow":
		return c.addCursorVertical(1), nil
	case "selection.collapseToPrimary":
		return c.collapseToPrimary(), nil

	case "editor.backspace":
		return c.Doc.apply(c.deleteEdits(selection.MoveLeft))
	case "editor.delete":
		return c.Doc.apply(c.deleteEdits(selection.MoveRight))
	case "editor.newline":
		return c.Doc.apply(c.insertEdits(c.Doc.Buf.LineEnding().Sequence()))
	case "editor.indent":
		return c.Doc.apply(c.insertEdits(c.indentText()))
	case "editor.unindent":
		return c.unindent()
	case "editor.cut":
		return c.cut()
	case "editor.copy":
		return c.copy()
	case "editor.paste":
		return c.paste()

	case "history.undo":
		return c.undo()
	case "history.redo":
		return c.redo()

	case "editor.matchBracket":
		return c.matchBracket(), nil
	case "editor.toggleFold":
		return c.toggleFold(), nil
	case "editor.outline":
		return c.publishOutline(), nil

	case "file.save":
		return c.saveFile(c.Path), nil
	case "file.saveAs":
		path := c.Path
		if p, ok := cmd.Args["path"].(string); ok && p != "" {
			path = p
		}
		return c.saveFile(path), nil

	default:
		// search.*/view.* commands operate on panel/workspace state
		// this Commander doesn't own; a host composes a second
		// Commander (or wraps this one) to dispatch those. Reporting no
		// change here rather than an error lets an unresolved command
		// fall through silently instead of aborting the frame.
		return false, nil
	}
}

// move applies a grapheme/word-granular horizontal mover to every range
// in the selection.
func (c *Commander) move(fn func(buf *buffer.Buffer, r selection.Range, count int, dir selection.Direction) selection.Range, dir selection.Direction) bool {
	sel := c.Doc.Sel
	before := sel.Clone()
	sel.MapInPlace(func(r selection.Range) selection.Range {
		return fn(c.Doc.Buf, r, 1, dir)
	})
	return !sel.Equals(before)
}

func (c *Commander) moveVertical(fn func(buf *buffer.Buffer, r selection.Range, count, goalCol int, dir selection.Direction) selection.Range, dir selection.Direction) bool {
	sel := c.Doc.Sel
	before := sel.Clone()
	sel.MapInPlace(func(r selection.Range) selection.Range {
		goalCol := selection.VisualColumn(c.Doc.Buf, r.Head)
		return fn(c.Doc.Buf, r, 1, goalCol, dir)
	})
	return !sel.Equals(before)
}

func (c *Commander) moveLine(fn func(buf *buffer.Buffer, r selection.Range, dir selection.Direction) selection.Range, dir selection.Direction) bool {
	sel := c.Doc.Sel
	before := sel.Clone()
	sel.MapInPlace(func(r selection.Range) selection.Range {
		return fn(c.Doc.Buf, r, dir)
	})
	return !sel.Equals(before)
}

func (c *Commander) moveDoc(fn func(r selection.Range, dir selection.Direction) selection.Range, dir selection.Direction) bool {
	sel := c.Doc.Sel
	before := sel.Clone()
	sel.MapInPlace(func(r selection.Range) selection.Range {
		return fn(r, dir)
	})
	return !sel.Equals(before)
}

func (c *Commander) moveDocEnd(dir selection.Direction) bool {
	sel := c.Doc.Sel
	before := sel.Clone()
	sel.MapInPlace(func(r selection.Range) selection.Range {
		return selection.MoveDocEnd(c.Doc.Buf, r, dir)
	})
	return !sel.Equals(before)
}

// pageLines is the line count a pageUp/pageDown jumps, absent a host
// supplying the actual visible viewport height.
const pageLines = 20

func (c *Commander) movePage(sign int, dir selection.Direction) bool {
	sel := c.Doc.Sel
	before := sel.Clone()
	sel.MapInPlace(func(r selection.Range) selection.Range {
		goalCol := selection.VisualColumn(c.Doc.Buf, r.Head)
		if sign < 0 {
			return selection.MoveUp(c.Doc.Buf, r, pageLines, goalCol, dir)
		}
		return selection.MoveDown(c.Doc.Buf, r, pageLines, goalCol, dir)
	})
	return !sel.Equals(before)
}

func (c *Commander) selectAll() bool {
	full := selection.NewRange(0, c.Doc.Buf.Len())
	before := c.Doc.Sel.Primary()
	c.Doc.Sel.SetAll([]selection.Range{full})
	return !before.Equals(full)
}

func (c *Commander) selectAllOccurrences() bool {
	primary := c.Doc.Sel.Primary()
	if primary.IsEmpty() {
		return false
	}
	needle := c.Doc.Buf.TextRange(primary.Start(), primary.End())
	return selection.SelectAllOccurrences(c.Doc.Buf, c.Doc.Sel, needle)
}

func (c *Commander) addCursorVertical(sign int) bool {
	primary := c.Doc.Sel.Primary()
	goalCol := selection.VisualColumn(c.Doc.Buf, primary.Head)
	var next selection.Range
	if sign < 0 {
		next = selection.MoveUp(c.Doc.Buf, primary, 1, goalCol, selection.Move)
	} else {
		next = selection.MoveDown(c.Doc.Buf, primary, 1, goalCol, selection.Move)
	}
	if next.Head == primary.Head {
		return false
	}
	selection.AddCaret(c.Doc.Sel, next.Head)
	return true
}

func (c *Commander) collapseToPrimary() bool {
	if c.Doc.Sel.Count() <= 1 && c.Doc.Sel.Primary().IsCaret() {
		return false
	}
	c.Doc.Sel.Clear()
	primary := c.Doc.Sel.Primary()
	c.Doc.Sel.Set(primary.Collapse())
	return true
}

// deleteEdits builds one delete edit per selection range: the range
// itself if non-empty, or one grapheme cluster in the direction fn
// moves if the range is a caret.
func (c *Commander) deleteEdits(fn func(buf *buffer.Buffer, r selection.Range, count int, dir selection.Direction) selection.Range) []buffer.Edit {
	edits := make([]buffer.Edit, 0, c.Doc.Sel.Count())
	for _, r := range c.Doc.Sel.All() {
		if !r.IsEmpty() {
			edits = append(edits, buffer.NewDelete(r.Start(), r.End()))
			continue
		}
		moved := fn(c.Doc.Buf, r, 1, selection.Move)
		if moved.Head == r.Head {
			continue
		}
		start, end := moved.Head, r.Head
		if start > end {
			start, end = end, start
		}
		edits = append(edits, buffer.NewDelete(start, end))
	}
	return mergeOverlaps(edits)
}

// insertEdits builds one insert edit per selection range, replacing any
// non-empty range with text (the "typing over a selection" case).
func (c *Commander) insertEdits(text string) []buffer.Edit {
	edits := make([]buffer.Edit, 0, c.Doc.Sel.Count())
	for _, r := range c.Doc.Sel.All() {
		edits = append(edits, buffer.NewEdit(buffer.Range{Start: r.Start(), End: r.End()}, text))
	}
	return edits
}

func (c *Commander) indentText() string {
	tabWidth := c.Doc.Buf.TabWidth()
	spaces := make([]byte, tabWidth)
	for i := range spaces {
		spaces[i] = ' '
	}
	return string(spaces)
}

func (c *Commander) unindent() (bool, error) {
	tabWidth := c.Doc.Buf.TabWidth()
	var edits []buffer.Edit
	seen := map[uint32]bool{}
	for _, r := range c.Doc.Sel.All() {
		line := c.Doc.Buf.OffsetToPoint(r.Start()).Line
		if seen[line] {
			continue
		}
		seen[line] = true
		lineStart := c.Doc.Buf.LineStartOffset(line)
		text := c.Doc.Buf.LineText(line)
		n := 0
		for n < tabWidth && n < len(text) && (text[n] == ' ' || text[n] == '\t') {
			if text[n] == '\t' {
				n++
				break
			}
			n++
		}
		if n == 0 {
			continue
		}
		edits = append(edits, buffer.NewDelete(lineStart, lineStart+buffer.ByteOffset(n)))
	}
	return c.Doc.apply(edits)
}

func (c *Commander) cut() (bool, error) {
	if c.Clipboard == nil {
		return false, nil
	}
	payload := selection.BuildClipboardPayload(c.Doc.Buf, c.Doc.Sel)
	if payload.Text == "" {
		return false, nil
	}
	if err := c.Clipboard.Write(payload.Text); err != nil {
		return false, err
	}
	var edits []buffer.Edit
	for _, r := range c.Doc.Sel.NonEmptyRanges() {
		edits = append(edits, buffer.NewDelete(r.Start, r.End))
	}
	return c.Doc.apply(edits)
}

func (c *Commander) copy() (bool, error) {
	if c.Clipboard == nil {
		return false, nil
	}
	payload := selection.BuildClipboardPayload(c.Doc.Buf, c.Doc.Sel)
	if payload.Text == "" {
		return false, nil
	}
	return false, c.Clipboard.Write(payload.Text)
}

func (c *Commander) paste() (bool, error) {
	if c.Clipboard == nil {
		return false, nil
	}
	text, err := c.Clipboard.Read()
	if err != nil {
		return false, err
	}
	ranges := c.Doc.Sel.All()
	chunks := selection.ResolvePaste(selection.ClipboardPayload{Text: text}, len(ranges))
	edits := make([]buffer.Edit, 0, len(ranges))
	for i, r := range ranges {
		edits = append(edits, buffer.NewEdit(buffer.Range{Start: r.Start(), End: r.End()}, chunks[i]))
	}
	return c.Doc.apply(edits)
}

func (c *Commander) undo() (bool, error) {
	sel, err := c.Doc.Hist.Undo(c.Doc.Buf)
	if err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			return false, nil
		}
		return false, err
	}
	if sel != nil {
		c.Doc.Sel = sel.Clone()
	}
	return true, nil
}

func (c *Commander) redo() (bool, error) {
	sel, err := c.Doc.Hist.Redo(c.Doc.Buf)
	if err != nil {
		if errors.Is(err, history.ErrNothingToRedo) {
			return false, nil
		}
		return false, err
	}
	if sel != nil {
		c.Doc.Sel = sel.Clone()
	}
	return true, nil
}

// mergeOverlaps sorts edits by start and merges any that touch or
// overlap, so a multi-cursor backspace where two carets sit adjacent
// never produces two edits spanning the same byte.
func mergeOverlaps(edits []buffer.Edit) []buffer.Edit {
	if len(edits) < 2 {
		return edits
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Range.Start < edits[j].Range.Start })
	merged := edits[:1]
	for _, e := range edits[1:] {
		last := &merged[len(merged)-1]
		if e.Range.Start <= last.Range.End {
			if e.Range.End > last.Range.End {
				last.Range.End = e.Range.End
			}
			continue
		}
		merged = append(merged, e)
	}
	return merged
}
