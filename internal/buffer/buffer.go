package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/forge-editor/forge/internal/rope"
)

var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
)

// LineEnding is the line-ending style a Buffer normalizes every insert
// and replace through, so a file loaded with CRLF endings keeps
// writing CRLF even though the rope underneath only ever stores the
// bytes it's given.
type LineEnding uint8

const (
	LineEndingLF LineEnding = iota
	LineEndingCRLF
	LineEndingCR
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is one open document's text: a Rope guarded by a mutex, plus
// the editor-facing state the rope itself doesn't know about (line
// ending, tab width, a revision counter other packages use to discard
// stale work). Every exported method takes the lock itself, so a
// Buffer can be shared across the render loop and a background
// collaborator without its own synchronization.
type Buffer struct {
	mu         sync.RWMutex
	rope       rope.Rope
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// NewBuffer creates an empty buffer with opts applied over the
// defaults (LF line endings, a 4-column tab width).
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		rope:       rope.New(),
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	s = b.coerceLineEndings(s)
	b.rope = rope.FromString(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)

	// Read all content first to handle line ending normalization correctly
	// (CRLF sequences may be split across read boundaries)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text := b.coerceLineEndings(string(data))
	b.rope = rope.FromString(text)
	return b, nil
}

// coerceLineEndings rewrites every line ending in s to match the
// buffer's configured style, regardless of what mix of \n, \r\n, or
// \r the caller handed it. Every insert, replace, and initial load
// routes through this so the rope only ever stores one line-ending
// byte sequence.
func (b *Buffer) coerceLineEndings(s string) string {
	// Collapsing to LF first means CRLF and CR are always folded the
	// same way before the target style (if not LF) is reapplied, so
	// a file with inconsistent endings converts cleanly either way.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	switch b.lineEnding {
	case LineEndingCRLF:
		s = strings.ReplaceAll(s, "\n", "\r\n")
	case LineEndingCR:
		s = strings.ReplaceAll(s, "\n", "\r")
	}
	return s
}

// Reading.

// Text returns the full buffer content as a string.
// For large buffers, prefer using TextRange or iterators.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// TextRange returns text in the given byte range.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Slice(rope.ByteOffset(start), rope.ByteOffset(end))
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.rope.Len())
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineCount()
}

// LineText returns the text of a specific line (without newline).
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineText(line)
}

// LineLen returns the length of a specific line in bytes (without newline).
func (b *Buffer) LineLen(line uint32) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start := b.rope.LineStartOffset(line)
	end := b.rope.LineEndOffset(line)
	return int(end - start)
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.ByteAt(rope.ByteOffset(offset))
}

// RuneAt returns the rune at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ropeLen := ByteOffset(b.rope.Len())
	if offset < 0 || offset >= ropeLen {
		return utf8.RuneError, 0
	}

	// Get up to 4 bytes (max UTF-8 rune length)
	end := offset + 4
	if end > ropeLen {
		end = ropeLen
	}

	s := b.rope.Slice(rope.ByteOffset(offset), rope.ByteOffset(end))
	return utf8.DecodeRuneInString(s)
}

// Position conversion. Point's Column is a byte offset within its
// line; PointUTF16's Column counts UTF-16 code units instead, the
// encoding LSP positions are specified in, so a language server's
// column and a buffer's own never need an intermediate rune count.

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p := b.rope.OffsetToPoint(rope.ByteOffset(offset))
	return Point{Line: p.Line, Column: p.Column}
}

// PointToOffset converts line/column to byte offset.
func (b *Buffer) PointToOffset(point Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p := rope.Point{Line: point.Line, Column: point.Column}
	return ByteOffset(b.rope.PointToOffset(p))
}

// OffsetToPointUTF16 converts a byte offset to UTF-16 line/column.
func (b *Buffer) OffsetToPointUTF16(offset ByteOffset) PointUTF16 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	point := b.rope.OffsetToPoint(rope.ByteOffset(offset))
	lineStart := b.rope.LineStartOffset(point.Line)
	lineText := b.rope.Slice(lineStart, rope.ByteOffset(offset))

	// Count UTF-16 code units
	utf16Col := countUTF16Units(lineText)

	return PointUTF16{Line: point.Line, Column: utf16Col}
}

// PointUTF16ToOffset converts UTF-16 line/column to byte offset.
func (b *Buffer) PointUTF16ToOffset(point PointUTF16) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lineStart := b.rope.LineStartOffset(point.Line)
	lineEnd := b.rope.LineEndOffset(point.Line)
	lineText := b.rope.Slice(lineStart, lineEnd)

	// Convert UTF-16 column to byte offset within the line
	byteCol := utf16ColumnToByteOffset(lineText, point.Column)

	return ByteOffset(lineStart) + ByteOffset(byteCol)
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.rope.LineStartOffset(line))
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.rope.LineEndOffset(line))
}

// Mutation.

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > ByteOffset(b.rope.Len()) {
		return 0, ErrOffsetOutOfRange
	}

	text = b.coerceLineEndings(text)
	b.rope = b.rope.Insert(rope.ByteOffset(offset), text)
	b.revisionID = NewRevisionID()

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(b.rope.Len()) {
		return ErrRangeInvalid
	}

	b.rope = b.rope.Delete(rope.ByteOffset(start), rope.ByteOffset(end))
	b.revisionID = NewRevisionID()

	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(b.rope.Len()) {
		return 0, ErrRangeInvalid
	}

	text = b.coerceLineEndings(text)
	b.rope = b.rope.Replace(rope.ByteOffset(start), rope.ByteOffset(end), text)
	b.revisionID = NewRevisionID()

	return start + ByteOffset(len(text)), nil
}

// ApplyEdit lands one Edit and reports enough about what changed
// (the old text it replaced, the delta in byte length) for a caller
// building an undo entry or an LSP incremental-sync notification.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
		edit.Range.End > ByteOffset(b.rope.Len()) {
		return EditResult{}, ErrRangeInvalid
	}

	oldText := b.rope.Slice(rope.ByteOffset(edit.Range.Start), rope.ByteOffset(edit.Range.End))
	text := b.coerceLineEndings(edit.NewText)
	b.rope = b.rope.Replace(rope.ByteOffset(edit.Range.Start), rope.ByteOffset(edit.Range.End), text)
	b.revisionID = NewRevisionID()

	newEnd := edit.Range.Start + ByteOffset(len(text))

	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    int64(len(text)) - int64(edit.Range.Len()),
	}, nil
}

// ApplyEdits lands every edit in edits as one revision bump. Callers
// (a multi-cursor insert, an LSP workspace edit) must supply them in
// descending order by start offset: applying an earlier edit first
// would shift every later offset out from under the edits still
// queued behind it, so the reverse order lets each Replace run
// against byte offsets the prior edits in the batch never touched.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}

	ropeLen := ByteOffset(b.rope.Len())
	for _, edit := range edits {
		if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
			edit.Range.End > ropeLen {
			return ErrRangeInvalid
		}
	}

	for _, edit := range edits {
		text := b.coerceLineEndings(edit.NewText)
		b.rope = b.rope.Replace(rope.ByteOffset(edit.Range.Start), rope.ByteOffset(edit.Range.End), text)
	}

	b.revisionID = NewRevisionID()
	return nil
}

// State queries.

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.IsEmpty()
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetLineEnding sets the buffer's line ending style.
// This does not convert existing line endings.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tabWidth = width
}

// Snapshot captures the buffer's current rope and settings into a
// value a background worker can read from its own goroutine without
// ever taking b's lock again: the rope is immutable, so sharing it
// across goroutines needs no copy.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		rope:       b.rope,
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}
}

// UTF-16 column conversion, for LSP position encoding.

// countUTF16Units counts UTF-16 code units in a string.
func countUTF16Units(s string) uint32 {
	var col uint32
	for _, r := range s {
		if r >= 0x10000 {
			col += 2 // Surrogate pair (characters outside BMP)
		} else {
			col++
		}
	}
	return col
}

// utf16ColumnToByteOffset converts a UTF-16 column to byte offset within a line.
func utf16ColumnToByteOffset(line string, utf16Col uint32) int {
	var col uint32
	var byteOffset int

	for _, r := range line {
		if col >= utf16Col {
			break
		}

		// Count UTF-16 code units without allocating
		if r >= 0x10000 {
			col += 2 // Surrogate pair
		} else {
			col++
		}
		byteOffset += utf8.RuneLen(r)
	}

	return byteOffset
}
