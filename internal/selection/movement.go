package selection

import (
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/forge-editor/forge/internal/buffer"
)

// Direction distinguishes the two ways a movement can affect a Range: a
// plain move collapses to a caret at the new position; an extend keeps the
// anchor fixed and only moves the head (the "select while moving" form).
type Direction int

const (
	// Move collapses the range to a caret at the destination.
	Move Direction = iota
	// Extend keeps the anchor and moves only the head.
	Extend
)

func apply(r Range, dir Direction, newHead ByteOffset) Range {
	if dir == Extend {
		return r.Extend(newHead)
	}
	return NewCaret(newHead)
}

// NextGraphemeBoundary returns the byte offset of the start of the grapheme
// cluster following offset, or buf.Len() if offset is already at or past
// the end of the buffer. Movement operates on grapheme clusters rather than
// bytes or runes so that combining marks, flag emoji, and other
// multi-rune clusters move as a single unit.
func NextGraphemeBoundary(buf *buffer.Buffer, offset ByteOffset) ByteOffset {
	n := buf.Len()
	if offset >= n {
		return n
	}
	// A grapheme cluster cannot usefully span more than a handful of runes;
	// read a bounded lookahead window instead of the whole tail of the
	// buffer so this stays O(1) in buffer size.
	end := offset + 64
	if end > n {
		end = n
	}
	window := buf.TextRange(offset, end)
	if window == "" {
		return n
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(window, -1)
	if len(cluster) <= 0 {
		return n
	}
	return offset + ByteOffset(len(cluster))
}

// PrevGraphemeBoundary returns the byte offset of the start of the grapheme
// cluster preceding offset, or 0 if offset is already at the start.
func PrevGraphemeBoundary(buf *buffer.Buffer, offset ByteOffset) ByteOffset {
	if offset <= 0 {
		return 0
	}
	start := offset - 64
	if start < 0 {
		start = 0
	}
	window := buf.TextRange(start, offset)
	if window == "" {
		return 0
	}
	// Walk cluster boundaries forward from start and keep the last one
	// strictly before the end of window; uniseg has no reverse iterator,
	// so scan forward within the bounded lookbehind window.
	last := 0
	rest := window
	pos := 0
	for len(rest) > 0 {
		var cluster string
		cluster, rest, pos, _ = stepGrapheme(rest, -1)
		if pos == 0 {
			break
		}
		if last+len(cluster) >= len(window) {
			break
		}
		last += len(cluster)
	}
	return start + ByteOffset(last)
}

func stepGrapheme(s string, state int) (cluster, rest string, width int, newState int) {
	cluster, rest, _, newState = uniseg.FirstGraphemeClusterInString(s, state)
	return cluster, rest, len(cluster), newState
}

// MoveLeft moves (or extends) r left by count grapheme clusters.
func MoveLeft(buf *buffer.Buffer, r Range, count int, dir Direction) Range {
	head := r.Head
	for i := 0; i < count && head > 0; i++ {
		head = PrevGraphemeBoundary(buf, head)
	}
	return apply(r, dir, head)
}

// MoveRight moves (or extends) r right by count grapheme clusters.
func MoveRight(buf *buffer.Buffer, r Range, count int, dir Direction) Range {
	head := r.Head
	n := buf.Len()
	for i := 0; i < count && head < n; i++ {
		head = NextGraphemeBoundary(buf, head)
	}
	return apply(r, dir, head)
}

// VisualColumn computes the on-screen column of offset within its line,
// expanding tabs to buf's tab width and counting each grapheme cluster
// (not each byte or rune) as one column.
func VisualColumn(buf *buffer.Buffer, offset ByteOffset) int {
	point := buf.OffsetToPoint(offset)
	lineStart := buf.LineStartOffset(point.Line)
	line := buf.TextRange(lineStart, offset)
	return visualWidth(line, buf.TabWidth())
}

func visualWidth(s string, tabWidth int) int {
	col := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "\t" {
			col += tabWidth - (col % tabWidth)
			continue
		}
		col++
	}
	return col
}

// OffsetAtVisualColumn returns the byte offset on the given line whose
// visual column is the closest to goalCol without exceeding the line's
// length, used to restore a "goal column" across vertical movement.
func OffsetAtVisualColumn(buf *buffer.Buffer, line uint32, goalCol int) ByteOffset {
	lineStart := buf.LineStartOffset(line)
	lineEnd := buf.LineEndOffset(line)
	text := buf.TextRange(lineStart, lineEnd)
	tabWidth := buf.TabWidth()

	col := 0
	offset := 0
	state := -1
	for len(text) > 0 {
		if col >= goalCol {
			break
		}
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		if cluster == "\t" {
			col += tabWidth - (col % tabWidth)
		} else {
			col++
		}
		offset += len(cluster)
	}
	return lineStart + ByteOffset(offset)
}

// MoveUp moves (or extends) r up by count lines, preserving goalCol (the
// visual column to aim for — pass VisualColumn(buf, r.Head) on the first
// move of a vertical run, and the same value on subsequent moves so the
// caret doesn't drift toward shorter lines it passes over).
func MoveUp(buf *buffer.Buffer, r Range, count int, goalCol int, dir Direction) Range {
	point := buf.OffsetToPoint(r.Head)
	target := int64(point.Line) - int64(count)
	if target < 0 {
		target = 0
	}
	head := OffsetAtVisualColumn(buf, uint32(target), goalCol)
	return apply(r, dir, head)
}

// MoveDown moves (or extends) r down by count lines, preserving goalCol.
func MoveDown(buf *buffer.Buffer, r Range, count int, goalCol int, dir Direction) Range {
	point := buf.OffsetToPoint(r.Head)
	lastLine := int64(buf.LineCount()) - 1
	if lastLine < 0 {
		lastLine = 0
	}
	target := int64(point.Line) + int64(count)
	if target > lastLine {
		target = lastLine
	}
	head := OffsetAtVisualColumn(buf, uint32(target), goalCol)
	return apply(r, dir, head)
}

// MoveLineStart moves (or extends) r to the first non-whitespace character
// of its line, or to byte column 0 if the caret is already there or the
// line is all whitespace — the familiar "smart home" behavior.
func MoveLineStart(buf *buffer.Buffer, r Range, dir Direction) Range {
	point := buf.OffsetToPoint(r.Head)
	lineStart := buf.LineStartOffset(point.Line)
	lineEnd := buf.LineEndOffset(point.Line)
	text := buf.TextRange(lineStart, lineEnd)

	firstNonBlank := lineStart
	for i, c := range text {
		if !unicode.IsSpace(c) {
			firstNonBlank = lineStart + ByteOffset(i)
			break
		}
	}
	if firstNonBlank == lineStart || r.Head == firstNonBlank {
		if r.Head != lineStart {
			return apply(r, dir, lineStart)
		}
	}
	return apply(r, dir, firstNonBlank)
}

// MoveLineEnd moves (or extends) r to the end of its current line.
func MoveLineEnd(buf *buffer.Buffer, r Range, dir Direction) Range {
	point := buf.OffsetToPoint(r.Head)
	return apply(r, dir, buf.LineEndOffset(point.Line))
}

// MoveDocStart moves (or extends) r to offset 0.
func MoveDocStart(r Range, dir Direction) Range {
	return apply(r, dir, 0)
}

// MoveDocEnd moves (or extends) r to the end of buf.
func MoveDocEnd(buf *buffer.Buffer, r Range, dir Direction) Range {
	return apply(r, dir, buf.Len())
}

// wordClass buckets a rune into one of three classes used by word-boundary
// movement: word characters group together, punctuation/symbol characters
// group together, and whitespace is its own class; a boundary falls
// wherever the class changes.
type wordClass int

const (
	classSpace wordClass = iota
	classWord
	classPunct
)

func classify(r rune) wordClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return classWord
	default:
		return classPunct
	}
}

// MoveWordRight moves (or extends) r to the start of the next word, per
// the classic editor convention: skip the remainder of the current word
// class, then skip any whitespace.
func MoveWordRight(buf *buffer.Buffer, r Range, count int, dir Direction) Range {
	head := r.Head
	n := buf.Len()
	for i := 0; i < count && head < n; i++ {
		head = nextWordBoundary(buf, head, n)
	}
	return apply(r, dir, head)
}

func nextWordBoundary(buf *buffer.Buffer, offset, n ByteOffset) ByteOffset {
	ch, size := buf.RuneAt(offset)
	if size == 0 {
		return n
	}
	startClass := classify(ch)
	pos := offset + ByteOffset(size)
	if startClass != classSpace {
		for pos < n {
			ch, size = buf.RuneAt(pos)
			if size == 0 || classify(ch) != startClass {
				break
			}
			pos += ByteOffset(size)
		}
	}
	for pos < n {
		ch, size = buf.RuneAt(pos)
		if size == 0 || classify(ch) != classSpace {
			break
		}
		pos += ByteOffset(size)
	}
	return pos
}

// MoveWordLeft moves (or extends) r to the start of the previous word.
func MoveWordLeft(buf *buffer.Buffer, r Range, count int, dir Direction) Range {
	head := r.Head
	for i := 0; i < count && head > 0; i++ {
		head = prevWordBoundary(buf, head)
	}
	return apply(r, dir, head)
}

func prevWordBoundary(buf *buffer.Buffer, offset ByteOffset) ByteOffset {
	pos := offset
	for pos > 0 {
		prev := PrevGraphemeBoundary(buf, pos)
		ch, _ := buf.RuneAt(prev)
		if classify(ch) != classSpace {
			break
		}
		pos = prev
	}
	if pos == 0 {
		return 0
	}
	prev := PrevGraphemeBoundary(buf, pos)
	ch, _ := buf.RuneAt(prev)
	startClass := classify(ch)
	pos = prev
	for pos > 0 {
		prev = PrevGraphemeBoundary(buf, pos)
		ch, _ = buf.RuneAt(prev)
		if classify(ch) != startClass {
			break
		}
		pos = prev
	}
	return pos
}
