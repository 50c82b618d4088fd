package selection

import (
	"strings"

	"github.com/forge-editor/forge/internal/buffer"
)

// AddCaret inserts a new caret at offset, merging into an existing range if
// the new caret falls inside one, and makes it the primary range.
func AddCaret(sel *Selection, offset ByteOffset) {
	r := NewCaret(offset)
	for _, existing := range sel.All() {
		if existing.ContainsInclusive(offset) {
			sel.Add(existing)
			return
		}
	}
	sel.Add(r)
}

// SelectNextOccurrence finds the next match of the primary range's text,
// searching forward from the primary range's head and wrapping once around
// the document if no match is found before the end. If the primary range
// is a caret (empty), nothing happens — there is no text to search for. If
// a match is found it is added as a new primary range, so repeated calls
// build up a multi-cursor selection the way "select next occurrence" does
// in every mainstream editor.
func SelectNextOccurrence(buf *buffer.Buffer, sel *Selection) bool {
	primary := sel.Primary()
	if primary.IsEmpty() {
		return false
	}
	needle := buf.TextRange(primary.Start(), primary.End())
	if needle == "" {
		return false
	}

	docLen := buf.Len()
	searchFrom := primary.Head
	if primary.Head < primary.Anchor {
		searchFrom = primary.Anchor
	}

	if at, ok := findFrom(buf, needle, searchFrom, docLen); ok {
		sel.Add(NewRange(at, at+ByteOffset(len(needle))))
		return true
	}
	// Wrap: search from the start of the document up to where we started.
	if at, ok := findFrom(buf, needle, 0, searchFrom); ok {
		sel.Add(NewRange(at, at+ByteOffset(len(needle))))
		return true
	}
	return false
}

// SelectAllOccurrences replaces sel with one range per non-overlapping
// match of needle in buf's text, ordered by byte start. The last match
// becomes primary.
func SelectAllOccurrences(buf *buffer.Buffer, sel *Selection, needle string) bool {
	if needle == "" {
		return false
	}
	var ranges []Range
	text := buf.Text()
	offset := 0
	for {
		idx := strings.Index(text[offset:], needle)
		if idx < 0 {
			break
		}
		start := ByteOffset(offset + idx)
		end := start + ByteOffset(len(needle))
		ranges = append(ranges, NewRange(start, end))
		offset += idx + len(needle)
	}
	if len(ranges) == 0 {
		return false
	}
	sel.SetAll(ranges)
	return true
}

// findFrom performs a literal substring search over buf's text restricted
// to [from, limit), returning the byte offset of the first match.
func findFrom(buf *buffer.Buffer, needle string, from, limit ByteOffset) (ByteOffset, bool) {
	if limit > buf.Len() {
		limit = buf.Len()
	}
	if from >= limit {
		return 0, false
	}
	hay := buf.TextRange(from, limit)
	idx := strings.Index(hay, needle)
	if idx < 0 {
		return 0, false
	}
	return from + ByteOffset(idx), true
}
