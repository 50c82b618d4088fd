package selection

import (
	"sort"

	"github.com/forge-editor/forge/internal/buffer"
)

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset updates an offset after an edit.
// Returns the new offset position.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	// Edit is entirely before offset: adjust by delta
	if edit.Range.End <= offset {
		oldLen := edit.Range.End - edit.Range.Start
		newLen := ByteOffset(len(edit.NewText))
		return offset - oldLen + newLen
	}

	// Edit starts at or after offset: no change needed
	if edit.Range.Start >= offset {
		return offset
	}

	// Edit spans offset: move to end of new text
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// TransformOffsetSticky is like TransformOffset but with a "sticky" behavior
// that determines how the offset behaves when the edit starts exactly at the offset.
// If sticky is true, the offset "sticks" to its position (stays at start of insert).
// If sticky is false, the offset moves with insertions (moves to end of insert).
func TransformOffsetSticky(offset ByteOffset, edit Edit, sticky bool) ByteOffset {
	// For insertions at exactly the offset position
	if edit.Range.Start == offset && edit.Range.Start == edit.Range.End {
		if sticky {
			// Sticky: stay at current position
			return offset
		}
		// Non-sticky: move to end of insertion
		return offset + ByteOffset(len(edit.NewText))
	}

	// Edit is entirely before offset: adjust by delta
	if edit.Range.End <= offset {
		oldLen := edit.Range.End - edit.Range.Start
		newLen := ByteOffset(len(edit.NewText))
		return offset - oldLen + newLen
	}

	// Edit starts after offset: no change needed
	if edit.Range.Start >= offset {
		return offset
	}

	// Edit spans offset: move to end of new text
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// TransformCursor updates a cursor after an edit.
func TransformCursor(c Cursor, edit Edit) Cursor {
	return NewCursor(TransformOffset(c.offset, edit))
}

// TransformRange updates a range after an edit. Both anchor and head are
// transformed independently.
func TransformRange(r Range, edit Edit) Range {
	return Range{
		Anchor: TransformOffset(r.Anchor, edit),
		Head:   TransformOffset(r.Head, edit),
	}
}

// TransformRangeWithBias transforms a range with specified bias for anchor and head.
// Anchor typically has sticky=true (stays at position for insertions at anchor).
// Head typically has sticky=false (moves with insertions at cursor).
func TransformRangeWithBias(r Range, edit Edit, anchorSticky, headSticky bool) Range {
	return Range{
		Anchor: TransformOffsetSticky(r.Anchor, edit, anchorSticky),
		Head:   TransformOffsetSticky(r.Head, edit, headSticky),
	}
}

// TransformSelection updates every range in a selection after an edit.
func TransformSelection(sel *Selection, edit Edit) {
	for i := range sel.ranges {
		sel.ranges[i] = TransformRange(sel.ranges[i], edit)
	}
	sel.normalize()
}

// TransformSelectionMulti updates a selection after multiple edits.
// Edits are non-overlapping, addressed in offsets of the document before any
// of them was applied, and may come in any order; they are processed from
// the highest start offset down so each one's offsets stay valid.
func TransformSelectionMulti(sel *Selection, edits []Edit) {
	sorted := append([]Edit(nil), edits...)
	SortEditsReverse(sorted)
	for _, e := range sorted {
		TransformSelection(sel, e)
	}
}

// TransformByteRanges updates a slice of plain byte spans after an edit.
// Ranges are normalized to ensure Start <= End after transformation.
func TransformByteRanges(ranges []ByteRange, edit Edit) []ByteRange {
	result := make([]ByteRange, len(ranges))
	for i, r := range ranges {
		start := TransformOffset(r.Start, edit)
		end := TransformOffset(r.End, edit)
		if start > end {
			start, end = end, start
		}
		result[i] = ByteRange{Start: start, End: end}
	}
	return result
}

// AdjustForDeletion handles the special case of transforming offsets
// when text is deleted. If the offset is within the deleted range,
// it moves to the start of the deletion.
func AdjustForDeletion(offset ByteOffset, deleteRange ByteRange) ByteOffset {
	if offset <= deleteRange.Start {
		return offset
	}
	if offset < deleteRange.End {
		return deleteRange.Start
	}
	return offset - (deleteRange.End - deleteRange.Start)
}

// AdjustForInsertion handles the special case of transforming offsets
// when text is inserted. Offsets at the insertion point move to the end
// of the inserted text.
func AdjustForInsertion(offset ByteOffset, insertOffset ByteOffset, insertLen ByteOffset) ByteOffset {
	if offset < insertOffset {
		return offset
	}
	return offset + insertLen
}

// ComputeEditDelta returns the change in document length from an edit.
func ComputeEditDelta(edit Edit) ByteOffset {
	return ByteOffset(len(edit.NewText)) - (edit.Range.End - edit.Range.Start)
}

// EditsInReverseOrder returns true if edits are sorted by descending start position.
// This is the required order for applying multiple edits atomically.
func EditsInReverseOrder(edits []Edit) bool {
	for i := 1; i < len(edits); i++ {
		if edits[i].Range.Start >= edits[i-1].Range.Start {
			return false
		}
	}
	return true
}

// SortEditsReverse sorts edits in descending order by start position.
// This mutates the input slice.
func SortEditsReverse(edits []Edit) {
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].Range.Start > edits[j].Range.Start
	})
}
