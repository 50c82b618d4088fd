package selection

import (
	"fmt"

	"github.com/forge-editor/forge/internal/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// ByteRange is an alias for buffer.Range (a plain [Start,End) byte span),
// kept distinct from Range below which additionally carries direction.
type ByteRange = buffer.Range

// Range is a single caret+anchor pair, per the core data model: Anchor is
// where the range started, Head is the current cursor position (where
// typing occurs). Anchor == Head means the range is a caret.
// Range is an immutable value type.
type Range struct {
	Anchor ByteOffset
	Head   ByteOffset
}

// NewRange creates a range from anchor to head.
func NewRange(anchor, head ByteOffset) Range {
	return Range{Anchor: anchor, Head: head}
}

// NewCaret creates a range representing just a caret (no extent).
func NewCaret(offset ByteOffset) Range {
	return Range{Anchor: offset, Head: offset}
}

// NewRangeFromBytes creates a forward range covering the given byte span.
func NewRangeFromBytes(r ByteRange) Range {
	return Range{Anchor: r.Start, Head: r.End}
}

// IsCaret returns true if the range has no extent (Anchor == Head).
func (r Range) IsCaret() bool {
	return r.Anchor == r.Head
}

// IsEmpty is an alias for IsCaret, kept for callers migrating from selection sets.
func (r Range) IsEmpty() bool {
	return r.IsCaret()
}

// Len returns the length of the range in bytes.
func (r Range) Len() ByteOffset {
	if r.Anchor <= r.Head {
		return r.Head - r.Anchor
	}
	return r.Anchor - r.Head
}

// Bytes returns the range as a plain byte span (always Start <= End).
func (r Range) Bytes() ByteRange {
	if r.Anchor <= r.Head {
		return ByteRange{Start: r.Anchor, End: r.Head}
	}
	return ByteRange{Start: r.Head, End: r.Anchor}
}

// Start returns the lower bound of the range.
func (r Range) Start() ByteOffset {
	if r.Anchor <= r.Head {
		return r.Anchor
	}
	return r.Head
}

// End returns the upper bound of the range.
func (r Range) End() ByteOffset {
	if r.Anchor >= r.Head {
		return r.Anchor
	}
	return r.Head
}

// Cursor returns the head position (where typing would occur).
func (r Range) Cursor() ByteOffset {
	return r.Head
}

// IsForward returns true if the range extends forward (head >= anchor).
func (r Range) IsForward() bool {
	return r.Head >= r.Anchor
}

// IsBackward returns true if the range extends backward (head < anchor).
func (r Range) IsBackward() bool {
	return r.Head < r.Anchor
}

// Extend returns a new range extended to include the given offset.
// The anchor remains fixed; only the head moves.
func (r Range) Extend(offset ByteOffset) Range {
	return Range{Anchor: r.Anchor, Head: offset}
}

// MoveTo returns a new collapsed range (caret) at the given offset.
func (r Range) MoveTo(offset ByteOffset) Range {
	return Range{Anchor: offset, Head: offset}
}

// MoveBy returns a new range shifted by delta bytes (both anchor and head).
func (r Range) MoveBy(delta ByteOffset) Range {
	return Range{Anchor: r.Anchor + delta, Head: r.Head + delta}
}

// Collapse collapses the range to a caret at the head.
func (r Range) Collapse() Range {
	return Range{Anchor: r.Head, Head: r.Head}
}

// CollapseToStart collapses the range to its start position.
func (r Range) CollapseToStart() Range {
	start := r.Start()
	return Range{Anchor: start, Head: start}
}

// CollapseToEnd collapses the range to its end position.
func (r Range) CollapseToEnd() Range {
	end := r.End()
	return Range{Anchor: end, Head: end}
}

// Flip returns a range with anchor and head swapped.
func (r Range) Flip() Range {
	return Range{Anchor: r.Head, Head: r.Anchor}
}

// Normalize returns a forward range (anchor <= head).
func (r Range) Normalize() Range {
	if r.Anchor <= r.Head {
		return r
	}
	return Range{Anchor: r.Head, Head: r.Anchor}
}

// Contains returns true if the given offset is within the range [start, end).
func (r Range) Contains(offset ByteOffset) bool {
	start, end := r.Start(), r.End()
	return offset >= start && offset < end
}

// ContainsInclusive returns true if the offset is within [start, end].
func (r Range) ContainsInclusive(offset ByteOffset) bool {
	start, end := r.Start(), r.End()
	return offset >= start && offset <= end
}

// Overlaps returns true if this range overlaps with another.
func (r Range) Overlaps(other Range) bool {
	return r.Start() < other.End() && other.Start() < r.End()
}

// Touches returns true if ranges overlap or are adjacent (touching endpoints merge).
func (r Range) Touches(other Range) bool {
	return r.Start() <= other.End() && other.Start() <= r.End()
}

// Merge merges two overlapping or touching ranges into one, preserving the
// leftmost anchor and rightmost head per the core invariant — direction of
// the resulting range favors forward (anchor = leftmost, head = rightmost).
func (r Range) Merge(other Range) Range {
	start := r.Start()
	if other.Start() < start {
		start = other.Start()
	}
	end := r.End()
	if other.End() > end {
		end = other.End()
	}
	return Range{Anchor: start, Head: end}
}

// Clamp returns a range clamped to the valid range [0, maxOffset].
func (r Range) Clamp(maxOffset ByteOffset) Range {
	anchor, head := r.Anchor, r.Head
	if anchor < 0 {
		anchor = 0
	} else if anchor > maxOffset {
		anchor = maxOffset
	}
	if head < 0 {
		head = 0
	} else if head > maxOffset {
		head = maxOffset
	}
	return Range{Anchor: anchor, Head: head}
}

// String returns a string representation of the range.
func (r Range) String() string {
	if r.IsCaret() {
		return fmt.Sprintf("Caret(%d)", r.Head)
	}
	dir := "->"
	if r.IsBackward() {
		dir = "<-"
	}
	return fmt.Sprintf("Range(%d%s%d)", r.Anchor, dir, r.Head)
}

// Equals returns true if two ranges have the same anchor and head.
func (r Range) Equals(other Range) bool {
	return r.Anchor == other.Anchor && r.Head == other.Head
}

// SameSpan returns true if two ranges cover the same span, regardless of direction.
func (r Range) SameSpan(other Range) bool {
	return r.Start() == other.Start() && r.End() == other.End()
}
