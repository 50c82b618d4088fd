package selection

import (
	"testing"
)

// Cursor Tests

func TestNewCursor(t *testing.T) {
	c := NewCursor(10)
	if c.Offset() != 10 {
		t.Errorf("expected offset 10, got %d", c.Offset())
	}
}

func TestNewCursorNegative(t *testing.T) {
	c := NewCursor(-5)
	if c.Offset() != 0 {
		t.Errorf("negative offset should clamp to 0, got %d", c.Offset())
	}
}

func TestCursorMoveTo(t *testing.T) {
	c := NewCursor(10)
	c2 := c.MoveTo(20)

	if c.Offset() != 10 {
		t.Error("original cursor should be unchanged")
	}
	if c2.Offset() != 20 {
		t.Errorf("expected offset 20, got %d", c2.Offset())
	}
}

func TestCursorMoveBy(t *testing.T) {
	c := NewCursor(10)

	c2 := c.MoveBy(5)
	if c2.Offset() != 15 {
		t.Errorf("expected offset 15, got %d", c2.Offset())
	}

	c3 := c.MoveBy(-5)
	if c3.Offset() != 5 {
		t.Errorf("expected offset 5, got %d", c3.Offset())
	}

	c4 := c.MoveBy(-20)
	if c4.Offset() != 0 {
		t.Errorf("expected offset 0 (clamped), got %d", c4.Offset())
	}
}

func TestCursorClamp(t *testing.T) {
	c := NewCursor(50)

	c2 := c.Clamp(30)
	if c2.Offset() != 30 {
		t.Errorf("expected clamped offset 30, got %d", c2.Offset())
	}

	c3 := c.Clamp(100)
	if c3.Offset() != 50 {
		t.Errorf("expected unchanged offset 50, got %d", c3.Offset())
	}
}

func TestCursorCompare(t *testing.T) {
	c1 := NewCursor(10)
	c2 := NewCursor(20)
	c3 := NewCursor(10)

	if c1.Compare(c2) != -1 {
		t.Error("c1 should be less than c2")
	}
	if c2.Compare(c1) != 1 {
		t.Error("c2 should be greater than c1")
	}
	if c1.Compare(c3) != 0 {
		t.Error("c1 should equal c3")
	}
}

func TestCursorToRange(t *testing.T) {
	c := NewCursor(10)
	r := c.ToRange()

	if r.Anchor != 10 || r.Head != 10 {
		t.Error("cursor range should have anchor == head == offset")
	}
	if !r.IsEmpty() {
		t.Error("cursor range should be empty")
	}
}

// Range Tests

func TestNewRange(t *testing.T) {
	r := NewRange(10, 20)

	if r.Anchor != 10 {
		t.Errorf("expected anchor 10, got %d", r.Anchor)
	}
	if r.Head != 20 {
		t.Errorf("expected head 20, got %d", r.Head)
	}
}

func TestNewCaret(t *testing.T) {
	r := NewCaret(15)

	if r.Anchor != 15 || r.Head != 15 {
		t.Error("caret should have anchor == head")
	}
	if !r.IsEmpty() {
		t.Error("caret should be empty")
	}
}

func TestRangeIsEmpty(t *testing.T) {
	empty := NewCaret(10)
	if !empty.IsEmpty() {
		t.Error("should be empty")
	}

	notEmpty := NewRange(10, 20)
	if notEmpty.IsEmpty() {
		t.Error("should not be empty")
	}
}

func TestRangeLen(t *testing.T) {
	r := NewRange(10, 20)
	if r.Len() != 10 {
		t.Errorf("expected len 10, got %d", r.Len())
	}

	backward := NewRange(20, 10)
	if backward.Len() != 10 {
		t.Errorf("backward range len should be 10, got %d", backward.Len())
	}
}

func TestRangeBytes(t *testing.T) {
	forward := NewRange(10, 20)
	b := forward.Bytes()
	if b.Start != 10 || b.End != 20 {
		t.Errorf("expected range [10:20), got [%d:%d)", b.Start, b.End)
	}

	backward := NewRange(20, 10)
	b = backward.Bytes()
	if b.Start != 10 || b.End != 20 {
		t.Errorf("backward range should be normalized to [10:20), got [%d:%d)", b.Start, b.End)
	}
}

func TestRangeStartEnd(t *testing.T) {
	forward := NewRange(10, 20)
	if forward.Start() != 10 || forward.End() != 20 {
		t.Error("forward range Start/End incorrect")
	}

	backward := NewRange(20, 10)
	if backward.Start() != 10 || backward.End() != 20 {
		t.Error("backward range Start/End incorrect")
	}
}

func TestRangeDirection(t *testing.T) {
	forward := NewRange(10, 20)
	if !forward.IsForward() {
		t.Error("should be forward")
	}
	if forward.IsBackward() {
		t.Error("should not be backward")
	}

	backward := NewRange(20, 10)
	if backward.IsForward() {
		t.Error("should not be forward")
	}
	if !backward.IsBackward() {
		t.Error("should be backward")
	}
}

func TestRangeExtend(t *testing.T) {
	r := NewCaret(10)
	extended := r.Extend(20)

	if extended.Anchor != 10 {
		t.Error("anchor should remain at 10")
	}
	if extended.Head != 20 {
		t.Error("head should be at 20")
	}
}

func TestRangeCollapse(t *testing.T) {
	r := NewRange(10, 20)

	collapsed := r.Collapse()
	if collapsed.Anchor != 20 || collapsed.Head != 20 {
		t.Error("collapse should move to head")
	}

	toStart := r.CollapseToStart()
	if toStart.Anchor != 10 || toStart.Head != 10 {
		t.Error("collapseToStart should move to start")
	}

	toEnd := r.CollapseToEnd()
	if toEnd.Anchor != 20 || toEnd.Head != 20 {
		t.Error("collapseToEnd should move to end")
	}
}

func TestRangeFlip(t *testing.T) {
	r := NewRange(10, 20)
	flipped := r.Flip()

	if flipped.Anchor != 20 || flipped.Head != 10 {
		t.Error("flip should swap anchor and head")
	}
}

func TestRangeNormalize(t *testing.T) {
	backward := NewRange(20, 10)
	normalized := backward.Normalize()

	if normalized.Anchor != 10 || normalized.Head != 20 {
		t.Error("normalize should make range forward")
	}
	if !normalized.IsForward() {
		t.Error("normalized should be forward")
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(10, 20)

	if !r.Contains(15) {
		t.Error("range should contain 15")
	}
	if !r.Contains(10) {
		t.Error("range should contain start (10)")
	}
	if r.Contains(20) {
		t.Error("range should not contain end (20, exclusive)")
	}
	if r.Contains(5) {
		t.Error("range should not contain 5")
	}

	empty := NewCaret(10)
	if empty.Contains(10) {
		t.Error("empty range should not contain anything")
	}
}

func TestRangeOverlaps(t *testing.T) {
	r1 := NewRange(10, 20)
	r2 := NewRange(15, 25)
	r3 := NewRange(25, 35)
	r4 := NewRange(5, 15)

	if !r1.Overlaps(r2) {
		t.Error("r1 should overlap r2")
	}
	if r1.Overlaps(r3) {
		t.Error("r1 should not overlap r3")
	}
	if !r1.Overlaps(r4) {
		t.Error("r1 should overlap r4")
	}
}

func TestRangeTouches(t *testing.T) {
	r1 := NewRange(10, 20)
	r2 := NewRange(20, 30)
	r3 := NewRange(25, 35)

	if !r1.Touches(r2) {
		t.Error("r1 should touch r2 (adjacent)")
	}
	if r1.Touches(r3) {
		t.Error("r1 should not touch r3")
	}
}

func TestRangeMerge(t *testing.T) {
	r1 := NewRange(10, 20)
	r2 := NewRange(15, 30)

	merged := r1.Merge(r2)
	if merged.Start() != 10 || merged.End() != 30 {
		t.Errorf("merged should be [10:30), got [%d:%d)", merged.Start(), merged.End())
	}
}

func TestRangeClamp(t *testing.T) {
	r := NewRange(10, 50)
	clamped := r.Clamp(30)

	if clamped.Anchor != 10 || clamped.Head != 30 {
		t.Errorf("expected clamped to [10:30], got [%d:%d]", clamped.Anchor, clamped.Head)
	}
}

// Selection Tests

func TestNewSelectionSingle(t *testing.T) {
	r := NewCaret(10)
	sel := NewSelection(r)

	if sel.Count() != 1 {
		t.Errorf("expected count 1, got %d", sel.Count())
	}
	if sel.Primary().Head != 10 {
		t.Error("primary should be at offset 10")
	}
}

func TestSelectionAdd(t *testing.T) {
	sel := NewSelectionAt(10)
	sel.Add(NewCaret(30))

	if sel.Count() != 2 {
		t.Errorf("expected count 2, got %d", sel.Count())
	}
	if sel.Primary().Head != 30 {
		t.Error("the last-added range should be primary")
	}
}

func TestSelectionAddMerge(t *testing.T) {
	sel := NewSelection(NewRange(10, 20))
	sel.Add(NewRange(15, 25))

	if sel.Count() != 1 {
		t.Errorf("overlapping ranges should merge, got count %d", sel.Count())
	}

	r := sel.Primary()
	if r.Start() != 10 || r.End() != 25 {
		t.Errorf("merged range should be [10:25), got [%d:%d)", r.Start(), r.End())
	}
}

func TestSelectionPrimaryIsLastAdded(t *testing.T) {
	sel := NewSelectionAt(50)
	sel.Add(NewCaret(10))
	sel.Add(NewCaret(30))

	// Ranges are sorted by position: 10, 30, 50. The last-added caret (30)
	// should remain primary even though it is not selections[0] or [len-1].
	if sel.Primary().Head != 30 {
		t.Errorf("expected primary at 30 (last added), got %d", sel.Primary().Head)
	}
	ranges := sel.All()
	if ranges[0].Head != 10 || ranges[1].Head != 30 || ranges[2].Head != 50 {
		t.Error("ranges should be sorted by position")
	}
	if sel.PrimaryIndex() != 1 {
		t.Errorf("expected primary index 1, got %d", sel.PrimaryIndex())
	}
}

func TestSelectionNormalizeSort(t *testing.T) {
	sel := NewSelectionFromSlice([]Range{
		NewRange(30, 40),
		NewRange(10, 20),
		NewRange(50, 60),
	})

	if sel.Count() != 3 {
		t.Errorf("expected 3 ranges, got %d", sel.Count())
	}

	ranges := sel.All()
	if ranges[0].Start() != 10 || ranges[1].Start() != 30 || ranges[2].Start() != 50 {
		t.Error("ranges should be sorted by start position")
	}
}

func TestSelectionClear(t *testing.T) {
	sel := NewSelectionAt(10)
	sel.Add(NewCaret(20))
	sel.Add(NewCaret(30))

	if sel.Count() != 3 {
		t.Errorf("expected 3 ranges, got %d", sel.Count())
	}

	sel.Clear()

	if sel.Count() != 1 {
		t.Errorf("after clear, expected 1 range, got %d", sel.Count())
	}
	if sel.Primary().Head != 30 {
		t.Error("clear should keep the primary range")
	}
}

func TestSelectionClamp(t *testing.T) {
	sel := NewSelectionFromSlice([]Range{
		NewRange(10, 20),
		NewRange(40, 60),
	})

	sel.Clamp(50)

	ranges := sel.All()
	if ranges[1].End() != 50 {
		t.Errorf("second range should be clamped to 50, got %d", ranges[1].End())
	}
}

func TestSelectionHasSelection(t *testing.T) {
	caretsOnly := NewSelectionFromSlice([]Range{
		NewCaret(10),
		NewCaret(20),
	})
	if caretsOnly.HasSelection() {
		t.Error("carets only should not have selection")
	}

	withRange := NewSelectionFromSlice([]Range{
		NewCaret(10),
		NewRange(20, 30),
	})
	if !withRange.HasSelection() {
		t.Error("should have selection")
	}
}

func TestSelectionClone(t *testing.T) {
	sel := NewSelectionFromSlice([]Range{
		NewRange(10, 20),
		NewRange(30, 40),
	})

	clone := sel.Clone()

	// Modify original
	sel.Add(NewCaret(50))

	if clone.Count() != 2 {
		t.Error("clone should not be affected by original modifications")
	}
}

func TestSelectionEqualsNil(t *testing.T) {
	sel := NewSelectionAt(10)
	if sel.Equals(nil) {
		t.Error("Equals(nil) should return false")
	}
}

// Transform Tests

func TestTransformOffsetInsertBefore(t *testing.T) {
	// Insert "Hello" (5 chars) at offset 0
	edit := Edit{
		Range:   ByteRange{Start: 0, End: 0},
		NewText: "Hello",
	}

	offset := TransformOffset(10, edit)
	if offset != 15 {
		t.Errorf("offset should shift right by 5, got %d", offset)
	}
}

func TestTransformOffsetInsertAfter(t *testing.T) {
	// Insert at offset 20, cursor at 10
	edit := Edit{
		Range:   ByteRange{Start: 20, End: 20},
		NewText: "Hello",
	}

	offset := TransformOffset(10, edit)
	if offset != 10 {
		t.Errorf("offset should be unchanged, got %d", offset)
	}
}

func TestTransformOffsetDeleteBefore(t *testing.T) {
	// Delete 5 chars at offset 0-5
	edit := Edit{
		Range:   ByteRange{Start: 0, End: 5},
		NewText: "",
	}

	offset := TransformOffset(10, edit)
	if offset != 5 {
		t.Errorf("offset should shift left by 5, got %d", offset)
	}
}

func TestTransformOffsetDeleteSpanning(t *testing.T) {
	// Delete chars from 5 to 15, cursor at 10
	edit := Edit{
		Range:   ByteRange{Start: 5, End: 15},
		NewText: "",
	}

	offset := TransformOffset(10, edit)
	if offset != 5 {
		t.Errorf("offset should move to start of deletion, got %d", offset)
	}
}

func TestTransformOffsetReplace(t *testing.T) {
	// Replace 5 chars with 10 chars at 0-5
	edit := Edit{
		Range:   ByteRange{Start: 0, End: 5},
		NewText: "0123456789",
	}

	offset := TransformOffset(10, edit)
	// Cursor was at 10, delete shifted it to 5, insert of 10 shifts it to 15
	if offset != 15 {
		t.Errorf("expected offset 15, got %d", offset)
	}
}

func TestTransformRange(t *testing.T) {
	r := NewRange(10, 20)

	// Insert 5 chars at offset 0
	edit := Edit{
		Range:   ByteRange{Start: 0, End: 0},
		NewText: "Hello",
	}

	transformed := TransformRange(r, edit)
	if transformed.Anchor != 15 || transformed.Head != 25 {
		t.Errorf("range should shift by 5, got [%d:%d]", transformed.Anchor, transformed.Head)
	}
}

func TestTransformSelection(t *testing.T) {
	sel := NewSelectionFromSlice([]Range{
		NewCaret(10),
		NewCaret(20),
		NewCaret(30),
	})

	// Insert 5 chars at offset 0
	edit := Edit{
		Range:   ByteRange{Start: 0, End: 0},
		NewText: "Hello",
	}

	TransformSelection(sel, edit)

	ranges := sel.All()
	if ranges[0].Head != 15 || ranges[1].Head != 25 || ranges[2].Head != 35 {
		t.Error("all carets should shift by 5")
	}
}

func TestTransformSelectionMulti(t *testing.T) {
	sel := NewSelectionAt(50)

	// Multiple edits applied in order
	edits := []Edit{
		{Range: ByteRange{Start: 0, End: 0}, NewText: "AAAAA"},   // +5
		{Range: ByteRange{Start: 10, End: 15}, NewText: ""},      // -5
		{Range: ByteRange{Start: 20, End: 20}, NewText: "BBBBB"}, // +5
	}

	TransformSelectionMulti(sel, edits)

	// Net effect: +5, cursor at 50 should end at 55
	if sel.PrimaryCursor() != 55 {
		t.Errorf("expected cursor at 55, got %d", sel.PrimaryCursor())
	}
}

func TestComputeEditDelta(t *testing.T) {
	insert := Edit{Range: ByteRange{Start: 0, End: 0}, NewText: "Hello"}
	if ComputeEditDelta(insert) != 5 {
		t.Error("insert delta should be 5")
	}

	del := Edit{Range: ByteRange{Start: 0, End: 10}, NewText: ""}
	if ComputeEditDelta(del) != -10 {
		t.Error("delete delta should be -10")
	}

	replace := Edit{Range: ByteRange{Start: 0, End: 5}, NewText: "HelloWorld"}
	if ComputeEditDelta(replace) != 5 {
		t.Error("replace delta should be 5 (10 - 5)")
	}
}

func TestEditsInReverseOrder(t *testing.T) {
	correct := []Edit{
		{Range: ByteRange{Start: 30, End: 35}},
		{Range: ByteRange{Start: 20, End: 25}},
		{Range: ByteRange{Start: 10, End: 15}},
	}
	if !EditsInReverseOrder(correct) {
		t.Error("should be in reverse order")
	}

	incorrect := []Edit{
		{Range: ByteRange{Start: 10, End: 15}},
		{Range: ByteRange{Start: 20, End: 25}},
	}
	if EditsInReverseOrder(incorrect) {
		t.Error("should not be in reverse order")
	}
}

func TestSortEditsReverse(t *testing.T) {
	edits := []Edit{
		{Range: ByteRange{Start: 10, End: 15}},
		{Range: ByteRange{Start: 30, End: 35}},
		{Range: ByteRange{Start: 20, End: 25}},
	}

	SortEditsReverse(edits)

	if edits[0].Range.Start != 30 || edits[1].Range.Start != 20 || edits[2].Range.Start != 10 {
		t.Error("edits should be sorted in descending order by start")
	}
}

// Edge case tests

func TestOverlappingRangesNormalize(t *testing.T) {
	sel := NewSelectionFromSlice([]Range{
		NewRange(0, 20),
		NewRange(10, 30),
		NewRange(25, 40),
	})

	// All overlap, should merge to one
	if sel.Count() != 1 {
		t.Errorf("expected 1 merged range, got %d", sel.Count())
	}

	r := sel.Primary()
	if r.Start() != 0 || r.End() != 40 {
		t.Errorf("expected merged range [0:40), got [%d:%d)", r.Start(), r.End())
	}
}

func TestAdjacentRangesNormalize(t *testing.T) {
	sel := NewSelectionFromSlice([]Range{
		NewRange(0, 10),
		NewRange(10, 20),
		NewRange(20, 30),
	})

	// Adjacent ranges should merge
	if sel.Count() != 1 {
		t.Errorf("expected 1 merged range, got %d", sel.Count())
	}

	r := sel.Primary()
	if r.Start() != 0 || r.End() != 30 {
		t.Errorf("expected merged range [0:30), got [%d:%d)", r.Start(), r.End())
	}
}

func TestTransformDeleteEntireRange(t *testing.T) {
	r := NewRange(10, 20)

	// Delete exactly the range
	edit := Edit{
		Range:   ByteRange{Start: 10, End: 20},
		NewText: "",
	}

	transformed := TransformRange(r, edit)

	// Both anchor and head should move to 10
	if transformed.Anchor != 10 || transformed.Head != 10 {
		t.Errorf("expected collapsed at 10, got [%d:%d]", transformed.Anchor, transformed.Head)
	}
}

func TestTransformInsertAtCursor(t *testing.T) {
	r := NewCaret(10)

	// Insert exactly at cursor position
	edit := Edit{
		Range:   ByteRange{Start: 10, End: 10},
		NewText: "Hello",
	}

	transformed := TransformRange(r, edit)

	// Cursor should move to end of insertion
	if transformed.Head != 15 {
		t.Errorf("cursor should move to 15, got %d", transformed.Head)
	}
}

func TestMultiCursorEditing(t *testing.T) {
	// Simulate typing 'x' at multiple cursor positions
	sel := NewSelectionFromSlice([]Range{
		NewCaret(10),
		NewCaret(20),
		NewCaret(30),
	})

	// Edits in reverse order (as buffer.ApplyEdits expects)
	edits := []Edit{
		{Range: ByteRange{Start: 30, End: 30}, NewText: "x"},
		{Range: ByteRange{Start: 20, End: 20}, NewText: "x"},
		{Range: ByteRange{Start: 10, End: 10}, NewText: "x"},
	}

	TransformSelectionMulti(sel, edits)

	// After inserting 'x' at each position, cursors should be after each 'x'
	ranges := sel.All()
	if ranges[0].Head != 11 {
		t.Errorf("first cursor should be at 11, got %d", ranges[0].Head)
	}
	if ranges[1].Head != 22 {
		t.Errorf("second cursor should be at 22, got %d", ranges[1].Head)
	}
	if ranges[2].Head != 33 {
		t.Errorf("third cursor should be at 33, got %d", ranges[2].Head)
	}
}
