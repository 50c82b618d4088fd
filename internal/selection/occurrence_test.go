package selection

import (
	"testing"

	"github.com/forge-editor/forge/internal/buffer"
)

func TestSelectNextOccurrence(t *testing.T) {
	buf := buffer.NewBufferFromString("cat hat cat mat cat")
	sel := NewSelectionFromSlice([]Range{NewRange(0, 3)}) // "cat" at 0

	if !SelectNextOccurrence(buf, sel) {
		t.Fatal("expected a next occurrence to be found")
	}
	if sel.Count() != 2 {
		t.Fatalf("expected 2 ranges, got %d", sel.Count())
	}
	primary := sel.Primary()
	if primary.Start() != 8 || primary.End() != 11 {
		t.Errorf("expected second 'cat' at [8,11), got [%d,%d)", primary.Start(), primary.End())
	}
}

func TestSelectNextOccurrenceWraps(t *testing.T) {
	buf := buffer.NewBufferFromString("cat hat")
	sel := NewSelectionFromSlice([]Range{NewRange(0, 3)})

	// The primary already covers the only occurrence, so the search has
	// nowhere to go but wrap back to offset 0.
	if !SelectNextOccurrence(buf, sel) {
		t.Fatal("expected wraparound to find the same occurrence again")
	}
}

func TestSelectNextOccurrenceEmptyCaret(t *testing.T) {
	buf := buffer.NewBufferFromString("cat hat cat")
	sel := NewSelectionAt(0)
	if SelectNextOccurrence(buf, sel) {
		t.Error("expected no-op for an empty (caret) primary range")
	}
}

func TestSelectAllOccurrences(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo baz foo")
	sel := NewSelectionAt(0)

	if !SelectAllOccurrences(buf, sel, "foo") {
		t.Fatal("expected matches to be found")
	}
	if sel.Count() != 3 {
		t.Fatalf("expected 3 ranges, got %d", sel.Count())
	}
	ranges := sel.Ranges()
	want := []ByteOffset{0, 8, 16}
	for i, r := range ranges {
		if r.Start != want[i] {
			t.Errorf("range %d: expected start %d, got %d", i, want[i], r.Start)
		}
	}
}

func TestSelectAllOccurrencesNoMatch(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar")
	sel := NewSelectionAt(0)
	if SelectAllOccurrences(buf, sel, "xyz") {
		t.Error("expected no match to report false and leave selection untouched")
	}
}
