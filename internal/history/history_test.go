package history

import (
	"testing"
	"time"

	"github.com/forge-editor/forge/internal/buffer"
	"github.com/forge-editor/forge/internal/selection"
)

func insertAt(t *testing.T, buf *buffer.Buffer, offset ByteOffset, text string) Transaction {
	t.Helper()
	pre := selection.NewSelectionAt(offset)
	post := selection.NewSelectionAt(offset + ByteOffset(len(text)))
	edits := []buffer.Edit{{Range: buffer.Range{Start: offset, End: offset}, NewText: text}}
	tx, err := NewEditTransaction(buf, edits, pre, post)
	if err != nil {
		t.Fatalf("NewEditTransaction: %v", err)
	}
	return tx
}

func deleteRange(t *testing.T, buf *buffer.Buffer, start, end ByteOffset) Transaction {
	t.Helper()
	pre := selection.NewSelectionAt(end)
	post := selection.NewSelectionAt(start)
	edits := []buffer.Edit{{Range: buffer.Range{Start: start, End: end}, NewText: ""}}
	tx, err := NewEditTransaction(buf, edits, pre, post)
	if err != nil {
		t.Fatalf("NewEditTransaction: %v", err)
	}
	return tx
}

func TestChangeSetInvert(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	tx := insertAt(t, buf, 5, " world")
	if err := tx.Apply(buf); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if buf.Text() != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", buf.Text())
	}

	inv := tx.Invert()
	if err := inv.Apply(buf); err != nil {
		t.Fatalf("invert apply: %v", err)
	}
	if buf.Text() != "hello" {
		t.Errorf("expected %q after invert, got %q", "hello", buf.Text())
	}
}

func TestChangeSetValidate(t *testing.T) {
	cs := ChangeSet{
		Changes: []Change{{Op: OpRetain, Retain: 3}, {Op: OpInsert, Text: "xy"}},
		BaseLen: 5,
	}
	if err := cs.Validate(); err == nil {
		t.Error("expected validation error for mismatched retain")
	}

	cs.BaseLen = 3
	if err := cs.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestHistoryApplyAndUndo(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := NewHistory()
	h.SetGroupWindow(0) // disable automatic grouping for this test

	tx := insertAt(t, buf, 0, "hello")
	if err := h.Apply(buf, tx); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if buf.Text() != "hello" {
		t.Fatalf("expected %q, got %q", "hello", buf.Text())
	}

	sel, err := h.Undo(buf)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if buf.Text() != "" {
		t.Errorf("expected empty buffer after undo, got %q", buf.Text())
	}
	if sel.PrimaryCursor() != 0 {
		t.Errorf("expected restored cursor at 0, got %d", sel.PrimaryCursor())
	}

	if _, err := h.Undo(buf); err != ErrNothingToUndo {
		t.Errorf("expected ErrNothingToUndo at root, got %v", err)
	}
}

func TestHistoryRedo(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := NewHistory()
	h.SetGroupWindow(0)

	h.Apply(buf, insertAt(t, buf, 0, "abc"))
	h.Undo(buf)

	sel, err := h.Redo(buf)
	if err != nil {
		t.Fatalf("redo: %v", err)
	}
	if buf.Text() != "abc" {
		t.Errorf("expected %q after redo, got %q", "abc", buf.Text())
	}
	if sel.PrimaryCursor() != 3 {
		t.Errorf("expected cursor at 3, got %d", sel.PrimaryCursor())
	}

	if _, err := h.Redo(buf); err != ErrNothingToRedo {
		t.Errorf("expected ErrNothingToRedo at leaf, got %v", err)
	}
}

func TestHistoryBranching(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := NewHistory()
	h.SetGroupWindow(0)

	h.Apply(buf, insertAt(t, buf, 0, "a")) // node A
	h.Apply(buf, insertAt(t, buf, 1, "b")) // node B (child of A)

	h.Undo(buf) // back to A, buf == "a"
	if buf.Text() != "a" {
		t.Fatalf("expected %q, got %q", "a", buf.Text())
	}

	// Typing something new from A creates a sibling branch (node C);
	// node B must still be reachable, not discarded.
	h.Apply(buf, insertAt(t, buf, 1, "c")) // node C (child of A)
	if buf.Text() != "ac" {
		t.Fatalf("expected %q, got %q", "ac", buf.Text())
	}

	current := h.Current()
	if len(current.Parent.Children) != 2 {
		t.Fatalf("expected 2 branches under A, got %d", len(current.Parent.Children))
	}

	// Redo from A should prefer the most recently visited child: C (since
	// we just applied and moved into it), not B.
	h.Undo(buf) // back to A
	sel, err := h.Redo(buf)
	if err != nil {
		t.Fatalf("redo: %v", err)
	}
	if buf.Text() != "ac" {
		t.Errorf("expected redo to prefer the most recently visited branch, got %q", buf.Text())
	}
	_ = sel
}

func TestHistoryGroupingAdjacentInserts(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := NewHistory()
	// Default 500ms window; three keystrokes typed back to back group
	// into a single node.
	h.Apply(buf, insertAt(t, buf, 0, "a"))
	h.Apply(buf, insertAt(t, buf, 1, "b"))
	h.Apply(buf, insertAt(t, buf, 2, "c"))

	if buf.Text() != "abc" {
		t.Fatalf("expected %q, got %q", "abc", buf.Text())
	}

	if _, err := h.Undo(buf); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if buf.Text() != "" {
		t.Errorf("one undo should unwind the whole grouped insertion, got %q", buf.Text())
	}
}

func TestHistoryGroupingRespectsWindow(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := NewHistory()
	h.SetGroupWindow(10 * time.Millisecond)

	tx1 := insertAt(t, buf, 0, "a")
	h.Apply(buf, tx1)

	time.Sleep(20 * time.Millisecond)

	tx2 := insertAt(t, buf, 1, "b")
	h.Apply(buf, tx2)

	if buf.Text() != "ab" {
		t.Fatalf("expected %q, got %q", "ab", buf.Text())
	}

	h.Undo(buf)
	if buf.Text() != "a" {
		t.Errorf("edits outside the grouping window should undo separately, got %q", buf.Text())
	}
}

func TestHistoryGroupingDoesNotMixInsertAndDelete(t *testing.T) {
	buf := buffer.NewBufferFromString("x")
	h := NewHistory()

	h.Apply(buf, insertAt(t, buf, 1, "y")) // "xy"
	h.Apply(buf, deleteRange(t, buf, 0, 1)) // "y", a delete right after an insert

	if buf.Text() != "y" {
		t.Fatalf("expected %q, got %q", "y", buf.Text())
	}

	h.Undo(buf)
	if buf.Text() != "xy" {
		t.Errorf("insert and delete should not merge into one node, got %q", buf.Text())
	}
}

func TestHistoryGroupingDoesNotMixWhitespace(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := NewHistory()

	h.Apply(buf, insertAt(t, buf, 0, "a"))
	h.Apply(buf, insertAt(t, buf, 1, " "))

	if buf.Text() != "a " {
		t.Fatalf("expected %q, got %q", "a ", buf.Text())
	}

	h.Undo(buf)
	if buf.Text() != "a" {
		t.Errorf("whitespace insertion should start a fresh node, got %q", buf.Text())
	}
}

func TestHistoryBoundaryForcesFreshNode(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := NewHistory()

	h.Apply(buf, insertAt(t, buf, 0, "a"))
	h.Boundary()
	h.Apply(buf, insertAt(t, buf, 1, "b"))

	if buf.Text() != "ab" {
		t.Fatalf("expected %q, got %q", "ab", buf.Text())
	}

	h.Undo(buf)
	if buf.Text() != "a" {
		t.Errorf("Boundary should have forced a fresh node, got %q", buf.Text())
	}
}

func TestHistoryManualGrouping(t *testing.T) {
	buf := buffer.NewBufferFromString("foo foo foo")
	h := NewHistory()

	h.BeginGroup("Replace All")
	h.Apply(buf, func() Transaction {
		edits := []buffer.Edit{
			{Range: buffer.Range{Start: 0, End: 3}, NewText: "bar"},
			{Range: buffer.Range{Start: 4, End: 7}, NewText: "bar"},
			{Range: buffer.Range{Start: 8, End: 11}, NewText: "bar"},
		}
		pre := selection.NewSelectionAt(0)
		post := selection.NewSelectionAt(11)
		tx, err := NewEditTransaction(buf, edits, pre, post)
		if err != nil {
			t.Fatalf("NewEditTransaction: %v", err)
		}
		return tx
	}())
	h.EndGroup()

	if buf.Text() != "bar bar bar" {
		t.Fatalf("expected %q, got %q", "bar bar bar", buf.Text())
	}

	h.Undo(buf)
	if buf.Text() != "foo foo foo" {
		t.Errorf("grouped replace should undo as one unit, got %q", buf.Text())
	}
}

func TestHistoryDirtyTracking(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := NewHistory()

	if h.IsDirty() {
		t.Error("fresh history should not be dirty")
	}

	h.Apply(buf, insertAt(t, buf, 0, "a"))
	if !h.IsDirty() {
		t.Error("history should be dirty after an edit")
	}

	h.MarkClean()
	if h.IsDirty() {
		t.Error("history should be clean after MarkClean")
	}

	h.Undo(buf)
	if !h.IsDirty() {
		t.Error("undoing past the savepoint should be dirty again")
	}

	h.Redo(buf)
	if h.IsDirty() {
		t.Error("returning to the savepoint node should be clean again")
	}
}

func TestMultiCursorTransactionSingleNode(t *testing.T) {
	buf := buffer.NewBufferFromString("foo\nfoo\nfoo")
	h := NewHistory()

	edits := []buffer.Edit{
		{Range: buffer.Range{Start: 0, End: 0}, NewText: "X"},
		{Range: buffer.Range{Start: 4, End: 4}, NewText: "X"},
		{Range: buffer.Range{Start: 8, End: 8}, NewText: "X"},
	}
	pre := selection.NewSelectionFromSlice([]selection.Range{
		selection.NewCaret(0), selection.NewCaret(4), selection.NewCaret(8),
	})
	post := selection.NewSelectionFromSlice([]selection.Range{
		selection.NewCaret(1), selection.NewCaret(6), selection.NewCaret(11),
	})
	tx, err := NewEditTransaction(buf, edits, pre, post)
	if err != nil {
		t.Fatalf("NewEditTransaction: %v", err)
	}

	if err := h.Apply(buf, tx); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if buf.Text() != "Xfoo\nXfoo\nXfoo" {
		t.Fatalf("expected %q, got %q", "Xfoo\nXfoo\nXfoo", buf.Text())
	}

	sel, err := h.Undo(buf)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if buf.Text() != "foo\nfoo\nfoo" {
		t.Errorf("multi-cursor edit should undo as a single node, got %q", buf.Text())
	}
	if sel.Count() != 3 {
		t.Errorf("expected 3 restored carets, got %d", sel.Count())
	}
}
