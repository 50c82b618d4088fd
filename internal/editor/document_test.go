package editor

import (
	"testing"

	"github.com/forge-editor/forge/internal/buffer"
)

func TestDocumentApplyIsNoopForEmptyEdits(t *testing.T) {
	doc := NewDocument(buffer.NewBufferFromString("hello"))
	changed, err := doc.apply(nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if changed {
		t.Fatal("expected nil edits to be a no-op")
	}
}

func TestDocumentApplyTransformsSelectionPastInsertion(t *testing.T) {
	doc := NewDocument(buffer.NewBufferFromString("hello"))
	doc.Sel.Set(doc.Sel.Primary().MoveTo(5))
	changed, err := doc.apply([]buffer.Edit{buffer.NewInsert(5, " world")})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !changed {
		t.Fatal("expected insertion to report changed")
	}
	if got, want := doc.Buf.Text(), "hello world"; got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
	if got := doc.Sel.PrimaryCursor(); got != 11 {
		t.Fatalf("cursor after insert = %d, want 11", got)
	}
}

func TestDocumentApplyRecordsUndoableTransaction(t *testing.T) {
	doc := NewDocument(buffer.NewBufferFromString("hello"))
	if _, err := doc.apply([]buffer.Edit{buffer.NewDelete(0, 5)}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !doc.Hist.CanUndo() {
		t.Fatal("expected history to record the deletion")
	}
	sel, err := doc.Hist.Undo(doc.Buf)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got, want := doc.Buf.Text(), "hello"; got != want {
		t.Fatalf("text after undo = %q, want %q", got, want)
	}
	if sel == nil {
		t.Fatal("expected undo to return a selection")
	}
}
