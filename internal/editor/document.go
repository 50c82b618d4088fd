// Package editor bridges a resolved internal/input.Command to the
// buffer/selection/history triple a single open document owns, and is
// the concrete internal/render.Commander a host wires into a Driver.
package editor

import (
	"github.com/forge-editor/forge/internal/buffer"
	"github.com/forge-editor/forge/internal/history"
	"github.com/forge-editor/forge/internal/selection"
)

// Document owns one open file's buffer, its live selection, and its
// undo/redo tree. A Commander operates on a single Document at a time;
// a host holding more than one open file swaps Documents in rather than
// running multiple Commanders.
type Document struct {
	Buf  *buffer.Buffer
	Sel  *selection.Selection
	Hist *history.History

	lastEdits []buffer.Edit
}

// NewDocument wraps buf with a single caret at offset 0 and a fresh
// history tree.
func NewDocument(buf *buffer.Buffer) *Document {
	return &Document{
		Buf:  buf,
		Sel:  selection.NewSelectionAt(0),
		Hist: history.NewHistory(),
	}
}

// apply builds a Transaction from edits against the document's current
// selection, lands it on the history tree (which also applies it to
// Buf), and installs the transformed post-edit selection. Called with
// no edits it is a no-op that reports no change.
func (d *Document) apply(edits []buffer.Edit) (bool, error) {
	if len(edits) == 0 {
		return false, nil
	}

	pre := d.Sel.Clone()
	post := d.Sel.Clone()
	selection.TransformSelectionMulti(post, edits)
	post.Clamp(d.Buf.Len() + sumInsertedLen(edits))

	txn, err := history.NewEditTransaction(d.Buf, edits, pre, post)
	if err != nil {
		return false, err
	}
	if txn.IsEmpty() {
		return false, nil
	}
	if err := d.Hist.Apply(d.Buf, txn); err != nil {
		return false, err
	}
	d.Sel = post
	d.lastEdits = append(d.lastEdits, edits...)
	return true, nil
}

// TakeLastEdits drains and returns the edits landed since the previous
// call, in the order apply() received them. Undo/redo go through
// Hist directly rather than apply, so they never populate this —
// a caller that finds nothing here after a change should fall back to
// re-deriving it from the buffer wholesale.
func (d *Document) TakeLastEdits() []buffer.Edit {
	edits := d.lastEdits
	d.lastEdits = nil
	return edits
}

func sumInsertedLen(edits []buffer.Edit) buffer.ByteOffset {
	var n buffer.ByteOffset
	for _, e := range edits {
		n += buffer.ByteOffset(len(e.NewText)) - e.Range.Len()
	}
	return n
}
