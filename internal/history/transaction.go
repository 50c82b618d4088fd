package history

import (
	"strings"
	"time"

	"github.com/forge-editor/forge/internal/buffer"
	"github.com/forge-editor/forge/internal/selection"
)

// Selection is an alias for selection.Selection for convenience.
type Selection = selection.Selection

// Transaction is a non-empty list of ChangeSets paired with the selection
// snapshot from immediately before and immediately after it was applied.
// Applying a Transaction is atomic: either every ChangeSet lands or none
// does. Every Transaction is invertible.
type Transaction struct {
	ChangeSets    []ChangeSet
	PreSelection  *Selection
	PostSelection *Selection
	Timestamp     time.Time
}

// NewTransaction builds a Transaction from a single ChangeSet.
func NewTransaction(cs ChangeSet, pre, post *Selection) Transaction {
	return Transaction{
		ChangeSets:    []ChangeSet{cs},
		PreSelection:  pre,
		PostSelection: post,
		Timestamp:     time.Now(),
	}
}

// NewEditTransaction builds a Transaction from a buffer and a set of
// non-overlapping edits (e.g. selection.Selection.Ranges() paired with
// per-caret replacement text), capturing deleted text from buf so the
// Transaction can always be inverted.
func NewEditTransaction(buf *buffer.Buffer, edits []buffer.Edit, pre, post *Selection) (Transaction, error) {
	cs, err := BuildChangeSet(buf.Len(), edits, func(start, end ByteOffset) string {
		return buf.TextRange(start, end)
	})
	if err != nil {
		return Transaction{}, err
	}
	return NewTransaction(cs, pre, post), nil
}

// IsEmpty returns true if every ChangeSet in the transaction is a no-op.
func (t Transaction) IsEmpty() bool {
	for _, cs := range t.ChangeSets {
		if !cs.IsNoop() {
			return false
		}
	}
	return true
}

// Invert returns the Transaction that undoes t: ChangeSets are inverted and
// reversed (later edits undo first, mirroring how they were applied), and
// pre/post selections swap.
func (t Transaction) Invert() Transaction {
	inverted := make([]ChangeSet, len(t.ChangeSets))
	for i, cs := range t.ChangeSets {
		inverted[len(t.ChangeSets)-1-i] = cs.Invert()
	}
	return Transaction{
		ChangeSets:    inverted,
		PreSelection:  t.PostSelection,
		PostSelection: t.PreSelection,
		Timestamp:     time.Now(),
	}
}

// Apply applies every ChangeSet in the transaction, in order, to buf.
// ChangeSet.ToEdits yields edits in ascending offset order; Buffer.ApplyEdits
// requires descending (highest offset first) so that applying one edit
// never invalidates the offsets of the ones still queued behind it.
func (t Transaction) Apply(buf *buffer.Buffer) error {
	for n, cs := range t.ChangeSets {
		edits := cs.ToEdits()
		for i, j := 0, len(edits)-1; i < j; i, j = i+1, j-1 {
			edits[i], edits[j] = edits[j], edits[i]
		}
		if err := buf.ApplyEdits(edits); err != nil {
			// Undo the ChangeSets that already landed so a failure
			// leaves buf as it was before Apply.
			_ = Transaction{ChangeSets: t.ChangeSets[:n]}.Invert().Apply(buf)
			return err
		}
	}
	return nil
}

// extend appends another transaction's ChangeSets onto t, keeping t's
// PreSelection and adopting next's PostSelection and timestamp. Used when
// the grouping rule decides two transactions belong in the same history
// node.
func (t Transaction) extend(next Transaction) Transaction {
	return Transaction{
		ChangeSets:    append(append([]ChangeSet{}, t.ChangeSets...), next.ChangeSets...),
		PreSelection:  t.PreSelection,
		PostSelection: next.PostSelection,
		Timestamp:     next.Timestamp,
	}
}

// editKind classifies a transaction for the grouping heuristic.
type editKind int

const (
	kindOther editKind = iota
	kindInsert
	kindDelete
)

// classify inspects the most recently applied ChangeSet in a transaction
// (the tail of ChangeSets — the edit that was just merged in, when the
// node has already grown by grouping) and reports whether it is a pure
// single-run insert or delete, the byte span it touched, the text
// involved, and whether the transaction as a whole came from exactly one
// caret throughout.
func (t Transaction) classify() (kind editKind, start, end ByteOffset, text string, singleCaret bool) {
	singleCaret = t.PreSelection != nil && t.PreSelection.Count() == 1 &&
		t.PostSelection != nil && t.PostSelection.Count() == 1

	if len(t.ChangeSets) == 0 {
		return kindOther, 0, 0, "", singleCaret
	}
	last := t.ChangeSets[len(t.ChangeSets)-1]

	var inserts, deletes int
	var insText, delText string
	var insStart, delStart ByteOffset
	var pos ByteOffset
	for _, c := range last.Changes {
		switch c.Op {
		case OpRetain:
			pos += c.Retain
		case OpInsert:
			inserts++
			insText += c.Text
			insStart = pos
		case OpDelete:
			deletes++
			delText += c.Text
			delStart = pos
			pos += ByteOffset(len(c.Text))
		}
	}

	switch {
	case inserts == 1 && deletes == 0:
		return kindInsert, insStart, insStart + ByteOffset(len(insText)), insText, singleCaret
	case deletes == 1 && inserts == 0:
		return kindDelete, delStart, delStart + ByteOffset(len(delText)), delText, singleCaret
	default:
		return kindOther, 0, 0, "", singleCaret
	}
}

func isAllWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}

// canExtend implements the grouping rule: a new transaction merges into
// the previous history node iff both are pure single-caret insertions of
// non-whitespace text, or both are pure deletions; the edits are spatially
// adjacent at the same caret; and they land within the grouping window of
// one another.
func canExtend(prev, next Transaction, window time.Duration) bool {
	if window <= 0 {
		return false
	}
	if next.Timestamp.Sub(prev.Timestamp) > window {
		return false
	}

	pk, pStart, pEnd, pText, pSingle := prev.classify()
	nk, nStart, nEnd, nText, nSingle := next.classify()

	if !pSingle || !nSingle {
		return false
	}
	if pk == kindOther || pk != nk {
		return false
	}

	switch pk {
	case kindInsert:
		if isAllWhitespace(pText) || isAllWhitespace(nText) {
			return false
		}
		// Forward typing: the next insertion starts exactly where the
		// previous one ended.
		return nStart == pEnd
	case kindDelete:
		// Backspace chain (deletions creep leftward) or forward-delete
		// chain (Del key repeatedly removes the byte after the caret,
		// so the span keeps the same start).
		return nEnd == pStart || nStart == pStart
	default:
		return false
	}
}
