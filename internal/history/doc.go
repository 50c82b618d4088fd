// Package history provides transactional undo/redo for the text editor
// engine as a branching tree, not a linear stack. Key concepts:
//
// # Changes and ChangeSets
//
// A Change is one of Retain(n bytes), Insert(text), or Delete(text). A
// ChangeSet is an ordered sequence of Changes whose Retain+Delete byte
// counts sum to the pre-edit buffer length. Every Delete carries the text
// it removed, so a ChangeSet can always be inverted without re-reading the
// buffer.
//
// # Transactions
//
// A Transaction is a non-empty list of ChangeSets plus the selection
// snapshot from immediately before and after it was applied. Applying a
// Transaction is atomic.
//
// # The History Tree
//
// History is a rooted tree of Nodes, each carrying a Transaction. The
// "current" node advances on Apply, retreats on Undo, advances on Redo.
// Undo/redo never discard a branch: typing after an undo creates a
// sibling, and the old branch remains reachable. Redo disambiguates
// between siblings using the "most recently visited child, else most
// recently created" policy.
//
//	h := history.NewHistory()
//	h.Apply(buf, t)         // lands a transaction, branching if needed
//	sel, err := h.Undo(buf) // restores buf and returns the selection to use
//	sel, err = h.Redo(buf)
//
// # Grouping
//
// Adjacent single-caret insertions of non-whitespace text, or adjacent
// deletions, merge into the current node automatically within a 500ms
// window. A selection change, save, or structural command
// should call Boundary() to force the next edit into a fresh node.
// BeginGroup/EndGroup force a manual grouping window for multi-step
// commands like find-and-replace:
//
//	h.BeginGroup("Find and Replace")
//	// ... multiple Apply calls ...
//	h.EndGroup()
//
// # Dirty Tracking
//
// MarkClean() records the current node as the savepoint; IsDirty() is the
// inequality test current != savepoint.
package history
