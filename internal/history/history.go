package history

import (
	"errors"
	"sync"
	"time"

	"github.com/forge-editor/forge/internal/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultGroupWindow is the default time window within which adjacent
// single-caret edits of the same kind merge into one history node.
const DefaultGroupWindow = 500 * time.Millisecond

// History is a rooted tree of edit Nodes. The "current" node advances on
// apply, retreats on undo, advances on redo; undo/redo never discard a
// branch. A savepoint marks "the buffer is clean at this node" — is_dirty
// is the inequality current != savepoint, not a linear undo/redo stack.
type History struct {
	mu sync.Mutex

	root       *Node
	current    *Node
	savepoint  *Node
	lastEdited *Node // node most recently grown by Apply, for the grouping rule
	nextID     uint64

	// preferredChild records, per parent node, which child was most
	// recently current — the "most recently visited child" redo
	// disambiguation policy.
	preferredChild map[*Node]*Node

	groupWindow time.Duration

	// Manual grouping (BeginGroup/EndGroup), used by callers performing a
	// multi-step structural edit (e.g. find-and-replace) that should land
	// as a single undo unit regardless of the automatic adjacency rule.
	grouping     bool
	groupingNode *Node

	// forceBoundary, when set, prevents the next Apply from extending the
	// current node even if the automatic rule would otherwise allow it.
	// Set after EndGroup and after any non-edit selection change the
	// caller reports via Boundary().
	forceBoundary bool
}

// NewHistory creates an empty history tree with a single root node.
func NewHistory() *History {
	h := &History{
		groupWindow:    DefaultGroupWindow,
		preferredChild: make(map[*Node]*Node),
	}
	h.root = &Node{Timestamp: time.Now()}
	h.current = h.root
	h.savepoint = h.root
	return h
}

// SetGroupWindow overrides the automatic grouping time window.
func (h *History) SetGroupWindow(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.groupWindow = d
}

// Boundary forces the next Apply to start a fresh node instead of
// extending the current one. Callers invoke this on any selection change
// that isn't itself an edit, and before structural commands (paste,
// replace).
func (h *History) Boundary() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.forceBoundary = true
}

// Apply lands a Transaction on the history tree: it either extends the
// current node (if the grouping rule says the new transaction belongs
// with the previous one) or creates a new child node and makes it current.
// The transaction is also applied to buf. A no-op transaction is applied
// but never recorded.
func (h *History) Apply(buf *buffer.Buffer, t Transaction) error {
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}

	if err := t.Apply(buf); err != nil {
		return err
	}
	if t.IsEmpty() {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Extension only ever applies to the node this same History most
	// recently grew: an Undo/Redo repositions current without touching
	// lastEdited, so typing right after navigating the tree always opens
	// a fresh node (or branch) instead of silently mutating a node that
	// may already have sealed children.
	sameSession := h.current == h.lastEdited

	if sameSession && h.grouping && h.groupingNode == h.current && !h.forceBoundary {
		h.current.Transaction = h.current.Transaction.extend(t)
		return nil
	}

	if sameSession && !h.forceBoundary && h.current != h.root && canExtend(h.current.Transaction, t, h.groupWindow) {
		h.current.Transaction = h.current.Transaction.extend(t)
		return nil
	}

	h.forceBoundary = false
	h.nextID++
	child := &Node{
		Transaction: t,
		Parent:      h.current,
		Timestamp:   t.Timestamp,
		id:          h.nextID,
	}
	h.current.Children = append(h.current.Children, child)
	h.preferredChild[h.current] = child
	h.current = child
	h.lastEdited = child

	if h.grouping && h.groupingNode == nil {
		h.groupingNode = child
	}
	return nil
}

// Undo applies the inverse of the current node's transaction, moves
// current to its parent, and returns the selection to restore (the
// pre-edit selection of the undone node). At the root, Undo is a no-op
// and returns ErrNothingToUndo.
func (h *History) Undo(buf *buffer.Buffer) (*Selection, error) {
	h.mu.Lock()
	if h.current.IsRoot() {
		h.mu.Unlock()
		return nil, ErrNothingToUndo
	}
	node := h.current
	h.mu.Unlock()

	inverse := node.Transaction.Invert()
	if err := inverse.Apply(buf); err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.preferredChild[node.Parent] = node
	h.current = node.Parent
	h.mu.Unlock()

	return node.Transaction.PreSelection, nil
}

// Redo follows the preferred child of current (most recently visited,
// else most recently created), applies its transaction, and returns the
// selection to restore (the post-edit selection of the redone node). At a
// leaf, Redo is a no-op and returns ErrNothingToRedo.
func (h *History) Redo(buf *buffer.Buffer) (*Selection, error) {
	h.mu.Lock()
	if len(h.current.Children) == 0 {
		h.mu.Unlock()
		return nil, ErrNothingToRedo
	}
	node := h.preferredChild[h.current]
	if node == nil || node.Parent != h.current {
		node = h.current.Children[len(h.current.Children)-1]
	}
	h.mu.Unlock()

	if err := node.Transaction.Apply(buf); err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.preferredChild[h.current] = node
	h.current = node
	h.mu.Unlock()

	return node.Transaction.PostSelection, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.current.IsRoot()
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.current.Children) > 0
}

// Current returns the node the history is currently positioned at.
func (h *History) Current() *Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// MarkClean records the current node as the savepoint: the buffer is
// considered unmodified for as long as current stays at this node.
func (h *History) MarkClean() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.savepoint = h.current
}

// IsDirty reports whether the buffer has diverged from its savepoint.
func (h *History) IsDirty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current != h.savepoint
}

// BeginGroup starts a manual group: every Apply until the matching EndGroup
// extends the same history node, regardless of the automatic adjacency
// rule. Nested calls are ignored.
func (h *History) BeginGroup(_ string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.grouping {
		return
	}
	h.grouping = true
	h.groupingNode = nil
}

// EndGroup closes a manual group and forces the next Apply to start a
// fresh node, so an edit made just after the group never silently merges
// into it.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.grouping = false
	h.groupingNode = nil
	h.forceBoundary = true
}

// CancelGroup stops a manual group without special handling. Edits already
// applied during the group still affect the buffer and remain recorded —
// there is no transactional rollback at the history layer.
func (h *History) CancelGroup() {
	h.EndGroup()
}

// IsGrouping returns true if a manual group is currently open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Reset discards the entire tree and starts over at a fresh root. Used
// when a buffer is reloaded from disk and its prior history is no longer
// meaningful.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.root = &Node{Timestamp: time.Now()}
	h.current = h.root
	h.savepoint = h.root
	h.lastEdited = nil
	h.nextID = 0
	h.preferredChild = make(map[*Node]*Node)
	h.grouping = false
	h.groupingNode = nil
	h.forceBoundary = false
}
