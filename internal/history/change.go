package history

import (
	"errors"
	"fmt"
	"sort"

	"github.com/forge-editor/forge/internal/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Errors returned while building or validating a ChangeSet.
var (
	ErrChangeSetInvalid  = errors.New("changeset: retain+delete does not span the base length")
	ErrOverlappingEdits  = errors.New("history: edits overlap")
	ErrUnorderedEdits    = errors.New("history: edits are not ordered by start offset")
)

// Op identifies the kind of a single Change.
type Op uint8

const (
	OpRetain Op = iota
	OpInsert
	OpDelete
)

func (op Op) String() string {
	switch op {
	case OpRetain:
		return "retain"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one step of a ChangeSet: retain N bytes unchanged, insert text,
// or delete N bytes. The deleted bytes are carried on the Change itself
// (Text) so that a ChangeSet can always be inverted without consulting the
// buffer.
type Change struct {
	Op     Op
	Retain ByteOffset // valid when Op == OpRetain
	Text   string     // inserted text (OpInsert) or deleted text (OpDelete)
}

// Len returns how many bytes of the pre-state this change consumes.
func (c Change) Len() ByteOffset {
	switch c.Op {
	case OpRetain:
		return c.Retain
	case OpDelete:
		return ByteOffset(len(c.Text))
	default:
		return 0
	}
}

// ChangeSet is an ordered sequence of Changes. The Retain and Delete byte
// counts must sum to BaseLen: the length of the buffer the ChangeSet was
// built against.
type ChangeSet struct {
	Changes []Change
	BaseLen ByteOffset
}

// Validate checks the Retain+Delete invariant.
func (cs ChangeSet) Validate() error {
	var consumed ByteOffset
	for _, c := range cs.Changes {
		if c.Op == OpRetain || c.Op == OpDelete {
			consumed += c.Len()
		}
	}
	if consumed != cs.BaseLen {
		return fmt.Errorf("%w: consumed %d, base %d", ErrChangeSetInvalid, consumed, cs.BaseLen)
	}
	return nil
}

// NewLen returns the length of the buffer after applying this ChangeSet.
func (cs ChangeSet) NewLen() ByteOffset {
	var n ByteOffset
	for _, c := range cs.Changes {
		switch c.Op {
		case OpRetain:
			n += c.Retain
		case OpInsert:
			n += ByteOffset(len(c.Text))
		}
	}
	return n
}

// IsNoop returns true if the ChangeSet makes no change to the buffer.
func (cs ChangeSet) IsNoop() bool {
	for _, c := range cs.Changes {
		if c.Op != OpRetain {
			return false
		}
	}
	return true
}

// Invert returns the ChangeSet that undoes cs. Applying cs then cs.Invert()
// restores the original text exactly, since every Delete already carries
// the text it removed.
func (cs ChangeSet) Invert() ChangeSet {
	inverted := make([]Change, len(cs.Changes))
	for i, c := range cs.Changes {
		switch c.Op {
		case OpRetain:
			inverted[i] = c
		case OpInsert:
			inverted[i] = Change{Op: OpDelete, Text: c.Text}
		case OpDelete:
			inverted[i] = Change{Op: OpInsert, Text: c.Text}
		}
	}
	return ChangeSet{Changes: inverted, BaseLen: cs.NewLen()}
}

// ToEdits converts the ChangeSet into a list of buffer.Edit, one per
// contiguous (delete, insert) run, suitable for buffer.Buffer.ApplyEdits.
func (cs ChangeSet) ToEdits() []buffer.Edit {
	var edits []buffer.Edit
	var pos ByteOffset
	i := 0
	for i < len(cs.Changes) {
		c := cs.Changes[i]
		if c.Op == OpRetain {
			pos += c.Retain
			i++
			continue
		}
		start := pos
		var deleted, inserted string
		for i < len(cs.Changes) && cs.Changes[i].Op != OpRetain {
			switch cs.Changes[i].Op {
			case OpDelete:
				deleted += cs.Changes[i].Text
			case OpInsert:
				inserted += cs.Changes[i].Text
			}
			i++
		}
		pos = start + ByteOffset(len(deleted))
		edits = append(edits, buffer.Edit{
			Range:   buffer.Range{Start: start, End: start + ByteOffset(len(deleted))},
			NewText: inserted,
		})
	}
	return edits
}

// ChangeSetBuilder accumulates Retain/Insert/Delete runs in order.
type ChangeSetBuilder struct {
	changes []Change
	baseLen ByteOffset
}

// NewChangeSetBuilder starts building a ChangeSet against a buffer of the
// given length.
func NewChangeSetBuilder(baseLen ByteOffset) *ChangeSetBuilder {
	return &ChangeSetBuilder{baseLen: baseLen}
}

// Retain appends a retained run of n bytes. A zero-length retain is dropped.
func (b *ChangeSetBuilder) Retain(n ByteOffset) *ChangeSetBuilder {
	if n <= 0 {
		return b
	}
	b.changes = append(b.changes, Change{Op: OpRetain, Retain: n})
	return b
}

// Insert appends an insertion of text. A zero-length insert is dropped.
func (b *ChangeSetBuilder) Insert(text string) *ChangeSetBuilder {
	if text == "" {
		return b
	}
	b.changes = append(b.changes, Change{Op: OpInsert, Text: text})
	return b
}

// Delete appends a deletion, carrying the deleted text for invertibility.
// A zero-length delete is dropped.
func (b *ChangeSetBuilder) Delete(text string) *ChangeSetBuilder {
	if text == "" {
		return b
	}
	b.changes = append(b.changes, Change{Op: OpDelete, Text: text})
	return b
}

// Build returns the finished ChangeSet.
func (b *ChangeSetBuilder) Build() ChangeSet {
	return ChangeSet{Changes: b.changes, BaseLen: b.baseLen}
}

// BuildChangeSet constructs a ChangeSet from a set of non-overlapping,
// ascending buffer.Edit values applied against a buffer of the given
// length. deletedTextAt must return the text currently occupying
// [start,end) in the pre-edit buffer, used to make deletions invertible.
//
// Per the core invariant, when multiple ranges are edited at once (the
// multi-cursor case) they are applied simultaneously against the same
// pre-state revision; the caller is responsible for merging overlapping
// ranges before calling this (selection.Selection already keeps its
// ranges merged and sorted).
func BuildChangeSet(baseLen ByteOffset, edits []buffer.Edit, deletedTextAt func(start, end ByteOffset) string) (ChangeSet, error) {
	sorted := make([]buffer.Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Range.Start < sorted[j].Range.Start })

	b := NewChangeSetBuilder(baseLen)
	var pos ByteOffset
	for _, e := range sorted {
		if e.Range.Start < pos {
			return ChangeSet{}, ErrOverlappingEdits
		}
		b.Retain(e.Range.Start - pos)
		if e.Range.Len() > 0 {
			b.Delete(deletedTextAt(e.Range.Start, e.Range.End))
		}
		b.Insert(e.NewText)
		pos = e.Range.End
	}
	b.Retain(baseLen - pos)
	cs := b.Build()
	if err := cs.Validate(); err != nil {
		return ChangeSet{}, err
	}
	return cs, nil
}
