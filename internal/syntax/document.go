package syntax

import (
	"context"
	"errors"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoLanguage is returned by operations that require a parsed tree when
// the document has none — either no language was detected for the file,
// or the language's grammar failed to load. This is not a fatal
// condition: callers fall back to plain-text classification.
var ErrNoLanguage = errors.New("syntax: no language configured for document")

// Document holds the incremental parse state for one buffer: its
// language, the most recent parse tree, and the exact source bytes that
// tree was parsed from. Document keeps its own byte snapshot rather than
// reading from buffer.Buffer on demand, so edits can be applied to the
// tree in the exact order they occurred regardless of how much later
// reparsing runs: source bytes in, tree out, independent of the live
// buffer.
type Document struct {
	mu   sync.Mutex
	lang *Language
	tree *sitter.Tree
	src  []byte

	foldCache []FoldRange
	foldValid bool
	symCache  []Symbol
	symValid  bool
}

// NewDocument creates a Document for the given language. A nil language
// is valid — the document stays in plain mode and every query returns an
// empty result, per the "grammar load failure leaves the buffer in plain
// mode" failure case.
func NewDocument(lang *Language) *Document {
	return &Document{lang: lang}
}

// SetLanguage switches the document's language, discarding any existing
// tree; the caller must call Reparse afterward to rebuild it.
func (d *Document) SetLanguage(lang *Language) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lang = lang
	d.tree = nil
	d.src = nil
	d.invalidateCachesLocked()
}

// Language returns the document's current language, or nil in plain mode.
func (d *Document) Language() *Language {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lang
}

// HasTree reports whether the document holds a parse tree an ApplyEdit
// can incrementally update. False before the first Reparse, after
// SetLanguage, and whenever the document has no language at all.
func (d *Document) HasTree() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree != nil
}

// Reparse performs a full (non-incremental) parse of text, used on
// initial load or after SetLanguage. A grammar load failure (the query
// itself is still attempted lazily on first Highlight call) cannot
// happen here since parsing doesn't depend on the query; parser
// construction failures are not possible with go-tree-sitter's API, so
// this only returns an error on context cancellation.
func (d *Document) Reparse(ctx context.Context, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	source := []byte(text)
	if d.lang == nil {
		d.src = source
		d.tree = nil
		d.invalidateCachesLocked()
		return nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(d.lang.grammar)
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return err
	}

	d.tree = tree
	d.src = source
	d.invalidateCachesLocked()
	return nil
}

// TextEdit describes one incremental edit to feed into the parse tree: a
// byte range of the previous source being replaced by new text. This
// mirrors buffer.Edit's shape so callers can pass a Transaction's edits
// straight through.
type TextEdit struct {
	Start   ByteOffset
	End     ByteOffset
	NewText string
}

// ApplyEdit incrementally reparses the document: it informs the existing
// tree of the byte range that changed (via Tree.Edit) and asks the
// parser to reuse as much of the unaffected tree as possible. If the
// document has no tree (plain mode, or a previous grammar load failure),
// ApplyEdit just updates the internal source snapshot and returns
// ErrNoLanguage so the caller knows no incremental work happened.
func (d *Document) ApplyEdit(ctx context.Context, edit TextEdit) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	startIdx := uint32(edit.Start)
	oldEndIdx := uint32(edit.End)
	newEndIdx := startIdx + uint32(len(edit.NewText))

	newSrc := make([]byte, 0, len(d.src)-int(oldEndIdx-startIdx)+len(edit.NewText))
	newSrc = append(newSrc, d.src[:startIdx]...)
	newSrc = append(newSrc, edit.NewText...)
	newSrc = append(newSrc, d.src[oldEndIdx:]...)

	if d.lang == nil || d.tree == nil {
		d.src = newSrc
		d.invalidateCachesLocked()
		return ErrNoLanguage
	}

	startPoint := pointAt(d.src, startIdx)
	oldEndPoint := pointAt(d.src, oldEndIdx)
	newEndPoint := pointAt(newSrc, newEndIdx)

	d.tree.Edit(sitter.EditInput{
		StartIndex:  startIdx,
		OldEndIndex: oldEndIdx,
		NewEndIndex: newEndIdx,
		StartPoint:  startPoint,
		OldEndPoint: oldEndPoint,
		NewEndPoint: newEndPoint,
	})

	parser := sitter.NewParser()
	parser.SetLanguage(d.lang.grammar)
	newTree, err := parser.ParseCtx(ctx, d.tree, newSrc)
	if err != nil {
		// Parse failure (cancellation aside) is not possible for a
		// syntactically-invalid-but-present grammar: tree-sitter always
		// produces a best-effort tree with ERROR nodes. A real error
		// here means the context was cancelled. The prior tree is kept,
		// but it has already taken the Edit above while d.src has not,
		// so retrying this ApplyEdit would apply the edit to the tree
		// twice; a full Reparse brings the two back in step.
		return err
	}

	d.tree = newTree
	d.src = newSrc
	d.invalidateCachesLocked()
	return nil
}

func (d *Document) invalidateCachesLocked() {
	d.foldCache = nil
	d.foldValid = false
	d.symCache = nil
	d.symValid = false
}

// pointAt computes the tree-sitter (row, column) position of a byte
// offset within source, counting newlines from the start. Column is a
// byte offset within the line, matching buffer.Point's convention.
func pointAt(source []byte, offset uint32) sitter.Point {
	var row, col uint32
	for i := uint32(0); i < offset && int(i) < len(source); i++ {
		if source[i] == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return sitter.Point{Row: row, Column: col}
}

func dedupeSortedSpans(spans []HighlightSpan) []HighlightSpan {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
	out := spans[:0]
	var lastEnd ByteOffset = -1
	for _, s := range spans {
		if s.Start < lastEnd {
			// Overlapping captures (e.g. a function call node nested
			// inside an identifier capture): keep the first, narrower
			// capture already emitted and trim this one to start where
			// it ended, preserving the "non-overlapping, byte order"
			// contract.
			if s.End <= lastEnd {
				continue
			}
			s.Start = lastEnd
		}
		out = append(out, s)
		lastEnd = s.End
	}
	return out
}
