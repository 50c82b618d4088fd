package editor

import (
	"context"
	"errors"
	"sort"

	"github.com/forge-editor/forge/internal/buffer"
	"github.com/forge-editor/forge/internal/syntax"
)

// SyntaxReparser adapts a syntax.Document to render.Reparser. Driver
// calls Reparse every pass regardless of whether the buffer actually
// changed, so Reparse itself decides how much work that's worth: with
// no edits landed since the last call and an existing tree to keep,
// it's a no-op; with a handful of tracked edits it feeds them through
// syntax.Document.ApplyEdit one at a time instead of reparsing the
// whole buffer; a revision the tracked edits don't account for (undo,
// redo, or any other change that bypassed Document.apply) falls back
// to a full Reparse, as does the very first call.
type SyntaxReparser struct {
	Doc    *Document
	Syntax *syntax.Document

	lastRevision buffer.RevisionID
	primed       bool
}

// NewSyntaxReparser pairs doc's buffer with a syntax.Document for lang
// (nil is valid: the document stays in plain mode).
func NewSyntaxReparser(doc *Document, lang *syntax.Language) *SyntaxReparser {
	return &SyntaxReparser{Doc: doc, Syntax: syntax.NewDocument(lang)}
}

// Reparse implements render.Reparser.
func (r *SyntaxReparser) Reparse(ctx context.Context) error {
	rev := r.Doc.Buf.RevisionID()
	edits := r.Doc.TakeLastEdits()

	if !r.primed || !r.Syntax.HasTree() {
		r.primed = true
		r.lastRevision = rev
		return r.Syntax.Reparse(ctx, r.Doc.Buf.Text())
	}
	if rev == r.lastRevision {
		return nil
	}
	if len(edits) == 0 {
		// The buffer moved (undo, redo, an external reload) without
		// going through Document.apply, so there's no edit list to
		// replay incrementally.
		r.lastRevision = rev
		return r.Syntax.Reparse(ctx, r.Doc.Buf.Text())
	}

	// buffer.Buffer.ApplyEdits requires edits in descending-start
	// order so an earlier edit's offsets aren't shifted by a later
	// one; syntax.Document.ApplyEdit carries the same requirement
	// since it replays each edit against its own source snapshot.
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].Range.Start > edits[j].Range.Start
	})
	for _, e := range edits {
		err := r.Syntax.ApplyEdit(ctx, syntax.TextEdit{
			Start:   e.Range.Start,
			End:     e.Range.End,
			NewText: e.NewText,
		})
		if errors.Is(err, syntax.ErrNoLanguage) {
			r.lastRevision = rev
			return nil
		}
		if err != nil {
			return err
		}
	}
	r.lastRevision = rev
	return nil
}
