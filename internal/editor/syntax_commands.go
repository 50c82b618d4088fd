package editor

import (
	"github.com/forge-editor/forge/internal/buffer"
	"github.com/forge-editor/forge/internal/decoration"
	"github.com/forge-editor/forge/internal/selection"
	"github.com/forge-editor/forge/internal/syntax"
)

// matchBracket moves the primary caret to the bracket matching the one
// at (or immediately before) its current position. Reports no change
// in plain mode or when the caret doesn't sit on a bracket.
func (c *Commander) matchBracket() bool {
	if c.Syntax == nil {
		return false
	}
	head := c.Doc.Sel.Primary().Head
	target, ok := c.Syntax.MatchBracket(head)
	if !ok && head > 0 {
		target, ok = c.Syntax.MatchBracket(head - 1)
	}
	if !ok {
		return false
	}
	c.Doc.Sel.Clear()
	c.Doc.Sel.Set(selection.NewRange(target, target))
	return true
}

// publishBracketMatch republishes the "bracket-match" decoration layer
// for the bracket under (or just before) the primary caret, clearing it
// when the caret doesn't sit on a bracket or Syntax is unset.
func (c *Commander) publishBracketMatch() {
	if c.Decorations == nil {
		return
	}
	if c.Syntax == nil {
		c.Decorations.SetLayer("bracket-match", nil)
		return
	}

	head := c.Doc.Sel.Primary().Head
	at := head
	target, ok := c.Syntax.MatchBracket(at)
	if !ok && head > 0 {
		at = head - 1
		target, ok = c.Syntax.MatchBracket(at)
	}
	if !ok {
		c.Decorations.SetLayer("bracket-match", nil)
		return
	}
	c.Decorations.SetLayer("bracket-match", []decoration.Decoration{
		c.bracketMarker(at),
		c.bracketMarker(target),
	})
}

func (c *Commander) bracketMarker(offset buffer.ByteOffset) decoration.Decoration {
	point := c.Doc.Buf.OffsetToPoint(offset)
	col := uint32(offset - c.Doc.Buf.LineStartOffset(point.Line))
	return decoration.Decoration{
		Kind: decoration.KindRangeHighlight,
		Line: point.Line,
		Cols: decoration.ColRange{Start: col, End: col + 1},
	}
}

// toggleFold toggles whether the innermost fold range enclosing the
// primary caret is collapsed, tracked by its start offset. Reports no
// change in plain mode or when the caret sits outside any fold range.
func (c *Commander) toggleFold() bool {
	if c.Syntax == nil {
		return false
	}
	fold, ok := innermostFold(c.Syntax.FoldRanges(), c.Doc.Sel.Primary().Head)
	if !ok {
		return false
	}
	if c.foldedAt == nil {
		c.foldedAt = make(map[buffer.ByteOffset]bool)
	}
	c.foldedAt[fold.Start] = !c.foldedAt[fold.Start]
	return true
}

// innermostFold returns the smallest fold range in folds that contains
// offset, since a caret inside a function body is also inside the
// enclosing block/file and folding should target the tightest one.
func innermostFold(folds []syntax.FoldRange, offset buffer.ByteOffset) (syntax.FoldRange, bool) {
	best, found := syntax.FoldRange{}, false
	for _, f := range folds {
		if offset < f.Start || offset > f.End {
			continue
		}
		if !found || f.End-f.Start < best.End-best.Start {
			best, found = f, true
		}
	}
	return best, found
}

// publishFoldMarks republishes a gutter mark on the start line of every
// range currently collapsed via toggleFold.
func (c *Commander) publishFoldMarks() {
	if c.Decorations == nil {
		return
	}
	if c.Syntax == nil || len(c.foldedAt) == 0 {
		c.Decorations.SetLayer("fold", nil)
		return
	}

	var marks []decoration.Decoration
	for _, f := range c.Syntax.FoldRanges() {
		if !c.foldedAt[f.Start] {
			continue
		}
		point := c.Doc.Buf.OffsetToPoint(f.Start)
		marks = append(marks, decoration.Decoration{
			Kind:       decoration.KindGutterMark,
			Line:       point.Line,
			GutterKind: decoration.GutterFold,
		})
	}
	c.Decorations.SetLayer("fold", marks)
}

// publishOutline republishes the "outline" decoration layer as one
// inline breadcrumb per top-level symbol, placed at its declaration
// line. Never reports a buffer/selection change; it only refreshes a
// decoration layer a host's outline panel (or an inline breadcrumb
// renderer) can query back out of the Store.
func (c *Commander) publishOutline() bool {
	if c.Decorations == nil {
		return false
	}
	if c.Syntax == nil {
		c.Decorations.SetLayer("outline", nil)
		return false
	}

	var marks []decoration.Decoration
	for _, sym := range c.Syntax.Symbols() {
		point := c.Doc.Buf.OffsetToPoint(sym.Start)
		marks = append(marks, decoration.Decoration{
			Kind: decoration.KindInlineText,
			Line: point.Line,
			Col:  point.Column,
			Text: sym.Name,
		})
	}
	c.Decorations.SetLayer("outline", marks)
	return false
}
