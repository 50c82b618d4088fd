package editor

import (
	"github.com/forge-editor/forge/internal/buffer"
	"github.com/forge-editor/forge/internal/decoration"
)

// publishDecorations recomputes the selection-derived layers phase 5
// of the frame loop reads back: the active line under the primary
// caret, any non-empty ranges, and a zero-width marker per caret. A
// nil Decorations store (a Commander under test with no render loop
// attached) makes this a no-op.
func (c *Commander) publishDecorations() {
	if c.Decorations == nil {
		return
	}

	primaryLine := c.Doc.Buf.OffsetToPoint(c.Doc.Sel.Primary().Head).Line
	c.Decorations.SetLayer("active-line", []decoration.Decoration{
		{Kind: decoration.KindLineBackground, Line: primaryLine},
	})

	var ranges []decoration.Decoration
	var carets []decoration.Decoration
	for _, r := range c.Doc.Sel.All() {
		if r.IsEmpty() {
			carets = append(carets, c.caretDecoration(r.Head))
			continue
		}
		ranges = append(ranges, c.rangeDecorations(r.Start(), r.End())...)
	}
	c.Decorations.SetLayer("selection", ranges)
	c.Decorations.SetLayer("caret", carets)

	c.publishBracketMatch()
	c.publishFoldMarks()
}

func (c *Commander) caretDecoration(offset buffer.ByteOffset) decoration.Decoration {
	point := c.Doc.Buf.OffsetToPoint(offset)
	col := uint32(offset - c.Doc.Buf.LineStartOffset(point.Line))
	return decoration.Decoration{
		Kind:           decoration.KindUnderline,
		Line:           point.Line,
		Cols:           decoration.ColRange{Start: col, End: col},
		UnderlineStyle: decoration.UnderlineSolid,
	}
}

// rangeDecorations splits [start,end) into one RangeHighlight decoration
// per line it spans, since the decoration store is line-indexed.
func (c *Commander) rangeDecorations(start, end buffer.ByteOffset) []decoration.Decoration {
	startPoint := c.Doc.Buf.OffsetToPoint(start)
	endPoint := c.Doc.Buf.OffsetToPoint(end)

	if startPoint.Line == endPoint.Line {
		return []decoration.Decoration{{
			Kind: decoration.KindRangeHighlight,
			Line: startPoint.Line,
			Cols: decoration.ColRange{Start: startPoint.Column, End: endPoint.Column},
		}}
	}

	var decs []decoration.Decoration
	for line := startPoint.Line; line <= endPoint.Line; line++ {
		lineStart := uint32(0)
		lineEnd := uint32(c.Doc.Buf.LineLen(line))
		switch line {
		case startPoint.Line:
			lineStart = startPoint.Column
		case endPoint.Line:
			lineEnd = endPoint.Column
		}
		decs = append(decs, decoration.Decoration{
			Kind: decoration.KindRangeHighlight,
			Line: line,
			Cols: decoration.ColRange{Start: lineStart, End: lineEnd},
		})
	}
	return decs
}
