package editor

import (
	"sort"

	"github.com/forge-editor/forge/internal/buffer"
	"github.com/forge-editor/forge/internal/decoration"
	"github.com/forge-editor/forge/internal/gpu"
	"github.com/forge-editor/forge/internal/render"
	"github.com/forge-editor/forge/internal/syntax"
)

// DocumentFrameSource is the default render.FrameSource: it paints a
// Document's visible lines as glyph runs — split into per-token runs
// against Syntax's highlight spans when Syntax is non-nil, or one flat
// run per line in plain mode — and turns the current decoration query
// into background Rects and underline/inline glyph runs, addressed in
// pixels via CellMetrics the same way TcellBackend maps pixels back
// down to terminal cells.
type DocumentFrameSource struct {
	Doc     *Document
	Syntax  *syntax.Document
	Metrics gpu.CellMetrics

	// TopLine is the first visible buffer line; Rows is the viewport
	// height in cells. A host updates both on scroll/resize.
	TopLine uint32
	Rows    int

	TextColor       gpu.RGBA
	DecorationColor gpu.RGBA
	Palette         SyntaxPalette
}

// NewDocumentFrameSource returns a source with gpu.DefaultCellMetrics
// and a light-on-dark default palette.
func NewDocumentFrameSource(doc *Document, rows int) *DocumentFrameSource {
	return &DocumentFrameSource{
		Doc:             doc,
		Metrics:         gpu.DefaultCellMetrics,
		Rows:            rows,
		TextColor:       gpu.Opaque(220, 220, 220),
		DecorationColor: gpu.Opaque(60, 60, 90),
		Palette:         DefaultSyntaxPalette(),
	}
}

// SyntaxPalette maps each syntax.TokenClass to the color its glyph
// run paints. Indexed by TokenClass, so a custom theme can be built by
// copying DefaultSyntaxPalette() and overwriting individual entries.
type SyntaxPalette [syntax.ClassCount]gpu.RGBA

// DefaultSyntaxPalette returns the built-in light-on-dark token theme.
func DefaultSyntaxPalette() SyntaxPalette {
	var p SyntaxPalette
	for i := range p {
		p[i] = gpu.Opaque(220, 220, 220) // ClassPlain and anything unmapped
	}
	p[syntax.ClassKeyword] = gpu.Opaque(198, 120, 221)
	p[syntax.ClassFunction] = gpu.Opaque(97, 175, 239)
	p[syntax.ClassType] = gpu.Opaque(229, 192, 123)
	p[syntax.ClassString] = gpu.Opaque(152, 195, 121)
	p[syntax.ClassNumber] = gpu.Opaque(209, 154, 102)
	p[syntax.ClassComment] = gpu.Opaque(92, 99, 112)
	p[syntax.ClassOperator] = gpu.Opaque(86, 182, 194)
	p[syntax.ClassPunctuation] = gpu.Opaque(171, 178, 191)
	p[syntax.ClassVariable] = gpu.Opaque(224, 108, 117)
	p[syntax.ClassConstant] = gpu.Opaque(209, 154, 102)
	p[syntax.ClassMacro] = gpu.Opaque(198, 120, 221)
	p[syntax.ClassAttribute] = gpu.Opaque(229, 192, 123)
	return p
}

// VisibleLines implements render.FrameSource.
func (s *DocumentFrameSource) VisibleLines() render.LineRange {
	last := s.Doc.Buf.LineCount()
	end := s.TopLine + uint32(s.Rows)
	if end > last {
		end = last
	}
	if end < s.TopLine {
		end = s.TopLine
	}
	return render.LineRange{Start: s.TopLine, End: end}
}

// BuildFrame implements render.FrameSource: one GlyphRun per visible
// line of buffer text (or one per highlight span on that line, when
// Syntax holds a tree), plus a Rect or GlyphRun per decoration in the
// supplied query result, in the z-order QueryRange already sorted
// them into so later (higher-layer) entries paint over earlier ones.
func (s *DocumentFrameSource) BuildFrame(pools *gpu.FramePools, visible render.LineRange, decorations []decoration.LayerResult) gpu.Frame {
	var spans []syntax.HighlightSpan
	if s.Syntax != nil {
		spans = s.Syntax.Highlight()
	}

	for line := visible.Start; line < visible.End; line++ {
		text := s.Doc.Buf.LineText(line)
		if text == "" {
			continue
		}
		y := int(line-visible.Start) * s.Metrics.Height
		if spans == nil {
			pools.AppendGlyphRun(gpu.GlyphRun{
				Layer:  "text",
				Text:   text,
				Color:  s.TextColor,
				Origin: gpu.Point{X: 0, Y: y},
			})
			continue
		}
		lineStart := s.Doc.Buf.LineStartOffset(line)
		s.appendHighlightedLine(pools, text, lineStart, y, spans)
	}

	for _, layer := range decorations {
		for _, d := range layer.Decorations {
			s.appendDecoration(pools, visible, layer.LayerID, d)
		}
	}

	primary := s.Doc.Sel.Primary()
	point := s.Doc.Buf.OffsetToPoint(primary.Head)
	col := int(point.Column)
	row := int(point.Line - visible.Start)

	return gpu.Frame{
		Rects:      pools.Rects(),
		GlyphRuns:  pools.GlyphRuns(),
		CursorAt:   gpu.Point{X: col * s.Metrics.Width, Y: row * s.Metrics.Height},
		CursorShow: point.Line >= visible.Start && point.Line < visible.End,
		Cursor:     gpu.CursorBlock,
	}
}

func (s *DocumentFrameSource) appendDecoration(pools *gpu.FramePools, visible render.LineRange, layerID string, d decoration.Decoration) {
	if d.Line < visible.Start || d.Line >= visible.End {
		return
	}
	row := int(d.Line-visible.Start) * s.Metrics.Height

	switch d.Kind {
	case decoration.KindLineBackground, decoration.KindRangeHighlight:
		startCol, endCol := int(d.Cols.Start), int(d.Cols.End)
		if d.Kind == decoration.KindLineBackground {
			endCol = startCol + 1000 // spans the full line; the backend clips to its width
		}
		pools.AppendRect(gpu.Rect{
			X:     startCol * s.Metrics.Width,
			Y:     row,
			W:     (endCol - startCol) * s.Metrics.Width,
			H:     s.Metrics.Height,
			Color: s.DecorationColor,
			Layer: layerID,
		})
	case decoration.KindUnderline:
		pools.AppendGlyphRun(gpu.GlyphRun{
			Layer:  layerID,
			Text:   "_",
			Color:  s.TextColor,
			Origin: gpu.Point{X: int(d.Cols.Start) * s.Metrics.Width, Y: row},
		})
	case decoration.KindInlineText:
		pools.AppendGlyphRun(gpu.GlyphRun{
			Layer:  layerID,
			Text:   d.Text,
			Color:  s.DecorationColor,
			Origin: gpu.Point{X: int(d.Col) * s.Metrics.Width, Y: row},
		})
	case decoration.KindGutterMark:
		// Gutter marks are drawn in the gutter zone, outside a
		// Document's own text columns; a host's gutter renderer owns
		// translating these into glyphs once panel layout is wired.
	}
}

// appendHighlightedLine splits one line of text into a GlyphRun per
// highlight span that overlaps it, colored from Palette, so a theme
// can paint keywords, strings, and comments differently within a
// single line instead of one flat run per line. spans must be sorted
// by Start and, per Highlight's union-coverage contract, gapless.
func (s *DocumentFrameSource) appendHighlightedLine(pools *gpu.FramePools, text string, lineStart buffer.ByteOffset, y int, spans []syntax.HighlightSpan) {
	lineEnd := lineStart + buffer.ByteOffset(len(text))

	i := sort.Search(len(spans), func(i int) bool { return spans[i].End > lineStart })
	for ; i < len(spans) && spans[i].Start < lineEnd; i++ {
		span := spans[i]
		start := span.Start
		if start < lineStart {
			start = lineStart
		}
		end := span.End
		if end > lineEnd {
			end = lineEnd
		}
		if end <= start {
			continue
		}
		col := int(start - lineStart)
		pools.AppendGlyphRun(gpu.GlyphRun{
			Layer:  "text",
			Text:   text[col : col+int(end-start)],
			Color:  s.Palette[span.Class],
			Origin: gpu.Point{X: col * s.Metrics.Width, Y: y},
		})
	}
}
