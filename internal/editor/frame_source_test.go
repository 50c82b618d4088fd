package editor

import (
	"testing"

	"github.com/forge-editor/forge/internal/buffer"
	"github.com/forge-editor/forge/internal/decoration"
	"github.com/forge-editor/forge/internal/gpu"
	"github.com/forge-editor/forge/internal/render"
)

func TestVisibleLinesClampsToBufferEnd(t *testing.T) {
	doc := NewDocument(buffer.NewBufferFromString("a\nb\nc\n"))
	src := NewDocumentFrameSource(doc, 10)

	got := src.VisibleLines()
	if got.Start != 0 || got.End != doc.Buf.LineCount() {
		t.Fatalf("VisibleLines() = %+v, want whole buffer clamped at %d", got, doc.Buf.LineCount())
	}
}

func TestVisibleLinesRespectsTopLineAndRows(t *testing.T) {
	doc := NewDocument(buffer.NewBufferFromString("1\n2\n3\n4\n5\n"))
	src := NewDocumentFrameSource(doc, 2)
	src.TopLine = 1

	got := src.VisibleLines()
	if got.Start != 1 || got.End != 3 {
		t.Fatalf("VisibleLines() = %+v, want {1 3}", got)
	}
}

func TestBuildFrameEmitsOneGlyphRunPerNonEmptyLine(t *testing.T) {
	doc := NewDocument(buffer.NewBufferFromString("hello\nworld\n"))
	src := NewDocumentFrameSource(doc, 10)
	pools := gpu.NewDefaultFramePools()

	visible := src.VisibleLines()
	frame := src.BuildFrame(pools, visible, nil)

	if len(frame.GlyphRuns) != 2 {
		t.Fatalf("got %d glyph runs, want 2", len(frame.GlyphRuns))
	}
	if frame.GlyphRuns[0].Text != "hello" || frame.GlyphRuns[1].Text != "world" {
		t.Fatalf("glyph run text = %q, %q", frame.GlyphRuns[0].Text, frame.GlyphRuns[1].Text)
	}
}

func TestBuildFrameTurnsLineBackgroundDecorationIntoRect(t *testing.T) {
	doc := NewDocument(buffer.NewBufferFromString("hello\n"))
	src := NewDocumentFrameSource(doc, 10)
	pools := gpu.NewDefaultFramePools()

	decorations := []decoration.LayerResult{
		{
			LayerID: "active-line",
			Decorations: []decoration.Decoration{
				{Kind: decoration.KindLineBackground, Line: 0},
			},
		},
	}

	frame := src.BuildFrame(pools, src.VisibleLines(), decorations)
	if len(frame.Rects) != 1 {
		t.Fatalf("got %d rects, want 1", len(frame.Rects))
	}
	if frame.Rects[0].Layer != "active-line" {
		t.Fatalf("Layer = %q, want %q", frame.Rects[0].Layer, "active-line")
	}
}

func TestBuildFrameSkipsDecorationsOutsideVisibleRange(t *testing.T) {
	doc := NewDocument(buffer.NewBufferFromString("1\n2\n3\n4\n5\n"))
	src := NewDocumentFrameSource(doc, 2)
	pools := gpu.NewDefaultFramePools()

	decorations := []decoration.LayerResult{
		{
			LayerID: "caret",
			Decorations: []decoration.Decoration{
				{Kind: decoration.KindUnderline, Line: 4},
			},
		},
	}

	frame := src.BuildFrame(pools, src.VisibleLines(), decorations)
	for _, run := range frame.GlyphRuns {
		if run.Layer == "caret" {
			t.Fatal("expected the out-of-range caret decoration to be dropped")
		}
	}
}

func TestBuildFramePlacesCursorAtPrimaryCaret(t *testing.T) {
	doc := NewDocument(buffer.NewBufferFromString("hello\nworld\n"))
	doc.Sel.Set(doc.Sel.Primary().MoveTo(8)) // line 1, column 2
	src := NewDocumentFrameSource(doc, 10)
	pools := gpu.NewDefaultFramePools()

	frame := src.BuildFrame(pools, src.VisibleLines(), nil)
	if !frame.CursorShow {
		t.Fatal("expected CursorShow to be true when the caret is within the visible range")
	}
	if frame.CursorAt.Y != src.Metrics.Height {
		t.Fatalf("CursorAt.Y = %d, want %d (one line down)", frame.CursorAt.Y, src.Metrics.Height)
	}
}

var _ render.FrameSource = (*DocumentFrameSource)(nil)
