// Package gpu defines the pixel-addressed paint primitives the render
// phase emits every frame — colored rectangles and shaped glyph runs —
// plus a concrete Backend that presents them. The primitives are pure
// data: nothing in this package reaches into the buffer, selection, or
// decoration store. A Backend is the graphics abstraction a render
// loop is driven against; TcellBackend is this module's concrete
// instance of it, rendering to a terminal surface via gdamore/tcell.
package gpu

import "github.com/lucasb-eyer/go-colorful"

// RGBA is a straight (non-premultiplied) 8-bit-per-channel color.
type RGBA struct {
	R, G, B, A uint8
}

// Opaque returns an RGBA with full alpha.
func Opaque(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// Transparent reports whether the color contributes nothing when
// composited (alpha zero).
func (c RGBA) Transparent() bool {
	return c.A == 0
}

func (c RGBA) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGBA {
	r, g, b := c.Clamped().RGB255()
	return RGBA{R: r, G: g, B: b, A: 255}
}

// Blend mixes src over dst in perceptually uniform Lab space (via
// go-colorful) weighted by t; src's alpha only matters in that a fully
// transparent src leaves dst unchanged. It is used for decoration
// compositing that isn't a flat overwrite — e.g. blending a
// search-match highlight over an active-line background rather than
// hard-replacing it. t==0 returns dst, t==1 returns src.
func Blend(dst, src RGBA, t float64) RGBA {
	if src.A == 0 || t <= 0 {
		return dst
	}
	if t >= 1 {
		return RGBA{R: src.R, G: src.G, B: src.B, A: 255}
	}
	blended := dst.toColorful().BlendLab(src.toColorful(), t)
	return fromColorful(blended)
}

// Point is a pixel-addressed origin.
type Point struct {
	X, Y int
}

// Rect is a filled, pixel-addressed rectangle: the sole primitive for
// backgrounds, gutter marks, selection highlight bands, and underline
// bars. Layer records which z-ordered decoration layer produced it,
// so a Backend can composite multiple overlapping Rects deterministically
// without needing to re-derive z-order from decoration.Store itself.
type Rect struct {
	X, Y, W, H int
	Color      RGBA
	Layer      string
}

// GlyphRun is one run of shaped text: editor text, line numbers, tab
// labels, status text, or an inline hint. Font is a face identifier
// resolved by the Backend (this package carries no font-loading
// logic — rasterization is backend-specific).
type GlyphRun struct {
	Layer  string
	Text   string
	Font   string
	Color  RGBA
	Origin Point
}
