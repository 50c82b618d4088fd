// Package decoration implements the editor's line-addressed overlay
// store: diagnostics, git gutter marks, search highlights, bracket
// matches, selection/active-line highlighting, and inline AI text, all
// attached to buffer positions rather than buffer objects so the rope
// never needs a back-pointer to its decorations.
package decoration

// Underline styles for Underline decorations.
type UnderlineStyle uint8

const (
	UnderlineSolid UnderlineStyle = iota
	UnderlineWavy
	UnderlineDashed
	UnderlineDotted
)

// GutterMarkKind enumerates the fixed set of gutter glyph kinds.
type GutterMarkKind uint8

const (
	GutterAdded GutterMarkKind = iota
	GutterModified
	GutterDeleted
	GutterError
	GutterWarning
	GutterInfo
	GutterBreakpoint
	GutterFold
)

// Color is an RGBA color in the 0-255 per-channel range, kept
// independent of any specific rendering backend's color type so this
// package has no dependency on internal/gpu.
type Color struct {
	R, G, B, A uint8
}

// ColRange is a half-open byte-offset range within a single line.
type ColRange struct {
	Start, End uint32
}

// Kind discriminates the Decoration variants. Exactly one of the
// corresponding fields on
// Decoration is meaningful for a given Kind.
type Kind uint8

const (
	KindLineBackground Kind = iota
	KindUnderline
	KindGutterMark
	KindInlineText
	KindRangeHighlight
)

// Decoration is a single non-textual overlay attached to a line (and,
// for Underline/InlineText, a column within that line). It carries
// every variant's fields; Kind says which ones apply. This mirrors the
// way the grounding overlay model keeps one Span shape for every
// overlay flavor rather than a Go sum type (which the language doesn't
// have natively) — a tagged struct is the idiomatic stand-in.
type Decoration struct {
	Kind Kind

	Line uint32

	// Underline / RangeHighlight use Cols; RangeHighlight may also span
	// multiple lines, in which case each affected line gets its own
	// Decoration with Cols clipped to that line (the layer store is
	// line-indexed, so a multi-line highlight is pre-split by its
	// producer before SetLayer is called).
	Cols ColRange

	Color Color

	UnderlineStyle UnderlineStyle
	GutterKind     GutterMarkKind

	// InlineText.
	Col  uint32
	Text string
}

// ZIndex is the fixed rendering order for layers, lowest first
// (background, drawn first) to highest (caret, drawn last/on top).
// Spec requires this exact order: active-line under search-match
// under bracket-match under selection under diagnostics under
// inline-text under caret.
type ZIndex uint8

const (
	ZBackground ZIndex = iota
	ZActiveLine
	ZRangeHighlight
	ZSearchMatch
	ZBracketMatch
	ZSelection
	ZDiagnostics
	ZInlineText
	ZCaret
)

// LayerZIndex maps well-known source identities to their fixed
// z-index. A source not in this table (a plugin
// emitting an unrecognized id) falls back to ZBackground, the lowest
// slot, so unrecognized sources never accidentally paint over carets
// or selections.
var LayerZIndex = map[string]ZIndex{
	"active-line":     ZActiveLine,
	"range-highlight":  ZRangeHighlight,
	"search-match":    ZSearchMatch,
	"bracket-match":   ZBracketMatch,
	"selection":       ZSelection,
	"diagnostics":     ZDiagnostics,
	"git-gutter":      ZDiagnostics,
	"breakpoints":     ZDiagnostics,
	"inline-ai":       ZInlineText,
	"caret":           ZCaret,
}

// ZIndexFor resolves a layer id to its z-index, applying the
// well-known table first and falling back by prefix for namespaced
// ids like "diagnostics/file.go" (a language-server adapter names its
// layer "diagnostics/<uri>", not bare "diagnostics").
func ZIndexFor(layerID string) ZIndex {
	if z, ok := LayerZIndex[layerID]; ok {
		return z
	}
	for prefix, z := range LayerZIndex {
		if len(layerID) > len(prefix) && layerID[:len(prefix)+1] == prefix+"/" {
			return z
		}
	}
	return ZBackground
}
