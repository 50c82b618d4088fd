package syntax

import "github.com/forge-editor/forge/internal/buffer"

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// TokenClass is the fixed, language-independent vocabulary every
// language's tree-sitter query maps into. The set is intentionally small:
// themes key off these names, never off a grammar's own node kinds.
type TokenClass uint8

const (
	ClassPlain TokenClass = iota
	ClassKeyword
	ClassFunction
	ClassType
	ClassString
	ClassNumber
	ClassComment
	ClassOperator
	ClassPunctuation
	ClassVariable
	ClassConstant
	ClassMacro
	ClassAttribute

	// ClassCount is the number of defined TokenClass values; a palette
	// indexed by TokenClass sizes its array against this.
	ClassCount
)

var tokenClassNames = [ClassCount]string{
	ClassPlain:       "plain",
	ClassKeyword:     "keyword",
	ClassFunction:    "function",
	ClassType:        "type",
	ClassString:      "string",
	ClassNumber:      "number",
	ClassComment:     "comment",
	ClassOperator:    "operator",
	ClassPunctuation: "punctuation",
	ClassVariable:    "variable",
	ClassConstant:    "constant",
	ClassMacro:       "macro",
	ClassAttribute:   "attribute",
}

// String returns the theme-facing name of the token class.
func (c TokenClass) String() string {
	if c < ClassCount {
		return tokenClassNames[c]
	}
	return "plain"
}

// HighlightSpan is a single classified byte range. Spans produced by
// Highlight are always non-overlapping and sorted in byte order, and
// whenever Highlight returns spans their union equals [0, len(src)):
// every byte the query left uncaptured is filled in as ClassPlain rather
// than omitted. Highlight returns nil in plain mode, for a language with
// no usable query, and for an empty src.
type HighlightSpan struct {
	Start ByteOffset
	End   ByteOffset
	Class TokenClass
}

// Len returns the span's length in bytes.
func (s HighlightSpan) Len() ByteOffset {
	return s.End - s.Start
}

// FoldKind distinguishes the shapes a foldable region can take.
type FoldKind uint8

const (
	FoldBlock FoldKind = iota
	FoldComment
	FoldImport
)

// FoldRange is a collapsible region of source.
type FoldRange struct {
	Start ByteOffset
	End   ByteOffset
	Kind  FoldKind
}

// SymbolKind enumerates the outline/breadcrumb symbol kinds a language's
// query can classify named declarations into.
type SymbolKind uint8

const (
	SymbolFunction SymbolKind = iota
	SymbolMethod
	SymbolStruct
	SymbolClass
	SymbolEnum
	SymbolInterface
	SymbolTrait
	SymbolConst
	SymbolModule
	SymbolVariable
)

// Symbol is one entry in the document outline, with nested children (e.g.
// methods under a struct, variants under an enum).
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Start    ByteOffset
	End      ByteOffset
	Children []Symbol
}
