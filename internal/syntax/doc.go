// Package syntax provides incremental tree-sitter parsing, token
// classification, code folding, document outline, and bracket matching
// for editor buffers.
//
// A Document holds one buffer's parse tree plus the exact source bytes
// it was parsed from. Language detection is by file extension
// (DetectLanguage); an unrecognized extension or a grammar load failure
// leaves the Document in plain mode, where every query returns nothing
// rather than an error — per spec, syntax failures are never fatal.
//
// Edits are applied incrementally via ApplyEdit, which informs the
// existing tree of the changed byte range before reparsing, so
// unaffected subtrees are reused instead of rebuilt:
//
//	doc := syntax.NewDocument(lang)
//	doc.Reparse(ctx, initialText)
//	doc.ApplyEdit(ctx, syntax.TextEdit{Start: 10, End: 10, NewText: "x"})
//	spans := doc.Highlight()       // []HighlightSpan, byte-ordered, non-overlapping
//	folds := doc.FoldRanges()      // cached until the next edit
//	outline := doc.Symbols()       // cached until the next edit
//	end, ok := doc.MatchBracket(5) // skips brackets inside strings/comments
//
// Every language's tree-sitter query maps its own capture names down to
// the fixed TokenClass vocabulary (token.go); themes are keyed off that
// vocabulary, never off a grammar's node kinds.
package syntax
