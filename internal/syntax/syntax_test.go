package syntax

import (
	"context"
	"strings"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	lang, ok := DetectLanguage("main.go")
	if !ok {
		t.Fatal("expected .go to resolve to a language")
	}
	if lang.Name != "go" {
		t.Errorf("expected go, got %s", lang.Name)
	}

	if _, ok := DetectLanguage("notes.txt"); ok {
		t.Error("expected .txt to have no registered language")
	}
}

func TestDocumentPlainModeHasNoTree(t *testing.T) {
	doc := NewDocument(nil)
	if err := doc.Reparse(context.Background(), "anything at all"); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if spans := doc.Highlight(); spans != nil {
		t.Errorf("expected nil highlight spans in plain mode, got %v", spans)
	}
	if folds := doc.FoldRanges(); folds != nil {
		t.Errorf("expected nil folds in plain mode, got %v", folds)
	}
	if syms := doc.Symbols(); syms != nil {
		t.Errorf("expected nil symbols in plain mode, got %v", syms)
	}
}

func TestDocumentHighlightGo(t *testing.T) {
	lang, ok := DetectLanguage("main.go")
	if !ok {
		t.Fatal("expected go language")
	}
	doc := NewDocument(lang)

	src := "package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n"
	if err := doc.Reparse(context.Background(), src); err != nil {
		t.Fatalf("reparse: %v", err)
	}

	spans := doc.Highlight()
	if len(spans) == 0 {
		t.Fatal("expected at least one highlight span")
	}

	var sawKeyword, sawFunction bool
	for i, s := range spans {
		if i > 0 && s.Start < spans[i-1].End {
			t.Fatalf("spans not ordered/non-overlapping: %+v then %+v", spans[i-1], s)
		}
		if s.Class == ClassKeyword {
			sawKeyword = true
		}
		if s.Class == ClassFunction {
			sawFunction = true
		}
	}
	if !sawKeyword {
		t.Error("expected at least one keyword span (func/return)")
	}
	if !sawFunction {
		t.Error("expected at least one function span (add)")
	}
}

func TestDocumentHighlightCoversEveryByte(t *testing.T) {
	lang, ok := DetectLanguage("main.go")
	if !ok {
		t.Fatal("expected go language")
	}
	doc := NewDocument(lang)

	src := "package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n"
	if err := doc.Reparse(context.Background(), src); err != nil {
		t.Fatalf("reparse: %v", err)
	}

	spans := doc.Highlight()
	if len(spans) == 0 {
		t.Fatal("expected at least one highlight span")
	}

	var cursor ByteOffset
	for _, s := range spans {
		if s.Start != cursor {
			t.Fatalf("gap in coverage: expected next span to start at %d, got %d", cursor, s.Start)
		}
		if s.End <= s.Start {
			t.Fatalf("empty or inverted span: %+v", s)
		}
		cursor = s.End
	}
	if int(cursor) != len(src) {
		t.Errorf("spans cover [0, %d), want [0, %d)", cursor, len(src))
	}
}

func TestDocumentApplyEditIncremental(t *testing.T) {
	lang, _ := DetectLanguage("main.go")
	doc := NewDocument(lang)
	ctx := context.Background()

	src := "package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n"
	if err := doc.Reparse(ctx, src); err != nil {
		t.Fatalf("reparse: %v", err)
	}

	// Rename "add" to "addTwo".
	nameStart := ByteOffset(strings.Index(src, "add"))
	if err := doc.ApplyEdit(ctx, TextEdit{Start: nameStart, End: nameStart + 3, NewText: "addTwo"}); err != nil {
		t.Fatalf("apply edit: %v", err)
	}

	syms := doc.Symbols()
	if len(syms) == 0 {
		t.Fatal("expected at least one top-level symbol")
	}
	found := false
	for _, s := range syms {
		if s.Name == "addTwo" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected renamed function addTwo in outline, got %+v", syms)
	}
}

func TestDocumentFoldRangesGo(t *testing.T) {
	lang, _ := DetectLanguage("main.go")
	doc := NewDocument(lang)
	src := "package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n"
	if err := doc.Reparse(context.Background(), src); err != nil {
		t.Fatalf("reparse: %v", err)
	}

	folds := doc.FoldRanges()
	if len(folds) == 0 {
		t.Fatal("expected at least one fold range for the function body")
	}
}

func TestDocumentMatchBracket(t *testing.T) {
	lang, _ := DetectLanguage("main.go")
	doc := NewDocument(lang)
	src := `package main

func f() {
	g(1, (2 + 3))
}
`
	if err := doc.Reparse(context.Background(), src); err != nil {
		t.Fatalf("reparse: %v", err)
	}

	openParen := ByteOffset(strings.Index(src, "func f(")) + ByteOffset(len("func f(")) - 1
	end, ok := doc.MatchBracket(openParen)
	if !ok {
		t.Fatal("expected a match for func f(")
	}
	if src[end] != ')' {
		t.Errorf("expected match to land on ')', got %q", src[end])
	}
}

func TestDocumentMatchBracketSkipsStrings(t *testing.T) {
	lang, _ := DetectLanguage("main.go")
	doc := NewDocument(lang)
	src := `package main

func f() string {
	return "(unmatched"
}
`
	if err := doc.Reparse(context.Background(), src); err != nil {
		t.Fatalf("reparse: %v", err)
	}

	// The '(' inside the string literal must not be treated as a real
	// bracket to match against.
	idx := ByteOffset(0)
	for i, c := range []byte(src) {
		if c == '(' && i > 0 && src[i-1] == '"' {
			idx = ByteOffset(i)
			break
		}
	}
	if idx == 0 {
		t.Fatal("test fixture did not contain the expected string literal")
	}
	if _, ok := doc.MatchBracket(idx); ok {
		t.Error("expected no bracket match for a paren inside a string literal")
	}
}

func TestPointAt(t *testing.T) {
	src := []byte("ab\ncd\nef")
	p := pointAt(src, 4) // 'd' on the second line
	if p.Row != 1 || p.Column != 1 {
		t.Errorf("expected row 1 col 1, got row %d col %d", p.Row, p.Column)
	}
}
