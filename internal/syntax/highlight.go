package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Highlight walks the document's current parse tree and classifies every
// query capture into the fixed TokenClass vocabulary. Returns nil (not
// an error) in plain mode or on query load failure: a grammar load
// failure leaves the buffer in plain mode.
func (d *Document) Highlight() []HighlightSpan {
	d.mu.Lock()
	lang, tree, src := d.lang, d.tree, d.src
	d.mu.Unlock()

	if lang == nil || tree == nil {
		return nil
	}
	query := lang.query()
	if query == nil {
		return nil
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, tree.RootNode())

	var spans []HighlightSpan
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			name := query.CaptureNameForId(capture.Index)
			class := lang.classify(name)
			if class == ClassPlain {
				continue
			}
			node := capture.Node
			start := ByteOffset(node.StartByte())
			end := ByteOffset(node.EndByte())
			if end <= start || end > ByteOffset(len(src)) {
				continue
			}
			spans = append(spans, HighlightSpan{Start: start, End: end, Class: class})
		}
	}

	return fillPlainGaps(dedupeSortedSpans(spans), ByteOffset(len(src)))
}

// fillPlainGaps inserts ClassPlain spans into every byte range the
// query left uncaptured — whitespace or punctuation outside the query's
// patterns — so the returned
// spans are contiguous and their union is always [0, total).
func fillPlainGaps(spans []HighlightSpan, total ByteOffset) []HighlightSpan {
	if total <= 0 {
		return nil
	}

	out := make([]HighlightSpan, 0, len(spans)*2+1)
	var cursor ByteOffset
	for _, s := range spans {
		if s.Start > cursor {
			out = append(out, HighlightSpan{Start: cursor, End: s.Start, Class: ClassPlain})
		}
		out = append(out, s)
		cursor = s.End
	}
	if cursor < total {
		out = append(out, HighlightSpan{Start: cursor, End: total, Class: ClassPlain})
	}
	return out
}
