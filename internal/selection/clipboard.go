package selection

import (
	"strings"

	"github.com/forge-editor/forge/internal/buffer"
)

// ClipboardPayload is the pure data shape of a copy/cut: the text to place
// on the clipboard, and whether it was produced from more than one
// non-empty range at once. The "multi-cursor origin" flag lets a later
// paste into a matching number of carets distribute one chunk per caret
// instead of pasting the whole blob at every caret. Actual OS clipboard
// I/O (atotto/clipboard) lives in internal/app, which is the only
// process-wide owner of the system clipboard; this type is what crosses
// that boundary.
type ClipboardPayload struct {
	Text        string
	MultiCursor bool
	Chunks      []string // one per caret, only meaningful when MultiCursor
}

// BuildClipboardPayload copies every non-empty range in sel out of buf. A
// single non-empty range yields a plain payload. Two or more yield a
// multi-cursor payload: the chunks joined with LF for Text, and the
// individual chunks preserved for a matching-count paste.
func BuildClipboardPayload(buf *buffer.Buffer, sel *Selection) ClipboardPayload {
	chunks := make([]string, 0, sel.Count())
	for _, r := range sel.NonEmptyRanges() {
		chunks = append(chunks, buf.TextRange(r.Start, r.End))
	}
	if len(chunks) <= 1 {
		text := ""
		if len(chunks) == 1 {
			text = chunks[0]
		}
		return ClipboardPayload{Text: text}
	}
	return ClipboardPayload{
		Text:        strings.Join(chunks, "\n"),
		MultiCursor: true,
		Chunks:      chunks,
	}
}

// ResolvePaste decides what text to insert at each of n carets for a paste.
// When payload was captured from exactly n carets, each caret gets its own
// chunk back (the "paste distributes one line per cursor" behavior); in
// every other case every caret gets the whole payload text.
func ResolvePaste(payload ClipboardPayload, n int) []string {
	if payload.MultiCursor && len(payload.Chunks) == n {
		out := make([]string, n)
		copy(out, payload.Chunks)
		return out
	}
	out := make([]string, n)
	for i := range out {
		out[i] = payload.Text
	}
	return out
}
