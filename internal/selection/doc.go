// Package selection provides cursor and multi-range selection management
// for text editing.
//
// The package handles:
//
//   - Single cursor positioning with the Cursor type
//   - Text ranges with an anchor/head model via the Range type
//   - Multi-cursor support with Selection
//   - Transformation of cursors and ranges after buffer edits
//
// Range Model:
//
// Ranges use an anchor/head model where:
//   - Anchor: the position where the range started
//   - Head: the current cursor position (where typing would occur)
//
// When Anchor == Head, the range represents just a caret with no
// selected text. The range can extend forward (head >= anchor) or
// backward (head < anchor), preserving the user's selection direction.
//
// Multi-Cursor Support:
//
// Selection manages multiple ranges that are:
//   - Kept sorted by position
//   - Automatically merged when overlapping or touching
//   - Transformed together after edits
//   - Tracked for which range is "primary" (the most recently added or
//     moved one, not necessarily the first by position)
//
// Basic usage:
//
//	// Create a range
//	r := selection.NewCaret(10)  // Caret at offset 10
//
//	// Extend it
//	r = r.Extend(20)  // Select from 10 to 20
//
//	// Multi-cursor
//	sel := selection.NewSelection(r)
//	sel.Add(selection.NewCaret(50))  // Add another caret, which becomes primary
//
//	// Transform after edit
//	edit := buffer.Edit{Range: buffer.Range{Start: 0, End: 5}, NewText: "Hello"}
//	selection.TransformSelection(sel, edit)
//
// Thread Safety:
//
// Cursor and Range are immutable value types and safe for concurrent use.
// Selection is not thread-safe and should be protected by external
// synchronization if accessed concurrently.
package selection
