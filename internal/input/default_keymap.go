package input

// DefaultKeymap returns the bundled global keymap covering the
// file/edit/navigation/view commands every install ships with, per
// the combo grammar ("modifiers plus a single key token, with optional
// chord"). It is unscoped (Mode == "" matches any focused zone); a
// host application layers file-type- or panel-specific keymaps over it
// with Resolver.Use.
func DefaultKeymap() *Keymap {
	km := NewKeymap("default")

	// Cursor movement.
	km.Add("Left", "cursor.moveLeft")
	km.Add("Right", "cursor.moveRight")
	km.Add("Up", "cursor.moveUp")
	km.Add("Down", "cursor.moveDown")
	km.Add("Home", "cursor.lineStart")
	km.Add("End", "cursor.lineEnd")
	km.Add("C-Home", "cursor.documentStart")
	km.Add("C-End", "cursor.documentEnd")
	km.Add("PageUp", "cursor.pageUp")
	km.Add("PageDown", "cursor.pageDown")
	km.Add("C-Left", "cursor.wordLeft")
	km.Add("C-Right", "cursor.wordRight")

	// Selection extension: same chords with Shift held extend instead
	// of moving the caret alone.
	km.Add("S-Left", "selection.extendLeft")
	km.Add("S-Right", "selection.extendRight")
	km.Add("S-Up", "selection.extendUp")
	km.Add("S-Down", "selection.extendDown")
	km.Add("S-Home", "selection.extendLineStart")
	km.Add("S-End", "selection.extendLineEnd")
	km.Add("C-A", "selection.selectAll")
	km.Add("C-D", "selection.selectNextOccurrence")
	km.Add("C-S-L", "selection.selectAllOccurrences")
	km.Add("A-Up", "selection.addCursorAbove")
	km.Add("A-Down", "selection.addCursorBelow")
	km.Add("Esc", "selection.collapseToPrimary")

	// Editing.
	km.Add("Backspace", "editor.backspace")
	km.Add("Delete", "editor.delete")
	km.Add("Enter", "editor.newline")
	km.Add("Tab", "editor.indent")
	km.Add("S-Tab", "editor.unindent")
	km.Add("C-X", "editor.cut")
	km.Add("C-C", "editor.copy")
	km.Add("C-V", "editor.paste")
	km.Add("C-Z", "history.undo")
	km.Add("C-S-Z", "history.redo")
	km.Add("C-Y", "history.redo")
	km.Add("C-S-\\", "editor.matchBracket")
	km.Add("C-K C-0", "editor.toggleFold")
	km.Add("C-S-O", "editor.outline")

	// File.
	km.Add("C-S", "file.save")
	km.Add("C-S-S", "file.saveAs")
	km.Add("C-O", "file.open")
	km.Add("C-W", "file.close")

	// Search.
	km.Add("C-F", "search.open")
	km.AddBinding(NewBinding("C-H", "search.openReplace").WithWhen("!editorReadonly"))
	km.Add("F3", "search.findNext")
	km.Add("S-F3", "search.findPrevious")

	// View / panels.
	km.Add("C-B", "view.toggleSidebar")
	km.Add("C-J", "view.toggleBottomPanel")
	km.Add("C-`", "view.toggleTerminal")
	km.Add("C-S-P", "view.openCommandPalette")

	return km
}
