package syntax

import sitter "github.com/smacker/go-tree-sitter"

var bracketPairs = map[byte]byte{
	'(': ')', '[': ']', '{': '}',
}
var bracketPairsRev = map[byte]byte{
	')': '(', ']': '[', '}': '{',
}

// MatchBracket finds the counterpart of the bracket character at offset,
// skipping brackets that fall inside a string or comment token. Returns
// (0, false) if offset isn't a bracket, or the bracket has no match (a
// syntax error leaves a bracket unpaired, which is not itself an error
// here — it simply reports no match).
func (d *Document) MatchBracket(offset ByteOffset) (ByteOffset, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if offset < 0 || int(offset) >= len(d.src) {
		return 0, false
	}
	ch := d.src[offset]

	if d.insideStringOrCommentLocked(offset) {
		return 0, false
	}

	if closer, ok := bracketPairs[ch]; ok {
		return findForwardMatch(d.src, offset, ch, closer, d)
	}
	if opener, ok := bracketPairsRev[ch]; ok {
		return findBackwardMatch(d.src, offset, opener, ch, d)
	}
	return 0, false
}

func findForwardMatch(src []byte, start ByteOffset, open, close byte, d *Document) (ByteOffset, bool) {
	depth := 0
	for i := start; int(i) < len(src); i++ {
		c := src[i]
		if c != open && c != close {
			continue
		}
		if d.insideStringOrCommentLocked(i) {
			continue
		}
		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func findBackwardMatch(src []byte, start ByteOffset, open, close byte, d *Document) (ByteOffset, bool) {
	depth := 0
	for i := start; i >= 0; i-- {
		c := src[i]
		if c != open && c != close {
			continue
		}
		if d.insideStringOrCommentLocked(i) {
			continue
		}
		switch c {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// insideStringOrCommentLocked reports whether offset falls within a
// string or comment node of the current tree. Callers must hold d.mu.
// With no tree (plain mode) nothing is ever considered a string/comment,
// so bracket matching degrades to plain bracket-depth counting.
func (d *Document) insideStringOrCommentLocked(offset ByteOffset) bool {
	if d.lang == nil || d.tree == nil {
		return false
	}
	return containsStringOrComment(d.tree.RootNode(), uint32(offset), d.lang)
}

func containsStringOrComment(node *sitter.Node, offset uint32, lang *Language) bool {
	if node == nil || offset < node.StartByte() || offset >= node.EndByte() {
		return false
	}
	if lang.stringNodeKind[node.Type()] || lang.commentNodeKind[node.Type()] {
		return true
	}
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if offset >= child.StartByte() && offset < child.EndByte() {
			return containsStringOrComment(child, offset, lang)
		}
	}
	return false
}
