package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// FoldRanges returns every collapsible region in the document, recomputed
// lazily on first request after an edit and cached until the next edit
// invalidates it, recomputed lazily on request and cached per revision.
func (d *Document) FoldRanges() []FoldRange {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.foldValid {
		return d.foldCache
	}
	if d.lang == nil || d.tree == nil {
		d.foldCache = nil
		d.foldValid = true
		return nil
	}

	var folds []FoldRange
	walkFolds(d.tree.RootNode(), d.lang, &folds)

	d.foldCache = folds
	d.foldValid = true
	return folds
}

func walkFolds(node *sitter.Node, lang *Language, out *[]FoldRange) {
	if node == nil {
		return
	}
	kind := node.Type()
	start := node.StartPoint().Row
	end := node.EndPoint().Row

	// Only multi-line nodes are worth folding; a block that fits on one
	// line has nothing useful to collapse.
	if end > start {
		switch {
		case lang.blockNodeKinds[kind]:
			*out = append(*out, FoldRange{
				Start: ByteOffset(node.StartByte()),
				End:   ByteOffset(node.EndByte()),
				Kind:  FoldBlock,
			})
		case lang.commentNodeKind[kind]:
			*out = append(*out, FoldRange{
				Start: ByteOffset(node.StartByte()),
				End:   ByteOffset(node.EndByte()),
				Kind:  FoldComment,
			})
		}
	}

	count := int(node.NamedChildCount())
	for i := 0; i < count; i++ {
		walkFolds(node.NamedChild(i), lang, out)
	}
}
