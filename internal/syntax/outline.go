package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Symbols returns the document's outline: the root's named children whose
// node kind has a symbol rule, each carrying as Children its own direct
// named children that have a rule, cached per revision the same way
// FoldRanges is. Only direct named children are examined at each level, so
// a Go type_spec, const_spec or var_spec (nested inside its declaration
// node) and a Python method (nested inside the class body block) are not
// listed.
func (d *Document) Symbols() []Symbol {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.symValid {
		return d.symCache
	}
	if d.lang == nil || d.tree == nil {
		d.symCache = nil
		d.symValid = true
		return nil
	}

	root := d.tree.RootNode()
	count := int(root.NamedChildCount())
	symbols := make([]Symbol, 0, count)
	for i := 0; i < count; i++ {
		if sym, ok := buildSymbol(root.NamedChild(i), d.lang, d.src); ok {
			symbols = append(symbols, sym)
		}
	}

	d.symCache = symbols
	d.symValid = true
	return symbols
}

func buildSymbol(node *sitter.Node, lang *Language, src []byte) (Symbol, bool) {
	rule, ok := lang.symbolNodeKinds[node.Type()]
	if !ok {
		return Symbol{}, false
	}

	nameNode := node.ChildByFieldName(rule.nameField)
	name := ""
	if nameNode != nil {
		name = string(src[nameNode.StartByte():nameNode.EndByte()])
	}

	sym := Symbol{
		Name:  name,
		Kind:  rule.kind,
		Start: ByteOffset(node.StartByte()),
		End:   ByteOffset(node.EndByte()),
	}

	count := int(node.NamedChildCount())
	for i := 0; i < count; i++ {
		if child, ok := buildSymbol(node.NamedChild(i), lang, src); ok {
			sym.Children = append(sym.Children, child)
		}
	}

	return sym, true
}
