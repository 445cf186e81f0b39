// Package pyparse wraps the tree-sitter Python grammar behind the small
// parser surface the summarizer needs: parsing with syntax-error location
// reporting, node text extraction, and tree walking.
package pyparse

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

var pythonLang = sitter.NewLanguage(python.Language())

// SyntaxError reports malformed source with a 1-indexed location.
type SyntaxError struct {
	Msg    string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s at line %d, col %d", e.Msg, e.Line, e.Column)
}

// Tree owns a parsed syntax tree. Callers must Close it.
type Tree struct {
	tree *sitter.Tree
}

// Parse parses Python source. Malformed input is reported as a *SyntaxError
// located at the first error node the parser produced.
func Parse(source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(pythonLang)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &SyntaxError{Msg: "unparseable source", Line: 1, Column: 1}
	}

	root := tree.RootNode()
	if root.HasError() {
		defer tree.Close()
		if errNode := firstErrorNode(root); errNode != nil {
			pos := errNode.StartPosition()
			return nil, &SyntaxError{
				Msg:    "invalid syntax",
				Line:   int(pos.Row) + 1,
				Column: int(pos.Column) + 1,
			}
		}
		return nil, &SyntaxError{Msg: "invalid syntax", Line: 1, Column: 1}
	}

	return &Tree{tree: tree}, nil
}

// Root returns the module node.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// firstErrorNode finds the first ERROR or missing node in document order.
func firstErrorNode(node *sitter.Node) *sitter.Node {
	var found *sitter.Node
	Walk(node, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return false
		}
		// Only descend into subtrees that actually contain the error.
		return n.HasError()
	})
	return found
}

// Walk recursively visits node and its children, stopping descent wherever
// the visitor returns false.
func Walk(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		Walk(node.Child(uint(i)), visitor)
	}
}

// Text extracts the source text covered by a node.
func Text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// StartLine returns a node's 1-indexed starting line.
func StartLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// StringContent returns the content of a Python string literal, stripping
// any r/b/u/f prefix and single or triple quoting.
func StringContent(text string) string {
	i := 0
	for i < len(text) && text[i] != '"' && text[i] != '\'' {
		i++
	}
	s := text[i:]

	if len(s) >= 6 {
		for _, q := range []string{`"""`, "'''"} {
			if s[:3] == q && s[len(s)-3:] == q {
				return s[3 : len(s)-3]
			}
		}
	}
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
