package summary

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/pypeek/pypeek/internal/pyparse"
)

// unknownCondition substitutes for a predicate whose source text cannot be
// recovered from the tree.
const unknownCondition = "<unknown>"

// TreeWalker converts a parsed syntax tree into a ModuleSummary. A walker
// is single-use: construct one per VisitModule call so the traversal state
// below never leaks across files.
type TreeWalker struct {
	source []byte
	lines  []string

	currentClass string   // class being visited, "" at top level
	condStack    []string // active if/else predicates, outermost first
}

// NewTreeWalker creates a walker over the source the tree was parsed from.
func NewTreeWalker(source []byte) *TreeWalker {
	return &TreeWalker{
		source: source,
		lines:  strings.Split(string(source), "\n"),
	}
}

// VisitModule walks the module node and produces the summary. Top-level
// statements are classified as class definitions, function definitions, or
// conditionals (checked for the __main__ guard); everything else is
// ignored.
func (w *TreeWalker) VisitModule(module *sitter.Node) (*ModuleSummary, error) {
	ms := &ModuleSummary{
		Classes:           []Class{},
		TopLevelFunctions: []FunctionInfo{},
	}

	ms.ModuleDoc = w.docstring(module)

	for i := 0; i < int(module.NamedChildCount()); i++ {
		stmt := module.NamedChild(uint(i))
		def := stmt
		if stmt.Kind() == "decorated_definition" {
			def = stmt.ChildByFieldName("definition")
			if def == nil {
				continue
			}
		}

		switch def.Kind() {
		case "class_definition":
			if err := w.visitClass(def, ms); err != nil {
				return nil, err
			}
		case "function_definition":
			if err := w.visitFunction(def, ms); err != nil {
				return nil, err
			}
		case "if_statement":
			if isExecutableGuard(def, w.source) {
				ms.IsExecutable = true
			}
		}
	}

	return ms, nil
}

// visitClass records the class and buckets the function definitions found
// in its body; any other statement kind inside a class body is ignored.
// Only one level of class nesting is tracked, so methods of a nested class
// would land on the innermost class name.
func (w *TreeWalker) visitClass(node *sitter.Node, ms *ModuleSummary) error {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := pyparse.Text(nameNode, w.source)

	// Register (or reset, when the name is duplicated) the class entry so
	// it appears even when the body has no methods.
	cls := Class{Name: name, Methods: []FunctionInfo{}}
	if existing := ms.ClassNamed(name); existing != nil {
		*existing = cls
	} else {
		ms.Classes = append(ms.Classes, cls)
	}

	w.currentClass = name
	defer func() { w.currentClass = "" }()

	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(uint(i))
		def := stmt
		if stmt.Kind() == "decorated_definition" {
			def = stmt.ChildByFieldName("definition")
		}
		if def != nil && def.Kind() == "function_definition" {
			if err := w.visitFunction(def, ms); err != nil {
				return err
			}
		}
	}
	return nil
}

// visitFunction builds the FunctionInfo for a function definition and
// places it: methods under the current class, a top-level main as the entry
// point, everything else among the top-level functions.
func (w *TreeWalker) visitFunction(node *sitter.Node, ms *ModuleSummary) error {
	fn, err := w.functionInfo(node)
	if err != nil {
		return err
	}

	switch {
	case w.currentClass != "":
		ms.addMethod(w.currentClass, fn)
	case fn.Name == "main":
		ms.MainFunction = &fn
	default:
		ms.TopLevelFunctions = append(ms.TopLevelFunctions, fn)
	}
	return nil
}

// functionInfo extracts name, positional parameters, docstring, and the
// return statements of one function definition.
func (w *TreeWalker) functionInfo(node *sitter.Node) (FunctionInfo, error) {
	fn := FunctionInfo{
		Parameters: []string{},
		Returns:    []ReturnInfo{},
	}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		fn.Name = pyparse.Text(nameNode, w.source)
	}
	fn.Parameters = w.parameterNames(node.ChildByFieldName("parameters"))

	body := node.ChildByFieldName("body")
	if body == nil {
		return fn, nil
	}
	fn.Doc = w.docstring(body)

	if err := w.walkBody(body, &fn); err != nil {
		return FunctionInfo{}, err
	}
	return fn, nil
}

// parameterNames collects positional parameter names. Plain, typed, and
// defaulted parameters contribute their names; * and ** end the scan since
// everything from there on is variadic or keyword-only.
func (w *TreeWalker) parameterNames(params *sitter.Node) []string {
	names := []string{}
	if params == nil {
		return names
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(uint(i))
		switch p.Kind() {
		case "identifier":
			names = append(names, pyparse.Text(p, w.source))
		case "typed_parameter":
			if id := p.NamedChild(0); id != nil && id.Kind() == "identifier" {
				names = append(names, pyparse.Text(id, w.source))
			}
		case "default_parameter", "typed_default_parameter":
			if nameNode := p.ChildByFieldName("name"); nameNode != nil && nameNode.Kind() == "identifier" {
				names = append(names, pyparse.Text(nameNode, w.source))
			}
		case "list_splat_pattern", "dictionary_splat_pattern", "keyword_separator":
			return names
		}
	}
	return names
}

// walkBody is the return/condition walk over one statement block.
// Predicates are pushed on entry to a branch and popped on exit, so sibling
// branches never observe each other's conditions. Compound statements other
// than if (loops, with, try, nested defs) are entered through their body
// field without contributing a condition.
func (w *TreeWalker) walkBody(block *sitter.Node, fn *FunctionInfo) error {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		stmt := block.NamedChild(uint(i))
		switch stmt.Kind() {
		case "if_statement":
			if err := w.walkIf(stmt, fn); err != nil {
				return err
			}
		case "return_statement":
			if err := w.recordReturn(stmt, fn); err != nil {
				return err
			}
		case "decorated_definition":
			if def := stmt.ChildByFieldName("definition"); def != nil {
				if body := def.ChildByFieldName("body"); body != nil {
					if err := w.walkBody(body, fn); err != nil {
						return err
					}
				}
			}
		default:
			if body := stmt.ChildByFieldName("body"); body != nil {
				if err := w.walkBody(body, fn); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// walkIf handles an if statement and its elif/else chain the way Python
// nests it: each later clause sees the negation of every predicate before
// it, and an elif contributes its own predicate on top.
func (w *TreeWalker) walkIf(node *sitter.Node, fn *FunctionInfo) error {
	cond := w.conditionText(node.ChildByFieldName("condition"))

	w.push(cond)
	err := w.walkConsequence(node.ChildByFieldName("consequence"), fn)
	w.pop()
	if err != nil {
		return err
	}

	prev := cond
	negations := 0
	defer func() {
		for ; negations > 0; negations-- {
			w.pop()
		}
	}()

	for i := 0; i < int(node.NamedChildCount()); i++ {
		clause := node.NamedChild(uint(i))
		switch clause.Kind() {
		case "elif_clause":
			w.push("not (" + prev + ")")
			negations++

			elifCond := w.conditionText(clause.ChildByFieldName("condition"))
			w.push(elifCond)
			err := w.walkConsequence(clause.ChildByFieldName("consequence"), fn)
			w.pop()
			if err != nil {
				return err
			}
			prev = elifCond
		case "else_clause":
			w.push("not (" + prev + ")")
			negations++

			if err := w.walkConsequence(clause.ChildByFieldName("body"), fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *TreeWalker) walkConsequence(block *sitter.Node, fn *FunctionInfo) error {
	if block == nil {
		return nil
	}
	return w.walkBody(block, fn)
}

// recordReturn captures the physical source line of a return statement and
// a snapshot of the condition stack.
func (w *TreeWalker) recordReturn(stmt *sitter.Node, fn *FunctionInfo) error {
	line := pyparse.StartLine(stmt)
	if line < 1 || line > len(w.lines) {
		return &LineIndexError{Line: line, Lines: len(w.lines)}
	}

	conditions := make([]string, len(w.condStack))
	copy(conditions, w.condStack)

	fn.Returns = append(fn.Returns, ReturnInfo{
		SourceLine: strings.TrimSpace(w.lines[line-1]),
		Conditions: conditions,
	})
	return nil
}

// conditionText reconstructs a predicate's source text, substituting the
// <unknown> placeholder when the tree cannot produce it.
func (w *TreeWalker) conditionText(cond *sitter.Node) string {
	text := strings.TrimSpace(pyparse.Text(cond, w.source))
	if text == "" {
		return unknownCondition
	}
	return text
}

// docstring returns the text of a bare string literal appearing as the
// first statement of a module or block, skipping leading comments.
func (w *TreeWalker) docstring(container *sitter.Node) string {
	first := firstStatement(container)
	if first == nil || first.Kind() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	str := first.NamedChild(0)
	if str.Kind() != "string" {
		return ""
	}
	return pyparse.StringContent(pyparse.Text(str, w.source))
}

func firstStatement(container *sitter.Node) *sitter.Node {
	if container == nil {
		return nil
	}
	for i := 0; i < int(container.NamedChildCount()); i++ {
		child := container.NamedChild(uint(i))
		if child.Kind() != "comment" {
			return child
		}
	}
	return nil
}

// isExecutableGuard reports whether a top-level if tests the __name__
// identifier with a comparison. The operator and right-hand side are not
// validated: any comparison against __name__ trips the flag.
func isExecutableGuard(ifStmt *sitter.Node, source []byte) bool {
	cond := ifStmt.ChildByFieldName("condition")
	if cond != nil && cond.Kind() == "parenthesized_expression" {
		cond = cond.NamedChild(0)
	}
	if cond == nil || cond.Kind() != "comparison_operator" {
		return false
	}
	left := cond.NamedChild(0)
	return left != nil && left.Kind() == "identifier" && pyparse.Text(left, source) == "__name__"
}

func (w *TreeWalker) push(cond string) {
	w.condStack = append(w.condStack, cond)
}

func (w *TreeWalker) pop() {
	w.condStack = w.condStack[:len(w.condStack)-1]
}
